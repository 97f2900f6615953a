// Package usecase implements the stock screener workflow: price history for a
// set of tickers joined with a market index, fundamentals per ticker, storage.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"fund_backend/internal/feature/screener/domain/entity"
	"fund_backend/internal/shared/document"
	"fund_backend/internal/shared/ratelimiter"
)

const (
	// DefaultIndexTicker is the NIFTY 50 index.
	DefaultIndexTicker = "^NSEI"

	SpotCollection       = "spot_data"
	AdditionalCollection = "additional_data"
)

// ErrNoTickers is returned when the ticker input is empty.
var ErrNoTickers = errors.New("no tickers given")

// StockProvider は株価履歴とファンダメンタルズを取得するリポジトリのインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type StockProvider interface {
	GetHistory(ctx context.Context, ticker string) ([]entity.Bar, error)
	GetFundamentals(ctx context.Context, ticker string) (entity.Fundamentals, error)
}

// DocumentStore persists screener documents.
type DocumentStore interface {
	InsertMany(ctx context.Context, collection string, docs []map[string]any) ([]string, error)
	Upsert(ctx context.Context, collection, keyField, keyValue string, doc map[string]any) error
}

// Result is the outcome of a screener run. Rows or Fundamentals are empty when
// the corresponding step failed; failures are logged, never returned.
type Result struct {
	Tickers      []string
	Rows         []entity.SpotRow
	Fundamentals []entity.Fundamentals
}

// ScreenerUsecase fetches, joins and stores stock data.
type ScreenerUsecase struct {
	market      StockProvider
	store       DocumentStore
	rateLimiter ratelimiter.RateLimiterInterface
	indexTicker string
}

// NewScreenerUsecase creates a ScreenerUsecase. An empty indexTicker selects DefaultIndexTicker.
func NewScreenerUsecase(market StockProvider, store DocumentStore, rateLimiter ratelimiter.RateLimiterInterface, indexTicker string) *ScreenerUsecase {
	if indexTicker == "" {
		indexTicker = DefaultIndexTicker
	}
	return &ScreenerUsecase{market: market, store: store, rateLimiter: rateLimiter, indexTicker: indexTicker}
}

// IndexTicker returns the index the tickers are joined with.
func (u *ScreenerUsecase) IndexTicker() string { return u.indexTicker }

// ParseTickers splits comma-separated input into trimmed, non-empty tickers.
func ParseTickers(input string) ([]string, error) {
	var out []string
	for _, t := range strings.Split(input, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoTickers
	}
	return out, nil
}

// Run imports the spot data, fetches the fundamentals and stores both.
func (u *ScreenerUsecase) Run(ctx context.Context, tickers []string) Result {
	res := Result{Tickers: tickers}

	rows, err := u.ImportData(ctx, tickers)
	if err != nil {
		slog.Error("error importing data", "error", err)
	} else {
		res.Rows = rows
		slog.Info("data import successful", "rows", len(rows))
	}

	res.Fundamentals = u.FetchAdditionalData(ctx, tickers)

	if err := u.Store(ctx, res); err != nil {
		slog.Error("error storing data", "error", err)
	} else {
		slog.Info("data successfully stored")
	}
	return res
}

// ImportData fetches the full daily history of every ticker and of the index,
// back-fills missing prices and joins the index onto the ticker dates.
func (u *ScreenerUsecase) ImportData(ctx context.Context, tickers []string) ([]entity.SpotRow, error) {
	hist := make(map[string][]entity.Bar, len(tickers))
	for _, t := range tickers {
		if err := u.wait(ctx); err != nil {
			return nil, err
		}
		bars, err := u.market.GetHistory(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("history %s: %w", t, err)
		}
		hist[t] = bars
	}

	if err := u.wait(ctx); err != nil {
		return nil, err
	}
	index, err := u.market.GetHistory(ctx, u.indexTicker)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", u.indexTicker, err)
	}
	return JoinRows(tickers, hist, index), nil
}

// FetchAdditionalData fetches the fundamentals of every ticker. A ticker that
// fails is logged and left out; the remaining tickers are still fetched.
func (u *ScreenerUsecase) FetchAdditionalData(ctx context.Context, tickers []string) []entity.Fundamentals {
	out := make([]entity.Fundamentals, 0, len(tickers))
	for _, t := range tickers {
		f, err := u.GetFundamentals(ctx, t)
		if err != nil {
			slog.Error("error fetching additional data", "ticker", t, "error", err)
			if ctx.Err() != nil {
				break
			}
			// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の銘柄へ
			continue
		}
		out = append(out, f)
	}
	slog.Info("additional data fetch finished", "fetched", len(out), "requested", len(tickers))
	return out
}

// GetFundamentals fetches the fundamentals of a single ticker, paced by the rate limiter.
func (u *ScreenerUsecase) GetFundamentals(ctx context.Context, ticker string) (entity.Fundamentals, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return entity.Fundamentals{}, ErrNoTickers
	}
	if err := u.wait(ctx); err != nil {
		return entity.Fundamentals{}, err
	}
	f, err := u.market.GetFundamentals(ctx, ticker)
	if err != nil {
		return entity.Fundamentals{}, fmt.Errorf("fundamentals %s: %w", ticker, err)
	}
	f.Ticker = ticker
	return f, nil
}

// Store inserts one document per spot row and upserts the fundamentals keyed by ticker.
func (u *ScreenerUsecase) Store(ctx context.Context, res Result) error {
	if u.store == nil {
		return errors.New("no document store configured")
	}
	var errs []error

	if len(res.Rows) == 0 {
		slog.Warn("no spot data to store")
	} else {
		docs := make([]map[string]any, 0, len(res.Rows))
		for _, r := range res.Rows {
			doc, err := document.SanitizeMap(r.Document(res.Tickers))
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}
		if _, err := u.store.InsertMany(ctx, SpotCollection, docs); err != nil {
			errs = append(errs, fmt.Errorf("insert spot data: %w", err))
		}
	}

	for _, f := range res.Fundamentals {
		doc, err := document.SanitizeMap(f.Document())
		if err != nil {
			return err
		}
		if err := u.store.Upsert(ctx, AdditionalCollection, "ticker", f.Ticker, doc); err != nil {
			errs = append(errs, fmt.Errorf("upsert %s: %w", f.Ticker, err))
		}
	}
	return errors.Join(errs...)
}

func (u *ScreenerUsecase) wait(ctx context.Context) error {
	if u.rateLimiter == nil {
		return nil
	}
	return u.rateLimiter.WaitIfNeeded(ctx)
}

// JoinRows aligns the ticker histories on the union of their dates, back-fills
// each ticker and left-joins the back-filled index by date.
func JoinRows(tickers []string, hist map[string][]entity.Bar, index []entity.Bar) []entity.SpotRow {
	seen := map[time.Time]struct{}{}
	var dates []time.Time
	for _, t := range tickers {
		for _, b := range hist[t] {
			if _, ok := seen[b.Date]; !ok {
				seen[b.Date] = struct{}{}
				dates = append(dates, b.Date)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([]entity.SpotRow, len(dates))
	for i, d := range dates {
		rows[i] = entity.SpotRow{Date: d, Bars: make(map[string]entity.Bar, len(tickers))}
	}

	for _, t := range tickers {
		bars := hist[t]
		if len(bars) == 0 {
			continue
		}
		byDate := make(map[time.Time]entity.Bar, len(bars))
		for _, b := range bars {
			byDate[b.Date] = b
		}
		aligned := make([]entity.Bar, len(dates))
		for i, d := range dates {
			b, ok := byDate[d]
			if !ok {
				b = missingBar(d)
			}
			aligned[i] = b
		}
		BackFill(aligned)
		for i := range rows {
			rows[i].Bars[t] = aligned[i]
		}
	}

	idx := sortedCopy(index)
	BackFill(idx)
	byDate := make(map[time.Time]entity.Bar, len(idx))
	for _, b := range idx {
		byDate[b.Date] = b
	}
	for i := range rows {
		if b, ok := byDate[rows[i].Date]; ok {
			rows[i].Index = &b
		}
	}
	return rows
}

// BackFill replaces every missing value with the next valid value of the same
// column. bars must be sorted by date; trailing gaps stay missing.
func BackFill(bars []entity.Bar) {
	fields := []func(*entity.Bar) *float64{
		func(b *entity.Bar) *float64 { return &b.Open },
		func(b *entity.Bar) *float64 { return &b.High },
		func(b *entity.Bar) *float64 { return &b.Low },
		func(b *entity.Bar) *float64 { return &b.Close },
		func(b *entity.Bar) *float64 { return &b.AdjClose },
	}
	for _, field := range fields {
		next := math.NaN()
		for i := len(bars) - 1; i >= 0; i-- {
			p := field(&bars[i])
			if math.IsNaN(*p) {
				*p = next
			} else {
				next = *p
			}
		}
	}
	next := entity.MissingVolume
	for i := len(bars) - 1; i >= 0; i-- {
		if bars[i].Volume == entity.MissingVolume {
			bars[i].Volume = next
		} else {
			next = bars[i].Volume
		}
	}
}

func missingBar(d time.Time) entity.Bar {
	nan := math.NaN()
	return entity.Bar{Date: d, Open: nan, High: nan, Low: nan, Close: nan, AdjClose: nan, Volume: entity.MissingVolume}
}

func sortedCopy(bars []entity.Bar) []entity.Bar {
	out := make([]entity.Bar, len(bars))
	copy(out, bars)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
