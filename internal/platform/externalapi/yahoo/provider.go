package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"fund_backend/internal/feature/screener/domain/entity"
	"fund_backend/internal/feature/screener/usecase"
	infrahttp "fund_backend/internal/platform/http"
	"fund_backend/internal/platform/externalapi/yahoo/dto"
)

// summaryModules are the quote summary modules the fundamentals are read from.
const summaryModules = "price,summaryDetail,defaultKeyStatistics,financialData,assetProfile"

// ErrNoResult is returned when Yahoo answers without a result for the symbol.
var ErrNoResult = errors.New("yahoo: empty result")

// YahooProvider はYahoo Financeから株価履歴とファンダメンタルズを取得するStockProvider実装です。
type YahooProvider struct {
	cfg    Config
	client *http.Client
}

// YahooProviderがStockProviderを実装していることをコンパイル時に検証します。
var _ usecase.StockProvider = (*YahooProvider)(nil)

// NewYahooProvider creates a YahooProvider with the given configuration and HTTP client.
func NewYahooProvider(cfg Config, client *http.Client) *YahooProvider {
	return &YahooProvider{cfg: cfg, client: client}
}

// GetHistory returns the full daily history of ticker, oldest first.
// Null prices are returned as NaN and null volumes as entity.MissingVolume.
func (y *YahooProvider) GetHistory(ctx context.Context, ticker string) ([]entity.Bar, error) {
	q := url.Values{}
	q.Set("range", "max")
	q.Set("interval", "1d")
	q.Set("includeAdjustedClose", "true")

	var body dto.ChartResponse
	if err := y.getJSON(ctx, "/v8/finance/chart/"+url.PathEscape(ticker), q, &body); err != nil {
		return nil, err
	}
	if e := body.Chart.Error; e != nil {
		return nil, fmt.Errorf("yahoo: %s: %s", e.Code, e.Description)
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, ErrNoResult)
	}

	r := body.Chart.Result[0]
	if len(r.Indicators.Quote) == 0 {
		return []entity.Bar{}, nil
	}
	quote := r.Indicators.Quote[0]
	var adj []*float64
	if len(r.Indicators.AdjClose) > 0 {
		adj = r.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]entity.Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		// 取引所のローカル日付に丸める
		local := time.Unix(ts+int64(r.Meta.GMTOffset), 0).UTC()
		b := entity.Bar{
			Date:     time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC),
			Open:     at(quote.Open, i),
			High:     at(quote.High, i),
			Low:      at(quote.Low, i),
			Close:    at(quote.Close, i),
			AdjClose: at(adj, i),
			Volume:   entity.MissingVolume,
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			b.Volume = *quote.Volume[i]
		}
		if math.IsNaN(b.AdjClose) {
			b.AdjClose = b.Close
		}
		// the live bar may repeat the last trading day
		if n := len(bars); n > 0 && bars[n-1].Date.Equal(b.Date) {
			bars[n-1] = b
			continue
		}
		bars = append(bars, b)
	}
	return bars, nil
}

// GetFundamentals returns the additional figures for ticker.
func (y *YahooProvider) GetFundamentals(ctx context.Context, ticker string) (entity.Fundamentals, error) {
	q := url.Values{}
	q.Set("modules", summaryModules)
	if y.cfg.Crumb != "" {
		q.Set("crumb", y.cfg.Crumb)
	}

	var body dto.QuoteSummaryResponse
	if err := y.getJSON(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(ticker), q, &body); err != nil {
		return entity.Fundamentals{}, err
	}
	if e := body.QuoteSummary.Error; e != nil {
		return entity.Fundamentals{}, fmt.Errorf("yahoo: %s: %s", e.Code, e.Description)
	}
	if len(body.QuoteSummary.Result) == 0 {
		return entity.Fundamentals{}, fmt.Errorf("%s: %w", ticker, ErrNoResult)
	}

	r := body.QuoteSummary.Result[0]
	f := entity.Fundamentals{
		Ticker:            ticker,
		MarketCap:         first(r.Price.MarketCap, r.SummaryDetail.MarketCap),
		DividendYield:     r.SummaryDetail.DividendYield.Raw,
		CurrentPrice:      r.FinancialData.CurrentPrice.Raw,
		BookValue:         r.DefaultKeyStatistics.BookValue.Raw,
		ReturnOnAssets:    r.FinancialData.ReturnOnAssets.Raw,
		ReturnOnEquity:    r.FinancialData.ReturnOnEquity.Raw,
		ForwardPE:         first(r.SummaryDetail.ForwardPE, r.DefaultKeyStatistics.ForwardPE),
		TrailingPE:        r.SummaryDetail.TrailingPE.Raw,
		TrailingEPS:       r.DefaultKeyStatistics.TrailingEPS.Raw,
		Beta:              r.SummaryDetail.Beta.Raw,
		Revenue:           r.FinancialData.TotalRevenue.Raw,
		GrossProfit:       r.FinancialData.GrossProfits.Raw,
		EBITDA:            r.FinancialData.EBITDA.Raw,
		DebtToEquity:      r.FinancialData.DebtToEquity.Raw,
		CurrentRatio:      r.FinancialData.CurrentRatio.Raw,
		QuickRatio:        r.FinancialData.QuickRatio.Raw,
		FreeCashFlow:      r.FinancialData.FreeCashflow.Raw,
		OperatingCashFlow: r.FinancialData.OperatingCashflow.Raw,
		PriceToBook:       r.DefaultKeyStatistics.PriceToBook.Raw,
		PEGRatio:          r.DefaultKeyStatistics.PEGRatio.Raw,
	}
	for _, o := range r.AssetProfile.CompanyOfficers {
		f.Officers = append(f.Officers, entity.Officer{Name: o.Name, Title: o.Title})
	}
	return f, nil
}

func (y *YahooProvider) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := fmt.Sprintf("%s%s?%s", y.cfg.BaseURL, path, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", infrahttp.DefaultUserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := y.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("yahoo http %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode yahoo response: %w", err)
	}
	return nil
}

func at(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return math.NaN()
	}
	return *vals[i]
}

func first(vals ...dto.Value) *float64 {
	for _, v := range vals {
		if v.Raw != nil {
			return v.Raw
		}
	}
	return nil
}
