package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	returnsentity "fund_backend/internal/feature/returns/domain/entity"
	returns "fund_backend/internal/feature/returns/usecase"
	"fund_backend/internal/feature/schemes/domain/entity"
	"fund_backend/internal/shared/document"
)

// DefaultCollection is the collection scheme reports are stored in.
const DefaultCollection = "scheme_details"

// SchemeProvider fetches mutual fund data by scheme code.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SchemeProvider interface {
	GetSchemeDetails(ctx context.Context, code string) (entity.SchemeDetails, error)
	GetHistoricalNAV(ctx context.Context, code string) (returnsentity.Series, error)
	GetQuote(ctx context.Context, code string) (entity.Quote, error)
	ListSchemes(ctx context.Context) ([]entity.Scheme, error)
}

// AMCProvider lists the asset management companies.
type AMCProvider interface {
	GetAMCProfiles(ctx context.Context) ([]entity.AMCProfile, error)
}

// DocumentStore persists a document and returns its generated identifier.
type DocumentStore interface {
	InsertOne(ctx context.Context, collection string, doc map[string]any) (string, error)
}

// ReportOptions tunes BuildReport.
type ReportOptions struct {
	BalanceUnits  float64 // units held, valued at the latest NAV
	Chronological bool    // sort each year's NAVs by date before computing returns
	MonthlySIP    float64 // monthly instalment; with Months > 0 adds a SIP summary
	Months        int     // instalments paid so far
	AMCProfiles   bool    // attach the AMC profiles (needs an AMCProvider)
}

// SchemeUsecase runs the scheme details, quote and listing workflows.
type SchemeUsecase struct {
	provider   SchemeProvider
	amc        AMCProvider
	store      DocumentStore
	collection string
}

// NewSchemeUsecase creates a SchemeUsecase. store may be nil when nothing is persisted.
func NewSchemeUsecase(provider SchemeProvider, store DocumentStore, collection string) *SchemeUsecase {
	if collection == "" {
		collection = DefaultCollection
	}
	return &SchemeUsecase{provider: provider, store: store, collection: collection}
}

// WithAMCProvider sets the provider used when ReportOptions.AMCProfiles is set.
func (u *SchemeUsecase) WithAMCProvider(amc AMCProvider) *SchemeUsecase {
	u.amc = amc
	return u
}

// NormalizeSchemeCode trims code and checks that it is a positive integer.
func NormalizeSchemeCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	n, err := strconv.Atoi(code)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidSchemeCode, code)
	}
	return strconv.Itoa(n), nil
}

// BuildReport fetches the scheme details and NAV history, computes the yearly
// returns and values the balance units. The first failing step is logged and
// recorded in the report's Err field; fields filled before it are kept.
func (u *SchemeUsecase) BuildReport(ctx context.Context, code string, opts ReportOptions) entity.SchemeReport {
	report := entity.SchemeReport{SchemeCode: strings.TrimSpace(code)}
	if err := u.fillReport(ctx, &report, opts); err != nil {
		slog.Error("an error occurred while fetching scheme details", "scheme_code", report.SchemeCode, "error", err)
		report.Err = err
	}
	return report
}

func (u *SchemeUsecase) fillReport(ctx context.Context, r *entity.SchemeReport, opts ReportOptions) error {
	code, err := NormalizeSchemeCode(r.SchemeCode)
	if err != nil {
		return err
	}
	r.SchemeCode = code

	slog.Info("fetching basic scheme details", "scheme_code", code)
	details, err := u.provider.GetSchemeDetails(ctx, code)
	if err != nil {
		return fmt.Errorf("fetch scheme details: %w", err)
	}
	r.Details = &details

	slog.Info("fetching historical NAV", "scheme_code", code)
	series, err := u.provider.GetHistoricalNAV(ctx, code)
	if err != nil {
		return fmt.Errorf("fetch historical NAV: %w", err)
	}
	r.HistoricalNAV = series

	slog.Info("calculating year-wise profit percentages", "scheme_code", code)
	var ropts []returns.Option
	if opts.Chronological {
		ropts = append(ropts, returns.WithChronologicalOrder())
	}
	r.YearlyReturns, r.Diagnostics = returns.ComputeYearlyReturns(series, ropts...)
	if len(r.Diagnostics) > 0 {
		slog.Warn("some NAV entries were left out of the yearly returns",
			"scheme_code", code, "diagnostics", len(r.Diagnostics), "years", len(r.YearlyReturns))
	}

	slog.Info("calculating balance units value", "scheme_code", code)
	bv, err := u.BalanceUnitsValue(ctx, code, opts.BalanceUnits)
	if err != nil {
		return err
	}
	r.BalanceUnitsValue = &bv

	if opts.MonthlySIP > 0 && opts.Months > 0 {
		sip := SIPSummaryFor(opts.MonthlySIP, opts.Months, bv.Value)
		r.SIP = &sip
	}

	if opts.AMCProfiles {
		if u.amc == nil {
			slog.Warn("AMC profiles requested but no provider is configured", "scheme_code", code)
			return nil
		}
		slog.Info("fetching AMC details", "scheme_code", code)
		profiles, err := u.amc.GetAMCProfiles(ctx)
		if err != nil {
			return fmt.Errorf("fetch AMC profiles: %w", err)
		}
		r.AMCProfiles = profiles
	}
	return nil
}

// SIPSummaryFor compares months instalments of monthly with currentValue.
// months and monthly must be positive.
func SIPSummaryFor(monthly float64, months int, currentValue decimal.Decimal) entity.SIPSummary {
	m := decimal.NewFromFloat(monthly)
	invested := m.Mul(decimal.NewFromInt(int64(months)))
	gain := currentValue.Sub(invested)
	return entity.SIPSummary{
		MonthlySIP:   m,
		Months:       months,
		Invested:     invested,
		CurrentValue: currentValue,
		Gain:         gain,
		GainPercent:  gain.Div(invested).Mul(decimal.NewFromInt(100)).Round(2),
	}
}

// BalanceUnitsValue values units of a scheme at its latest NAV.
func (u *SchemeUsecase) BalanceUnitsValue(ctx context.Context, code string, units float64) (entity.BalanceUnitsValue, error) {
	q, err := u.provider.GetQuote(ctx, code)
	if err != nil {
		return entity.BalanceUnitsValue{}, fmt.Errorf("fetch quote: %w", err)
	}
	bu := decimal.NewFromFloat(units)
	return entity.BalanceUnitsValue{
		Quote:        q,
		BalanceUnits: bu,
		Value:        q.NAV.Mul(bu).Round(2),
	}, nil
}

// GetDetails returns the basic details of a scheme.
func (u *SchemeUsecase) GetDetails(ctx context.Context, code string) (entity.SchemeDetails, error) {
	code, err := NormalizeSchemeCode(code)
	if err != nil {
		return entity.SchemeDetails{}, err
	}
	return u.provider.GetSchemeDetails(ctx, code)
}

// GetQuote returns the latest NAV of a scheme.
func (u *SchemeUsecase) GetQuote(ctx context.Context, code string) (entity.Quote, error) {
	code, err := NormalizeSchemeCode(code)
	if err != nil {
		return entity.Quote{}, err
	}
	return u.provider.GetQuote(ctx, code)
}

// ListSchemes returns every scheme known to the provider.
func (u *SchemeUsecase) ListSchemes(ctx context.Context) ([]entity.Scheme, error) {
	return u.provider.ListSchemes(ctx)
}

// StoreReport sanitizes the report and inserts it as a new document.
// Failures are logged and reported as false; nothing is retried.
func (u *SchemeUsecase) StoreReport(ctx context.Context, report entity.SchemeReport) bool {
	if u.store == nil {
		slog.Error("an error occurred while storing data", "error", "no document store configured")
		return false
	}
	doc, err := document.SanitizeMap(report.Document())
	if err != nil {
		slog.Error("an error occurred while storing data", "scheme_code", report.SchemeCode, "error", err)
		return false
	}
	id, err := u.store.InsertOne(ctx, u.collection, doc)
	if err != nil {
		slog.Error("an error occurred while storing data", "scheme_code", report.SchemeCode, "collection", u.collection, "error", err)
		return false
	}
	slog.Info("data successfully inserted", "id", id, "collection", u.collection)
	return true
}
