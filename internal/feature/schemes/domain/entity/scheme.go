// Package entity defines the domain models for the mutual fund schemes feature.
package entity

import (
	"github.com/shopspring/decimal"

	returnsentity "fund_backend/internal/feature/returns/domain/entity"
)

// Scheme is an entry of the provider's scheme list.
type Scheme struct {
	Code string
	Name string
}

// SchemeDetails holds the basic metadata of a mutual fund scheme.
type SchemeDetails struct {
	FundHouse      string
	SchemeType     string
	SchemeCategory string
	SchemeCode     string
	SchemeName     string
	StartDate      string // date of the oldest NAV (DD-MM-YYYY)
	StartNAV       string
}

// Document returns the details in their stored form.
func (d SchemeDetails) Document() map[string]any {
	return map[string]any{
		"fund_house":      d.FundHouse,
		"scheme_type":     d.SchemeType,
		"scheme_category": d.SchemeCategory,
		"scheme_code":     d.SchemeCode,
		"scheme_name":     d.SchemeName,
		"scheme_start_date": map[string]any{
			"date": d.StartDate,
			"nav":  d.StartNAV,
		},
	}
}

// Quote is the latest published NAV of a scheme.
type Quote struct {
	SchemeCode  string
	SchemeName  string
	LastUpdated string // DD-MM-YYYY
	NAV         decimal.Decimal
}

// Document returns the quote in its stored form.
func (q Quote) Document() map[string]any {
	return map[string]any{
		"scheme_code":  q.SchemeCode,
		"scheme_name":  q.SchemeName,
		"last_updated": q.LastUpdated,
		"nav":          q.NAV.String(),
	}
}

// BalanceUnitsValue is the market value of a number of units at the latest NAV.
type BalanceUnitsValue struct {
	Quote
	BalanceUnits decimal.Decimal
	Value        decimal.Decimal
}

// Document returns the value in its stored form.
func (b BalanceUnitsValue) Document() map[string]any {
	doc := b.Quote.Document()
	doc["balance_units"] = b.BalanceUnits.String()
	doc["balance_units_value"] = b.Value.StringFixed(2)
	return doc
}

// SIPSummary compares the amount paid into a systematic investment plan with
// the current value of the units it bought.
type SIPSummary struct {
	MonthlySIP   decimal.Decimal
	Months       int
	Invested     decimal.Decimal
	CurrentValue decimal.Decimal
	Gain         decimal.Decimal
	GainPercent  decimal.Decimal
}

// Document returns the summary in its stored form.
func (s SIPSummary) Document() map[string]any {
	return map[string]any{
		"monthly_sip":          s.MonthlySIP.String(),
		"investment_in_months": s.Months,
		"invested_amount":      s.Invested.StringFixed(2),
		"current_value":        s.CurrentValue.StringFixed(2),
		"gain":                 s.Gain.StringFixed(2),
		"gain_percentage":      s.GainPercent.StringFixed(2),
	}
}

// AMCProfile summarises one asset management company from the AMFI NAV list.
type AMCProfile struct {
	Name       string
	Schemes    int
	Categories []string // in order of first appearance
}

// Document returns the profile in its stored form.
func (a AMCProfile) Document() map[string]any {
	cats := make([]any, 0, len(a.Categories))
	for _, c := range a.Categories {
		cats = append(cats, c)
	}
	return map[string]any{
		"amc_name":     a.Name,
		"scheme_count": a.Schemes,
		"categories":   cats,
	}
}

// SchemeReport is the result of the scheme details workflow. Fields are
// filled in order; when a step fails Err is set and later fields stay empty.
type SchemeReport struct {
	SchemeCode        string
	Details           *SchemeDetails
	HistoricalNAV     returnsentity.Series
	YearlyReturns     returnsentity.YearlyReturns
	Diagnostics       []returnsentity.Diagnostic // entries and years left out of YearlyReturns
	BalanceUnitsValue *BalanceUnitsValue
	SIP               *SIPSummary
	AMCProfiles       []AMCProfile
	Err               error
}

// Report field names, in display order.
const (
	FieldBasicSchemeDetails = "basic_scheme_details"
	FieldHistoricalNAV      = "historical_nav"
	FieldYearlyProfit       = "yearly_profit_percentages"
	FieldBalanceUnitsValue  = "balance_units_value"
	FieldSIPSummary         = "sip_summary"
	FieldAMCProfiles        = "amc_profiles"
	FieldError              = "error"
)

// Document returns the report as a nested map. Keys of the yearly returns are
// integers; the map must be sanitized before it reaches a document store.
func (r SchemeReport) Document() map[string]any {
	doc := map[string]any{}
	if r.Details != nil {
		doc[FieldBasicSchemeDetails] = r.Details.Document()
	}
	if r.HistoricalNAV != nil {
		nav := make(map[string]any, len(r.HistoricalNAV))
		for _, o := range r.HistoricalNAV {
			nav[o.Date] = o.Value
		}
		doc[FieldHistoricalNAV] = nav
	}
	if r.YearlyReturns != nil {
		doc[FieldYearlyProfit] = map[int]float64(r.YearlyReturns)
	}
	if r.BalanceUnitsValue != nil {
		doc[FieldBalanceUnitsValue] = r.BalanceUnitsValue.Document()
	}
	if r.SIP != nil {
		doc[FieldSIPSummary] = r.SIP.Document()
	}
	if r.AMCProfiles != nil {
		profiles := make([]any, 0, len(r.AMCProfiles))
		for _, a := range r.AMCProfiles {
			profiles = append(profiles, a.Document())
		}
		doc[FieldAMCProfiles] = profiles
	}
	if r.Err != nil {
		doc[FieldError] = r.Err.Error()
	}
	return doc
}
