package dto

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// SchemeResponse はスキーム一覧の1件分のレスポンスDTOです。
type SchemeResponse struct {
	SchemeCode string `json:"scheme_code"`
	SchemeName string `json:"scheme_name"`
}

// StartResponse はスキームの最初のNAVです。
type StartResponse struct {
	Date string `json:"date"`
	NAV  string `json:"nav"`
}

// SchemeDetailsResponse はスキーム詳細のレスポンスDTOです。
type SchemeDetailsResponse struct {
	FundHouse       string        `json:"fund_house"`
	SchemeType      string        `json:"scheme_type"`
	SchemeCategory  string        `json:"scheme_category"`
	SchemeCode      string        `json:"scheme_code"`
	SchemeName      string        `json:"scheme_name"`
	SchemeStartDate StartResponse `json:"scheme_start_date"`
}

// QuoteResponse は最新NAVのレスポンスDTOです。
type QuoteResponse struct {
	SchemeCode  string `json:"scheme_code"`
	SchemeName  string `json:"scheme_name"`
	LastUpdated string `json:"last_updated"` // DD-MM-YYYY
	NAV         string `json:"nav"`
}

// BalanceUnitsValueResponse は保有口数の評価額です。
type BalanceUnitsValueResponse struct {
	QuoteResponse
	BalanceUnits      string `json:"balance_units"`
	BalanceUnitsValue string `json:"balance_units_value"`
}

// SIPSummaryResponse は積立投資の損益です。
type SIPSummaryResponse struct {
	MonthlySIP     string `json:"monthly_sip"`
	Months         int    `json:"investment_in_months"`
	InvestedAmount string `json:"invested_amount"`
	CurrentValue   string `json:"current_value"`
	Gain           string `json:"gain"`
	GainPercentage string `json:"gain_percentage"`
}

// AMCProfileResponse は運用会社1社分の概要です。
type AMCProfileResponse struct {
	AMCName     string   `json:"amc_name"`
	SchemeCount int      `json:"scheme_count"`
	Categories  []string `json:"categories"`
}

// ReturnsResponse は年次リターンのレスポンスDTOです。
type ReturnsResponse struct {
	SchemeCode        string                     `json:"scheme_code"`
	YearlyReturns     map[string]float64         `json:"yearly_profit_percentages"`
	Diagnostics       []string                   `json:"diagnostics,omitempty"`
	BalanceUnitsValue *BalanceUnitsValueResponse `json:"balance_units_value,omitempty"`
	SIPSummary        *SIPSummaryResponse        `json:"sip_summary,omitempty"`
	AMCProfiles       []AMCProfileResponse       `json:"amc_profiles,omitempty"`
	Error             string                     `json:"error,omitempty"`
}
