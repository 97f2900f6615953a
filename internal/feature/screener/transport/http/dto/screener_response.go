package dto

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldResponse はファンダメンタルズの1項目です。
type FieldResponse struct {
	Name  string `json:"name"`
	Value any    `json:"value"` // 未提供の場合はnull
}

// FundamentalsResponse は銘柄ごとのファンダメンタルズのレスポンスDTOです。
// Fields は表示順を保つため配列で返します。
type FundamentalsResponse struct {
	Ticker string          `json:"ticker"`
	Fields []FieldResponse `json:"fields"`
}

// SpotResponse は日付で結合した株価データのレスポンスDTOです。
type SpotResponse struct {
	Tickers     []string         `json:"tickers"`
	IndexTicker string           `json:"index_ticker"`
	Rows        []map[string]any `json:"rows"`
}
