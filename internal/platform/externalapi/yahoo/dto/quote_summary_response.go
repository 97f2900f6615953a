package dto

// Value is Yahoo's {"raw": 1.23, "fmt": "1.23"} number wrapper.
type Value struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// QuoteSummaryResponse represents the JSON response of /v10/finance/quoteSummary/{symbol}.
type QuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				MarketCap Value `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				MarketCap     Value `json:"marketCap"`
				DividendYield Value `json:"dividendYield"`
				Beta          Value `json:"beta"`
				TrailingPE    Value `json:"trailingPE"`
				ForwardPE     Value `json:"forwardPE"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				BookValue   Value `json:"bookValue"`
				ForwardPE   Value `json:"forwardPE"`
				TrailingEPS Value `json:"trailingEps"`
				PriceToBook Value `json:"priceToBook"`
				PEGRatio    Value `json:"pegRatio"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				CurrentPrice      Value `json:"currentPrice"`
				ReturnOnAssets    Value `json:"returnOnAssets"`
				ReturnOnEquity    Value `json:"returnOnEquity"`
				TotalRevenue      Value `json:"totalRevenue"`
				GrossProfits      Value `json:"grossProfits"`
				EBITDA            Value `json:"ebitda"`
				DebtToEquity      Value `json:"debtToEquity"`
				CurrentRatio      Value `json:"currentRatio"`
				QuickRatio        Value `json:"quickRatio"`
				FreeCashflow      Value `json:"freeCashflow"`
				OperatingCashflow Value `json:"operatingCashflow"`
			} `json:"financialData"`
			AssetProfile struct {
				CompanyOfficers []struct {
					Name  string `json:"name"`
					Title string `json:"title"`
				} `json:"companyOfficers"`
			} `json:"assetProfile"`
		} `json:"result"`
		Error *APIError `json:"error"`
	} `json:"quoteSummary"`
}
