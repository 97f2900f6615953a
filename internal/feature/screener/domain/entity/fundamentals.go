package entity

// Officer is a company officer as reported by the provider.
type Officer struct {
	Name  string `json:"name" bson:"name"`
	Title string `json:"title" bson:"title"`
}

// NotAvailable is shown for the officers list when the provider has none.
const NotAvailable = "Not Available"

// Fundamentals is the set of additional data fetched per ticker.
// A nil pointer means the provider did not report the figure.
type Fundamentals struct {
	Ticker            string
	MarketCap         *float64
	DividendYield     *float64
	CurrentPrice      *float64
	BookValue         *float64
	FaceValue         *float64
	ReturnOnAssets    *float64
	ReturnOnEquity    *float64
	ForwardPE         *float64
	TrailingPE        *float64
	TrailingEPS       *float64
	Beta              *float64
	Revenue           *float64
	GrossProfit       *float64
	EBITDA            *float64
	DebtToEquity      *float64
	CurrentRatio      *float64
	QuickRatio        *float64
	FreeCashFlow      *float64
	OperatingCashFlow *float64
	PriceToBook       *float64
	PEGRatio          *float64
	Officers          []Officer
}

// Field is a named figure of Fundamentals.
type Field struct {
	Name  string
	Value any
}

func num(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// Fields returns the figures in display order. P/E falls back to the
// trailing value when no forward estimate exists; ROCE is approximated by ROA.
func (f Fundamentals) Fields() []Field {
	pe := f.ForwardPE
	if pe == nil {
		pe = f.TrailingPE
	}
	var officers any = NotAvailable
	if len(f.Officers) > 0 {
		officers = f.Officers
	}
	return []Field{
		{"Market Cap", num(f.MarketCap)},
		{"Dividend Yield", num(f.DividendYield)},
		{"Current Price", num(f.CurrentPrice)},
		{"Book Value", num(f.BookValue)},
		{"Face Value", num(f.FaceValue)},
		{"ROCE", num(f.ReturnOnAssets)},
		{"ROE", num(f.ReturnOnEquity)},
		{"P/E Ratio", num(pe)},
		{"Forward P/E Ratio", num(f.ForwardPE)},
		{"EPS", num(f.TrailingEPS)},
		{"Beta", num(f.Beta)},
		{"Revenue", num(f.Revenue)},
		{"Gross Profit", num(f.GrossProfit)},
		{"EBITDA", num(f.EBITDA)},
		{"Debt to Equity Ratio", num(f.DebtToEquity)},
		{"Current Ratio", num(f.CurrentRatio)},
		{"Quick Ratio", num(f.QuickRatio)},
		{"Free Cash Flow", num(f.FreeCashFlow)},
		{"Operating Cash Flow", num(f.OperatingCashFlow)},
		{"Price to Book Ratio", num(f.PriceToBook)},
		{"PEG Ratio", num(f.PEGRatio)},
		{"Return on Assets (ROA)", num(f.ReturnOnAssets)},
		{"Tie-up Companies", officers},
	}
}

// Document returns the figures keyed by field name, plus the ticker.
func (f Fundamentals) Document() map[string]any {
	doc := map[string]any{"ticker": f.Ticker}
	for _, fl := range f.Fields() {
		doc[fl.Name] = fl.Value
	}
	return doc
}
