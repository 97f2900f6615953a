// Package entity defines the domain models for the stock screener feature.
package entity

import (
	"math"
	"time"
)

// Bar is one daily OHLCV observation. Missing prices are NaN and a missing
// volume is -1 until they are back-filled.
type Bar struct {
	Date     time.Time // trading day, midnight UTC
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   int64
}

// MissingVolume marks a volume the provider did not report.
const MissingVolume int64 = -1

// Columns in display and storage order.
var BarColumns = []string{"Open", "High", "Low", "Close", "Adj Close", "Volume"}

// IndexColumns are the names the index bar is joined under.
var IndexColumns = []string{"Index Open", "Index High", "Index Low", "Index Close", "Index Adj Close", "Index Volume"}

// Values returns the bar columns in BarColumns order. Missing values are nil.
func (b Bar) Values() []any {
	out := make([]any, 0, len(BarColumns))
	for _, f := range []float64{b.Open, b.High, b.Low, b.Close, b.AdjClose} {
		if math.IsNaN(f) {
			out = append(out, nil)
		} else {
			out = append(out, f)
		}
	}
	if b.Volume == MissingVolume {
		out = append(out, nil)
	} else {
		out = append(out, b.Volume)
	}
	return out
}

// SpotRow is one trading day of the joined ticker and index data.
type SpotRow struct {
	Date  time.Time
	Bars  map[string]Bar // by ticker; absent when the ticker has no data for the day
	Index *Bar
}

// Document returns the row in its stored form. Ticker bars are listed in the
// order of tickers; index columns are flattened under their renamed keys.
func (r SpotRow) Document(tickers []string) map[string]any {
	doc := map[string]any{"date": r.Date}
	bars := make([]any, 0, len(tickers))
	for _, t := range tickers {
		b, ok := r.Bars[t]
		if !ok {
			continue
		}
		m := map[string]any{"ticker": t}
		for i, v := range b.Values() {
			m[BarColumns[i]] = v
		}
		bars = append(bars, m)
	}
	doc["tickers"] = bars

	var idx []any
	if r.Index != nil {
		idx = r.Index.Values()
	}
	for i, col := range IndexColumns {
		if idx == nil {
			doc[col] = nil
			continue
		}
		doc[col] = idx[i]
	}
	return doc
}
