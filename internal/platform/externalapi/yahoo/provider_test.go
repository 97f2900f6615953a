package yahoo

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fund_backend/internal/feature/screener/domain/entity"
)

// 2024-01-02 09:15 IST, 2024-01-03 09:15 IST, 2024-01-03 13:50 IST (live bar)
const chartJSON = `{
	"chart": {
		"result": [{
			"meta": {"symbol": "TCS.NS", "currency": "INR", "gmtoffset": 19800},
			"timestamp": [1704167100, 1704253500, 1704270000],
			"indicators": {
				"quote": [{
					"open":   [3700.0, null, 3800.0],
					"high":   [3750.0, 3790.0, 3850.0],
					"low":    [3690.0, 3720.0, 3780.0],
					"close":  [3740.0, 3760.0, 3820.0],
					"volume": [1200, null, 900]
				}],
				"adjclose": [{"adjclose": [3700.5, 3720.5, null]}]
			}
		}],
		"error": null
	}
}`

const summaryJSON = `{
	"quoteSummary": {
		"result": [{
			"price": {"marketCap": {"raw": 1.4e13, "fmt": "14T"}},
			"summaryDetail": {
				"marketCap": {"raw": 1.3e13},
				"dividendYield": {"raw": 0.012},
				"beta": {},
				"trailingPE": {"raw": 31.5},
				"forwardPE": {}
			},
			"defaultKeyStatistics": {
				"bookValue": {"raw": 250.1},
				"forwardPE": {"raw": 28.2},
				"trailingEps": {"raw": 120.3},
				"priceToBook": {"raw": 15.1},
				"pegRatio": {}
			},
			"financialData": {
				"currentPrice": {"raw": 3820.0},
				"returnOnAssets": {"raw": 0.23},
				"returnOnEquity": {"raw": 0.5},
				"totalRevenue": {"raw": 2.3e12},
				"debtToEquity": {"raw": 8.4}
			},
			"assetProfile": {
				"companyOfficers": [
					{"name": "Mr. K. Krithivasan", "title": "CEO & MD"}
				]
			}
		}],
		"error": null
	}
}`

func newTestProvider(t *testing.T, cfg Config, handler http.HandlerFunc) *YahooProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg.BaseURL = server.URL
	cfg.Timeout = time.Second
	return NewYahooProvider(cfg, server.Client())
}

func TestYahooProvider_GetHistory(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/TCS.NS", r.URL.Path)
		assert.Equal(t, "max", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(chartJSON))
	})

	bars, err := p.GetHistory(context.Background(), "TCS.NS")
	require.NoError(t, err)
	require.Len(t, bars, 2, "live bar must replace the bar of the same day")

	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].Date)
	assert.Equal(t, 3700.0, bars[0].Open)
	assert.Equal(t, 3700.5, bars[0].AdjClose)
	assert.Equal(t, int64(1200), bars[0].Volume)

	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), bars[1].Date)
	assert.Equal(t, 3800.0, bars[1].Open)
	assert.Equal(t, 3820.0, bars[1].AdjClose, "missing adj close falls back to close")
	assert.Equal(t, int64(900), bars[1].Volume)
}

func TestYahooProvider_GetHistory_NullsAreMissing(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{"gmtoffset":0},
			"timestamp":[1704153600],
			"indicators":{"quote":[{"open":[null],"high":[null],"low":[null],"close":[null],"volume":[null]}]}}],
			"error":null}}`))
	})

	bars, err := p.GetHistory(context.Background(), "X")
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.True(t, math.IsNaN(bars[0].Open))
	assert.True(t, math.IsNaN(bars[0].Close))
	assert.True(t, math.IsNaN(bars[0].AdjClose))
	assert.Equal(t, entity.MissingVolume, bars[0].Volume)
}

func TestYahooProvider_GetHistory_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
		isErr   error
	}{
		{
			name:    "chart error",
			status:  http.StatusOK,
			body:    `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`,
			wantErr: "yahoo: Not Found: No data found, symbol may be delisted",
		},
		{
			name:   "empty result",
			status: http.StatusOK,
			body:   `{"chart":{"result":[],"error":null}}`,
			isErr:  ErrNoResult,
		},
		{
			name:    "http status",
			status:  http.StatusTooManyRequests,
			body:    `Too Many Requests`,
			wantErr: "yahoo http 429",
		},
		{
			name:    "broken json",
			status:  http.StatusOK,
			body:    `{`,
			wantErr: "decode yahoo response",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newTestProvider(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			bars, err := p.GetHistory(context.Background(), "BAD")
			require.Error(t, err)
			assert.Nil(t, bars)
			if tt.isErr != nil {
				assert.True(t, errors.Is(err, tt.isErr))
			}
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestYahooProvider_GetFundamentals(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, Config{Crumb: "abc"}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v10/finance/quoteSummary/TCS.NS", r.URL.Path)
		assert.Equal(t, summaryModules, r.URL.Query().Get("modules"))
		assert.Equal(t, "abc", r.URL.Query().Get("crumb"))
		_, _ = w.Write([]byte(summaryJSON))
	})

	f, err := p.GetFundamentals(context.Background(), "TCS.NS")
	require.NoError(t, err)

	assert.Equal(t, "TCS.NS", f.Ticker)
	require.NotNil(t, f.MarketCap)
	assert.Equal(t, 1.4e13, *f.MarketCap, "price module wins over summary detail")
	require.NotNil(t, f.ForwardPE)
	assert.Equal(t, 28.2, *f.ForwardPE, "falls back to key statistics")
	require.NotNil(t, f.TrailingPE)
	assert.Equal(t, 31.5, *f.TrailingPE)
	assert.Nil(t, f.Beta)
	assert.Nil(t, f.PEGRatio)
	assert.Nil(t, f.GrossProfit)
	assert.Equal(t, []entity.Officer{{Name: "Mr. K. Krithivasan", Title: "CEO & MD"}}, f.Officers)
}

func TestYahooProvider_GetFundamentals_NoCrumb(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("crumb"))
		_, _ = w.Write([]byte(`{"quoteSummary":{"result":[],"error":null}}`))
	})

	_, err := p.GetFundamentals(context.Background(), "TCS.NS")
	assert.ErrorIs(t, err, ErrNoResult)
}
