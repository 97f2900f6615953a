package mfapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fund_backend/internal/feature/schemes/usecase"
)

const schemeJSON = `{
	"meta": {
		"fund_house": "Axis Mutual Fund",
		"scheme_type": "Open Ended Schemes",
		"scheme_category": "Equity Scheme - Large Cap Fund",
		"scheme_code": 120465,
		"scheme_name": "Axis Bluechip Fund - Direct Plan - Growth"
	},
	"data": [
		{"date": "10-01-2024", "nav": "52.12000"},
		{"date": "09-01-2024", "nav": "51.98000"},
		{"date": "01-01-2013", "nav": "10.00000"}
	],
	"status": "SUCCESS"
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *MFAPIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewMFAPIProvider(Config{BaseURL: server.URL, Timeout: time.Second}, server.Client())
}

func TestMFAPIProvider_GetSchemeDetails(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mf/120465", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(schemeJSON))
	})

	d, err := p.GetSchemeDetails(context.Background(), "120465")
	require.NoError(t, err)

	assert.Equal(t, "Axis Mutual Fund", d.FundHouse)
	assert.Equal(t, "Equity Scheme - Large Cap Fund", d.SchemeCategory)
	assert.Equal(t, "120465", d.SchemeCode)
	assert.Equal(t, "01-01-2013", d.StartDate)
	assert.Equal(t, "10.00000", d.StartNAV)
}

func TestMFAPIProvider_GetHistoricalNAV(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(schemeJSON))
	})

	series, err := p.GetHistoricalNAV(context.Background(), "120465")
	require.NoError(t, err)

	require.Len(t, series, 3)
	// provider order is kept
	assert.Equal(t, "10-01-2024", series[0].Date)
	assert.Equal(t, "52.12000", series[0].Value)
	assert.Equal(t, "01-01-2013", series[2].Date)
}

func TestMFAPIProvider_GetHistoricalNAV_EmptyData(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meta": {"scheme_code": 1}, "data": [], "status": "SUCCESS"}`))
	})

	_, err := p.GetHistoricalNAV(context.Background(), "1")
	assert.ErrorIs(t, err, usecase.ErrNoData)
}

func TestMFAPIProvider_GetQuote(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mf/120465/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"meta": {"scheme_code": 120465, "scheme_name": "Axis Bluechip"},
			"data": [{"date": "10-01-2024", "nav": "52.12000"}],
			"status": "SUCCESS"
		}`))
	})

	q, err := p.GetQuote(context.Background(), "120465")
	require.NoError(t, err)

	assert.Equal(t, "120465", q.SchemeCode)
	assert.Equal(t, "Axis Bluechip", q.SchemeName)
	assert.Equal(t, "10-01-2024", q.LastUpdated)
	assert.Equal(t, "52.12", q.NAV.String())
}

func TestMFAPIProvider_GetQuote_InvalidNAV(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meta": {"scheme_code": 1}, "data": [{"date": "10-01-2024", "nav": "N.A."}], "status": "SUCCESS"}`))
	})

	_, err := p.GetQuote(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse nav")
}

func TestMFAPIProvider_ListSchemes(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mf", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"schemeCode": 100027, "schemeName": "Grindlays Super Saver Income Fund"},
			{"schemeCode": 100028, "schemeName": "Grindlays Super Saver Income Fund-GSSIF-Half Yearly Dividend"}
		]`))
	})

	schemes, err := p.ListSchemes(context.Background())
	require.NoError(t, err)

	require.Len(t, schemes, 2)
	assert.Equal(t, "100027", schemes[0].Code)
	assert.Equal(t, "Grindlays Super Saver Income Fund", schemes[0].Name)
}

func TestMFAPIProvider_SchemeNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "empty meta",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"meta": {}, "data": [], "status": "SUCCESS"}`))
			},
		},
		{
			name: "404",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newTestProvider(t, tt.handler)

			_, err := p.GetSchemeDetails(context.Background(), "999999")
			assert.ErrorIs(t, err, usecase.ErrSchemeNotFound)
		})
	}
}

func TestMFAPIProvider_HTTPError(t *testing.T) {
	t.Parallel()

	for _, code := range []int{http.StatusBadRequest, http.StatusInternalServerError, http.StatusBadGateway} {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		})

		_, err := p.GetQuote(context.Background(), "1")
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "mfapi http"), "got %v", err)
	}
}

func TestMFAPIProvider_StatusError(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ERROR"}`))
	})

	_, err := p.GetSchemeDetails(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status ERROR")
}

func TestMFAPIProvider_InvalidJSON(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{invalid json`))
	})

	_, err := p.GetHistoricalNAV(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode mfapi response")
}

func TestMFAPIProvider_ContextCancellation(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(schemeJSON))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.GetSchemeDetails(ctx, "120465")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("MFAPI_BASE_URL", "")
	cfg := LoadConfig()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)

	t.Setenv("MFAPI_BASE_URL", "http://localhost:9999")
	assert.Equal(t, "http://localhost:9999", LoadConfig().BaseURL)
}
