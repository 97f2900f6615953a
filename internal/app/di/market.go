// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	schemesusecase "fund_backend/internal/feature/schemes/usecase"
	screenerusecase "fund_backend/internal/feature/screener/usecase"
	"fund_backend/internal/platform/config"
	"fund_backend/internal/platform/externalapi/amfi"
	"fund_backend/internal/platform/externalapi/mfapi"
	"fund_backend/internal/platform/externalapi/yahoo"
	infrahttp "fund_backend/internal/platform/http"
	"fund_backend/internal/shared/ratelimiter"
)

// NewSchemeProvider creates a fully configured mfapi.in provider with HTTP client.
func NewSchemeProvider() *mfapi.MFAPIProvider {
	cfg := mfapi.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return mfapi.NewMFAPIProvider(cfg, httpClient)
}

// NewAMCProvider creates the AMFI NAV list provider used for AMC profiles.
func NewAMCProvider() *amfi.AMFIProvider {
	cfg := amfi.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return amfi.NewAMFIProvider(cfg, httpClient)
}

// NewStockProvider creates a fully configured Yahoo Finance provider with HTTP client.
func NewStockProvider() *yahoo.YahooProvider {
	cfg := yahoo.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return yahoo.NewYahooProvider(cfg, httpClient)
}

// NewSchemeUsecase wires the scheme workflows. store may be nil.
func NewSchemeUsecase(cfg config.Config, store schemesusecase.DocumentStore) *schemesusecase.SchemeUsecase {
	return schemesusecase.NewSchemeUsecase(NewSchemeProvider(), store, cfg.MutualFund.Collection).
		WithAMCProvider(NewAMCProvider())
}

// NewScreenerUsecase wires the screener workflow. store may be nil.
func NewScreenerUsecase(cfg config.Config, store screenerusecase.DocumentStore) *screenerusecase.ScreenerUsecase {
	rl := ratelimiter.NewRateLimiter(cfg.Screener.RequestsPerMinute, time.Minute)
	return screenerusecase.NewScreenerUsecase(NewStockProvider(), store, rl, cfg.Screener.IndexTicker)
}
