package mfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	returnsentity "fund_backend/internal/feature/returns/domain/entity"
	"fund_backend/internal/feature/schemes/domain/entity"
	"fund_backend/internal/feature/schemes/usecase"
	"fund_backend/internal/platform/externalapi/mfapi/dto"
)

// MFAPIProvider はmfapi.inからスキーム情報とNAVを取得するSchemeProvider実装です。
type MFAPIProvider struct {
	cfg    Config
	client *http.Client
}

// MFAPIProviderがSchemeProviderを実装していることをコンパイル時に検証します。
var _ usecase.SchemeProvider = (*MFAPIProvider)(nil)

// NewMFAPIProvider creates a provider with the given configuration and HTTP client.
func NewMFAPIProvider(cfg Config, client *http.Client) *MFAPIProvider {
	return &MFAPIProvider{cfg: cfg, client: client}
}

// GetSchemeDetails returns the scheme metadata. The start date is the oldest NAV entry.
func (p *MFAPIProvider) GetSchemeDetails(ctx context.Context, code string) (entity.SchemeDetails, error) {
	body, err := p.fetchScheme(ctx, code, false)
	if err != nil {
		return entity.SchemeDetails{}, err
	}
	d := entity.SchemeDetails{
		FundHouse:      body.Meta.FundHouse,
		SchemeType:     body.Meta.SchemeType,
		SchemeCategory: body.Meta.SchemeCategory,
		SchemeCode:     body.Meta.SchemeCode.String(),
		SchemeName:     body.Meta.SchemeName,
	}
	// mfapi returns the newest NAV first
	if n := len(body.Data); n > 0 {
		d.StartDate = body.Data[n-1].Date
		d.StartNAV = body.Data[n-1].NAV
	}
	return d, nil
}

// GetHistoricalNAV returns the full NAV history in the order delivered by the API (newest first).
func (p *MFAPIProvider) GetHistoricalNAV(ctx context.Context, code string) (returnsentity.Series, error) {
	body, err := p.fetchScheme(ctx, code, false)
	if err != nil {
		return nil, err
	}
	if len(body.Data) == 0 {
		return nil, fmt.Errorf("scheme %s: %w", code, usecase.ErrNoData)
	}
	series := make(returnsentity.Series, 0, len(body.Data))
	for _, v := range body.Data {
		series = append(series, returnsentity.Observation{Date: v.Date, Value: v.NAV})
	}
	return series, nil
}

// GetQuote returns the latest NAV of a scheme.
func (p *MFAPIProvider) GetQuote(ctx context.Context, code string) (entity.Quote, error) {
	body, err := p.fetchScheme(ctx, code, true)
	if err != nil {
		return entity.Quote{}, err
	}
	if len(body.Data) == 0 {
		return entity.Quote{}, fmt.Errorf("scheme %s: %w", code, usecase.ErrNoData)
	}
	latest := body.Data[0]
	nav, err := decimal.NewFromString(latest.NAV)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("parse nav %q: %w", latest.NAV, err)
	}
	return entity.Quote{
		SchemeCode:  body.Meta.SchemeCode.String(),
		SchemeName:  body.Meta.SchemeName,
		LastUpdated: latest.Date,
		NAV:         nav,
	}, nil
}

// ListSchemes returns every scheme code with its name.
func (p *MFAPIProvider) ListSchemes(ctx context.Context) ([]entity.Scheme, error) {
	var items []dto.SchemeListItem
	if err := p.getJSON(ctx, "/mf", &items); err != nil {
		return nil, err
	}
	out := make([]entity.Scheme, 0, len(items))
	for _, it := range items {
		out = append(out, entity.Scheme{Code: it.SchemeCode.String(), Name: it.SchemeName})
	}
	return out, nil
}

func (p *MFAPIProvider) fetchScheme(ctx context.Context, code string, latest bool) (dto.SchemeResponse, error) {
	path := "/mf/" + url.PathEscape(code)
	if latest {
		path += "/latest"
	}
	var body dto.SchemeResponse
	if err := p.getJSON(ctx, path, &body); err != nil {
		return dto.SchemeResponse{}, err
	}
	if body.Status != "" && body.Status != "SUCCESS" {
		return dto.SchemeResponse{}, fmt.Errorf("mfapi: status %s", body.Status)
	}
	// 存在しないコードでも200が返るため、メタデータで判定する
	if body.Meta.SchemeCode == "" {
		return dto.SchemeResponse{}, fmt.Errorf("scheme %s: %w", code, usecase.ErrSchemeNotFound)
	}
	return body, nil
}

func (p *MFAPIProvider) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+path, nil)
	if err != nil {
		return err
	}
	res, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("mfapi %s: %w", path, usecase.ErrSchemeNotFound)
	}
	if res.StatusCode >= 400 {
		return fmt.Errorf("mfapi http %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode mfapi response: %w", err)
	}
	return nil
}
