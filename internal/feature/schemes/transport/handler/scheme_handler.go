// Package handler はschemesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"fund_backend/internal/feature/schemes/domain/entity"
	"fund_backend/internal/feature/schemes/transport/http/dto"
	"fund_backend/internal/feature/schemes/usecase"
)

// SchemesUsecase はスキーム情報取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SchemesUsecase interface {
	ListSchemes(ctx context.Context) ([]entity.Scheme, error)
	GetDetails(ctx context.Context, code string) (entity.SchemeDetails, error)
	GetQuote(ctx context.Context, code string) (entity.Quote, error)
	BuildReport(ctx context.Context, code string, opts usecase.ReportOptions) entity.SchemeReport
}

// SchemeHandler はスキーム関連のHTTPリクエストを処理します。
type SchemeHandler struct {
	uc       SchemesUsecase
	defaults usecase.ReportOptions
}

// NewSchemeHandler creates a SchemeHandler. defaults are used for the report
// options the request does not set.
func NewSchemeHandler(uc SchemesUsecase, defaults usecase.ReportOptions) *SchemeHandler {
	return &SchemeHandler{uc: uc, defaults: defaults}
}

// List はスキームコードと名称の一覧を返します。q で名称を部分一致検索できます。
//
// エンドポイント例:
// GET /schemes?q=bluechip
func (h *SchemeHandler) List(c *gin.Context) {
	schemes, err := h.uc.ListSchemes(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
		return
	}

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	out := make([]dto.SchemeResponse, 0, len(schemes))
	for _, s := range schemes {
		if q != "" && !strings.Contains(strings.ToLower(s.Name), q) {
			continue
		}
		out = append(out, dto.SchemeResponse{SchemeCode: s.Code, SchemeName: s.Name})
	}
	c.JSON(http.StatusOK, out)
}

// Details はスキームの基本情報を返します。
//
// GET /schemes/:code
func (h *SchemeHandler) Details(c *gin.Context) {
	d, err := h.uc.GetDetails(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.SchemeDetailsResponse{
		FundHouse:       d.FundHouse,
		SchemeType:      d.SchemeType,
		SchemeCategory:  d.SchemeCategory,
		SchemeCode:      d.SchemeCode,
		SchemeName:      d.SchemeName,
		SchemeStartDate: dto.StartResponse{Date: d.StartDate, NAV: d.StartNAV},
	})
}

// Quote は最新NAVを返します。
//
// GET /schemes/:code/quote
func (h *SchemeHandler) Quote(c *gin.Context) {
	q, err := h.uc.GetQuote(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, toQuoteResponse(q))
}

// Returns は年次リターンと保有口数の評価額を返します。
// 途中のステップが失敗した場合も、それまでの結果とerrorを200で返します。
//
// GET /schemes/:code/returns?chronological=true&units=445.804&amc_profiles=true
func (h *SchemeHandler) Returns(c *gin.Context) {
	code, err := usecase.NormalizeSchemeCode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	opts := h.defaults
	if v := c.Query("units"); v != "" {
		units, err := strconv.ParseFloat(v, 64)
		if err != nil || units < 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid units: " + v})
			return
		}
		opts.BalanceUnits = units
	}
	if v := c.Query("chronological"); v != "" {
		opts.Chronological, _ = strconv.ParseBool(v)
	}
	if v := c.Query("amc_profiles"); v != "" {
		opts.AMCProfiles, _ = strconv.ParseBool(v)
	}

	report := h.uc.BuildReport(c.Request.Context(), code, opts)
	// 最初のステップで失敗した場合は返せるものが無い
	if report.Details == nil && report.Err != nil {
		c.JSON(statusFor(report.Err), dto.ErrorResponse{Error: report.Err.Error()})
		return
	}

	out := dto.ReturnsResponse{
		SchemeCode:    report.SchemeCode,
		YearlyReturns: make(map[string]float64, len(report.YearlyReturns)),
	}
	if report.Err != nil {
		out.Error = report.Err.Error()
	}
	for y, r := range report.YearlyReturns {
		out.YearlyReturns[strconv.Itoa(y)] = r
	}
	for _, d := range report.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, d.String())
	}
	if s := report.SIP; s != nil {
		out.SIPSummary = &dto.SIPSummaryResponse{
			MonthlySIP:     s.MonthlySIP.String(),
			Months:         s.Months,
			InvestedAmount: s.Invested.StringFixed(2),
			CurrentValue:   s.CurrentValue.StringFixed(2),
			Gain:           s.Gain.StringFixed(2),
			GainPercentage: s.GainPercent.StringFixed(2),
		}
	}
	for _, a := range report.AMCProfiles {
		out.AMCProfiles = append(out.AMCProfiles, dto.AMCProfileResponse{AMCName: a.Name, SchemeCount: a.Schemes, Categories: a.Categories})
	}
	if b := report.BalanceUnitsValue; b != nil {
		out.BalanceUnitsValue = &dto.BalanceUnitsValueResponse{
			QuoteResponse:     toQuoteResponse(b.Quote),
			BalanceUnits:      b.BalanceUnits.String(),
			BalanceUnitsValue: b.Value.StringFixed(2),
		}
	}
	c.JSON(http.StatusOK, out)
}

func toQuoteResponse(q entity.Quote) dto.QuoteResponse {
	return dto.QuoteResponse{
		SchemeCode:  q.SchemeCode,
		SchemeName:  q.SchemeName,
		LastUpdated: q.LastUpdated,
		NAV:         q.NAV.String(),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidSchemeCode):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrSchemeNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
