// Package handler はscreenerフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fund_backend/internal/feature/screener/domain/entity"
	"fund_backend/internal/feature/screener/transport/http/dto"
	"fund_backend/internal/feature/screener/usecase"
)

// DefaultSpotLimit is the number of most recent rows returned by Spot.
const DefaultSpotLimit = 250

// ScreenerUsecase は株価スクリーナーのユースケースインターフェースを定義します。
type ScreenerUsecase interface {
	GetFundamentals(ctx context.Context, ticker string) (entity.Fundamentals, error)
	ImportData(ctx context.Context, tickers []string) ([]entity.SpotRow, error)
	IndexTicker() string
}

// ScreenerHandler は株価データのHTTPリクエストを処理します。
type ScreenerHandler struct {
	uc ScreenerUsecase
}

// NewScreenerHandler は指定されたusecaseでScreenerHandlerを生成します。
func NewScreenerHandler(uc ScreenerUsecase) *ScreenerHandler {
	return &ScreenerHandler{uc: uc}
}

// Fundamentals は銘柄のファンダメンタルズを返します。
//
// GET /stocks/:ticker/fundamentals
func (h *ScreenerHandler) Fundamentals(c *gin.Context) {
	f, err := h.uc.GetFundamentals(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, usecase.ErrNoTickers) {
			status = http.StatusBadRequest
		}
		c.JSON(status, dto.ErrorResponse{Error: err.Error()})
		return
	}

	out := dto.FundamentalsResponse{Ticker: f.Ticker, Fields: make([]dto.FieldResponse, 0, 23)}
	for _, fl := range f.Fields() {
		out.Fields = append(out.Fields, dto.FieldResponse{Name: fl.Name, Value: fl.Value})
	}
	c.JSON(http.StatusOK, out)
}

// Spot は銘柄と指数を日付で結合した株価データを返します。limit=0 で全件。
//
// GET /stocks/spot?tickers=TCS.NS,INFY.NS&limit=30
func (h *ScreenerHandler) Spot(c *gin.Context) {
	tickers, err := usecase.ParseTickers(c.Query("tickers"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultSpotLimit)))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid limit: " + c.Query("limit")})
		return
	}

	rows, err := h.uc.ImportData(c.Request.Context(), tickers)
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}

	out := dto.SpotResponse{
		Tickers:     tickers,
		IndexTicker: h.uc.IndexTicker(),
		Rows:        make([]map[string]any, 0, len(rows)),
	}
	for _, r := range rows {
		doc := r.Document(tickers)
		doc["date"] = r.Date.Format("2006-01-02")
		out.Rows = append(out.Rows, doc)
	}
	c.JSON(http.StatusOK, out)
}
