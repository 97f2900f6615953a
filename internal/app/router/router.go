// Package router wires the HTTP handlers into a gin engine.
package router

import (
	"github.com/gin-gonic/gin"

	schemeshandler "fund_backend/internal/feature/schemes/transport/handler"
	screenerhandler "fund_backend/internal/feature/screener/transport/handler"
	"fund_backend/internal/platform/http/handler"
)

func NewRouter(schemes *schemeshandler.SchemeHandler, screener *screenerhandler.ScreenerHandler,
	ping handler.Pinger) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	health := handler.NewHealth(ping)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	// 投資信託
	r.GET("/schemes", schemes.List)
	r.GET("/schemes/:code", schemes.Details)
	r.GET("/schemes/:code/quote", schemes.Quote)
	r.GET("/schemes/:code/returns", schemes.Returns)

	// 株式
	r.GET("/stocks/spot", screener.Spot)
	r.GET("/stocks/:ticker/fundamentals", screener.Fundamentals)

	return r
}
