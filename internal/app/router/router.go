package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	charthandler "kis_backend/internal/feature/chart/transport/handler"
	indicatorhandler "kis_backend/internal/feature/indicator/transport/handler"
	quotehandler "kis_backend/internal/feature/quote/transport/handler"
	symbollisthandler "kis_backend/internal/feature/symbollist/transport/handler"
	tokenhandler "kis_backend/internal/feature/token/transport/handler"
	"kis_backend/internal/platform/http/handler"
)

// NewRouter builds the gin engine with all API routes. The dashboard frontend
// runs on a different origin, so CORS is open for the /api group.
func NewRouter(
	token *tokenhandler.TokenHandler,
	chart *charthandler.ChartHandler,
	indicator *indicatorhandler.IndicatorHandler,
	quote *quotehandler.QuoteHandler,
	symbol *symbollisthandler.SymbolHandler,
) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	api := r.Group("/api")
	{
		api.GET("/health", handler.Health)

		api.GET("/token/status", token.StatusHandler)
		api.POST("/token/issue", token.IssueHandler)

		api.GET("/stock/chart/:code", chart.GetChartHandler)
		api.GET("/stock/indicators/:code", indicator.GetIndicatorsHandler)
		api.GET("/stock/quote/:code", quote.GetQuoteHandler)

		api.GET("/symbols", symbol.List)
	}

	return r
}
