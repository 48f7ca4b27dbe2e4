// Package handler provides the HTTP handlers for the chart feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kis_backend/internal/api"
	"kis_backend/internal/feature/chart/domain/entity"
	chartusecase "kis_backend/internal/feature/chart/usecase"
	tokenusecase "kis_backend/internal/feature/token/usecase"
)

// SyncUsecase is the chart synchronization interface this handler consumes.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SyncUsecase interface {
	Sync(ctx context.Context, symbol string, interval entity.Interval, mode chartusecase.SyncMode) ([]entity.Bar, error)
}

// ChartHandler serves OHLCV chart data.
type ChartHandler struct {
	uc SyncUsecase
}

// NewChartHandler creates a ChartHandler with the given usecase.
func NewChartHandler(uc SyncUsecase) *ChartHandler {
	return &ChartHandler{uc: uc}
}

// GetChartHandler returns the bar series for a symbol.
//
// Endpoint:
// GET /api/stock/chart/:code?period=D&loadAll=true
//
// period is D/W/M, or Y which is served from monthly bars (the yearly view is
// an aggregation the frontend performs). loadAll=true maintains the cached
// full history; otherwise a single recent window is fetched without caching.
func (h *ChartHandler) GetChartHandler(c *gin.Context) {
	code := c.Param("code")
	period := c.DefaultQuery("period", "D")
	loadAll := c.DefaultQuery("loadAll", "false") == "true"

	if period == "Y" {
		period = "M"
	}
	interval, err := entity.ParseInterval(period)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid period", Message: err.Error()})
		return
	}

	mode := chartusecase.WindowOnly
	if loadAll {
		mode = chartusecase.FullyCached
	}

	bars, err := h.uc.Sync(c.Request.Context(), code, interval, mode)
	if err != nil {
		if errors.Is(err, tokenusecase.ErrQuotaExceeded) || errors.Is(err, tokenusecase.ErrAuthFailed) {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{
				Error:     "Token required",
				Message:   err.Error(),
				NeedToken: true,
			})
			return
		}
		c.JSON(http.StatusBadGateway, api.ErrorResponse{
			Error:   "Failed to fetch chart data",
			Message: err.Error(),
		})
		return
	}

	out := make([]api.BarResponse, 0, len(bars))
	for _, b := range bars {
		out = append(out, api.BarResponse{
			Date:   b.Date,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	c.JSON(http.StatusOK, out)
}
