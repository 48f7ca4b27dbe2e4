// Package handler provides the HTTP handlers for the indicator feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"kis_backend/internal/api"
	chartentity "kis_backend/internal/feature/chart/domain/entity"
	"kis_backend/internal/feature/indicator/domain/entity"
)

// IndicatorUsecase is the interface this handler consumes.
type IndicatorUsecase interface {
	GetIndicators(ctx context.Context, symbol string, interval chartentity.Interval) (entity.Summary, int, error)
}

// IndicatorHandler serves technical-indicator summaries.
type IndicatorHandler struct {
	uc IndicatorUsecase
}

// NewIndicatorHandler creates an IndicatorHandler with the given usecase.
func NewIndicatorHandler(uc IndicatorUsecase) *IndicatorHandler {
	return &IndicatorHandler{uc: uc}
}

type macdResponse struct {
	MACD  float64 `json:"macd"`
	EMA12 float64 `json:"ema12"`
	EMA26 float64 `json:"ema26"`
}

type indicatorResponse struct {
	Symbol     string        `json:"symbol"`
	Interval   string        `json:"interval"`
	DataPoints int           `json:"dataPoints"`
	SMA20      *float64      `json:"sma20"`
	SMA60      *float64      `json:"sma60"`
	SMA120     *float64      `json:"sma120"`
	RSI        *float64      `json:"rsi"`
	MACD       *macdResponse `json:"macd"`
}

// GetIndicatorsHandler computes the indicator summary over the cached series.
//
// Endpoint: GET /api/stock/indicators/:code?period=D
func (h *IndicatorHandler) GetIndicatorsHandler(c *gin.Context) {
	code := c.Param("code")
	period := c.DefaultQuery("period", "D")
	if period == "Y" {
		period = "M"
	}
	interval, err := chartentity.ParseInterval(period)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid period", Message: err.Error()})
		return
	}

	summary, n, err := h.uc.GetIndicators(c.Request.Context(), code, interval)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to compute indicators", Message: err.Error()})
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "No price history", Message: "fetch chart data first"})
		return
	}

	out := indicatorResponse{
		Symbol:     code,
		Interval:   string(interval),
		DataPoints: n,
		SMA20:      summary.SMA20,
		SMA60:      summary.SMA60,
		SMA120:     summary.SMA120,
		RSI:        summary.RSI,
	}
	if summary.MACD != nil {
		out.MACD = &macdResponse{
			MACD:  summary.MACD.MACD,
			EMA12: summary.MACD.EMA12,
			EMA26: summary.MACD.EMA26,
		}
	}
	c.JSON(http.StatusOK, out)
}
