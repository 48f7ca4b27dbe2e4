// Package handler provides the HTTP handlers for the quote feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kis_backend/internal/api"
	"kis_backend/internal/feature/quote/domain/entity"
	tokenusecase "kis_backend/internal/feature/token/usecase"
)

// QuoteUsecase is the interface this handler consumes.
type QuoteUsecase interface {
	GetQuote(ctx context.Context, symbol string) (entity.Quote, error)
}

// QuoteHandler serves current-price snapshots.
type QuoteHandler struct {
	uc QuoteUsecase
}

// NewQuoteHandler creates a QuoteHandler with the given usecase.
func NewQuoteHandler(uc QuoteUsecase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

type quoteResponse struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	CurrentPrice int64   `json:"currentPrice"`
	PriceChange  int64   `json:"priceChange"`
	ChangeRate   float64 `json:"changeRate"`
	OpenPrice    int64   `json:"openPrice"`
	HighPrice    int64   `json:"highPrice"`
	LowPrice     int64   `json:"lowPrice"`
	Volume       int64   `json:"volume"`
}

// GetQuoteHandler returns the current-price snapshot for one symbol.
//
// Endpoint: GET /api/stock/quote/:code
func (h *QuoteHandler) GetQuoteHandler(c *gin.Context) {
	code := c.Param("code")

	q, err := h.uc.GetQuote(c.Request.Context(), code)
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
			Error:   "Failed to fetch stock quote",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, quoteResponse{
		Code:         q.Code,
		Name:         q.Name,
		CurrentPrice: q.CurrentPrice,
		PriceChange:  q.PriceChange,
		ChangeRate:   q.ChangeRate,
		OpenPrice:    q.OpenPrice,
		HighPrice:    q.HighPrice,
		LowPrice:     q.LowPrice,
		Volume:       q.Volume,
	})
}
