// Package handler provides the HTTP handlers for the token feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kis_backend/internal/api"
	"kis_backend/internal/feature/token/domain/entity"
	"kis_backend/internal/feature/token/transport/http/dto"
	"kis_backend/internal/feature/token/usecase"
)

// TokenUsecase is the credential-management interface this handler consumes.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TokenUsecase interface {
	IssueNewToken(ctx context.Context) (entity.Credential, error)
	Status(ctx context.Context) entity.Status
}

// TokenHandler serves credential status and manual renewal.
type TokenHandler struct {
	uc TokenUsecase
}

// NewTokenHandler creates a TokenHandler with the given usecase.
func NewTokenHandler(uc TokenUsecase) *TokenHandler {
	return &TokenHandler{uc: uc}
}

// StatusHandler reports the current credential state.
//
// Endpoint: GET /api/token/status
func (h *TokenHandler) StatusHandler(c *gin.Context) {
	st := h.uc.Status(c.Request.Context())
	out := dto.TokenStatusResponse{
		HasToken:         st.HasToken,
		IsValid:          st.IsValid,
		RemainingSeconds: int64(st.Remaining / time.Second),
	}
	if st.HasToken {
		out.ExpiresAt = st.ExpiresAt.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, out)
}

// IssueHandler forces a fresh token issuance. The daily upstream quota always
// applies: a same-day repeat request fails with 409.
//
// Endpoint: POST /api/token/issue
func (h *TokenHandler) IssueHandler(c *gin.Context) {
	cred, err := h.uc.IssueNewToken(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrQuotaExceeded):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Token quota exceeded", Message: err.Error()})
		case errors.Is(err, usecase.ErrAuthFailed):
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "Failed to issue token", Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to issue token", Message: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto.TokenIssueResponse{
		Issued:    true,
		ExpiresAt: cred.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
