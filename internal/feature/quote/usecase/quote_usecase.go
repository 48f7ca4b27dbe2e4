// Package usecase implements the business logic for the quote feature.
package usecase

import (
	"context"

	"kis_backend/internal/feature/quote/domain/entity"
)

// QuoteRepository abstracts the upstream current-price endpoint.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type QuoteRepository interface {
	GetQuote(ctx context.Context, token, symbol string) (entity.Quote, error)
}

// CredentialProvider supplies a valid upstream bearer token.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// QuoteUsecase serves current-price snapshots straight from the upstream.
type QuoteUsecase struct {
	market QuoteRepository
	creds  CredentialProvider
}

// NewQuoteUsecase creates a QuoteUsecase.
func NewQuoteUsecase(market QuoteRepository, creds CredentialProvider) *QuoteUsecase {
	return &QuoteUsecase{market: market, creds: creds}
}

// GetQuote fetches the current-price snapshot for a symbol.
func (u *QuoteUsecase) GetQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	token, err := u.creds.Token(ctx)
	if err != nil {
		return entity.Quote{}, err
	}
	return u.market.GetQuote(ctx, token, symbol)
}
