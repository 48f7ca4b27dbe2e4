package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"kis_backend/internal/feature/symbollist/domain/entity"
	"kis_backend/internal/feature/symbollist/usecase"
)

type mockSymbolRepository struct {
	ListActiveFunc      func(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodesFunc func(ctx context.Context) ([]string, error)
}

func (m *mockSymbolRepository) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockSymbolRepository) ListActiveCodes(ctx context.Context) ([]string, error) {
	if m.ListActiveCodesFunc != nil {
		return m.ListActiveCodesFunc(ctx)
	}
	return nil, nil
}

func TestSymbolUsecase_ListActiveSymbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		mockListActive  func(ctx context.Context) ([]entity.Symbol, error)
		expectedSymbols []entity.Symbol
		wantErr         bool
		errMsg          string
	}{
		{
			name: "success: returns list of active symbols",
			mockListActive: func(ctx context.Context) ([]entity.Symbol, error) {
				return []entity.Symbol{
					{ID: 1, Code: "005930", Name: "Samsung Electronics", Market: "KOSPI", IsActive: true, SortKey: 1},
					{ID: 2, Code: "000660", Name: "SK hynix", Market: "KOSPI", IsActive: true, SortKey: 2},
				}, nil
			},
			expectedSymbols: []entity.Symbol{
				{ID: 1, Code: "005930", Name: "Samsung Electronics", Market: "KOSPI", IsActive: true, SortKey: 1},
				{ID: 2, Code: "000660", Name: "SK hynix", Market: "KOSPI", IsActive: true, SortKey: 2},
			},
		},
		{
			name: "success: returns empty list when no active symbols",
			mockListActive: func(ctx context.Context) ([]entity.Symbol, error) {
				return []entity.Symbol{}, nil
			},
			expectedSymbols: []entity.Symbol{},
		},
		{
			name: "failure: repository returns error",
			mockListActive: func(ctx context.Context) ([]entity.Symbol, error) {
				return nil, errors.New("database connection failed")
			},
			wantErr: true,
			errMsg:  "database connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockRepo := &mockSymbolRepository{
				ListActiveFunc: tt.mockListActive,
			}
			uc := usecase.NewSymbolUsecase(mockRepo)

			symbols, err := uc.ListActiveSymbols(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.EqualError(t, err, tt.errMsg)
				}
				assert.Nil(t, symbols)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedSymbols, symbols)
			}
		})
	}
}

func TestSymbolUsecase_ListActiveCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		mockListCodes func(ctx context.Context) ([]string, error)
		expectedCodes []string
		wantErr       bool
	}{
		{
			name: "success: returns codes in display order",
			mockListCodes: func(ctx context.Context) ([]string, error) {
				return []string{"005930", "000660", "035420"}, nil
			},
			expectedCodes: []string{"005930", "000660", "035420"},
		},
		{
			name: "failure: repository returns error",
			mockListCodes: func(ctx context.Context) ([]string, error) {
				return nil, errors.New("database connection failed")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockRepo := &mockSymbolRepository{
				ListActiveCodesFunc: tt.mockListCodes,
			}
			uc := usecase.NewSymbolUsecase(mockRepo)

			codes, err := uc.ListActiveCodes(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, codes)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCodes, codes)
			}
		})
	}
}
