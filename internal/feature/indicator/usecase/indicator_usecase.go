package usecase

import (
	"context"

	chartentity "kis_backend/internal/feature/chart/domain/entity"
	"kis_backend/internal/feature/indicator/domain/entity"
)

// BarRepository is the read-only slice of bar storage the indicator feature
// needs. Following Go convention: interfaces are defined by the consumer.
type BarRepository interface {
	FindAll(ctx context.Context, symbol string, interval chartentity.Interval) ([]chartentity.Bar, error)
}

// IndicatorUsecase computes indicator summaries over the cached bar series.
type IndicatorUsecase struct {
	bars BarRepository
}

// NewIndicatorUsecase creates an IndicatorUsecase.
func NewIndicatorUsecase(bars BarRepository) *IndicatorUsecase {
	return &IndicatorUsecase{bars: bars}
}

// GetIndicators reads the stored series for (symbol, interval) and computes
// the indicator summary. The number of bars used is returned alongside so
// callers can tell a thin series from a missing one.
func (u *IndicatorUsecase) GetIndicators(ctx context.Context, symbol string, interval chartentity.Interval) (entity.Summary, int, error) {
	bars, err := u.bars.FindAll(ctx, symbol, interval)
	if err != nil {
		return entity.Summary{}, 0, err
	}
	return Compute(bars), len(bars), nil
}
