// Package adapters provides repository implementations for the chart feature.
package adapters

import (
	"context"
	"errors"

	"kis_backend/internal/feature/chart/domain/entity"
	"kis_backend/internal/feature/chart/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type barGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure barGorm implements BarRepository.
var _ usecase.BarRepository = (*barGorm)(nil)

// NewBarRepository creates a gorm-backed bar repository.
func NewBarRepository(db *gorm.DB) *barGorm {
	return &barGorm{db: db}
}

// BarModel is the persistence model for one OHLCV bar.
// (symbol, interval, date) is the natural key used for upsert and dedup.
type BarModel struct {
	ID       uint   `gorm:"primaryKey"`
	Symbol   string `gorm:"size:20;not null;uniqueIndex:bar_sym_int_date,priority:1"`
	Interval string `gorm:"size:4;not null;uniqueIndex:bar_sym_int_date,priority:2"`
	Date     string `gorm:"size:10;not null;uniqueIndex:bar_sym_int_date,priority:3"`

	Open   int64 `gorm:"not null"`
	High   int64 `gorm:"not null"`
	Low    int64 `gorm:"not null"`
	Close  int64 `gorm:"not null"`
	Volume int64 `gorm:"not null;default:0"`
}

func (BarModel) TableName() string {
	return "stock_price_history"
}

func toModel(e entity.Bar) BarModel {
	return BarModel{
		Symbol:   e.Symbol,
		Interval: string(e.Interval),
		Date:     e.Date,
		Open:     e.Open,
		High:     e.High,
		Low:      e.Low,
		Close:    e.Close,
		Volume:   e.Volume,
	}
}

func toEntity(m BarModel) entity.Bar {
	return entity.Bar{
		Symbol:   m.Symbol,
		Interval: entity.Interval(m.Interval),
		Date:     m.Date,
		Open:     m.Open,
		High:     m.High,
		Low:      m.Low,
		Close:    m.Close,
		Volume:   m.Volume,
	}
}

// UpsertBatch inserts bars, replacing the price columns when a bar for the
// same (symbol, interval, date) already exists. Revised upstream bars must
// overwrite stale cached values.
func (r *barGorm) UpsertBatch(ctx context.Context, bars []entity.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	ms := make([]BarModel, 0, len(bars))
	for _, e := range bars {
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "interval"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
	}).Create(&ms).Error
}

// FindAll returns every bar for (symbol, interval), ascending by date.
func (r *barGorm) FindAll(ctx context.Context, symbol string, interval entity.Interval) ([]entity.Bar, error) {
	var rows []BarModel
	// Map conditions let gorm quote "interval" correctly on both sqlite and postgres.
	if err := r.db.WithContext(ctx).
		Where(map[string]any{"symbol": symbol, "interval": string(interval)}).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Bar, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// LatestDate returns the most recent stored date for (symbol, interval),
// or "" when the series is empty.
func (r *barGorm) LatestDate(ctx context.Context, symbol string, interval entity.Interval) (string, error) {
	var row BarModel
	err := r.db.WithContext(ctx).
		Where(map[string]any{"symbol": symbol, "interval": string(interval)}).
		Order("date DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return row.Date, nil
}
