package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kis_backend/internal/feature/chart/domain/entity"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&BarModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func bar(symbol string, interval entity.Interval, date string, close int64) entity.Bar {
	return entity.Bar{
		Symbol:   symbol,
		Interval: interval,
		Date:     date,
		Open:     close - 5,
		High:     close + 5,
		Low:      close - 10,
		Close:    close,
		Volume:   1000,
	}
}

func TestBarGorm_UpsertBatch_InsertThenFind(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewBarRepository(db)
	ctx := context.Background()

	err := repo.UpsertBatch(ctx, []entity.Bar{
		bar("005930", entity.IntervalDay, "2024-06-14", 78000),
		bar("005930", entity.IntervalDay, "2024-06-13", 77500),
	})
	require.NoError(t, err)

	got, err := repo.FindAll(ctx, "005930", entity.IntervalDay)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-06-13", got[0].Date, "FindAll returns ascending by date")
	assert.Equal(t, "2024-06-14", got[1].Date)
	assert.Equal(t, int64(78000), got[1].Close)
}

func TestBarGorm_UpsertBatch_ConflictReplacesPrices(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewBarRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertBatch(ctx, []entity.Bar{
		bar("005930", entity.IntervalDay, "2024-06-14", 78000),
	}))

	// Same natural key, revised prices.
	revised := bar("005930", entity.IntervalDay, "2024-06-14", 78300)
	revised.Volume = 2000
	require.NoError(t, repo.UpsertBatch(ctx, []entity.Bar{revised}))

	got, err := repo.FindAll(ctx, "005930", entity.IntervalDay)
	require.NoError(t, err)
	require.Len(t, got, 1, "conflict must update, not duplicate")
	assert.Equal(t, int64(78300), got[0].Close)
	assert.Equal(t, int64(2000), got[0].Volume)
}

func TestBarGorm_UpsertBatch_EmptyIsNoop(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewBarRepository(db)

	assert.NoError(t, repo.UpsertBatch(context.Background(), nil))
	assert.NoError(t, repo.UpsertBatch(context.Background(), []entity.Bar{}))
}

func TestBarGorm_FindAll_SeparatesSeriesByKey(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewBarRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertBatch(ctx, []entity.Bar{
		bar("005930", entity.IntervalDay, "2024-06-14", 78000),
		bar("005930", entity.IntervalWeek, "2024-06-10", 77000),
		bar("000660", entity.IntervalDay, "2024-06-14", 230000),
	}))

	daily, err := repo.FindAll(ctx, "005930", entity.IntervalDay)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, entity.IntervalDay, daily[0].Interval)
	assert.Equal(t, "005930", daily[0].Symbol)

	weekly, err := repo.FindAll(ctx, "005930", entity.IntervalWeek)
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	assert.Equal(t, int64(77000), weekly[0].Close)
}

func TestBarGorm_FindAll_EmptySeries(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewBarRepository(db)

	got, err := repo.FindAll(context.Background(), "005930", entity.IntervalDay)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBarGorm_LatestDate(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewBarRepository(db)
	ctx := context.Background()

	latest, err := repo.LatestDate(ctx, "005930", entity.IntervalDay)
	require.NoError(t, err)
	assert.Equal(t, "", latest, "empty series reports no latest date")

	require.NoError(t, repo.UpsertBatch(ctx, []entity.Bar{
		bar("005930", entity.IntervalDay, "2024-06-12", 77000),
		bar("005930", entity.IntervalDay, "2024-06-14", 78000),
		bar("005930", entity.IntervalDay, "2024-06-13", 77500),
	}))

	latest, err = repo.LatestDate(ctx, "005930", entity.IntervalDay)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-14", latest)
}
