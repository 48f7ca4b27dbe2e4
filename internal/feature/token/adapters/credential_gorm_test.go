package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kis_backend/internal/feature/token/domain/entity"
	"kis_backend/internal/feature/token/usecase"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&CredentialModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func TestCredentialGorm_LoadEmpty(t *testing.T) {
	t.Parallel()

	store := NewCredentialGorm(setupTestDB(t))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, usecase.ErrCredentialNotFound)
}

func TestCredentialGorm_SaveAndLoad(t *testing.T) {
	t.Parallel()

	store := NewCredentialGorm(setupTestDB(t))
	ctx := context.Background()

	expires := time.Date(2024, 6, 15, 9, 59, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, entity.CredentialRecord{
		Token:      "bearer-abc",
		ExpiresAt:  expires,
		IssuedDate: "2024-06-14",
	}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bearer-abc", got.Token)
	assert.Equal(t, "2024-06-14", got.IssuedDate)
	assert.True(t, got.ExpiresAt.Equal(expires))
}

func TestCredentialGorm_SaveReplacesSingleRow(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	store := NewCredentialGorm(db)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, entity.CredentialRecord{
		Token:      "old",
		ExpiresAt:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		IssuedDate: "2024-06-13",
	}))
	require.NoError(t, store.Save(ctx, entity.CredentialRecord{
		Token:      "new",
		ExpiresAt:  time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		IssuedDate: "2024-06-14",
	}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Token)
	assert.Equal(t, "2024-06-14", got.IssuedDate)

	var count int64
	require.NoError(t, db.Model(&CredentialModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "the store keeps exactly one row")
}
