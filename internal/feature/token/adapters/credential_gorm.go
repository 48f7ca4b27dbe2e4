// Package adapters provides CredentialStore implementations for the token feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"kis_backend/internal/feature/token/domain/entity"
	"kis_backend/internal/feature/token/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type credentialGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure credentialGorm implements CredentialStore.
var _ usecase.CredentialStore = (*credentialGorm)(nil)

// NewCredentialGorm creates a database-backed credential store. The table
// holds a single current row; saving replaces it.
func NewCredentialGorm(db *gorm.DB) *credentialGorm {
	return &credentialGorm{db: db}
}

// CredentialModel is the persistence model for the single current credential.
type CredentialModel struct {
	ID         uint      `gorm:"primaryKey"`
	Token      string    `gorm:"size:512;not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	IssuedDate string    `gorm:"size:10;not null"`
}

func (CredentialModel) TableName() string {
	return "kis_credentials"
}

// Load returns the persisted credential record.
func (r *credentialGorm) Load(ctx context.Context) (entity.CredentialRecord, error) {
	var m CredentialModel
	if err := r.db.WithContext(ctx).First(&m, 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.CredentialRecord{}, usecase.ErrCredentialNotFound
		}
		return entity.CredentialRecord{}, err
	}
	return entity.CredentialRecord{
		Token:      m.Token,
		ExpiresAt:  m.ExpiresAt,
		IssuedDate: m.IssuedDate,
	}, nil
}

// Save replaces the single credential row.
func (r *credentialGorm) Save(ctx context.Context, rec entity.CredentialRecord) error {
	m := CredentialModel{
		ID:         1,
		Token:      rec.Token,
		ExpiresAt:  rec.ExpiresAt,
		IssuedDate: rec.IssuedDate,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at", "issued_date"}),
	}).Create(&m).Error
}
