package di

import (
	"os"

	"gorm.io/gorm"

	tokenadapters "kis_backend/internal/feature/token/adapters"
	"kis_backend/internal/feature/token/usecase"
)

// NewCredentialStore creates a CredentialStore implementation.
// With a database connection it persists the credential in a table; without
// one it falls back to a JSON cache file next to the binary.
func NewCredentialStore(db *gorm.DB) usecase.CredentialStore {
	if db != nil {
		return tokenadapters.NewCredentialGorm(db)
	}
	path := os.Getenv("TOKEN_CACHE_PATH")
	if path == "" {
		path = ".token-cache.json"
	}
	return tokenadapters.NewCredentialFile(path)
}
