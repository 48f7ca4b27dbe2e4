package adapters

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"kis_backend/internal/feature/token/domain/entity"
	"kis_backend/internal/feature/token/usecase"
)

type credentialFile struct {
	path string
}

var _ usecase.CredentialStore = (*credentialFile)(nil)

// NewCredentialFile creates a JSON-file-backed credential store for
// deployments without a database (e.g. the ingest CLI on a workstation).
func NewCredentialFile(path string) *credentialFile {
	return &credentialFile{path: path}
}

// tokenCacheFile mirrors the on-disk layout of the original dashboard's
// .token-cache.json so an existing cache file keeps working.
type tokenCacheFile struct {
	AccessToken string `json:"accessToken"`
	TokenExpiry int64  `json:"tokenExpiry"` // epoch milliseconds
	IssuedDate  string `json:"issuedDate"`
}

// Load reads the credential record from disk.
func (s *credentialFile) Load(ctx context.Context) (entity.CredentialRecord, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entity.CredentialRecord{}, usecase.ErrCredentialNotFound
		}
		return entity.CredentialRecord{}, err
	}
	var f tokenCacheFile
	if err := json.Unmarshal(b, &f); err != nil {
		return entity.CredentialRecord{}, err
	}
	if f.AccessToken == "" {
		return entity.CredentialRecord{}, usecase.ErrCredentialNotFound
	}
	return entity.CredentialRecord{
		Token:      f.AccessToken,
		ExpiresAt:  time.UnixMilli(f.TokenExpiry),
		IssuedDate: normalizeIssuedDate(f.IssuedDate),
	}, nil
}

// normalizeIssuedDate maps the original dashboard's issuedDate, written as a
// full UTC ISO timestamp, to the KST calendar date the daily quota check
// compares against. Values already in YYYY-MM-DD form pass through unchanged.
func normalizeIssuedDate(s string) string {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	return ts.In(loc).Format("2006-01-02")
}

// Save writes the credential record to disk, readable only by the owner.
func (s *credentialFile) Save(ctx context.Context, rec entity.CredentialRecord) error {
	f := tokenCacheFile{
		AccessToken: rec.Token,
		TokenExpiry: rec.ExpiresAt.UnixMilli(),
		IssuedDate:  rec.IssuedDate,
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}
