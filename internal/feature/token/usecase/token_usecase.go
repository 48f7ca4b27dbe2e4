package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"kis_backend/internal/feature/token/domain/entity"
)

// tokenLifetime keeps one minute of margin inside the upstream 24h expiry so
// a token handed out near the boundary is still accepted.
const tokenLifetime = 23*time.Hour + 59*time.Minute

// CredentialStore abstracts durable persistence of the single current
// credential. It is the source of truth across process restarts.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CredentialStore interface {
	// Load returns the persisted credential record, or ErrCredentialNotFound
	// when none has ever been saved.
	Load(ctx context.Context) (entity.CredentialRecord, error)
	// Save replaces the persisted credential record.
	Save(ctx context.Context, rec entity.CredentialRecord) error
}

// AuthRepository abstracts the upstream auth endpoint.
type AuthRepository interface {
	// IssueToken requests a fresh bearer token from the upstream.
	IssueToken(ctx context.Context) (string, error)
}

// TokenUsecase owns the in-memory credential and the daily issuance quota.
// The check-then-issue sequence is guarded by a mutex so two concurrent
// near-simultaneous expiries cannot both pass the quota check.
type TokenUsecase struct {
	mu    sync.Mutex
	store CredentialStore
	auth  AuthRepository
	now   func() time.Time // injectable for tests

	cred       entity.Credential
	issuedDate string // calendar date of the last known issuance
}

// NewTokenUsecase creates a TokenUsecase with the given store and auth client.
func NewTokenUsecase(store CredentialStore, auth AuthRepository) *TokenUsecase {
	return &TokenUsecase{store: store, auth: auth, now: time.Now}
}

// GetCredential returns a credential guaranteed valid for at least the next
// call. Resolution order: in-memory copy, persisted copy, fresh issuance.
// Issuance fails with ErrQuotaExceeded when a token was already issued today,
// except on a cold start where no record exists at all.
func (u *TokenUsecase) GetCredential(ctx context.Context) (entity.Credential, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	now := u.now()
	if u.cred.Valid(now) {
		return u.cred, nil
	}

	rec, err := u.store.Load(ctx)
	switch {
	case err == nil:
		if now.Before(rec.ExpiresAt) && rec.Token != "" {
			u.adopt(rec)
			slog.Info("reusing persisted token", "expiresAt", rec.ExpiresAt)
			return u.cred, nil
		}
		u.issuedDate = rec.IssuedDate
		if rec.IssuedDate == marketDate(now) {
			return entity.Credential{}, ErrQuotaExceeded
		}
	case errors.Is(err, ErrCredentialNotFound):
		// Cold start: no record has ever been written, issue unconditionally.
	default:
		return entity.Credential{}, err
	}

	return u.issue(ctx, now)
}

// Token returns just the bearer string; it lets other features depend on a
// minimal credential-provider interface.
func (u *TokenUsecase) Token(ctx context.Context) (string, error) {
	cred, err := u.GetCredential(ctx)
	if err != nil {
		return "", err
	}
	return cred.Token, nil
}

// IssueNewToken forces a fresh issuance, bypassing any still-valid credential.
// The daily quota always applies on this path.
func (u *TokenUsecase) IssueNewToken(ctx context.Context) (entity.Credential, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	now := u.now()
	rec, err := u.store.Load(ctx)
	switch {
	case err == nil:
		if rec.IssuedDate == marketDate(now) {
			return entity.Credential{}, ErrQuotaExceeded
		}
	case errors.Is(err, ErrCredentialNotFound):
	default:
		return entity.Credential{}, err
	}
	if u.issuedDate == marketDate(now) {
		return entity.Credential{}, ErrQuotaExceeded
	}

	return u.issue(ctx, now)
}

// Status reports the current credential state without triggering issuance.
func (u *TokenUsecase) Status(ctx context.Context) entity.Status {
	u.mu.Lock()
	defer u.mu.Unlock()

	now := u.now()
	cred := u.cred
	if cred.Token == "" {
		if rec, err := u.store.Load(ctx); err == nil && rec.Token != "" {
			cred = entity.Credential{Token: rec.Token, ExpiresAt: rec.ExpiresAt}
		}
	}

	st := entity.Status{
		HasToken:  cred.Token != "",
		IsValid:   cred.Valid(now),
		ExpiresAt: cred.ExpiresAt,
	}
	if st.IsValid {
		st.Remaining = cred.ExpiresAt.Sub(now)
	}
	return st
}

// issue calls the upstream auth endpoint and replaces the credential in
// memory and in the store. Callers must hold u.mu.
func (u *TokenUsecase) issue(ctx context.Context, now time.Time) (entity.Credential, error) {
	token, err := u.auth.IssueToken(ctx)
	if err != nil {
		return entity.Credential{}, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	cred := entity.Credential{
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(tokenLifetime),
	}
	rec := entity.CredentialRecord{
		Token:      cred.Token,
		ExpiresAt:  cred.ExpiresAt,
		IssuedDate: marketDate(now),
	}
	// A quota-limited token must not be thrown away because the store write
	// failed; keep it in memory and log the persistence failure.
	if err := u.store.Save(ctx, rec); err != nil {
		slog.Warn("failed to persist token", "error", err)
	}

	u.cred = cred
	u.issuedDate = rec.IssuedDate
	slog.Info("issued new token", "issuedAt", cred.IssuedAt, "expiresAt", cred.ExpiresAt)
	return cred, nil
}

func (u *TokenUsecase) adopt(rec entity.CredentialRecord) {
	u.cred = entity.Credential{Token: rec.Token, ExpiresAt: rec.ExpiresAt}
	u.issuedDate = rec.IssuedDate
}

// marketDate formats the calendar date in KRX market time; the daily quota
// rolls over at midnight KST regardless of server timezone.
func marketDate(now time.Time) string {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	return now.In(loc).Format("2006-01-02")
}
