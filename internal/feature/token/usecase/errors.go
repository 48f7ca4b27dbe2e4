// Package usecase implements the business logic for the token feature.
package usecase

import "errors"

var (
	// ErrQuotaExceeded is returned when a fresh token has already been issued
	// today. The upstream allows one issuance per calendar day; callers must
	// not retry until the next day.
	ErrQuotaExceeded = errors.New("token already issued today")

	// ErrAuthFailed is returned when the upstream auth endpoint rejects the
	// issuance request or is unreachable. Issuance is never retried blindly
	// because of the daily quota.
	ErrAuthFailed = errors.New("token issuance failed")

	// ErrCredentialNotFound is returned by a CredentialStore when no
	// credential has ever been persisted.
	ErrCredentialNotFound = errors.New("credential not found")
)
