// Package entity defines the domain models for the token feature.
package entity

import "time"

// Credential is the bearer token used to authenticate upstream KIS requests.
// Credentials are never mutated in place: renewal creates a new Credential
// that replaces the old one in memory and in the store.
type Credential struct {
	Token     string    // opaque bearer string
	IssuedAt  time.Time // issuance time
	ExpiresAt time.Time // IssuedAt + 23h59m, one minute inside the upstream 24h expiry
}

// Valid reports whether the credential is usable at the given instant.
func (c Credential) Valid(now time.Time) bool {
	return c.Token != "" && now.Before(c.ExpiresAt)
}

// CredentialRecord is the durable form of a credential together with its
// issuance date. IssuedDate (a calendar date, not a timestamp) enforces the
// upstream quota of one fresh issuance per day, independent of ExpiresAt.
type CredentialRecord struct {
	Token      string
	ExpiresAt  time.Time
	IssuedDate string // YYYY-MM-DD in market time
}

// Status is a read-only snapshot of the credential state.
type Status struct {
	HasToken  bool
	IsValid   bool
	ExpiresAt time.Time
	Remaining time.Duration // zero when expired or absent
}
