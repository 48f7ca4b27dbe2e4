// Package dto defines data transfer objects for the token HTTP API.
package dto

// TokenStatusResponse reports the credential state to the dashboard so it can
// prompt for a manual renewal when needed.
type TokenStatusResponse struct {
	HasToken         bool   `json:"hasToken"`
	IsValid          bool   `json:"isValid"`
	ExpiresAt        string `json:"expiresAt,omitempty"` // RFC 3339
	RemainingSeconds int64  `json:"remainingSeconds"`
}

// TokenIssueResponse confirms a successful manual issuance.
type TokenIssueResponse struct {
	Issued    bool   `json:"issued"`
	ExpiresAt string `json:"expiresAt"` // RFC 3339
}
