// Package dto defines data transfer objects for the KIS Open API responses.
package dto

// TokenResponse represents the JSON response from the /oauth2/tokenP endpoint.
// The upstream expiry fields are ignored; the token usecase computes its own
// expiry with a safety margin.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
