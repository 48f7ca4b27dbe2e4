// Package di provides dependency injection factories for creating application components.
package di

import (
	"kis_backend/internal/platform/externalapi/kis"
	infrahttp "kis_backend/internal/platform/http"
)

// KISClients bundles the upstream brokerage API clients, all sharing one
// configuration and HTTP client.
type KISClients struct {
	Auth   *kis.KISAuth
	Market *kis.KISMarket
	Quote  *kis.KISQuote
}

// NewKISClients creates fully configured KIS API clients.
func NewKISClients() KISClients {
	cfg := kis.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return KISClients{
		Auth:   kis.NewKISAuth(cfg, httpClient),
		Market: kis.NewKISMarket(cfg, httpClient),
		Quote:  kis.NewKISQuote(cfg, httpClient),
	}
}
