// Package kis provides a client for the Korea Investment & Securities Open API.
package kis

import (
	"os"
	"time"
)

// Config holds configuration for the KIS Open API client.
type Config struct {
	AppKey     string        // application key issued by KIS
	AppSecret  string        // application secret issued by KIS
	BaseURL    string        // base URL (production or paper-trading host)
	MarketCode string        // market division code (J: KRX, NX: NXT, UN: unified)
	Timeout    time.Duration // HTTP request timeout
}

// LoadConfig loads KIS configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("KIS_BASE_URL")
	if base == "" {
		base = "https://openapi.koreainvestment.com:9443"
	}
	market := os.Getenv("KIS_MARKET_CODE")
	if market == "" {
		market = "J"
	}
	return Config{
		AppKey:     os.Getenv("KIS_APP_KEY"),
		AppSecret:  os.Getenv("KIS_APP_SECRET"),
		BaseURL:    base,
		MarketCode: market,
		Timeout:    10 * time.Second,
	}
}
