// Package entity defines the domain models for the indicator feature.
package entity

// MACD is the moving average convergence/divergence value pair.
type MACD struct {
	MACD  float64 // EMA(12) - EMA(26)
	EMA12 float64
	EMA26 float64
}

// Summary bundles the indicator set served by the indicators endpoint.
// Nil fields mean the series is too short for that indicator.
type Summary struct {
	SMA20  *float64
	SMA60  *float64
	SMA120 *float64
	RSI    *float64
	MACD   *MACD
}
