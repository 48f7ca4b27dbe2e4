// Package entity defines the domain models for the chart feature.
package entity

import "fmt"

// Interval is the period classification code used by the KIS quotation API.
type Interval string

const (
	// IntervalDay is one bar per trading day.
	IntervalDay Interval = "D"
	// IntervalWeek is one bar per trading week.
	IntervalWeek Interval = "W"
	// IntervalMonth is one bar per calendar month.
	IntervalMonth Interval = "M"
)

// WindowSize is the maximum number of bars the upstream returns per call
// (30 trading days / 30 weeks / 30 months depending on the interval).
const WindowSize = 30

// ParseInterval validates a period code from a request.
// The yearly view ("Y") is a presentation over monthly bars and must be
// translated to IntervalMonth by the caller before reaching this layer.
func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case IntervalDay, IntervalWeek, IntervalMonth:
		return Interval(s), nil
	default:
		return "", fmt.Errorf("unknown interval %q", s)
	}
}

// Bar represents one OHLCV record for a stock symbol over one interval unit.
// The tuple (Symbol, Interval, Date) is the natural key: within a series no
// two bars share a date, and a revised upstream bar replaces the stored one.
type Bar struct {
	Symbol   string   // exchange ticker (e.g. "005930")
	Interval Interval // period classification code
	Date     string   // trading date, normalized to YYYY-MM-DD
	Open     int64    // opening price in KRW
	High     int64    // highest price
	Low      int64    // lowest price
	Close    int64    // closing price
	Volume   int64    // accumulated volume
}
