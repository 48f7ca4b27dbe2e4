// Package entity defines the domain models for the quote feature.
package entity

// Quote is the current-price snapshot for one stock symbol. It is served
// straight from the upstream and never persisted.
type Quote struct {
	Code         string  // exchange ticker
	Name         string  // Korean listing name
	CurrentPrice int64   // last traded price (KRW)
	PriceChange  int64   // change versus previous close
	ChangeRate   float64 // change rate in percent
	OpenPrice    int64
	HighPrice    int64
	LowPrice     int64
	Volume       int64 // accumulated volume
}
