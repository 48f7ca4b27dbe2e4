// Package api defines shared HTTP response types used by the transport handlers.
package api

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	NeedToken bool   `json:"needToken,omitempty"`
}

// BarResponse is one OHLCV bar in a chart response.
type BarResponse struct {
	Date   string `json:"date"`   // trading date, YYYY-MM-DD
	Open   int64  `json:"open"`   // opening price (KRW)
	High   int64  `json:"high"`   // highest price
	Low    int64  `json:"low"`    // lowest price
	Close  int64  `json:"close"`  // closing price
	Volume int64  `json:"volume"` // accumulated volume
}
