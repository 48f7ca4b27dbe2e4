// Package usecase implements the technical-indicator calculations for the
// indicator feature. All functions are pure: they take a bar slice sorted
// ascending by date and perform no I/O.
package usecase

import (
	"math"

	chartentity "kis_backend/internal/feature/chart/domain/entity"
	"kis_backend/internal/feature/indicator/domain/entity"
)

// SMA returns the arithmetic mean of the most recent period closes, rounded
// to a whole KRW. ok is false when fewer than period bars are available.
func SMA(bars []chartentity.Bar, period int) (float64, bool) {
	if period <= 0 || len(bars) < period {
		return 0, false
	}
	var sum int64
	for _, b := range bars[len(bars)-period:] {
		sum += b.Close
	}
	return math.Round(float64(sum) / float64(period)), true
}

// EMA returns the exponential moving average over the whole series, seeded
// with the simple mean of the oldest period closes and applied forward in
// time with multiplier k = 2/(period+1).
func EMA(bars []chartentity.Bar, period int) (float64, bool) {
	if period <= 0 || len(bars) < period {
		return 0, false
	}
	var seed int64
	for _, b := range bars[:period] {
		seed += b.Close
	}
	ema := float64(seed) / float64(period)

	k := 2.0 / float64(period+1)
	for _, b := range bars[period:] {
		ema = (float64(b.Close)-ema)*k + ema
	}
	return ema, true
}

// RSI returns the relative strength index over the most recent period deltas
// (Wilder's single-window form, not the smoothed running version), rounded to
// two decimals. A series with no losses in the window reads 100.
func RSI(bars []chartentity.Bar, period int) (float64, bool) {
	if period <= 0 || len(bars) < period+1 {
		return 0, false
	}
	var gains, losses float64
	for i := len(bars) - period; i < len(bars); i++ {
		change := float64(bars[i].Close - bars[i-1].Close)
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	rsi := 100 - 100/(1+rs)
	return math.Round(rsi*100) / 100, true
}

// MACDLine returns EMA(12) - EMA(26); it needs at least 26 bars.
func MACDLine(bars []chartentity.Bar) (entity.MACD, bool) {
	ema12, ok12 := EMA(bars, 12)
	ema26, ok26 := EMA(bars, 26)
	if !ok12 || !ok26 {
		return entity.MACD{}, false
	}
	return entity.MACD{
		MACD:  math.Round((ema12-ema26)*100) / 100,
		EMA12: math.Round(ema12),
		EMA26: math.Round(ema26),
	}, true
}

// Compute bundles the standard dashboard indicator set (SMA 20/60/120,
// RSI 14, MACD) over an ascending bar series. Indicators the series is too
// short for are left nil.
func Compute(bars []chartentity.Bar) entity.Summary {
	var s entity.Summary
	if v, ok := SMA(bars, 20); ok {
		s.SMA20 = &v
	}
	if v, ok := SMA(bars, 60); ok {
		s.SMA60 = &v
	}
	if v, ok := SMA(bars, 120); ok {
		s.SMA120 = &v
	}
	if v, ok := RSI(bars, 14); ok {
		s.RSI = &v
	}
	if v, ok := MACDLine(bars); ok {
		s.MACD = &v
	}
	return s
}
