package usecase

import (
	"time"

	"kis_backend/internal/feature/chart/domain/entity"
)

// marketLocation returns the KRX trading timezone. Freshness is always judged
// in market time, never server-local time.
func marketLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// seriesCurrent reports whether the latest cached date still covers the
// current open period: the same calendar day for daily bars, the same ISO
// week (Monday-based) for weekly bars, the same calendar month for monthly
// bars. An unparseable or empty date is treated as stale.
func (u *SyncUsecase) seriesCurrent(latest string, interval entity.Interval) bool {
	if latest == "" {
		return false
	}
	loc := marketLocation()
	d, err := time.ParseInLocation("2006-01-02", latest, loc)
	if err != nil {
		return false
	}
	now := u.now().In(loc)

	switch interval {
	case entity.IntervalDay:
		return d.Year() == now.Year() && d.YearDay() == now.YearDay()
	case entity.IntervalWeek:
		dy, dw := d.ISOWeek()
		ny, nw := now.ISOWeek()
		return dy == ny && dw == nw
	case entity.IntervalMonth:
		return d.Year() == now.Year() && d.Month() == now.Month()
	default:
		return false
	}
}
