package cache

import (
	"time"
)

// TimeUntilNext6PMKST returns the duration until the next 18:00 in Seoul.
// KRX daily bars are finalized well before then, so series cached with this
// TTL expire once per trading day after the close.
func TimeUntilNext6PMKST() time.Duration {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	now := time.Now().In(loc)

	next := time.Date(now.Year(), now.Month(), now.Day(), 18, 0, 0, 0, loc)
	if now.After(next) {
		next = next.Add(24 * time.Hour)
	}

	return next.Sub(now)
}
