package kis

import (
	"strconv"
	"strings"
)

// parseIntOrZero converts an upstream numeric field to int64, defaulting to
// zero on a blank or malformed value. The KIS API occasionally returns empty
// strings in price fields; a single bad field must not fail the whole page.
// This fallback is deliberate and covered by tests.
func parseIntOrZero(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseFloatOrZero is parseIntOrZero for fractional fields (e.g. change rate).
func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// normalizeDate converts the upstream YYYYMMDD business date to YYYY-MM-DD.
// Anything that is not eight digits is returned unchanged.
func normalizeDate(s string) string {
	if len(s) != 8 {
		return s
	}
	return s[0:4] + "-" + s[4:6] + "-" + s[6:8]
}
