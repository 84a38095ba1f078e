package utils

import (
	"fmt"
	"math"
	"time"
)

const LogTimeLayout = "2006-01-02 15:04:05"

// FormatLogTime renders t in UTC the way activity log rows store it.
func FormatLogTime(t time.Time) string {
	return t.UTC().Format(LogTimeLayout)
}

// FormatAgo renders a seconds-ago counter reported by the pad, e.g. "12s ago".
func FormatAgo(seconds float64) string {
	return fmt.Sprintf("%ds ago", int64(math.Round(seconds)))
}

// RoundSeconds converts a duration to whole seconds, rounding half away from zero.
func RoundSeconds(d time.Duration) int64 {
	return int64(math.Round(d.Seconds()))
}
