package trades

import (
	"fmt"
	"time"
)

// formatRelativeTime renders a block timestamp relative to now. A missing or
// zero timestamp yields "Unknown".
func formatRelativeTime(ts uint64, now time.Time) string {
	if ts == 0 {
		return "Unknown"
	}

	elapsed := now.Unix() - int64(ts)
	if elapsed < 0 {
		elapsed = 0
	}

	hours := elapsed / 3600
	if hours < 1 {
		return "Just now"
	}
	if hours < 24 {
		return plural(hours, "hour")
	}
	return plural(hours/24, "day")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
