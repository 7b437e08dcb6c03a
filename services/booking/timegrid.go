package booking

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// parseClock converts "HH:MM" to minutes from midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// formatClock converts minutes from midnight to "HH:MM".
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// displayClock converts minutes from midnight to a 12-hour display label,
// e.g. "9:30 AM".
func displayClock(minutes int) string {
	hour := minutes / 60
	minute := minutes % 60
	suffix := "AM"
	displayHour := hour
	switch {
	case hour == 0:
		displayHour = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		displayHour = hour - 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", displayHour, minute, suffix)
}

// overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}
