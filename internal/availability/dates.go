package availability

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format bookings are stored in.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO date to midnight UTC. UTC is used as the calendar
// zone so that day arithmetic never crosses a DST shift.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Normalize truncates t to midnight UTC of the calendar date t falls on in its
// own location.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return Normalize(t).Format(DateLayout)
}

// DaysBetween returns the whole number of days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Normalize(b).Sub(Normalize(a)).Hours() / 24)
}
