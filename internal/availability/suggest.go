package availability

import (
	"time"

	"github.com/Domenick1991/guesthouse/internal/domain"
)

const (
	DefaultHorizonDays = 30
	DefaultMaxResults  = 5
)

// SuggestAvailableStarts walks forward from desiredStart, inclusive, for up to
// horizonDays days and returns the dates on which a one-night stay would not
// conflict with existing. At most maxResults dates are returned, ascending.
// Non-positive horizonDays or maxResults fall back to the defaults. A zero
// desiredStart yields no suggestions.
//
// The result is advisory: nothing is held for the caller.
func SuggestAvailableStarts(desiredStart time.Time, existing []domain.Booking, horizonDays, maxResults int) []time.Time {
	if desiredStart.IsZero() {
		return nil
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	stays := Stays(existing)
	day := Normalize(desiredStart)

	var out []time.Time
	for i := 0; i < horizonDays && len(out) < maxResults; i++ {
		d := day.AddDate(0, 0, i)
		if len(conflicts(d, d.AddDate(0, 0, 1), stays, "")) == 0 {
			out = append(out, d)
		}
	}
	return out
}
