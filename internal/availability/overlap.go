package availability

import (
	"time"

	"github.com/Domenick1991/guesthouse/internal/domain"
)

// Stay is a booking with its dates parsed into a half-open [Start, End) range.
type Stay struct {
	Booking domain.Booking
	Start   time.Time
	End     time.Time
}

// Stays parses the snapshot, dropping records whose dates are missing,
// malformed or not a positive range. One bad record never hides the others.
func Stays(bookings []domain.Booking) []Stay {
	stays := make([]Stay, 0, len(bookings))
	for _, b := range bookings {
		start, err := ParseDate(b.CheckInDate)
		if err != nil {
			continue
		}
		end, err := ParseDate(b.CheckOutDate)
		if err != nil {
			continue
		}
		if !end.After(start) {
			continue
		}
		stays = append(stays, Stay{Booking: b, Start: start, End: end})
	}
	return stays
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share a night.
// A checkout on the same day as the other check-in is a turnover, not a conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if aStart.Equal(bEnd) || aEnd.Equal(bStart) {
		return false
	}
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Conflicts reports whether two stays overlap.
func (s Stay) Conflicts(other Stay) bool {
	return Overlaps(s.Start, s.End, other.Start, other.End)
}

// FindConflicts returns the bookings in existing, in input order, whose stay
// overlaps [start, end). The booking with id excludeID is skipped, which lets
// an edited booking be checked against everything but itself.
func FindConflicts(start, end time.Time, existing []domain.Booking, excludeID string) []domain.Booking {
	return conflicts(Normalize(start), Normalize(end), Stays(existing), excludeID)
}

func conflicts(start, end time.Time, stays []Stay, excludeID string) []domain.Booking {
	var out []domain.Booking
	for _, s := range stays {
		if excludeID != "" && s.Booking.ID == excludeID {
			continue
		}
		if Overlaps(start, end, s.Start, s.End) {
			out = append(out, s.Booking)
		}
	}
	return out
}
