package calendar

import (
	"time"

	"github.com/Domenick1991/guesthouse/internal/availability"
	"github.com/Domenick1991/guesthouse/internal/domain"
)

// BookingsOnDay returns the bookings whose stay, check-in and check-out day
// included, covers day. Several matches are all returned so the caller can
// ask which one was meant.
func BookingsOnDay(existing []domain.Booking, day time.Time) []domain.Booking {
	d := availability.Normalize(day)

	var out []domain.Booking
	for _, s := range availability.Stays(existing) {
		if !d.Before(s.Start) && !d.After(s.End) {
			out = append(out, s.Booking)
		}
	}
	return out
}
