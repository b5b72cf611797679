package booking

import (
	"context"
	"time"

	"github.com/Domenick1991/guesthouse/internal/availability"
	"github.com/Domenick1991/guesthouse/internal/domain"
)

type Stats struct {
	Total     int `json:"total"`
	Current   int `json:"current"`
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
	Paid      int `json:"paid"`
	Unpaid    int `json:"unpaid"`
}

// Stats counts an owner's bookings by stay phase relative to today and by
// payment. A guest is current from check-in day through check-out day.
func (s *BookingService) Stats(ctx context.Context, ownerID string) (*Stats, error) {
	snapshot, err := s.snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return computeStats(snapshot, availability.Normalize(s.now())), nil
}

func computeStats(bookings []domain.Booking, today time.Time) *Stats {
	stats := &Stats{Total: len(bookings)}
	for _, b := range bookings {
		if b.PaymentStatus == domain.PaymentStatusPaid {
			stats.Paid++
		} else {
			stats.Unpaid++
		}
	}

	for _, s := range availability.Stays(bookings) {
		switch {
		case today.Before(s.Start):
			stats.Upcoming++
		case !today.After(s.End):
			stats.Current++
		default:
			stats.Completed++
		}
	}
	return stats
}
