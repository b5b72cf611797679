// Package calendar lays bookings out on a six-week month grid.
package calendar

import (
	"sort"
	"time"

	"github.com/Domenick1991/guesthouse/internal/availability"
	"github.com/Domenick1991/guesthouse/internal/domain"
)

const (
	GridWeeks = 6
	GridDays  = GridWeeks * 7

	DefaultRowHeight = 28
)

// LaneEvent is one weekly bar of a booking. StartDay and EndDay are weekday
// indices, 0 for Sunday through 6 for Saturday.
type LaneEvent struct {
	BookingID     string               `json:"booking_id"`
	Name          string               `json:"name"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	WeekIndex     int                  `json:"week_index"`
	StartDay      int                  `json:"start_day"`
	EndDay        int                  `json:"end_day"`
	Lane          int                  `json:"lane"`
	Top           int                  `json:"top"`
	ShowLabel     bool                 `json:"show_label"`
}

type Layout struct {
	Year   int
	Month  time.Month
	Days   [GridDays]time.Time
	Events []LaneEvent
	// Lanes is the number of lanes in use across the laid out bookings.
	Lanes int
}

type Engine struct {
	rowHeight int
}

func NewEngine(rowHeight int) *Engine {
	if rowHeight <= 0 {
		rowHeight = DefaultRowHeight
	}
	return &Engine{rowHeight: rowHeight}
}

// LayoutMonth assigns lanes to every well-formed booking and cuts each one into
// weekly segments for the grid of the given month.
func (e *Engine) LayoutMonth(existing []domain.Booking, year int, month time.Month) Layout {
	layout := Layout{Year: year, Month: month, Days: Grid(year, month)}

	placed := AssignLanes(availability.Stays(existing))
	for _, p := range placed {
		if p.Lane+1 > layout.Lanes {
			layout.Lanes = p.Lane + 1
		}
		for _, seg := range Segments(p.Stay, layout.Days) {
			layout.Events = append(layout.Events, LaneEvent{
				BookingID:     p.Stay.Booking.ID,
				Name:          p.Stay.Booking.Name,
				PaymentStatus: p.Stay.Booking.PaymentStatus,
				WeekIndex:     seg.WeekIndex,
				StartDay:      seg.StartDay,
				EndDay:        seg.EndDay,
				Lane:          p.Lane,
				Top:           p.Lane * e.rowHeight,
				ShowLabel:     seg.ShowLabel,
			})
		}
	}
	return layout
}

// Grid returns the 42 days starting on the Sunday on or before the first of month.
func Grid(year int, month time.Month) [GridDays]time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	var days [GridDays]time.Time
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

type Placement struct {
	Stay availability.Stay
	Lane int
}

// AssignLanes colours the interval graph greedily: stays are taken by check-in
// (ties keep input order) and each goes to the lowest lane holding no stay it
// conflicts with. Back-to-back stays may share a lane.
func AssignLanes(stays []availability.Stay) []Placement {
	sorted := make([]availability.Stay, len(stays))
	copy(sorted, stays)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var lanes [][]availability.Stay
	placed := make([]Placement, 0, len(sorted))
	for _, s := range sorted {
		lane := firstFreeLane(lanes, s)
		if lane == len(lanes) {
			lanes = append(lanes, nil)
		}
		lanes[lane] = append(lanes[lane], s)
		placed = append(placed, Placement{Stay: s, Lane: lane})
	}
	return placed
}

func firstFreeLane(lanes [][]availability.Stay, s availability.Stay) int {
	for i, occupants := range lanes {
		free := true
		for _, o := range occupants {
			if s.Conflicts(o) {
				free = false
				break
			}
		}
		if free {
			return i
		}
	}
	return len(lanes)
}
