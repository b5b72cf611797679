package calendar

import (
	"time"

	"github.com/Domenick1991/guesthouse/internal/availability"
)

type Segment struct {
	WeekIndex int
	StartDay  int
	EndDay    int
	ShowLabel bool
}

// Segments returns the weekly runs of a stay on the grid. For display a stay
// covers both its check-in and its check-out day. Only the first run of each
// visually contiguous bar carries the label: a run that picks up on Sunday
// right after a run ending the previous Saturday continues that bar.
func Segments(stay availability.Stay, days [GridDays]time.Time) []Segment {
	gridStart := days[0]
	first := availability.DaysBetween(gridStart, stay.Start)
	last := availability.DaysBetween(gridStart, stay.End)
	if last < 0 || first >= GridDays {
		return nil
	}

	var segs []Segment
	for week := 0; week < GridWeeks; week++ {
		weekFirst, weekLast := week*7, week*7+6
		from, to := max(first, weekFirst), min(last, weekLast)
		if from > to {
			continue
		}
		segs = append(segs, Segment{
			WeekIndex: week,
			StartDay:  from - weekFirst,
			EndDay:    to - weekFirst,
		})
	}

	markLabels(segs)
	return segs
}

func markLabels(segs []Segment) {
	for i := range segs {
		segs[i].ShowLabel = i == 0 || !continues(segs[i-1], segs[i])
	}
}

func continues(prev, cur Segment) bool {
	return prev.EndDay == 6 && cur.StartDay == 0 && cur.WeekIndex == prev.WeekIndex+1
}
