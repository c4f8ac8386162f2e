package planner

import (
	"fmt"
	"time"
)

const windowLayout = "2006-01-02 15:04"

// TimeWindow is a half-open interval [Start, End) in event-local time.
// End is always strictly after Start; shifts whose end time is at or before
// their start time cross midnight and are normalized at construction.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewTimeWindow builds the effective window of a shift from its date
// (2006-01-02) and start/end times (15:04). An end time at or before the
// start time means the shift ends on the following calendar day.
func NewTimeWindow(date, startTime, endTime string) (TimeWindow, error) {
	start, err := time.Parse(windowLayout, fmt.Sprintf("%s %s", date, startTime))
	if err != nil {
		return TimeWindow{}, fmt.Errorf("invalid shift start %q %q: %w", date, startTime, err)
	}

	end, err := time.Parse(windowLayout, fmt.Sprintf("%s %s", date, endTime))
	if err != nil {
		return TimeWindow{}, fmt.Errorf("invalid shift end %q %q: %w", date, endTime, err)
	}

	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}

	return TimeWindow{Start: start, End: end}, nil
}

// Overlaps reports whether the two windows share any time.
// Touching endpoints do not overlap (half-open interval semantics).
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// Adjacent reports whether the two windows touch back-to-back,
// leaving no break between them.
func (w TimeWindow) Adjacent(other TimeWindow) bool {
	return w.Start.Equal(other.End) || w.End.Equal(other.Start)
}

// Hours returns the window duration in hours
func (w TimeWindow) Hours() float64 {
	return w.End.Sub(w.Start).Hours()
}
