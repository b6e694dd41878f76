package model

import (
	"time"

	"calgrid/internal/dates"
)

// Occurrence is one concrete instance of a calendar event after recurrence
// expansion, used to mark days of the grid (e.g. holidays imported from an
// iCalendar feed become disabled days).
type Occurrence struct {
	SourceID string // feed or rule identifier
	UID      string // iCalendar UID, empty for rule-based sources

	// InstanceKey uniquely identifies a single occurrence of a recurring
	// event, derived from the local start time.
	InstanceKey string

	Summary string
	AllDay  bool

	// Start / End are in the calendar's display location. For all-day
	// occurrences End is exclusive (midnight after the last day).
	Start time.Time
	End   time.Time
}

// Days lists every calendar day the occurrence touches, in order.
func (o Occurrence) Days() []time.Time {
	first := dates.Truncate(o.Start)
	last := dates.Truncate(o.End)
	switch {
	case o.End.Before(o.Start):
		last = first
	case o.AllDay && last.After(first) && o.End.Equal(last):
		// Exclusive all-day end.
		last = last.AddDate(0, 0, -1)
	case !o.AllDay && o.End.Equal(last) && last.After(first):
		// Timed event ending exactly at midnight does not touch that day.
		last = last.AddDate(0, 0, -1)
	}

	var out []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}
