package ics

import (
	"time"

	"calgrid/internal/dates"
	appLog "calgrid/internal/log"
)

// Feed is a parsed iCalendar payload whose events mark whole days, e.g. a
// public holiday calendar used to disable dates.
type Feed struct {
	ID     string
	loc    *time.Location
	events []Event
}

// NewFeed parses body once; Between expands it on demand.
func NewFeed(id string, body []byte, loc *time.Location) (*Feed, error) {
	if loc == nil {
		loc = time.Local
	}
	events, err := Parse(id, body, loc)
	if err != nil {
		return nil, err
	}
	return &Feed{ID: id, loc: loc, events: events}, nil
}

// Len is the number of parsed events.
func (f *Feed) Len() int {
	return len(f.events)
}

// Between returns every day touched by an occurrence within [from, to].
func (f *Feed) Between(from, to time.Time) []time.Time {
	start := dates.Truncate(from)
	end := dates.Truncate(to).AddDate(0, 0, 1).Add(-time.Nanosecond)

	res, err := Expand(f.events, ExpandConfig{
		DisplayLocation: f.loc,
		RangeStart:      start,
		RangeEnd:        end,
	})
	if err != nil {
		appLog.Warn("ics feed expansion failed", "feed", f.ID, "err", err)
		return nil
	}

	var out []time.Time
	for _, occ := range res.Occurrences {
		for _, d := range occ.Days() {
			if dates.Before(d, start) || dates.After(d, end) {
				continue
			}
			out = append(out, d)
		}
	}
	return out
}
