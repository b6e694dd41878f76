package calendar

import (
	"time"

	"calgrid/internal/dates"
	appLog "calgrid/internal/log"
	"calgrid/internal/recur"
)

// Generator produces runs of consecutive canonical days with the configured
// disabled and pre-selected state applied.
type Generator[E any] struct {
	opts *Normalized[E]
}

func NewGenerator[E any](opts *Normalized[E]) *Generator[E] {
	return &Generator[E]{opts: opts}
}

// Range returns one day per calendar date in [from, to]. Reversed bounds
// are swapped.
func (g *Generator[E]) Range(from, to time.Time) []*Day[E] {
	from, to = g.opts.anchor(from), g.opts.anchor(to)
	if from.After(to) {
		appLog.Debug("calendar: swapping reversed range", "from", dates.Key(from), "to", dates.Key(to))
		from, to = to, from
	}

	disabled := recur.KeySet(g.opts.disabled, from, to)

	n := dates.DaysBetween(from, to) + 1
	days := make([]*Day[E], 0, n)
	for i := 0; i < n; i++ {
		day := g.opts.Factory.FromTime(from.AddDate(0, 0, i))
		_, off := disabled[day.ID]
		day.Disabled.Set(off || g.opts.outOfBounds(day.Date))
		_, sel := g.opts.preSelection[day.ID]
		day.Selected.Set(sel)
		days = append(days, day)
	}
	return days
}
