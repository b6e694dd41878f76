package calendar

import (
	"time"

	"calgrid/internal/dates"
	appLog "calgrid/internal/log"
)

// fixedGridDays is the size of a six-week month grid.
const fixedGridDays = 6 * 7

// linker pads month pages to whole display weeks. Padding dates held by a
// neighboring page become shadow copies of the neighbor's records; the rest
// are synthesized as canonical other-period days.
type linker[E any] struct {
	gen      *Generator[E]
	firstDay time.Weekday
}

// link returns core with padding applied. Core days the neighbors already
// display as synthesized padding are adopted: the page takes over the
// neighbor's flags and the neighbor's record is demoted to a shadow.
func (l *linker[E]) link(core []*Day[E], before, after *Page[E], fullWeeks, fixedWeeks bool) []*Day[E] {
	if len(core) == 0 {
		return core
	}

	known := make(map[string]*Day[E])
	for _, p := range []*Page[E]{before, after} {
		if p == nil {
			continue
		}
		for _, d := range p.Days {
			known[d.ID] = d
		}
	}

	for i, d := range core {
		nb, ok := known[d.ID]
		if !ok {
			continue
		}
		nb.Copied = true
		adopted := nb.Copy()
		adopted.Copied = false
		adopted.OtherPeriod = false
		core[i] = adopted
	}

	if !fullWeeks {
		return core
	}

	first := core[0].Date
	last := core[len(core)-1].Date
	gridStart := dates.StartOfWeek(first, l.firstDay)
	gridEnd := dates.EndOfWeek(last, l.firstDay)
	if fixed := gridStart.AddDate(0, 0, fixedGridDays-1); fixedWeeks && fixed.After(gridEnd) {
		gridEnd = fixed
	}

	var leading, trailing []*Day[E]
	if gridStart.Before(first) {
		leading = l.pad(gridStart, first.AddDate(0, 0, -1), known)
	}
	if gridEnd.After(last) {
		trailing = l.pad(last.AddDate(0, 0, 1), gridEnd, known)
	}

	out := make([]*Day[E], 0, len(leading)+len(core)+len(trailing))
	out = append(out, leading...)
	out = append(out, core...)
	out = append(out, trailing...)
	return out
}

func (l *linker[E]) pad(from, to time.Time, known map[string]*Day[E]) []*Day[E] {
	days := l.gen.Range(from, to)
	shadows := 0
	for i, d := range days {
		if nb, ok := known[d.ID]; ok {
			days[i] = nb.Copy()
			shadows++
		}
		days[i].OtherPeriod = true
	}
	appLog.Debug("calendar: padded page", "from", dates.Key(from), "to", dates.Key(to), "shadows", shadows)
	return days
}
