package calendar

import (
	"time"

	"calgrid/internal/dates"
	appLog "calgrid/internal/log"
	"calgrid/reactive"
)

// pager knows how page identities follow each other and how to build a
// page that is not in the collection yet.
type pager[E any] interface {
	next(index int) int
	prev(index int) int
	generate(index int, before, after *Page[E]) *Page[E]
}

// Navigator owns an ordered page collection and the current position in it.
type Navigator[E any] struct {
	pages    []*Page[E]
	pager    pager[E]
	infinite bool

	position *reactive.Cell[int]
	identity *reactive.Cell[int]

	PrevEnabled *reactive.Computed[bool]
	NextEnabled *reactive.Computed[bool]
}

func newNavigator[E any](pages []*Page[E], p pager[E], infinite bool) *Navigator[E] {
	n := &Navigator[E]{
		pages:    pages,
		pager:    p,
		infinite: infinite,
		position: reactive.NewCell(0),
		identity: reactive.NewCell(pages[0].Index),
	}
	n.PrevEnabled = reactive.NewComputed(func() bool {
		return n.infinite || n.position.Get() > 0
	})
	n.NextEnabled = reactive.NewComputed(func() bool {
		return n.infinite || n.position.Get() < len(n.pages)-1
	})
	return n
}

// Current returns the page at the current position.
func (n *Navigator[E]) Current() *Page[E] {
	return n.pages[n.position.Get()]
}

// Position is the array position of the current page.
func (n *Navigator[E]) Position() int {
	return n.position.Get()
}

// Pages returns the page collection in chronological order. The slice is
// shared with the navigator and is replaced, not mutated, on navigation.
func (n *Navigator[E]) Pages() []*Page[E] {
	return n.pages
}

// Days flattens every page, shadow copies included.
func (n *Navigator[E]) Days() []*Day[E] {
	var out []*Day[E]
	for _, p := range n.pages {
		out = append(out, p.Days...)
	}
	return out
}

// OnChange runs fn whenever the current page changes identity.
func (n *Navigator[E]) OnChange(fn func(*Page[E])) (unsubscribe func()) {
	return n.identity.Subscribe(func(int) { fn(n.Current()) })
}

func (n *Navigator[E]) Next() {
	if !n.infinite {
		if pos := n.position.Get(); pos < len(n.pages)-1 {
			n.moveTo(pos + 1)
		}
		return
	}
	n.JumpTo(n.pager.next(n.Current().Index))
}

func (n *Navigator[E]) Prev() {
	if !n.infinite {
		if pos := n.position.Get(); pos > 0 {
			n.moveTo(pos - 1)
		}
		return
	}
	n.JumpTo(n.pager.prev(n.Current().Index))
}

// JumpTo moves to the page with the given identity. In infinite mode a
// missing page is generated: next to the collection when it is adjacent to
// either end, otherwise the collection is replaced by that single page.
func (n *Navigator[E]) JumpTo(index int) {
	if index == n.Current().Index {
		return
	}
	for pos, p := range n.pages {
		if p.Index == index {
			n.moveTo(pos)
			return
		}
	}
	if !n.infinite {
		return
	}

	first, last := n.pages[0], n.pages[len(n.pages)-1]
	switch index {
	case n.pager.prev(first.Index):
		page := n.pager.generate(index, nil, first)
		n.pages = append([]*Page[E]{page}, n.pages...)
		appLog.Debug("calendar: generated page", "index", index, "at", "front")
		n.moveTo(0)
	case n.pager.next(last.Index):
		page := n.pager.generate(index, last, nil)
		n.pages = append(n.pages, page)
		appLog.Debug("calendar: generated page", "index", index, "at", "back")
		n.moveTo(len(n.pages) - 1)
	default:
		page := n.pager.generate(index, nil, nil)
		appLog.Debug("calendar: teleport resets pages", "index", index, "discarded", len(n.pages))
		n.pages = []*Page[E]{page}
		n.moveTo(0)
	}
}

func (n *Navigator[E]) moveTo(pos int) {
	n.position.Set(pos)
	n.identity.Set(n.pages[pos].Index)
}

// bindPeriod ties a period cell to the navigator: page changes are written
// to the cell and writes to the cell navigate. normalize clamps a written
// value; a value the navigator cannot reach is reverted to the current page.
func bindPeriod[E any, P comparable](
	n *Navigator[E],
	period *reactive.Cell[P],
	fromPage func(*Page[E]) P,
	normalize func(P) P,
	toIndex func(P) int,
) {
	n.OnChange(func(p *Page[E]) {
		period.Set(fromPage(p))
	})
	period.Subscribe(func(v P) {
		if nv := normalize(v); nv != v {
			period.Set(nv)
			return
		}
		n.JumpTo(toIndex(v))
		if cur := fromPage(n.Current()); cur != v {
			period.Set(cur)
		}
	})
}

type monthPager[E any] struct {
	gen        *Generator[E]
	linker     *linker[E]
	loc        *time.Location
	fullWeeks  bool
	fixedWeeks bool
}

func (m *monthPager[E]) next(index int) int { return index + 1 }
func (m *monthPager[E]) prev(index int) int { return index - 1 }

func (m *monthPager[E]) generate(index int, before, after *Page[E]) *Page[E] {
	year, month := dates.FromMonthYearIndex(index)
	first := time.Date(year, month, 1, 0, 0, 0, 0, m.loc)
	core := m.gen.Range(first, dates.EndOfMonth(first))
	return monthPage(index, m.linker.link(core, before, after, m.fullWeeks, m.fixedWeeks))
}

type weekPager[E any] struct {
	gen      *Generator[E]
	loc      *time.Location
	firstDay time.Weekday
}

func (w *weekPager[E]) start(index int) time.Time {
	return dates.WeekStart(index/100, index%100, w.firstDay, w.loc)
}

func (w *weekPager[E]) shift(index, days int) int {
	year, week := dates.Week(w.start(index).AddDate(0, 0, days), w.firstDay)
	return WeekIndex(year, week)
}

func (w *weekPager[E]) next(index int) int { return w.shift(index, 7) }
func (w *weekPager[E]) prev(index int) int { return w.shift(index, -7) }

func (w *weekPager[E]) generate(index int, _, _ *Page[E]) *Page[E] {
	start := w.start(index)
	return weekPage(w.gen.Range(start, start.AddDate(0, 0, 6)), w.firstDay)
}
