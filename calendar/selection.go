package calendar

import (
	"calgrid/reactive"
)

// Selection implements the click and hover policies over the canonical days
// of a page collection. Shadow days may be passed to any listener: they
// share their flags with the canonical record and are located by date.
type Selection[E any] struct {
	Canonical *reactive.Computed[[]*Day[E]]
	Selected  *reactive.Computed[[]*Day[E]]
	Hovered   *reactive.Computed[[]*Day[E]]
	Between   *reactive.Computed[[]*Day[E]]
}

// Listeners bundles the selection operations as plain functions, ready to
// be bound to UI events.
type Listeners[E any] struct {
	SelectSingle   func(*Day[E])
	SelectMultiple func(*Day[E])
	SelectRange    func(*Day[E])
	HoverMultiple  func(*Day[E])
	ResetHover     func()
}

func newSelection[E any](days func() []*Day[E]) *Selection[E] {
	canonical := reactive.NewComputed(func() []*Day[E] {
		all := days()
		out := make([]*Day[E], 0, len(all))
		for _, d := range all {
			if !d.Copied {
				out = append(out, d)
			}
		}
		return out
	})
	filter := func(cell func(*Day[E]) *reactive.Cell[bool]) *reactive.Computed[[]*Day[E]] {
		return reactive.NewComputed(func() []*Day[E] {
			var out []*Day[E]
			for _, d := range canonical.Get() {
				if cell(d).Get() {
					out = append(out, d)
				}
			}
			return out
		})
	}
	return &Selection[E]{
		Canonical: canonical,
		Selected:  filter(func(d *Day[E]) *reactive.Cell[bool] { return d.Selected }),
		Hovered:   filter(func(d *Day[E]) *reactive.Cell[bool] { return d.Hovered }),
		Between:   filter(func(d *Day[E]) *reactive.Cell[bool] { return d.Between }),
	}
}

func (s *Selection[E]) Listeners() Listeners[E] {
	return Listeners[E]{
		SelectSingle:   s.SelectSingle,
		SelectMultiple: s.SelectMultiple,
		SelectRange:    s.SelectRange,
		HoverMultiple:  s.HoverMultiple,
		ResetHover:     s.ResetHover,
	}
}

// SelectSingle leaves day as the only selected day.
func (s *Selection[E]) SelectSingle(day *Day[E]) {
	for _, d := range s.Selected.Get() {
		d.Selected.Set(false)
	}
	day.Selected.Set(true)
}

// SelectMultiple toggles day.
func (s *Selection[E]) SelectMultiple(day *Day[E]) {
	day.Selected.Update(func(v bool) bool { return !v })
}

// SelectRange builds a range from two clicks. A third click on an
// unselected day starts a new range; clicking a selected end removes it.
func (s *Selection[E]) SelectRange(day *Day[E]) {
	for _, d := range s.Between.Get() {
		d.Between.Set(false)
	}

	if selected := s.Selected.Get(); len(selected) >= 2 && !day.Selected.Get() {
		for _, d := range selected {
			d.Selected.Set(false)
		}
	}

	if selected := s.Selected.Get(); len(selected) == 1 {
		for _, d := range betweenDays(s.Canonical.Get(), selected[0], day) {
			d.Between.Set(true)
		}
	}

	day.Selected.Update(func(v bool) bool { return !v })
}

// HoverMultiple previews a range while exactly one day is selected.
func (s *Selection[E]) HoverMultiple(day *Day[E]) {
	selected := s.Selected.Get()
	if len(selected) != 1 {
		return
	}

	s.ResetHover()
	for _, d := range betweenDays(s.Canonical.Get(), selected[0], day) {
		d.Hovered.Set(true)
	}
	day.Hovered.Set(true)
}

func (s *Selection[E]) ResetHover() {
	for _, d := range s.Hovered.Get() {
		d.Hovered.Set(false)
	}
}

// betweenDays returns the canonical days strictly between a and b, in
// either click order. Nil when one of them is not displayed or when they
// are the same or adjacent days.
func betweenDays[E any](canonical []*Day[E], a, b *Day[E]) []*Day[E] {
	ia, ib := -1, -1
	for i, d := range canonical {
		if ia < 0 && d.ID == a.ID {
			ia = i
		}
		if ib < 0 && d.ID == b.ID {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return nil
	}
	if ia > ib {
		ia, ib = ib, ia
	}
	if ib-ia < 2 {
		return nil
	}
	return canonical[ia+1 : ib]
}
