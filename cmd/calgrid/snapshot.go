package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"calgrid/calendar"
	"calgrid/internal/config"
	"calgrid/internal/dates"
	appLog "calgrid/internal/log"
)

const (
	viewMonth = "month"
	viewWeek  = "week"

	modeSingle   = "single"
	modeMultiple = "multiple"
	modeRange    = "range"
)

// actions are replayed against a fresh calendar, in field order.
type actions struct {
	view     string
	jump     string
	next     int
	prev     int
	clicks   []string
	mode     string
	hover    string
	weekdays string
	title    bool
}

type day = struct{}

type daySnapshot struct {
	Date        string `json:"date"`
	OtherPeriod bool   `json:"other_period,omitempty"`
	Copied      bool   `json:"copied,omitempty"`
	Today       bool   `json:"today,omitempty"`
	Weekend     bool   `json:"weekend,omitempty"`
	Disabled    bool   `json:"disabled,omitempty"`
	Selected    bool   `json:"selected,omitempty"`
	Between     bool   `json:"between,omitempty"`
	Hovered     bool   `json:"hovered,omitempty"`
}

type pageSnapshot struct {
	Index int           `json:"index"`
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Week  int           `json:"week,omitempty"`
	Days  []daySnapshot `json:"days"`
}

type snapshot struct {
	View        string       `json:"view"`
	Weekdays    []string     `json:"weekdays"`
	Current     pageSnapshot `json:"current"`
	PageCount   int          `json:"page_count"`
	PrevEnabled bool         `json:"prev_enabled"`
	NextEnabled bool         `json:"next_enabled"`
	Selected    []string     `json:"selected"`
	Between     []string     `json:"between"`
	Hovered     []string     `json:"hovered"`
}

// view is the part of a month or week calendar the CLI drives.
type view struct {
	nav  *calendar.Navigator[day]
	sel  *calendar.Selection[day]
	jump func(time.Time)
}

func buildSnapshot(conf *config.Config, baseDir string, a actions) (snapshot, error) {
	opts, err := config.CalendarOptions[day](conf, baseDir)
	if err != nil {
		return snapshot{}, err
	}
	cal, err := calendar.New(opts)
	if err != nil {
		return snapshot{}, err
	}
	norm := cal.Options()

	var v view
	switch a.view {
	case viewWeek:
		w := cal.Weekly(conf.WeeklyOptions())
		v = view{nav: w.Navigator, sel: w.Selection, jump: func(t time.Time) {
			year, week := dates.Week(t, norm.FirstDayOfWeek)
			w.SetWeek(year, week)
		}}
	default:
		m := cal.Monthly(conf.MonthlyOptions())
		v = view{nav: m.Navigator, sel: m.Selection, jump: func(t time.Time) {
			m.SetPeriod(t.Year(), t.Month())
		}}
	}

	if a.jump != "" {
		t, err := dates.Parse(a.jump, norm.Location)
		if err != nil {
			return snapshot{}, fmt.Errorf("jump: %w: %w", calendar.ErrInvalidDate, err)
		}
		v.jump(t)
	}
	for i := 0; i < a.next; i++ {
		v.nav.Next()
	}
	for i := 0; i < a.prev; i++ {
		v.nav.Prev()
	}

	click := v.sel.SelectSingle
	switch a.mode {
	case modeMultiple:
		click = v.sel.SelectMultiple
	case modeRange:
		click = v.sel.SelectRange
	}
	for _, s := range a.clicks {
		d, err := lookup(v, s, norm.Location)
		if err != nil {
			return snapshot{}, err
		}
		if d == nil {
			appLog.Warn("date is not displayed, click ignored", "date", s)
			continue
		}
		click(d)
	}
	if a.hover != "" {
		d, err := lookup(v, a.hover, norm.Location)
		if err != nil {
			return snapshot{}, err
		}
		if d != nil {
			v.sel.HoverMultiple(d)
		}
	}

	labels := cal.Weekdays(a.weekdays)
	if a.title {
		labels = cal.TitleWeekdays(a.weekdays)
	}

	return snapshot{
		View:        a.view,
		Weekdays:    labels,
		Current:     newPageSnapshot(v.nav.Current()),
		PageCount:   len(v.nav.Pages()),
		PrevEnabled: v.nav.PrevEnabled.Get(),
		NextEnabled: v.nav.NextEnabled.Get(),
		Selected:    dayIDs(v.sel.Selected.Get()),
		Between:     dayIDs(v.sel.Between.Get()),
		Hovered:     dayIDs(v.sel.Hovered.Get()),
	}, nil
}

// lookup returns the canonical day for s, or nil when it is not displayed.
func lookup(v view, s string, loc *time.Location) (*calendar.Day[day], error) {
	t, err := dates.Parse(s, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", calendar.ErrInvalidDate, s, err)
	}
	id := dates.Key(t)
	for _, d := range v.sel.Canonical.Get() {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func newPageSnapshot(p *calendar.Page[day]) pageSnapshot {
	out := pageSnapshot{Index: p.Index, Year: p.Year, Month: int(p.Month), Week: p.Week}
	out.Days = make([]daySnapshot, 0, len(p.Days))
	for _, d := range p.Days {
		out.Days = append(out.Days, daySnapshot{
			Date:        d.ID,
			OtherPeriod: d.OtherPeriod,
			Copied:      d.Copied,
			Today:       d.IsToday,
			Weekend:     d.IsWeekend,
			Disabled:    d.Disabled.Get(),
			Selected:    d.Selected.Get(),
			Between:     d.Between.Get(),
			Hovered:     d.Hovered.Get(),
		})
	}
	return out
}

func dayIDs(days []*calendar.Day[day]) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.ID)
	}
	return out
}

func writeSnapshot(w io.Writer, s snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
