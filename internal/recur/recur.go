// Package recur expands recurring date rules (RRULE, cron) and plain date
// lists into the concrete days of a requested window.
package recur

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/teambition/rrule-go"

	"calgrid/internal/dates"
	appLog "calgrid/internal/log"
)

// defaultMaxDaysPerSource caps the days a single source returns for one
// window.
const defaultMaxDaysPerSource = 5000

var (
	ErrEmptyRule = errors.New("recur: empty rule")
	// ErrSubDailyRule rejects HOURLY, MINUTELY and SECONDLY rules. Days are
	// the finest granularity a rule can disable.
	ErrSubDailyRule = errors.New("recur: rule frequency below daily")
)

// Source yields the days matched within [from, to], both inclusive calendar
// days. Results are truncated to midnight and may contain duplicates.
type Source interface {
	Between(from, to time.Time) []time.Time
}

// Dates is a fixed list of days.
type Dates []time.Time

func (d Dates) Between(from, to time.Time) []time.Time {
	var out []time.Time
	for _, t := range d {
		if dates.Before(t, from) || dates.After(t, to) {
			continue
		}
		out = append(out, dates.Truncate(t))
	}
	return out
}

// RRule matches the days of an RFC 5545 recurrence rule.
type RRule struct {
	spec string
	rule *rrule.RRule
}

// ParseRRule parses an RRULE body such as "FREQ=WEEKLY;BYDAY=SA,SU". A
// leading "RRULE:" prefix is accepted. Without DTSTART the rule is anchored
// at anchor. BYHOUR, BYMINUTE and BYSECOND only multiply the hits inside a
// matched day, so they are dropped.
func ParseRRule(spec string, anchor time.Time) (*RRule, error) {
	body := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(spec), "RRULE:"))
	if body == "" {
		return nil, ErrEmptyRule
	}

	opt, err := rrule.StrToROption(body)
	if err != nil {
		return nil, fmt.Errorf("recur: parse rrule %q: %w", spec, err)
	}
	if opt.Freq > rrule.DAILY {
		return nil, fmt.Errorf("%w: %q", ErrSubDailyRule, spec)
	}
	opt.Byhour, opt.Byminute, opt.Bysecond = nil, nil, nil
	if !strings.Contains(strings.ToUpper(body), "DTSTART") {
		opt.Dtstart = dates.Truncate(anchor)
	}

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("recur: build rrule %q: %w", spec, err)
	}
	return &RRule{spec: spec, rule: r}, nil
}

func (r *RRule) Between(from, to time.Time) []time.Time {
	start := dates.Truncate(from)
	end := endOfDay(to)

	var out []time.Time
	seen := make(map[string]struct{})
	iter := r.rule.Iterator()
	for {
		t, ok := iter()
		if !ok || t.After(end) {
			break
		}
		if t.Before(start) {
			continue
		}
		day := dates.Truncate(t.In(from.Location()))
		key := dates.Key(day)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, day)
		if len(out) >= defaultMaxDaysPerSource {
			appLog.Warn("recur: rrule expansion truncated", "rule", r.spec, "cap", defaultMaxDaysPerSource)
			break
		}
	}
	return out
}

// Cron matches the days on which a standard five-field cron schedule fires
// at least once, e.g. "0 0 * * 0,6" for weekends.
type Cron struct {
	spec     string
	schedule cron.Schedule
}

func ParseCron(spec string) (*Cron, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, ErrEmptyRule
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("recur: parse cron %q: %w", spec, err)
	}
	return &Cron{spec: spec, schedule: schedule}, nil
}

func (c *Cron) Between(from, to time.Time) []time.Time {
	loc := from.Location()
	end := endOfDay(to)

	var out []time.Time
	next := c.schedule.Next(dates.Truncate(from).Add(-time.Second))
	for !next.IsZero() && !next.After(end) {
		day := dates.Truncate(next.In(loc))
		out = append(out, day)
		if len(out) >= defaultMaxDaysPerSource {
			appLog.Warn("recur: cron expansion truncated", "spec", c.spec, "cap", defaultMaxDaysPerSource)
			break
		}
		// One hit per day is enough; skip the rest of that day.
		next = c.schedule.Next(day.AddDate(0, 0, 1).Add(-time.Second))
	}
	return out
}

// Multi merges several sources.
type Multi []Source

func (m Multi) Between(from, to time.Time) []time.Time {
	var out []time.Time
	for _, s := range m {
		out = append(out, s.Between(from, to)...)
	}
	return out
}

// KeySet expands src over [from, to] into a set of day keys.
func KeySet(src Source, from, to time.Time) map[string]struct{} {
	set := make(map[string]struct{})
	if src == nil {
		return set
	}
	for _, t := range src.Between(from, to) {
		set[dates.Key(t)] = struct{}{}
	}
	return set
}

func endOfDay(t time.Time) time.Time {
	return dates.Truncate(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
