// Package calendar builds date-picker state: day grids grouped into month or
// week pages, navigation between pages and the selection policies applied
// to days.
//
// A Calendar holds the normalized configuration. Each Monthly or Weekly call
// returns an independent view with its own days; flags are shared only
// between a day and its shadow copies inside one view.
package calendar

import (
	"calgrid/internal/locale"
	appLog "calgrid/internal/log"
)

// Calendar is the entry point built from Options.
type Calendar[E any] struct {
	opts *Normalized[E]
}

// New validates opts. Configuration errors wrap one of the Err* sentinels.
func New[E any](opts Options[E]) (*Calendar[E], error) {
	n, err := NormalizeOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Calendar[E]{opts: n}, nil
}

func (c *Calendar[E]) Options() *Normalized[E] {
	return c.opts
}

// Factory returns the day factory used by every view of c.
func (c *Calendar[E]) Factory() *Factory[E] {
	return c.opts.Factory
}

func (c *Calendar[E]) Monthly(opts MonthlyOptions) *MonthlyCalendar[E] {
	return newMonthly(c.opts, opts)
}

func (c *Calendar[E]) Weekly(opts WeeklyOptions) *WeeklyCalendar[E] {
	return newWeekly(c.opts, opts)
}

// Weekdays returns the seven column labels starting on the configured first
// day of the week. format is one of "i", "iii", "iiii", "iiiii" (default)
// or "iiiiii".
func (c *Calendar[E]) Weekdays(format ...string) []string {
	token := locale.DefaultToken
	if len(format) > 0 && format[0] != "" {
		token = format[0]
	}
	if !locale.Known(token) {
		appLog.Debug("calendar: unknown weekday format, using narrow names", "format", token)
	}
	return locale.Week(c.opts.FirstDayOfWeek, token, c.opts.Locale)
}

// TitleWeekdays is Weekdays with each label capitalized for the locale.
func (c *Calendar[E]) TitleWeekdays(format ...string) []string {
	return locale.Title(c.Weekdays(format...), c.opts.Locale)
}
