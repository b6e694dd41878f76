package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"calgrid/calendar"
	"calgrid/internal/dates"
	appLog "calgrid/internal/log"
)

// MonthlyConfig mirrors calendar.MonthlyOptions.
type MonthlyConfig struct {
	Infinite   bool `yaml:"infinite" json:"infinite"`
	FullWeeks  bool `yaml:"full_weeks" json:"full_weeks"`
	FixedWeeks bool `yaml:"fixed_weeks" json:"fixed_weeks"`
}

// WeeklyConfig mirrors calendar.WeeklyOptions.
type WeeklyConfig struct {
	Infinite bool `yaml:"infinite" json:"infinite"`
}

// Config is the top-level calendar configuration.
type Config struct {
	// Timezone is the IANA zone dates are anchored in. Empty means the
	// process local zone.
	Timezone string `yaml:"timezone" json:"timezone"`

	// Dates accept any format understood by dates.Parse ("2022-03-15",
	// "March 15, 2022", ...). Empty means unset.
	StartOn string `yaml:"start_on" json:"start_on"`
	MinDate string `yaml:"min_date" json:"min_date"`
	MaxDate string `yaml:"max_date" json:"max_date"`

	Disabled      []string `yaml:"disabled" json:"disabled"`
	DisabledRules []string `yaml:"disabled_rules" json:"disabled_rules"`
	DisabledCron  []string `yaml:"disabled_cron" json:"disabled_cron"`
	// DisabledICS lists iCalendar files, relative paths being resolved
	// against the config file directory.
	DisabledICS []string `yaml:"disabled_ics" json:"disabled_ics"`

	// FirstDayOfWeek is a weekday name ("monday") or number (0 = sunday).
	FirstDayOfWeek string `yaml:"first_day_of_week" json:"first_day_of_week"`

	Locale       string   `yaml:"locale" json:"locale"`
	PreSelection []string `yaml:"pre_selection" json:"pre_selection"`

	Monthly MonthlyConfig `yaml:"monthly" json:"monthly"`
	Weekly  WeeklyConfig  `yaml:"weekly" json:"weekly"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		FirstDayOfWeek: "sunday",
		Locale:         "en",
		Disabled:       []string{},
		DisabledRules:  []string{},
		DisabledCron:   []string{},
		DisabledICS:    []string{},
		PreSelection:   []string{},
		Monthly:        MonthlyConfig{Infinite: true, FullWeeks: true},
		Weekly:         WeeklyConfig{},
	}
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts a weekday name, its three-letter prefix or a number
// within 0..6.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("%w: %d", calendar.ErrInvalidFirstDayOfWeek, n)
		}
		return time.Weekday(n), nil
	}
	for name, wd := range weekdayNames {
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", calendar.ErrInvalidFirstDayOfWeek, s)
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.FirstDayOfWeek == "" {
		c.FirstDayOfWeek = "sunday"
	}
	if _, err := ParseWeekday(c.FirstDayOfWeek); err != nil {
		// Unknown value; fall back to sunday to avoid surprising layouts.
		appLog.Warn("config: invalid first_day_of_week, using sunday", "value", c.FirstDayOfWeek)
		c.FirstDayOfWeek = "sunday"
	}
	if c.Locale == "" {
		c.Locale = "en"
	}
	if c.Disabled == nil {
		c.Disabled = []string{}
	}
	if c.DisabledRules == nil {
		c.DisabledRules = []string{}
	}
	if c.DisabledCron == nil {
		c.DisabledCron = []string{}
	}
	if c.DisabledICS == nil {
		c.DisabledICS = []string{}
	}
	if c.PreSelection == nil {
		c.PreSelection = []string{}
	}
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c *Config) MonthlyOptions() calendar.MonthlyOptions {
	return calendar.MonthlyOptions{
		Infinite:   c.Monthly.Infinite,
		FullWeeks:  c.Monthly.FullWeeks,
		FixedWeeks: c.Monthly.FixedWeeks,
	}
}

func (c *Config) WeeklyOptions() calendar.WeeklyOptions {
	return calendar.WeeklyOptions{Infinite: c.Weekly.Infinite}
}

// CalendarOptions converts c into calendar options. baseDir resolves
// relative DisabledICS paths.
func CalendarOptions[E any](c *Config, baseDir string) (calendar.Options[E], error) {
	var opts calendar.Options[E]

	loc, err := c.Location()
	if err != nil {
		return opts, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	opts.Location = loc

	fdow, err := ParseWeekday(c.FirstDayOfWeek)
	if err != nil {
		return opts, err
	}
	opts.FirstDayOfWeek = fdow
	opts.Locale = c.Locale

	single := []struct {
		name string
		raw  string
		dst  *time.Time
	}{
		{"start_on", c.StartOn, &opts.StartOn},
		{"min_date", c.MinDate, &opts.MinDate},
		{"max_date", c.MaxDate, &opts.MaxDate},
	}
	for _, f := range single {
		if strings.TrimSpace(f.raw) == "" {
			continue
		}
		t, err := parseDate(f.name, f.raw, loc)
		if err != nil {
			return opts, err
		}
		*f.dst = t
	}

	if opts.Disabled, err = parseDates("disabled", c.Disabled, loc); err != nil {
		return opts, err
	}
	if opts.PreSelection, err = parseDates("pre_selection", c.PreSelection, loc); err != nil {
		return opts, err
	}

	opts.DisabledRules = append([]string(nil), c.DisabledRules...)
	opts.DisabledCron = append([]string(nil), c.DisabledCron...)

	for _, p := range c.DisabledICS {
		if !filepath.IsAbs(p) && baseDir != "" {
			p = filepath.Join(baseDir, p)
		}
		body, err := os.ReadFile(p)
		if err != nil {
			return opts, fmt.Errorf("config: disabled_ics: %w", err)
		}
		opts.DisabledICS = append(opts.DisabledICS, body)
	}

	return opts, nil
}

func parseDate(field, raw string, loc *time.Location) (time.Time, error) {
	t, err := dates.Parse(raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("config: %s: %w: %q: %w", field, calendar.ErrInvalidDate, raw, err)
	}
	return t, nil
}

func parseDates(field string, raw []string, loc *time.Location) ([]time.Time, error) {
	out := make([]time.Time, 0, len(raw))
	for _, r := range raw {
		t, err := parseDate(field, r, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Load loads configuration from the given YAML path.
//
// A missing file is created with DefaultConfig and 0600 permissions, and
// the defaults are returned. An existing file is decoded over DefaultConfig,
// so omitted keys keep their defaults, and then normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			appLog.Info("config: writing default config", "path", path)
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".calgrid-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

func (c *Config) Save(path string) error {
	return Save(path, c)
}
