package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"calgrid/internal/config"
	appLog "calgrid/internal/log"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	logLevel   string
	watch      bool
	actions    actions
}

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if flags.logLevel != "" {
		level, ok := appLog.ParseLevel(flags.logLevel)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown log level %q\n", flags.logLevel)
			os.Exit(2)
		}
		appLog.SetLevel(level)
	}

	appLog.Debug("calgrid starting", "config_path", flags.configPath, "view", flags.actions.view)

	if err := render(flags.configPath, flags.actions); err != nil {
		appLog.Error("failed to render calendar", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	if !flags.watch {
		return
	}

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := watchConfigFile(ctx, flags.configPath, func() error {
		return render(flags.configPath, flags.actions)
	}); err != nil {
		appLog.Error("config watcher failed", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	appLog.Info("calgrid exiting")
}

func render(path string, a actions) error {
	conf, err := config.Load(path)
	if err != nil {
		return err
	}
	snap, err := buildSnapshot(conf, filepath.Dir(path), a)
	if err != nil {
		return err
	}
	return writeSnapshot(os.Stdout, snap)
}

func parseFlags(args []string) (flagConfig, error) {
	var cfg flagConfig
	var selectDates string

	fs := flag.NewFlagSet("calgrid", flag.ContinueOnError)
	fs.StringVar(&cfg.configPath, "config", "calgrid.yaml", "Path to config file (created with defaults if missing)")
	fs.StringVar(&cfg.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&cfg.watch, "watch", false, "Print a new snapshot whenever the config file changes")
	fs.StringVar(&cfg.actions.view, "view", viewMonth, "Calendar view: month or week")
	fs.IntVar(&cfg.actions.next, "next", 0, "Move forward this many pages")
	fs.IntVar(&cfg.actions.prev, "prev", 0, "Move back this many pages")
	fs.StringVar(&cfg.actions.jump, "jump", "", "Jump to the page containing this date")
	fs.StringVar(&selectDates, "select", "", "Comma-separated dates to click, in order")
	fs.StringVar(&cfg.actions.mode, "mode", modeSingle, "Selection mode: single, multiple or range")
	fs.StringVar(&cfg.actions.hover, "hover", "", "Date to hover after selecting")
	fs.StringVar(&cfg.actions.weekdays, "weekdays", "", "Weekday label format: i, iii, iiii, iiiii or iiiiii")
	fs.BoolVar(&cfg.actions.title, "title", false, "Capitalize weekday labels")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	for _, s := range strings.Split(selectDates, ",") {
		if s = strings.TrimSpace(s); s != "" {
			cfg.actions.clicks = append(cfg.actions.clicks, s)
		}
	}

	switch cfg.actions.view {
	case viewMonth, viewWeek:
	default:
		return cfg, fmt.Errorf("unknown view %q", cfg.actions.view)
	}
	switch cfg.actions.mode {
	case modeSingle, modeMultiple, modeRange:
	default:
		return cfg, fmt.Errorf("unknown selection mode %q", cfg.actions.mode)
	}

	return cfg, nil
}
