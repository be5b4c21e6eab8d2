package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tonhe/rotor/internal/app"
	"github.com/tonhe/rotor/internal/config"
	"github.com/tonhe/rotor/internal/engine"
	"github.com/tonhe/rotor/internal/logging"
	"golang.org/x/term"
)

func runCmd(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	interval := fs.Float64("interval", 0, "Rotation interval in minutes (default from config)")
	metricsAddr := fs.String("metrics", "", "Serve Prometheus metrics on this address")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: rotor run [--interval MINUTES] [--metrics ADDR]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg := mustLoadConfig()
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *interval != 0 {
		if err := setInterval(cfg, *interval); err != nil {
			fatal(err)
		}
	}

	if err := RunHeadless(cfg); err != nil {
		fatal(err)
	}
}

// RunHeadless drives the rotator without the TUI until SIGINT or SIGTERM.
// Log lines go to stderr; when stdout is a terminal a status line with the
// uptime and countdown is kept up to date there.
func RunHeadless(cfg *config.Config) error {
	logger := logging.New(os.Stderr, cfg.LogLevel)

	a, err := app.New(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !a.ScheduleAutoStart() {
		if err := a.Rotator.Start(0); err != nil {
			return err
		}
	}
	logger.Info("running headless", "interval", cfg.Rotation.DefaultInterval, "zone", cfg.Zone.ID)

	var report func(engine.Snapshot)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		report = func(s engine.Snapshot) { writeStatus(os.Stdout, s) }
	}

	err = a.Run(ctx, report)
	if report != nil {
		fmt.Fprintln(os.Stdout)
	}
	snap := a.Rotator.Snapshot()
	logger.Info("stopped",
		"rotations", snap.RotationCount,
		"success_rate", snap.SuccessRate(),
		"uptime", engine.FormatUptime(snap.Uptime()),
	)
	return err
}

// writeStatus redraws a single status line in place.
func writeStatus(w io.Writer, s engine.Snapshot) {
	running := s.State == engine.RotatorRunning
	fmt.Fprintf(w, "\r\033[K%s  %-15s  %-7s  #%d  next %s  up %s  %d%%",
		s.State,
		s.Current.Address,
		s.Current.DeviceClass,
		s.RotationCount,
		engine.FormatCountdown(s.Countdown, running),
		engine.FormatUptime(s.Uptime()),
		s.SuccessRate(),
	)
}
