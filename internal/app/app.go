// Package app wires the rotator to its collaborators: the refresh trigger,
// the activity log and the metrics collector.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tonhe/rotor/internal/config"
	"github.com/tonhe/rotor/internal/engine"
	"github.com/tonhe/rotor/internal/identity"
	"github.com/tonhe/rotor/internal/metrics"
	"github.com/tonhe/rotor/internal/refresh"
	"golang.org/x/sync/errgroup"
)

// App owns one rotator and everything observing it. It is created
// explicitly and torn down with Close.
type App struct {
	Config  *config.Config
	Rotator *engine.Rotator
	Log     *engine.EventLog
	Trigger *refresh.LogTrigger
	Metrics *metrics.Collector
	Logger  *log.Logger

	sched     engine.Scheduler
	autoStart engine.Task
}

// New validates cfg and builds the rotator graph. A nil scheduler uses the
// wall clock.
func New(cfg *config.Config, logger *log.Logger, sched engine.Scheduler) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	if sched == nil {
		sched = engine.TickerScheduler{}
	}

	sampler, err := identity.NewSampler(cfg.Pools())
	if err != nil {
		return nil, err
	}

	a := &App{
		Config: cfg,
		Log:    engine.NewEventLog(cfg.System.MaxLogEntries),
		Logger: logger,
		sched:  sched,
	}
	a.Metrics = metrics.NewCollector(a.uptime)
	a.Trigger = refresh.NewLogTrigger(refresh.Zone{
		ID:        cfg.Zone.ID,
		SDK:       cfg.Zone.SDK,
		ScriptURL: cfg.Zone.ScriptURL,
	}, logger)
	a.Trigger.OnRefresh(func(z refresh.Zone) {
		a.Metrics.CountRefresh()
		a.Log.Add(engine.LevelSuccess, "zone "+z.ID+" script refreshed")
	})

	a.Rotator, err = engine.NewRotator(sampler, engine.Options{
		Interval:        cfg.Rotation.DefaultInterval,
		MinInterval:     cfg.Rotation.MinInterval,
		MaxInterval:     cfg.Rotation.MaxInterval,
		RefreshOnRotate: cfg.System.RefreshOnRotate,
		Trigger:         a.Trigger,
		Scheduler:       sched,
		Observers:       []engine.Observer{a.Log, a.Metrics},
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) uptime() time.Duration {
	if a.Rotator == nil {
		return 0
	}
	return a.Rotator.Uptime()
}

// ScheduleAutoStart starts the rotator after the configured delay when
// auto_start is enabled. It reports whether a start was scheduled.
func (a *App) ScheduleAutoStart() bool {
	if !a.Config.System.AutoStart || a.autoStart != nil {
		return false
	}
	a.autoStart = a.sched.After(a.Config.System.AutoStartDelay, func() {
		// Close may race a delayed start that already fired.
		if err := a.Rotator.Start(0); err != nil && !errors.Is(err, engine.ErrClosed) {
			a.Logger.Error("auto start failed", "error", err)
		}
	})
	return true
}

// Run blocks until ctx is cancelled. It serves metrics when metrics_addr is
// set and calls report once per second with the current snapshot.
func (a *App) Run(ctx context.Context, report func(engine.Snapshot)) error {
	g, ctx := errgroup.WithContext(ctx)

	if addr := a.Config.MetricsAddr; addr != "" {
		g.Go(func() error {
			return a.Metrics.Serve(ctx, addr, a.Logger)
		})
	}

	if report != nil {
		g.Go(func() error {
			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					report(a.Rotator.Snapshot())
				case <-ctx.Done():
					return nil
				}
			}
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		return nil
	})
	return g.Wait()
}

// Close cancels a pending auto start and stops the rotator.
func (a *App) Close() {
	if a.autoStart != nil {
		a.autoStart.Cancel()
	}
	a.Rotator.Close()
}
