// Package metrics exports rotator activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tonhe/rotor/internal/engine"
)

// Collector is an engine.Observer that mirrors rotator events into
// Prometheus metrics on its own registry.
type Collector struct {
	registry   *prometheus.Registry
	rotations  prometheus.Counter
	successes  prometheus.Counter
	refreshes  prometheus.Counter
	running    prometheus.Gauge
	interval   prometheus.Gauge
	identities *prometheus.CounterVec
}

// NewCollector registers all rotor metrics. uptime is sampled on scrape.
func NewCollector(uptime func() time.Duration) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		rotations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rotor_rotations_total",
			Help: "Identity rotations since process start.",
		}),
		successes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rotor_successful_rotations_total",
			Help: "Identity rotations that completed without error.",
		}),
		refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rotor_refreshes_total",
			Help: "Zone script refresh requests.",
		}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rotor_running",
			Help: "1 while the rotation timer is active.",
		}),
		interval: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rotor_interval_seconds",
			Help: "Configured rotation period.",
		}),
		identities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rotor_identities_total",
			Help: "Sampled identities by device class and region.",
		}, []string{"device_class", "region"}),
	}
	c.registry.MustRegister(c.rotations, c.successes, c.refreshes, c.running, c.interval, c.identities)
	if uptime != nil {
		c.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "rotor_uptime_seconds",
			Help: "Seconds since the current uptime window began.",
		}, func() float64 { return uptime().Seconds() }))
	}
	return c
}

// Observe updates the metrics for one rotator event.
func (c *Collector) Observe(e engine.Event) {
	snap := e.Snapshot
	if snap.State == engine.RotatorRunning {
		c.running.Set(1)
	} else {
		c.running.Set(0)
	}
	c.interval.Set(snap.Interval.Seconds())

	switch e.Kind {
	case engine.EventRotate:
		c.rotations.Inc()
		c.successes.Inc()
		c.countIdentity(snap)
	case engine.EventInit, engine.EventReset:
		c.countIdentity(snap)
	}
}

func (c *Collector) countIdentity(snap engine.Snapshot) {
	c.identities.WithLabelValues(snap.Current.DeviceClass.String(), snap.Current.Region).Inc()
}

// CountRefresh records one zone refresh.
func (c *Collector) CountRefresh() {
	c.refreshes.Inc()
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns the /metrics HTTP handler.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// shutdownTimeout bounds how long in-flight scrapes may hold up shutdown.
var shutdownTimeout = 5 * time.Second

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string, logger *log.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return c.ServeListener(ctx, ln, logger)
}

// ServeListener serves /metrics on ln until ctx is cancelled.
func (c *Collector) ServeListener(ctx context.Context, ln net.Listener, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics shutdown", "error", err)
		}
	}()

	logger.Info("metrics listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
