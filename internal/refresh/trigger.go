// Package refresh implements the ad-refresh trigger fired after rotations.
// It never contacts the ad network: a refresh is a logged, counted request
// for the configured zone.
package refresh

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Zone identifies the ad zone and script a refresh targets.
type Zone struct {
	ID        string
	SDK       string
	ScriptURL string
}

// Status summarises refresh activity for display.
type Status struct {
	Count       int
	LastRefresh time.Time
}

// Active reports whether at least one refresh has been requested.
func (s Status) Active() bool {
	return s.Count > 0
}

// LogTrigger records refresh requests and logs them. It never blocks and
// never fails, so the rotator can fire it while holding its lock.
type LogTrigger struct {
	mu     sync.Mutex
	zone   Zone
	logger *log.Logger
	now    func() time.Time
	status Status
	hooks  []func(Zone)
}

// NewLogTrigger creates a trigger for zone. A nil logger uses log.Default.
func NewLogTrigger(zone Zone, logger *log.Logger) *LogTrigger {
	if logger == nil {
		logger = log.Default()
	}
	return &LogTrigger{
		zone:   zone,
		logger: logger.With("component", "refresh"),
		now:    time.Now,
	}
}

// OnRefresh registers fn to run after each refresh. Hooks must not block.
func (t *LogTrigger) OnRefresh(fn func(Zone)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hooks = append(t.hooks, fn)
}

// Refresh records a refresh request for the zone.
func (t *LogTrigger) Refresh() {
	t.mu.Lock()
	t.status.Count++
	t.status.LastRefresh = t.now()
	count := t.status.Count
	hooks := append([]func(Zone){}, t.hooks...)
	t.mu.Unlock()

	t.logger.Info("zone script refreshed",
		"zone", t.zone.ID,
		"sdk", t.zone.SDK,
		"script", t.zone.ScriptURL,
		"count", count,
	)
	for _, fn := range hooks {
		fn(t.zone)
	}
}

// Status returns the current refresh counters.
func (t *LogTrigger) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Zone returns the zone this trigger refreshes.
func (t *LogTrigger) Zone() Zone {
	return t.zone
}
