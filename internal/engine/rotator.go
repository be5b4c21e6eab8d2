package engine

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tonhe/rotor/internal/identity"
)

// ErrIntervalOutOfRange is returned when a rotation interval falls outside
// the configured [min, max] bounds. The interval is left unchanged.
var ErrIntervalOutOfRange = errors.New("rotation interval out of range")

// ErrClosed is returned by operations that would re-arm timers on a rotator
// that has been closed.
var ErrClosed = errors.New("rotator closed")

// RefreshTrigger is fired after a rotation when refresh-on-rotate is on.
// It must not block; its outcome is never observed by the rotator.
type RefreshTrigger interface {
	Refresh()
}

// Options configures a Rotator.
type Options struct {
	Interval        time.Duration
	MinInterval     time.Duration
	MaxInterval     time.Duration
	RefreshOnRotate bool
	Trigger         RefreshTrigger
	Scheduler       Scheduler
	Observers       []Observer
	Now             func() time.Time
	Logger          *log.Logger
}

// Rotator owns the current identity and replaces it on a timer. All state
// transitions happen under mu, so timer callbacks and user commands are
// serialized onto a single logical thread of control.
type Rotator struct {
	mu      sync.Mutex
	sampler *identity.Sampler
	sched   Scheduler
	trigger RefreshTrigger
	now     func() time.Time
	logger  *log.Logger

	minInterval     time.Duration
	maxInterval     time.Duration
	refreshOnRotate bool

	current       identity.Identity
	rotationCount int
	successCount  int
	running       bool
	startedAt     time.Time
	interval      time.Duration
	countdown     time.Duration

	// gen is bumped whenever timers are cancelled so that a callback which
	// was already waiting on mu when Stop ran becomes a no-op.
	gen           uint64
	rotateTask    Task
	countdownTask Task

	observers   []Observer
	subscribers []chan Event
	closed      bool
}

// NewRotator creates a stopped Rotator with a freshly sampled identity and
// notifies the observers of the initial state.
func NewRotator(sampler *identity.Sampler, opts Options) (*Rotator, error) {
	if sampler == nil {
		return nil, errors.New("rotator: nil sampler")
	}
	if opts.MinInterval <= 0 || opts.MaxInterval < opts.MinInterval {
		return nil, fmt.Errorf("rotator: invalid interval bounds [%s, %s]", opts.MinInterval, opts.MaxInterval)
	}
	if opts.Interval < opts.MinInterval || opts.Interval > opts.MaxInterval {
		return nil, fmt.Errorf("rotator: default %w: %s not in [%s, %s]",
			ErrIntervalOutOfRange, opts.Interval, opts.MinInterval, opts.MaxInterval)
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TickerScheduler{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	r := &Rotator{
		sampler:         sampler,
		sched:           opts.Scheduler,
		trigger:         opts.Trigger,
		now:             opts.Now,
		logger:          opts.Logger.With("component", "rotator"),
		minInterval:     opts.MinInterval,
		maxInterval:     opts.MaxInterval,
		refreshOnRotate: opts.RefreshOnRotate,
		interval:        opts.Interval,
		observers:       append([]Observer(nil), opts.Observers...),
	}
	r.current = sampler.Sample()
	r.startedAt = r.now()

	r.mu.Lock()
	r.notifyLocked(EventInit, identity.Identity{})
	r.mu.Unlock()
	return r, nil
}

// Start begins periodic rotation. A zero interval keeps the current one.
// Calling Start while running is a no-op, so there is never more than one
// rotation timer. A closed rotator returns ErrClosed.
func (r *Rotator) Start(interval time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if r.running {
		return nil
	}
	if interval != 0 {
		if err := r.checkInterval(interval); err != nil {
			return err
		}
		r.interval = interval
	}
	r.startLocked()
	r.logger.Info("rotation started", "interval", r.interval)
	r.notifyLocked(EventStart, identity.Identity{})
	return nil
}

// Stop cancels the rotation timer and the countdown. It is a no-op when the
// rotator is already stopped.
func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopLocked() {
		r.logger.Info("rotation stopped")
		r.notifyLocked(EventStop, identity.Identity{})
	}
}

// Rotate replaces the current identity immediately and returns it. It is
// valid in both states and never changes whether the timer is running.
func (r *Rotator) Rotate() identity.Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rotateLocked()
}

// Reset stops the timer, zeroes the counters, restarts the uptime window
// and samples a new identity. It does not restart the timer.
func (r *Rotator) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopLocked() {
		r.notifyLocked(EventStop, identity.Identity{})
	}
	r.rotationCount = 0
	r.successCount = 0
	r.startedAt = r.now()
	r.current = r.sampler.Sample()
	r.logger.Info("rotator reset")
	r.notifyLocked(EventReset, identity.Identity{})
}

// UpdateInterval sets the rotation period in minutes. Values outside the
// configured bounds return ErrIntervalOutOfRange and leave the interval
// unchanged. When running, the timer restarts so the new period applies
// immediately.
func (r *Rotator) UpdateInterval(minutes float64) error {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return fmt.Errorf("%w: %v minutes", ErrIntervalOutOfRange, minutes)
	}
	d := time.Duration(minutes * float64(time.Minute))

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if err := r.checkInterval(d); err != nil {
		r.logger.Warn("interval rejected", "minutes", minutes, "min", r.minInterval, "max", r.maxInterval)
		return err
	}
	r.interval = d
	if r.running {
		r.stopLocked()
		r.startLocked()
	}
	r.logger.Info("interval updated", "interval", d)
	r.notifyLocked(EventInterval, identity.Identity{})
	return nil
}

// Snapshot returns a point-in-time copy of the rotator state.
func (r *Rotator) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Current returns the active identity.
func (r *Rotator) Current() identity.Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Running reports whether the rotation timer is active.
func (r *Rotator) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Interval returns the configured rotation period.
func (r *Rotator) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}

// Uptime returns the time elapsed since the current uptime window began.
func (r *Rotator) Uptime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.now().Sub(r.startedAt)
}

// Bounds returns the accepted interval range.
func (r *Rotator) Bounds() (time.Duration, time.Duration) {
	return r.minInterval, r.maxInterval
}

// Subscribe returns a channel that receives an event after each state
// change. Slow readers miss events rather than block the rotator.
func (r *Rotator) Subscribe() <-chan Event {
	ch := make(chan Event, 1)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		close(ch)
		return ch
	}
	r.subscribers = append(r.subscribers, ch)
	return ch
}

// Close stops the rotator and closes all subscriber channels.
func (r *Rotator) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.stopLocked()
	r.closed = true
	for _, ch := range r.subscribers {
		close(ch)
	}
	r.subscribers = nil
}

func (r *Rotator) checkInterval(d time.Duration) error {
	if d < r.minInterval || d > r.maxInterval {
		return fmt.Errorf("%w: %s not in [%s, %s]", ErrIntervalOutOfRange, d, r.minInterval, r.maxInterval)
	}
	return nil
}

// startLocked schedules the rotation timer and the countdown ticker.
// Must be called while holding mu.
func (r *Rotator) startLocked() {
	r.gen++
	gen := r.gen
	r.running = true
	r.countdown = r.interval
	r.rotateTask = r.sched.Every(r.interval, func() { r.tick(gen) })
	r.countdownTask = r.sched.Every(time.Second, func() { r.countdownTick(gen) })
}

// stopLocked cancels both timers and reports whether anything was running.
// Must be called while holding mu.
func (r *Rotator) stopLocked() bool {
	if !r.running {
		return false
	}
	r.running = false
	r.gen++
	if r.rotateTask != nil {
		r.rotateTask.Cancel()
		r.rotateTask = nil
	}
	if r.countdownTask != nil {
		r.countdownTask.Cancel()
		r.countdownTask = nil
	}
	r.countdown = 0
	return true
}

func (r *Rotator) tick(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running || r.gen != gen {
		return
	}
	r.rotateLocked()
}

func (r *Rotator) countdownTick(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running || r.gen != gen {
		return
	}
	r.countdown -= time.Second
	if r.countdown < 0 {
		r.countdown = 0
	}
}

// rotateLocked performs one rotation. Counters and the identity are updated
// before anyone is notified. Must be called while holding mu.
func (r *Rotator) rotateLocked() identity.Identity {
	prev := r.current
	r.rotationCount++
	r.current = r.sampler.Sample()
	r.successCount++
	if r.running {
		r.countdown = r.interval
	}

	r.logger.Debug("rotated",
		"count", r.rotationCount,
		"address", r.current.Address,
		"device", r.current.DeviceClass,
	)
	r.notifyLocked(EventRotate, prev)

	if r.refreshOnRotate && r.trigger != nil {
		r.trigger.Refresh()
	}
	return r.current
}

func (r *Rotator) snapshotLocked() Snapshot {
	return Snapshot{
		Current:       r.current,
		State:         r.stateLocked(),
		RotationCount: r.rotationCount,
		SuccessCount:  r.successCount,
		StartedAt:     r.startedAt,
		Interval:      r.interval,
		Countdown:     r.countdown,
		TakenAt:       r.now(),
	}
}

func (r *Rotator) stateLocked() RotatorState {
	if r.running {
		return RotatorRunning
	}
	return RotatorStopped
}

// notifyLocked delivers an event to observers and, non-blocking, to all
// subscribers. Must be called while holding mu.
func (r *Rotator) notifyLocked(kind EventKind, prev identity.Identity) {
	event := Event{Kind: kind, Previous: prev, Snapshot: r.snapshotLocked()}
	for _, o := range r.observers {
		o.Observe(event)
	}
	for _, ch := range r.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// SuccessRate returns the rounded percentage of successful rotations.
// Zero rotations count as 100%.
func SuccessRate(success, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(success) * 100 / float64(total)))
}
