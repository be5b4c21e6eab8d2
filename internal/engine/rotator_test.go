package engine

import (
	"errors"
	"io"
	"math"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tonhe/rotor/internal/identity"
)

// manualScheduler fires tasks only when the test asks it to.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	s         *manualScheduler
	period    time.Duration
	fn        func()
	repeat    bool
	cancelled bool
}

func (t *manualTask) Cancel() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.cancelled = true
}

func (s *manualScheduler) add(d time.Duration, fn func(), repeat bool) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTask{s: s, period: d, fn: fn, repeat: repeat}
	s.tasks = append(s.tasks, t)
	return t
}

func (s *manualScheduler) Every(d time.Duration, fn func()) Task { return s.add(d, fn, true) }
func (s *manualScheduler) After(d time.Duration, fn func()) Task { return s.add(d, fn, false) }

// active returns the uncancelled tasks with the given period.
func (s *manualScheduler) active(d time.Duration) []*manualTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*manualTask
	for _, t := range s.tasks {
		if !t.cancelled && t.period == d {
			out = append(out, t)
		}
	}
	return out
}

// fire runs every active task with the given period once.
func (s *manualScheduler) fire(d time.Duration) {
	for _, t := range s.active(d) {
		if !t.repeat {
			t.Cancel()
		}
		t.fn()
	}
}

type countingTrigger struct{ n int }

func (c *countingTrigger) Refresh() { c.n++ }

const (
	testMin     = time.Minute
	testMax     = time.Hour
	testDefault = 5 * time.Minute
)

type fixture struct {
	r       *Rotator
	sched   *manualScheduler
	trigger *countingTrigger
	clock   time.Time
	events  []Event
}

func newFixture(t *testing.T, refresh bool) *fixture {
	t.Helper()
	f := &fixture{
		sched:   &manualScheduler{},
		trigger: &countingTrigger{},
		clock:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	pools := identity.Pools{
		AddressTemplates: []string{"10.0.{x}.{y}"},
		Regions:          []string{"US", "JP"},
		Agents: map[identity.DeviceClass][]string{
			identity.Desktop: {"d"},
			identity.Mobile:  {"m"},
			identity.Tablet:  {"t"},
		},
	}
	now := func() time.Time { return f.clock }
	sampler, err := identity.NewSamplerWithSource(pools, rand.NewPCG(7, 9), now)
	if err != nil {
		t.Fatalf("NewSamplerWithSource() error: %v", err)
	}
	r, err := NewRotator(sampler, Options{
		Interval:        testDefault,
		MinInterval:     testMin,
		MaxInterval:     testMax,
		RefreshOnRotate: refresh,
		Trigger:         f.trigger,
		Scheduler:       f.sched,
		Observers:       []Observer{ObserverFunc(func(e Event) { f.events = append(f.events, e) })},
		Now:             now,
		Logger:          log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("NewRotator() error: %v", err)
	}
	f.r = r
	return f
}

func TestNewRotatorNotifiesInitialState(t *testing.T) {
	f := newFixture(t, false)
	if len(f.events) != 1 || f.events[0].Kind != EventInit {
		t.Fatalf("expected one init event, got %+v", f.events)
	}
	snap := f.r.Snapshot()
	if snap.State != RotatorStopped {
		t.Errorf("expected stopped, got %s", snap.State)
	}
	if snap.Current.Address == "" {
		t.Error("expected an initial identity")
	}
	if snap.SuccessRate() != 100 {
		t.Errorf("expected 100%% for zero rotations, got %d", snap.SuccessRate())
	}
}

func TestNewRotatorValidation(t *testing.T) {
	sampler, err := identity.NewSampler(identity.Pools{
		AddressTemplates: []string{"{x}.{y}.0.1"},
		Regions:          []string{"US"},
		Agents: map[identity.DeviceClass][]string{
			identity.Desktop: {"d"}, identity.Mobile: {"m"}, identity.Tablet: {"t"},
		},
	})
	if err != nil {
		t.Fatalf("NewSampler() error: %v", err)
	}
	tests := []struct {
		name string
		opts Options
	}{
		{"zero min", Options{Interval: time.Minute, MaxInterval: time.Hour}},
		{"max below min", Options{Interval: time.Minute, MinInterval: time.Hour, MaxInterval: time.Minute}},
		{"default out of range", Options{Interval: time.Second, MinInterval: time.Minute, MaxInterval: time.Hour}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Logger = log.New(io.Discard)
			if _, err := NewRotator(sampler, tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := NewRotator(nil, Options{}); err == nil {
		t.Error("expected error for nil sampler")
	}
}

func TestRotateThreeTimes(t *testing.T) {
	f := newFixture(t, false)
	for i := 0; i < 3; i++ {
		f.r.Rotate()
	}
	snap := f.r.Snapshot()
	if snap.RotationCount != 3 || snap.SuccessCount != 3 {
		t.Errorf("expected 3/3, got %d/%d", snap.RotationCount, snap.SuccessCount)
	}
	if snap.SuccessRate() != 100 {
		t.Errorf("expected 100%%, got %d", snap.SuccessRate())
	}
}

func TestRotateIncrementsByOne(t *testing.T) {
	f := newFixture(t, false)
	for i := 1; i <= 10; i++ {
		f.r.Rotate()
		snap := f.r.Snapshot()
		if snap.RotationCount != i {
			t.Fatalf("after %d rotations count is %d", i, snap.RotationCount)
		}
		if snap.SuccessCount != snap.RotationCount {
			t.Fatalf("success %d != rotations %d", snap.SuccessCount, snap.RotationCount)
		}
	}
}

func TestRotateWhileStoppedStaysStopped(t *testing.T) {
	f := newFixture(t, false)
	f.r.Rotate()
	if f.r.Running() {
		t.Error("manual rotation must not start the timer")
	}
	if len(f.sched.active(testDefault)) != 0 {
		t.Error("manual rotation must not schedule anything")
	}
}

func TestRotateNotifiesAfterMutation(t *testing.T) {
	f := newFixture(t, false)
	before := f.r.Current()
	got := f.r.Rotate()

	last := f.events[len(f.events)-1]
	if last.Kind != EventRotate {
		t.Fatalf("expected rotate event, got %s", last.Kind)
	}
	if last.Snapshot.RotationCount != 1 {
		t.Errorf("observer saw count %d, want 1", last.Snapshot.RotationCount)
	}
	if last.Snapshot.Current != got {
		t.Error("observer saw a different identity than Rotate returned")
	}
	if last.Previous != before {
		t.Error("event should carry the replaced identity")
	}
}

func TestRefreshOnRotate(t *testing.T) {
	f := newFixture(t, true)
	f.r.Rotate()
	f.r.Rotate()
	if f.trigger.n != 2 {
		t.Errorf("expected 2 refreshes, got %d", f.trigger.n)
	}

	off := newFixture(t, false)
	off.r.Rotate()
	if off.trigger.n != 0 {
		t.Errorf("expected no refresh when disabled, got %d", off.trigger.n)
	}
}

func TestStartSchedulesAndTicks(t *testing.T) {
	f := newFixture(t, false)
	if err := f.r.Start(0); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if !f.r.Running() {
		t.Fatal("expected running after Start")
	}
	f.sched.fire(testDefault)
	f.sched.fire(testDefault)
	if got := f.r.Snapshot().RotationCount; got != 2 {
		t.Errorf("expected 2 rotations from ticks, got %d", got)
	}
}

func TestStartTwiceKeepsOneTimer(t *testing.T) {
	f := newFixture(t, false)
	f.r.Start(0)
	f.r.Start(0)
	if n := len(f.sched.active(testDefault)); n != 1 {
		t.Errorf("expected exactly one rotation timer, got %d", n)
	}
	if n := len(f.sched.active(time.Second)); n != 1 {
		t.Errorf("expected exactly one countdown ticker, got %d", n)
	}
}

func TestStartWithInterval(t *testing.T) {
	f := newFixture(t, false)
	if err := f.r.Start(30 * time.Second); !errors.Is(err, ErrIntervalOutOfRange) {
		t.Errorf("expected ErrIntervalOutOfRange, got %v", err)
	}
	if f.r.Running() {
		t.Error("rejected Start must not start the timer")
	}
	if err := f.r.Start(2 * time.Minute); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if f.r.Interval() != 2*time.Minute {
		t.Errorf("expected interval 2m, got %s", f.r.Interval())
	}
	if len(f.sched.active(2*time.Minute)) != 1 {
		t.Error("expected timer with the requested interval")
	}
}

func TestStopCancelsTimers(t *testing.T) {
	f := newFixture(t, false)
	f.r.Start(0)
	tasks := f.sched.active(testDefault)
	f.r.Stop()

	if f.r.Running() {
		t.Error("expected stopped")
	}
	if len(f.sched.active(testDefault)) != 0 || len(f.sched.active(time.Second)) != 0 {
		t.Error("Stop must cancel all owned timers")
	}

	// A tick that was already in flight when Stop ran must not mutate state.
	tasks[0].fn()
	if got := f.r.Snapshot().RotationCount; got != 0 {
		t.Errorf("stale tick rotated after Stop: count %d", got)
	}
}

func TestStartAfterClose(t *testing.T) {
	f := newFixture(t, false)
	f.r.Close()

	if err := f.r.Start(0); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if f.r.Running() {
		t.Error("closed rotator must not run")
	}
	if len(f.sched.active(testDefault)) != 0 || len(f.sched.active(time.Second)) != 0 {
		t.Error("Start after Close must not arm timers")
	}
	f.sched.fire(testDefault)
	if got := f.r.Snapshot().RotationCount; got != 0 {
		t.Errorf("expected no rotations after Close, got %d", got)
	}
}

func TestUpdateIntervalAfterClose(t *testing.T) {
	f := newFixture(t, false)
	f.r.Start(0)
	f.r.Close()

	if err := f.r.UpdateInterval(10); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if got := f.r.Interval(); got != testDefault {
		t.Errorf("interval changed after Close: %s", got)
	}
	if len(f.sched.active(10*time.Minute)) != 0 {
		t.Error("UpdateInterval after Close must not arm timers")
	}
}

func TestStopWhenStoppedIsNoop(t *testing.T) {
	f := newFixture(t, false)
	n := len(f.events)
	f.r.Stop()
	if len(f.events) != n {
		t.Error("Stop on a stopped rotator should not emit events")
	}
}

func TestResetStopsAndZeroes(t *testing.T) {
	f := newFixture(t, false)
	f.r.Start(0)
	f.r.Rotate()
	f.r.Rotate()
	f.clock = f.clock.Add(90 * time.Second)

	f.r.Reset()
	snap := f.r.Snapshot()
	if snap.RotationCount != 0 || snap.SuccessCount != 0 {
		t.Errorf("expected zeroed counters, got %d/%d", snap.RotationCount, snap.SuccessCount)
	}
	if snap.State != RotatorStopped {
		t.Errorf("expected stopped after reset, got %s", snap.State)
	}
	if !snap.StartedAt.Equal(f.clock) {
		t.Errorf("expected uptime window to restart at %v, got %v", f.clock, snap.StartedAt)
	}
	if f.r.Uptime() != 0 {
		t.Errorf("expected zero uptime right after reset, got %s", f.r.Uptime())
	}
	if len(f.sched.active(testDefault)) != 0 {
		t.Error("reset must cancel the rotation timer")
	}
	if last := f.events[len(f.events)-1]; last.Kind != EventReset {
		t.Errorf("expected reset event last, got %s", last.Kind)
	}
}

func TestResetWhenStopped(t *testing.T) {
	f := newFixture(t, false)
	f.r.Rotate()
	f.r.Reset()
	if f.r.Running() {
		t.Error("reset must not start the timer")
	}
	if got := f.r.Snapshot().RotationCount; got != 0 {
		t.Errorf("expected 0 rotations, got %d", got)
	}
}

func TestUpdateIntervalScenario(t *testing.T) {
	f := newFixture(t, false)
	if err := f.r.UpdateInterval(10); err != nil {
		t.Fatalf("UpdateInterval(10) error: %v", err)
	}
	if f.r.Interval() != 600000*time.Millisecond {
		t.Errorf("expected 600000ms, got %s", f.r.Interval())
	}
	if err := f.r.UpdateInterval(0.5); !errors.Is(err, ErrIntervalOutOfRange) {
		t.Errorf("expected ErrIntervalOutOfRange, got %v", err)
	}
	if f.r.Interval() != 600000*time.Millisecond {
		t.Errorf("rejected update changed interval to %s", f.r.Interval())
	}
}

func TestUpdateIntervalBounds(t *testing.T) {
	tests := []struct {
		minutes float64
		ok      bool
	}{
		{1, true},
		{60, true},
		{0.99, false},
		{60.5, false},
		{-5, false},
		{0, false},
		{math.NaN(), false},
		{math.Inf(1), false},
	}
	for _, tt := range tests {
		f := newFixture(t, false)
		err := f.r.UpdateInterval(tt.minutes)
		if tt.ok && err != nil {
			t.Errorf("UpdateInterval(%v) unexpected error: %v", tt.minutes, err)
		}
		if !tt.ok {
			if !errors.Is(err, ErrIntervalOutOfRange) {
				t.Errorf("UpdateInterval(%v) expected ErrIntervalOutOfRange, got %v", tt.minutes, err)
			}
			if f.r.Interval() != testDefault {
				t.Errorf("UpdateInterval(%v) changed interval to %s", tt.minutes, f.r.Interval())
			}
		}
	}
}

func TestUpdateIntervalRestartsRunningTimer(t *testing.T) {
	f := newFixture(t, false)
	f.r.Start(0)
	if err := f.r.UpdateInterval(10); err != nil {
		t.Fatalf("UpdateInterval() error: %v", err)
	}
	if len(f.sched.active(testDefault)) != 0 {
		t.Error("old timer should be cancelled")
	}
	if len(f.sched.active(10*time.Minute)) != 1 {
		t.Error("expected one timer at the new interval")
	}
	if len(f.sched.active(time.Second)) != 1 {
		t.Error("expected exactly one countdown ticker after restart")
	}
	if !f.r.Running() {
		t.Error("rotator should still be running")
	}
	if got := f.r.Snapshot().Countdown; got != 10*time.Minute {
		t.Errorf("expected countdown reset to 10m, got %s", got)
	}
}

func TestUpdateIntervalWhileStopped(t *testing.T) {
	f := newFixture(t, false)
	f.r.UpdateInterval(2)
	if f.r.Running() {
		t.Error("UpdateInterval must not start a stopped rotator")
	}
	f.r.Start(0)
	if len(f.sched.active(2*time.Minute)) != 1 {
		t.Error("next Start should use the updated interval")
	}
}

func TestCountdown(t *testing.T) {
	f := newFixture(t, false)
	f.r.Start(time.Minute)
	for i := 0; i < 3; i++ {
		f.sched.fire(time.Second)
	}
	if got := f.r.Snapshot().Countdown; got != 57*time.Second {
		t.Errorf("expected 57s left, got %s", got)
	}
	for i := 0; i < 70; i++ {
		f.sched.fire(time.Second)
	}
	if got := f.r.Snapshot().Countdown; got != 0 {
		t.Errorf("countdown should clamp at zero, got %s", got)
	}
	f.sched.fire(time.Minute)
	if got := f.r.Snapshot().Countdown; got != time.Minute {
		t.Errorf("tick should reset countdown to the interval, got %s", got)
	}
	f.r.Stop()
	if got := f.r.Snapshot().Countdown; got != 0 {
		t.Errorf("expected zero countdown when stopped, got %s", got)
	}
}

func TestSubscribe(t *testing.T) {
	f := newFixture(t, false)
	ch := f.r.Subscribe()
	f.r.Rotate()
	select {
	case e := <-ch:
		if e.Kind != EventRotate {
			t.Errorf("expected rotate event, got %s", e.Kind)
		}
	default:
		t.Fatal("expected an event on the subscription")
	}

	// A full channel drops events instead of blocking.
	f.r.Rotate()
	f.r.Rotate()
	if got := f.r.Snapshot().RotationCount; got != 3 {
		t.Errorf("expected 3 rotations, got %d", got)
	}

	f.r.Close()
	<-ch
	if _, ok := <-ch; ok {
		t.Error("expected channel closed after Close")
	}
}

func TestUptime(t *testing.T) {
	f := newFixture(t, false)
	f.clock = f.clock.Add(3*time.Hour + 25*time.Minute + 7*time.Second)
	if got := FormatUptime(f.r.Uptime()); got != "03:25:07" {
		t.Errorf("expected 03:25:07, got %s", got)
	}
}

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		success, total, want int
	}{
		{0, 0, 100},
		{3, 3, 100},
		{1, 3, 33},
		{2, 3, 67},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := SuccessRate(tt.success, tt.total); got != tt.want {
			t.Errorf("SuccessRate(%d, %d) = %d, want %d", tt.success, tt.total, got, tt.want)
		}
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d        time.Duration
		running  bool
		expected string
	}{
		{5 * time.Minute, true, "5:00"},
		{61 * time.Second, true, "1:01"},
		{0, true, "0:00"},
		{-time.Second, true, "0:00"},
		{time.Minute, false, "--:--"},
	}
	for _, tt := range tests {
		if got := FormatCountdown(tt.d, tt.running); got != tt.expected {
			t.Errorf("FormatCountdown(%s, %v) = %q, want %q", tt.d, tt.running, got, tt.expected)
		}
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{100 * time.Hour, "100:00:00"},
		{-time.Minute, "00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatUptime(tt.d); got != tt.expected {
			t.Errorf("FormatUptime(%s) = %q, want %q", tt.d, got, tt.expected)
		}
	}
}
