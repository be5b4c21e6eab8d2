package engine

import (
	"sync"
	"time"
)

// Task is a handle to a scheduled callback.
type Task interface {
	Cancel()
}

// Scheduler runs callbacks on a timer. Callbacks may run on any goroutine;
// the rotator serializes them itself.
type Scheduler interface {
	// Every runs fn every d until the returned task is cancelled.
	Every(d time.Duration, fn func()) Task
	// After runs fn once after d unless cancelled first.
	After(d time.Duration, fn func()) Task
}

// TickerScheduler is the wall-clock Scheduler backed by time.Ticker.
type TickerScheduler struct{}

// tickerTask runs a ticker loop until stopCh is closed.
type tickerTask struct {
	stopCh chan struct{}
	once   sync.Once
}

func (t *tickerTask) Cancel() {
	t.once.Do(func() { close(t.stopCh) })
}

// Every starts a goroutine that calls fn on each tick.
func (TickerScheduler) Every(d time.Duration, fn func()) Task {
	t := &tickerTask{stopCh: make(chan struct{})}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-t.stopCh:
				return
			}
		}
	}()
	return t
}

type timerTask struct {
	timer *time.Timer
}

func (t timerTask) Cancel() {
	t.timer.Stop()
}

// After schedules fn with time.AfterFunc.
func (TickerScheduler) After(d time.Duration, fn func()) Task {
	return timerTask{timer: time.AfterFunc(d, fn)}
}
