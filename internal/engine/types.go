package engine

import (
	"time"

	"github.com/tonhe/rotor/internal/identity"
)

// RotatorState represents the lifecycle state of the rotation timer.
type RotatorState int

const (
	RotatorStopped RotatorState = iota
	RotatorRunning
)

func (s RotatorState) String() string {
	if s == RotatorRunning {
		return "running"
	}
	return "stopped"
}

// EventKind names what changed in the rotator.
type EventKind int

const (
	EventInit EventKind = iota
	EventRotate
	EventReset
	EventStart
	EventStop
	EventInterval
)

func (k EventKind) String() string {
	switch k {
	case EventInit:
		return "init"
	case EventRotate:
		return "rotate"
	case EventReset:
		return "reset"
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	case EventInterval:
		return "interval"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time, read-only copy of the rotator state.
type Snapshot struct {
	Current       identity.Identity
	State         RotatorState
	RotationCount int
	SuccessCount  int
	StartedAt     time.Time
	Interval      time.Duration
	Countdown     time.Duration
	TakenAt       time.Time
}

// SuccessRate is the rounded success percentage of the snapshot.
func (s Snapshot) SuccessRate() int {
	return SuccessRate(s.SuccessCount, s.RotationCount)
}

// Uptime is the time elapsed since StartedAt when the snapshot was taken.
func (s Snapshot) Uptime() time.Duration {
	return s.TakenAt.Sub(s.StartedAt)
}

// Event is emitted to observers and subscribers after every state change.
type Event struct {
	Kind     EventKind
	Previous identity.Identity // identity before a rotation; zero otherwise
	Snapshot Snapshot
}

// Observer consumes rotator events. Observe is called with the rotator lock
// held, so implementations must not call back into the rotator and must
// not block.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }
