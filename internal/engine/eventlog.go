package engine

import (
	"fmt"
	"time"
)

// LogLevel classifies an event log entry for display.
type LogLevel int

const (
	LevelInfo LogLevel = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// LogEntry is one line of the in-memory activity log.
type LogEntry struct {
	Time    time.Time
	Level   LogLevel
	Message string
}

// EventLog is an Observer that keeps the most recent activity as
// human-readable entries, capped at a fixed number of lines.
type EventLog struct {
	entries *RingBuffer[LogEntry]
	now     func() time.Time
}

// NewEventLog creates an EventLog holding at most maxEntries lines.
func NewEventLog(maxEntries int) *EventLog {
	return &EventLog{
		entries: NewRingBuffer[LogEntry](maxEntries),
		now:     time.Now,
	}
}

// Observe turns a rotator event into a log line.
func (l *EventLog) Observe(e Event) {
	snap := e.Snapshot
	switch e.Kind {
	case EventInit:
		l.Add(LevelSuccess, "rotation system initialized")
	case EventStart:
		l.Add(LevelSuccess, fmt.Sprintf("rotation started (every %s)", snap.Interval))
	case EventStop:
		l.Add(LevelWarning, "rotation stopped")
	case EventReset:
		l.Add(LevelInfo, "system reset complete")
	case EventInterval:
		l.Add(LevelInfo, fmt.Sprintf("rotation interval updated to %s", snap.Interval))
	case EventRotate:
		l.Add(LevelInfo, fmt.Sprintf("rotation #%d | %s -> %s | %s -> %s",
			snap.RotationCount,
			e.Previous.Address, snap.Current.Address,
			e.Previous.DeviceClass, snap.Current.DeviceClass,
		))
	}
}

// Add appends a line stamped with the current time.
func (l *EventLog) Add(level LogLevel, msg string) {
	l.entries.Add(LogEntry{Time: l.now(), Level: level, Message: msg})
}

// Entries returns all retained lines, oldest first.
func (l *EventLog) Entries() []LogEntry {
	return l.entries.All()
}

// Tail returns up to n of the newest lines, oldest first.
func (l *EventLog) Tail(n int) []LogEntry {
	return l.entries.Tail(n)
}

// Len returns the number of retained lines.
func (l *EventLog) Len() int {
	return l.entries.Len()
}

// Clear empties the log.
func (l *EventLog) Clear() {
	l.entries.Clear()
	l.Add(LevelInfo, "logs cleared")
}
