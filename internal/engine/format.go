package engine

import (
	"fmt"
	"time"
)

// FormatUptime renders d as HH:MM:SS. Hours are not wrapped at 24.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// FormatCountdown renders the time to the next rotation as M:SS, or
// "--:--" when the rotator is stopped.
func FormatCountdown(d time.Duration, running bool) string {
	if !running {
		return "--:--"
	}
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
