// Package reftime converts between the host-facing tick unit and internal
// nanosecond time. One external tick is exactly 100ns.
package reftime

import "time"

const Tick = 100 * time.Nanosecond

// ToTicks converts an internal time to external ticks, truncating toward zero.
func ToTicks(t time.Duration) int64 {
	return int64(t / Tick)
}

// ToDuration converts external ticks to internal time.
func ToDuration(ticks int64) time.Duration {
	return time.Duration(ticks) * Tick
}
