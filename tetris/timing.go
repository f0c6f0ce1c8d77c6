package tetris

import (
	"math"
	"time"
)

// Timer durations used by the session state machine.
const (
	// LockDelay is how long a piece may rest on the stack before it locks.
	// It is re-armed by every successful move or rotation while resting.
	LockDelay = 500 * time.Millisecond
	// SoftDropInterval replaces the level gravity while soft drop is held.
	SoftDropInterval = 100 * time.Millisecond
	// SpawnDelay separates a lock from the next spawn.
	SpawnDelay = 100 * time.Millisecond
	// MoveWait is the delay between a horizontal press and its first repeat.
	MoveWait = 300 * time.Millisecond
	// MoveInterval is the delay between subsequent horizontal repeats.
	MoveInterval = 70 * time.Millisecond
)

// MaxLevel caps the level reached by clearing lines.
const MaxLevel = 20

// FallInterval returns the gravity interval for level, clamped to
// [1, MaxLevel]: (0.8 - (level-1)*0.007)^(level-1) seconds, truncated to
// whole milliseconds.
func FallInterval(level int) time.Duration {
	level = min(max(level, 1), MaxLevel)
	n := float64(level - 1)
	seconds := math.Pow(0.8-n*0.007, n)
	return time.Duration(seconds*1000) * time.Millisecond
}

// fallIntervals is the per-level gravity table, index 0 for level 1.
type fallIntervals [MaxLevel]time.Duration

func newFallIntervals() fallIntervals {
	var table fallIntervals
	for i := range table {
		table[i] = FallInterval(i + 1)
	}
	return table
}

func (f *fallIntervals) at(level int) time.Duration {
	return f[min(max(level, 1), MaxLevel)-1]
}

// countdown subtracts delta from remaining. It reports expiry once remaining
// reaches zero, in which case the returned duration is zero.
func countdown(remaining, delta time.Duration) (time.Duration, bool) {
	if remaining <= delta {
		return 0, true
	}
	return remaining - delta, false
}
