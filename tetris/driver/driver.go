// Package driver pumps a tetris.Session: it buffers input from any goroutine,
// applies it once per tick ahead of the timer update and keeps frame timing
// and input statistics for debug overlays and soak runs.
package driver

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/tetris"
)

// Stats summarises the ticks run so far.
type Stats struct {
	Frames    int64
	Games     int64
	Simulated time.Duration

	MinFrame   time.Duration
	MaxFrame   time.Duration
	AvgFrame   time.Duration
	LastFrame  time.Duration
	TotalFrame time.Duration

	Actions []ActionCount
}

// ActionCount is the number of presses seen for one action.
type ActionCount struct {
	Action tetris.Action
	Count  int64
}

type frameStats struct {
	frames    int64
	games     int64
	simulated time.Duration
	min       time.Duration
	max       time.Duration
	last      time.Duration
	total     time.Duration
}

// GameOverFunc is called once each time the session transitions to Dead,
// with the final snapshot of that game.
type GameOverFunc func(snap tetris.Snapshot)

// Driver owns a Session and serialises access to it.
type Driver struct {
	mu       sync.Mutex
	session  *tetris.Session
	inputs   *Inputs
	stats    frameStats
	presses  *intmap.Map[tetris.Action, int64]
	wasDead  bool
	gameOver GameOverFunc
}

// Option configures a Driver.
type Option func(*Driver)

// WithGameOver registers fn to run after the tick that ends a game. It runs
// without the driver lock held, so it may call back into the Driver.
func WithGameOver(fn GameOverFunc) Option {
	return func(d *Driver) {
		d.gameOver = fn
	}
}

// New wraps session.
func New(session *tetris.Session, opts ...Option) *Driver {
	d := &Driver{
		session: session,
		inputs:  NewInputs(),
		presses: intmap.New[tetris.Action, int64](len(tetris.Actions)),
		stats: frameStats{
			min: time.Duration(1<<63 - 1),
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Push queues ev for the next tick. It is safe to call from any goroutine.
func (d *Driver) Push(ev tetris.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inputs.Push(ev)
}

// Press queues a key-down for a.
func (d *Driver) Press(a tetris.Action) {
	d.Push(tetris.Press(a))
}

// Release queues a key-up for a.
func (d *Driver) Release(a tetris.Action) {
	d.Push(tetris.Release(a))
}

// Defer queues fn to run on the next tick, after that tick's events and
// before the session advances. fn runs with the driver lock held and must
// not call back into the Driver.
func (d *Driver) Defer(fn func(s *tetris.Session)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inputs.Defer(func() {
		fn(d.session)
	})
}

// Once runs one tick: queued events are applied in order, then the session
// advances by dt.
func (d *Driver) Once(dt time.Duration) {
	d.mu.Lock()

	start := time.Now()
	d.inputs.Flush(pressCounter{session: d.session, presses: d.presses})
	d.session.Update(dt)
	duration := time.Since(start)

	stats := &d.stats
	stats.frames++
	stats.simulated += max(dt, 0)
	stats.last = duration
	stats.total += duration
	if duration < stats.min {
		stats.min = duration
	}
	if duration > stats.max {
		stats.max = duration
	}

	var (
		fire bool
		snap tetris.Snapshot
	)
	dead := d.session.State() == tetris.Dead
	if dead && !d.wasDead {
		stats.games++
		if d.gameOver != nil {
			fire = true
			snap = d.session.Snapshot()
		}
	}
	d.wasDead = dead
	d.mu.Unlock()

	if fire {
		d.gameOver(snap)
	}
}

// pressCounter counts key-downs per action on their way to the session.
type pressCounter struct {
	session *tetris.Session
	presses *intmap.Map[tetris.Action, int64]
}

func (c pressCounter) Handle(ev tetris.Event) {
	if !ev.Release && !ev.Repeat {
		n, _ := c.presses.Get(ev.Action)
		c.presses.Put(ev.Action, n+1)
	}
	c.session.Handle(ev)
}

// Run ticks at the given interval until ctx is cancelled, passing the wall
// time elapsed since the previous tick.
func (d *Driver) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime)
			lastTime = now
			d.Once(dt)
		}
	}
}

// Snapshot returns the session state as of the last tick.
func (d *Driver) Snapshot() tetris.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session.Snapshot()
}

// Verify runs the session invariant check.
func (d *Driver) Verify() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session.Verify()
}

// Pending is the number of events waiting for the next tick.
func (d *Driver) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inputs.Len()
}

// Stats returns a copy of the tick statistics. Actions is ordered by action.
func (d *Driver) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	internal := d.stats
	stats := Stats{
		Frames:     internal.frames,
		Games:      internal.games,
		Simulated:  internal.simulated,
		MaxFrame:   internal.max,
		LastFrame:  internal.last,
		TotalFrame: internal.total,
		Actions:    make([]ActionCount, 0, d.presses.Len()),
	}
	if internal.frames > 0 {
		stats.MinFrame = internal.min
		stats.AvgFrame = internal.total / time.Duration(internal.frames)
	}
	for action, count := range d.presses.All() {
		stats.Actions = append(stats.Actions, ActionCount{Action: action, Count: count})
	}
	sort.Slice(stats.Actions, func(i, j int) bool {
		return stats.Actions[i].Action < stats.Actions[j].Action
	})
	return stats
}
