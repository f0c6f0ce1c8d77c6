package main

import (
	"context"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/tetris/driver"
)

// Soak plays random input against a driver, checking invariants after
// every tick and restarting whenever a game ends.
type Soak struct {
	driver *driver.Driver
	bot    *Bot
	tick   time.Duration
	report *Report
	prev   tetris.Snapshot
	ticks  int64
}

func NewSoak(session *tetris.Session, bot *Bot, tick time.Duration, report *Report) *Soak {
	s := &Soak{
		bot:    bot,
		tick:   tick,
		report: report,
	}
	s.driver = driver.New(session, driver.WithGameOver(func(snap tetris.Snapshot) {
		s.report.AddGame(snap)
		s.driver.Defer(restart)
	}))
	s.prev = s.driver.Snapshot()
	if s.prev.Active {
		report.AddPiece(s.prev.Piece.Type)
	}
	return s
}

func restart(session *tetris.Session) {
	session.Handle(tetris.Press(tetris.ActionRestart))
}

// Step runs one tick and returns how long the driver took.
func (s *Soak) Step() time.Duration {
	if ev, ok := s.bot.Next(); ok {
		s.driver.Push(ev)
		s.report.Inputs++
	}

	start := time.Now()
	s.driver.Once(s.tick)
	elapsed := time.Since(start)
	s.ticks++

	if err := s.driver.Verify(); err != nil {
		s.report.AddViolation(s.ticks, err)
	}
	s.observe(s.driver.Snapshot())
	return elapsed
}

func (s *Soak) observe(snap tetris.Snapshot) {
	prev := s.prev
	s.prev = snap

	if snap.Lines > prev.Lines && snap.State == prev.State {
		s.report.AddClear(snap.Lines - prev.Lines)
	}
	// A hold that swaps in the same type looks like no spawn at all.
	if snap.Active && (!prev.Active || snap.Piece.Type != prev.Piece.Type) {
		s.report.AddPiece(snap.Piece.Type)
	}
}

// Run steps until ctx is done, recording every update duration.
func (s *Soak) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			s.report.UpdateTime.Samples = append(s.report.UpdateTime.Samples, s.Step())
			s.report.TotalUpdates++
		}
	}
}

// Stats exposes the driver statistics.
func (s *Soak) Stats() driver.Stats {
	return s.driver.Stats()
}
