package tetris

import (
	"errors"
	"fmt"
	"time"
)

// Snapshot is a read-only copy of everything a presentation layer needs to
// draw one frame. It shares no memory with the Session.
type Snapshot struct {
	Board Grid

	// Active is false between a lock and the next spawn. Piece and Ghost
	// are only meaningful while it is true.
	Active bool
	Piece  Piece
	Ghost  Piece

	Held PieceType
	Next []PieceType

	Score int
	Lines int
	Level int
	State State

	HoldUsed   bool
	FallMode   FallMode
	LockArmed  bool
	FallTimer  time.Duration
	SpawnTimer time.Duration
	ShiftTimer time.Duration
	Shift      Shift
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Board:      s.board.Cells(),
		Active:     s.active,
		Held:       s.held,
		Next:       s.queue.Preview(s.preview),
		Score:      s.score,
		Lines:      s.lines,
		Level:      s.Level(),
		State:      s.state,
		HoldUsed:   s.holdUsed,
		FallMode:   s.fallMode,
		LockArmed:  s.lockArmed,
		FallTimer:  s.fallTimer,
		SpawnTimer: s.spawnTimer,
		ShiftTimer: s.shiftTimer,
		Shift:      s.shiftDir,
	}
	if s.active {
		snap.Piece = s.piece
		snap.Ghost = s.piece.Drop(&s.board)
	}
	return snap
}

// Errors reported by Verify.
var (
	ErrPieceOutOfBounds = errors.New("active piece out of bounds")
	ErrPieceOverlap     = errors.New("active piece overlaps the stack")
	ErrPieceShape       = errors.New("active piece blocks do not match its rotation")
	ErrCounters         = errors.New("negative score or lines")
)

// Verify checks the session invariants: the active piece lies within the
// walls and above the floor, overlaps no locked cell and has the blocks its
// type and rotation imply; score and lines are non-negative. It returns nil
// for every reachable state.
func (s *Session) Verify() error {
	if s.score < 0 || s.lines < 0 {
		return fmt.Errorf("%w: score=%d lines=%d", ErrCounters, s.score, s.lines)
	}
	if !s.active {
		return nil
	}
	for _, c := range s.piece.Cells() {
		if c.X < 0 || c.X >= Width || c.Y >= Height {
			return fmt.Errorf("%w: %s at (%d,%d)", ErrPieceOutOfBounds, s.piece.Type, c.X, c.Y)
		}
		if _, ok := s.board.At(c.Y, c.X); ok {
			return fmt.Errorf("%w: %s at (%d,%d)", ErrPieceOverlap, s.piece.Type, c.X, c.Y)
		}
	}
	if s.piece.Blocks != blocksFor(s.piece.Type, s.piece.Rotation) {
		return fmt.Errorf("%w: %s rotation %s", ErrPieceShape, s.piece.Type, s.piece.Rotation)
	}
	return nil
}

// blocksFor returns the offsets of t after turning clockwise from spawn
// until it reaches r.
func blocksFor(t PieceType, r Rotation) [4]Point {
	blocks := t.Blocks()
	if t == O {
		return blocks
	}
	for range r % 4 {
		blocks = rotateBlocks(blocks, t.PivotSize(), Clockwise)
	}
	return blocks
}
