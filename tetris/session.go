// Package tetris implements the game-state engine of a falling-block puzzle:
// the board, piece geometry with kick-table rotation, the 7-bag randomizer,
// and a Session that advances timers, locks pieces, clears lines and keeps
// score.
//
// A Session is driven from outside: feed it input events with Handle and
// elapsed time with Update, then read a Snapshot to draw. It never blocks and
// is not safe for concurrent use.
package tetris

import (
	"time"
)

// SpawnPoint is the anchor of every newly spawned piece.
var SpawnPoint = Point{X: 3, Y: 0}

// State is the lifecycle state of a Session.
type State uint8

const (
	Playing State = iota
	Dead
)

func (s State) String() string {
	if s == Dead {
		return "dead"
	}
	return "playing"
}

// FallMode selects the gravity used between falls.
type FallMode uint8

const (
	FallNormal FallMode = iota
	FallSoftDrop
)

func (m FallMode) String() string {
	if m == FallSoftDrop {
		return "soft-drop"
	}
	return "normal"
}

// Shift is the horizontal auto-repeat direction.
type Shift int8

const (
	ShiftNone Shift = iota
	ShiftLeft
	ShiftRight
)

func (s Shift) String() string {
	switch s {
	case ShiftLeft:
		return "left"
	case ShiftRight:
		return "right"
	}
	return "none"
}

// Session owns one game: the board, the active piece, the queue, the hold
// slot, the score and every timer.
type Session struct {
	rand      Randomizer
	preview   int
	intervals fallIntervals

	state    State
	board    Board
	queue    *Queue
	piece    Piece
	active   bool
	held     PieceType
	holdUsed bool

	score int
	lines int

	fallTimer  time.Duration
	fallMode   FallMode
	lockArmed  bool
	spawnTimer time.Duration
	shiftTimer time.Duration
	shiftDir   Shift
}

// Option configures a Session.
type Option func(*Session)

// WithRandomizer sets the piece source.
func WithRandomizer(r Randomizer) Option {
	return func(s *Session) {
		s.rand = r
	}
}

// WithSeed uses a ShuffleRandomizer seeded with seed.
func WithSeed(seed uint64) Option {
	return func(s *Session) {
		s.rand = NewShuffleRandomizer(seed)
	}
}

// WithPreview sets how many upcoming pieces a Snapshot lists, from 1 to
// BagSize.
func WithPreview(n int) Option {
	return func(s *Session) {
		s.preview = min(max(n, 1), BagSize)
	}
}

// NewSession starts a game. Without options it uses a time-seeded bag
// randomizer and previews one piece.
func NewSession(opts ...Option) *Session {
	s := &Session{
		preview:   1,
		intervals: newFallIntervals(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rand == nil {
		s.rand = NewShuffleRandomizer(uint64(time.Now().UnixNano()))
	}
	s.reset()
	return s
}

// reset puts the session back to a fresh Playing state with the first piece
// of a new bag active. The randomizer keeps its stream.
func (s *Session) reset() {
	s.state = Playing
	s.board.Reset()
	s.queue = NewQueue(s.rand)
	s.held = None
	s.holdUsed = false
	s.score = 0
	s.lines = 0
	s.fallMode = FallNormal
	s.spawnTimer = SpawnDelay
	s.shiftTimer = MoveWait
	s.shiftDir = ShiftNone
	s.active = false
	s.spawn(s.queue.Pop())
}

// Update advances every timer by delta. Gravity runs while a piece is
// active, otherwise the spawn delay counts down; horizontal auto-repeat is
// evaluated last and only moves a piece that is still active.
func (s *Session) Update(delta time.Duration) {
	if s.state == Dead || delta < 0 {
		return
	}
	if s.active {
		s.updateFall(delta)
	} else {
		s.updateSpawn(delta)
	}
	s.updateShift(delta)
}

func (s *Session) updateFall(delta time.Duration) {
	remaining, expired := countdown(s.fallTimer, delta)
	if !expired {
		s.fallTimer = remaining
		return
	}
	if s.fallMode == FallSoftDrop {
		s.score += SoftDropPoints
	}
	if !s.piece.Fall(&s.board) {
		s.lock()
		return
	}
	if s.piece.AtBottom(&s.board) {
		s.armLockDelay()
	} else {
		s.lockArmed = false
		s.fallTimer = s.fallInterval()
	}
}

func (s *Session) updateSpawn(delta time.Duration) {
	remaining, expired := countdown(s.spawnTimer, delta)
	if !expired {
		s.spawnTimer = remaining
		return
	}
	s.spawnTimer = SpawnDelay
	if s.spawn(s.queue.Peek()) {
		s.queue.Advance()
		s.holdUsed = false
	}
}

func (s *Session) updateShift(delta time.Duration) {
	if s.shiftDir == ShiftNone {
		return
	}
	remaining, expired := countdown(s.shiftTimer, delta)
	if !expired {
		s.shiftTimer = remaining
		return
	}
	s.shiftTimer = MoveInterval
	if s.active && s.shift(s.shiftDir) && s.piece.AtBottom(&s.board) {
		s.armLockDelay()
	}
}

// spawn places a new piece of type t at SpawnPoint. If it overlaps the stack
// the session dies, nothing is written to the board and false is returned.
func (s *Session) spawn(t PieceType) bool {
	p := NewPiece(t, SpawnPoint)
	if !p.Fits(&s.board) {
		s.state = Dead
		s.active = false
		s.lockArmed = false
		return false
	}
	s.piece = p
	s.active = true
	s.lockArmed = false
	s.fallTimer = s.fallInterval()
	return true
}

// lock merges the active piece into the board, clears full rows and scores
// them on the level reached before the clear.
func (s *Session) lock() {
	for _, c := range s.piece.Cells() {
		s.board.Set(c.Y, c.X, s.piece.Type)
	}
	cleared := 0
	for row := range Height {
		if s.board.RowFull(row) {
			s.board.ClearRow(row)
			cleared++
		}
	}
	if cleared > 0 {
		s.score += LineClearScore(cleared, s.Level())
		s.lines += cleared
	}
	s.active = false
	s.lockArmed = false
	s.spawnTimer = SpawnDelay
}

func (s *Session) armLockDelay() {
	s.fallTimer = LockDelay
	s.lockArmed = true
}

func (s *Session) fallInterval() time.Duration {
	if s.fallMode == FallSoftDrop {
		return SoftDropInterval
	}
	return s.intervals.at(s.Level())
}

// State returns Playing or Dead.
func (s *Session) State() State {
	return s.state
}

// Score returns the points earned so far.
func (s *Session) Score() int {
	return s.score
}

// Lines returns the number of rows cleared so far.
func (s *Session) Lines() int {
	return s.lines
}

// Level returns min(1 + lines/10, MaxLevel).
func (s *Session) Level() int {
	return LevelForLines(s.lines)
}

// Active returns the piece under control. The second result is false
// between a lock and the next spawn and after the game is lost.
func (s *Session) Active() (Piece, bool) {
	return s.piece, s.active
}

// Ghost returns where the active piece would land if dropped now.
func (s *Session) Ghost() (Piece, bool) {
	if !s.active {
		return Piece{}, false
	}
	return s.piece.Drop(&s.board), true
}

// Held returns the type in the hold slot, if any.
func (s *Session) Held() (PieceType, bool) {
	return s.held, s.held != None
}

// Next returns the type the next spawn will use.
func (s *Session) Next() PieceType {
	return s.queue.Peek()
}

// Board returns a copy of the board.
func (s *Session) Board() Board {
	return s.board
}
