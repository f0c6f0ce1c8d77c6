package tetris

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scripted(batches ...[BagSize]PieceType) Option {
	return WithRandomizer(&ScriptedRandomizer{Batches: batches})
}

func mustActive(t *testing.T, s *Session) Piece {
	t.Helper()
	p, ok := s.Active()
	require.True(t, ok, "expected an active piece")
	return p
}

// settle runs gravity until the active piece rests and the lock delay is
// armed.
func settle(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; !s.lockArmed; i++ {
		require.Less(t, i, Height, "piece never came to rest")
		s.Update(s.fallTimer)
	}
}

func TestNewSession(t *testing.T) {
	s := NewSession(scripted([BagSize]PieceType{T, S, Z, O, I, J, L}))

	assert.Equal(t, Playing, s.State())
	assert.Zero(t, s.Score())
	assert.Zero(t, s.Lines())
	assert.Equal(t, 1, s.Level())

	p := mustActive(t, s)
	assert.Equal(t, T, p.Type)
	assert.Equal(t, SpawnPoint, p.Pos)
	assert.Equal(t, RotationZero, p.Rotation)
	assert.Equal(t, S, s.Next())

	_, ok := s.Held()
	assert.False(t, ok)
	assert.Equal(t, FallInterval(1), s.fallTimer)
	assert.NoError(t, s.Verify())
}

func TestSessionHardDrop(t *testing.T) {
	s := NewSession(scripted(PieceTypes))
	require.Equal(t, I, mustActive(t, s).Type)

	s.Handle(Press(ActionHardDrop))

	// Eighteen rows of travel at two points each.
	assert.Equal(t, 36, s.Score())
	for col := 3; col <= 6; col++ {
		got, ok := s.board.At(Height-1, col)
		assert.True(t, ok)
		assert.Equal(t, I, got)
	}
	_, ok := s.Active()
	assert.False(t, ok)

	s.Update(SpawnDelay / 2)
	_, ok = s.Active()
	assert.False(t, ok, "spawn delay has not elapsed")

	s.Update(SpawnDelay / 2)
	assert.Equal(t, J, mustActive(t, s).Type)
	assert.Equal(t, L, s.Next())
}

func TestSessionInputsIgnoredWithoutPiece(t *testing.T) {
	s := NewSession(scripted(PieceTypes))
	s.Handle(Press(ActionHardDrop))
	before := s.Snapshot()

	for _, a := range []Action{ActionMoveLeft, ActionMoveRight, ActionRotateCW, ActionRotateCCW, ActionHardDrop, ActionHold} {
		s.Handle(Press(a))
	}
	after := s.Snapshot()
	assert.Equal(t, before.Board, after.Board)
	assert.Equal(t, before.Score, after.Score)
	assert.Equal(t, before.Held, after.Held)
	assert.Equal(t, before.Next, after.Next)
	assert.Equal(t, ShiftNone, after.Shift)
}

func TestSessionHold(t *testing.T) {
	s := NewSession(scripted([BagSize]PieceType{T, S, Z, O, I, J, L}))

	s.Handle(Press(ActionHold))
	held, ok := s.Held()
	require.True(t, ok)
	assert.Equal(t, T, held)
	assert.Equal(t, S, mustActive(t, s).Type)
	assert.Equal(t, Z, s.Next())
	assert.True(t, s.holdUsed)

	t.Run("second hold before lock is a no-op", func(t *testing.T) {
		before := s.Snapshot()
		s.Handle(Press(ActionHold))
		assert.Equal(t, before, s.Snapshot())
	})

	t.Run("hold swaps after the next spawn", func(t *testing.T) {
		s.Handle(Press(ActionHardDrop))
		s.Update(SpawnDelay)
		require.Equal(t, Z, mustActive(t, s).Type)
		assert.False(t, s.holdUsed)

		s.Handle(Press(ActionHold))
		p := mustActive(t, s)
		assert.Equal(t, T, p.Type)
		assert.Equal(t, SpawnPoint, p.Pos)
		held, _ := s.Held()
		assert.Equal(t, Z, held)
		assert.Equal(t, O, s.Next(), "swapping with the slot does not consume the queue")
	})
}

func TestSessionHoldResetsRotation(t *testing.T) {
	s := NewSession(scripted([BagSize]PieceType{T, S, Z, O, I, J, L}))
	s.Handle(Press(ActionRotateCW))
	s.Handle(Press(ActionMoveRight))
	s.Handle(Press(ActionHold))
	s.Handle(Press(ActionHardDrop))
	s.Update(SpawnDelay)
	s.Handle(Press(ActionHold))

	p := mustActive(t, s)
	assert.Equal(t, NewPiece(T, SpawnPoint), p)
}

func TestSessionGameOver(t *testing.T) {
	s := NewSession(scripted(PieceTypes))
	s.Handle(Press(ActionHardDrop))

	// Every spawn shape covers column 4 of row 1.
	s.board.Set(1, 4, Z)
	before := s.board.Cells()
	score := s.Score()

	s.Update(SpawnDelay)
	assert.Equal(t, Dead, s.State())
	_, ok := s.Active()
	assert.False(t, ok)
	assert.Equal(t, before, s.board.Cells(), "the failed spawn must not touch the board")

	t.Run("dead ignores everything but restart", func(t *testing.T) {
		for _, a := range Actions {
			if a == ActionRestart {
				continue
			}
			s.Handle(Press(a))
			s.Handle(Release(a))
		}
		s.Update(time.Hour)
		assert.Equal(t, Dead, s.State())
		assert.Equal(t, score, s.Score())
		assert.Equal(t, before, s.board.Cells())

		s.Handle(Release(ActionRestart))
		s.Handle(Event{Action: ActionRestart, Repeat: true})
		assert.Equal(t, Dead, s.State())
	})

	t.Run("restart", func(t *testing.T) {
		s.Handle(Press(ActionRestart))
		assert.Equal(t, Playing, s.State())
		assert.Zero(t, s.Score())
		assert.Zero(t, s.Lines())
		assert.Equal(t, Grid{}, s.board.Cells())
		_, ok := s.Held()
		assert.False(t, ok)
		assert.Equal(t, I, mustActive(t, s).Type)
		assert.NoError(t, s.Verify())
	})
}

func TestSessionRestartWhilePlayingIsIgnored(t *testing.T) {
	s := NewSession(scripted(PieceTypes))
	s.Handle(Press(ActionHardDrop))
	s.Handle(Press(ActionRestart))
	assert.Equal(t, 36, s.Score())
}

func TestSessionLineClear(t *testing.T) {
	tests := []struct {
		name  string
		lines int
		rows  [2]int
		want  int
	}{
		{"level one bottom rows", 0, [2]int{18, 19}, 300},
		{"level three bottom rows", 20, [2]int{18, 19}, 900},
		{"level three middle rows", 20, [2]int{11, 12}, 900},
		{"crossing into level two", 9, [2]int{18, 19}, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(scripted([BagSize]PieceType{O, I, J, L, S, T, Z}))
			s.lines = tt.lines

			for _, row := range tt.rows {
				for col := range Width {
					if col != 3 && col != 4 {
						s.board.Set(row, col, J)
					}
				}
			}
			s.piece = NewPiece(O, Point{X: 3, Y: tt.rows[0]})
			score := s.Score()
			s.lock()

			assert.Equal(t, tt.want, s.Score()-score)
			assert.Equal(t, tt.lines+2, s.Lines())
			assert.Equal(t, Grid{}, s.board.Cells())
		})
	}
}

func TestSessionLineClearKeepsStackAbove(t *testing.T) {
	s := NewSession(scripted([BagSize]PieceType{O, I, J, L, S, T, Z}))
	for col := range Width {
		if col != 3 && col != 4 {
			s.board.Set(19, col, L)
		}
	}
	s.board.Set(18, 0, S)
	s.board.Set(17, 0, T)

	s.Handle(Press(ActionHardDrop))

	assert.Equal(t, 1, s.Lines())
	cells := s.board.Cells()
	assert.Equal(t, T, cells[18][0])
	assert.Equal(t, S, cells[19][0])
	assert.Equal(t, O, cells[19][3])
	assert.Equal(t, O, cells[19][4])
	assert.Equal(t, 2*18+100, s.Score())
}

func TestSessionGravity(t *testing.T) {
	s := NewSession(scripted([BagSize]PieceType{T, S, Z, O, I, J, L}))

	s.Update(FallInterval(1) - time.Millisecond)
	assert.Equal(t, SpawnPoint, mustActive(t, s).Pos)

	s.Update(time.Millisecond)
	assert.Equal(t, Point{X: 3, Y: 1}, mustActive(t, s).Pos)
	assert.Equal(t, FallInterval(1), s.fallTimer)
}

func TestSessionLockDelay(t *testing.T) {
	s := NewSession(scripted([BagSize]PieceType{T, S, Z, O, I, J, L}))
	settle(t, s)

	p := mustActive(t, s)
	assert.True(t, p.AtBottom(&s.board))
	assert.Equal(t, LockDelay, s.fallTimer)

	s.Update(LockDelay - 100*time.Millisecond)
	_, ok := s.Active()
	require.True(t, ok)

	t.Run("move re-arms", func(t *testing.T) {
		s.Handle(Press(ActionMoveLeft))
		s.Handle(Release(ActionMoveLeft))
		assert.Equal(t, LockDelay, s.fallTimer)
		assert.True(t, s.lockArmed)
	})

	t.Run("rotate re-arms", func(t *testing.T) {
		s.Update(LockDelay - 100*time.Millisecond)
		s.Handle(Press(ActionRotateCCW))
		assert.Equal(t, LockDelay, s.fallTimer)
	})

	t.Run("expiry locks", func(t *testing.T) {
		s.Update(LockDelay)
		_, ok := s.Active()
		assert.False(t, ok)
		assert.False(t, s.lockArmed)
		assert.NotEqual(t, Grid{}, s.board.Cells())
	})
}

func TestSessionSoftDrop(t *testing.T) {
	s := NewSession(scripted([BagSize]PieceType{T, S, Z, O, I, J, L}))

	s.Handle(Press(ActionSoftDrop))
	assert.Equal(t, FallSoftDrop, s.fallMode)
	assert.Zero(t, s.fallTimer)

	s.Update(time.Millisecond)
	assert.Equal(t, 1, s.Score())
	assert.Equal(t, Point{X: 3, Y: 1}, mustActive(t, s).Pos)
	assert.Equal(t, SoftDropInterval, s.fallTimer)

	s.Update(SoftDropInterval)
	assert.Equal(t, 2, s.Score())

	s.Handle(Event{Action: ActionSoftDrop, Repeat: true})
	assert.Equal(t, SoftDropInterval, s.fallTimer, "platform repeat must not reset the timer")

	s.Handle(Release(ActionSoftDrop))
	assert.Equal(t, FallNormal, s.fallMode)
	assert.Equal(t, SoftDropInterval, s.fallTimer, "release keeps the running timer")

	t.Run("release keeps an armed lock", func(t *testing.T) {
		s.Handle(Press(ActionSoftDrop))
		settle(t, s)
		timer := s.fallTimer
		s.Handle(Release(ActionSoftDrop))
		assert.True(t, s.lockArmed)
		assert.Equal(t, timer, s.fallTimer)
	})
}

func TestSessionAutoShift(t *testing.T) {
	s := NewSession(scripted([BagSize]PieceType{T, S, Z, O, I, J, L}))

	s.Handle(Press(ActionMoveLeft))
	assert.Equal(t, 2, mustActive(t, s).Pos.X, "press moves immediately")

	s.Handle(Event{Action: ActionMoveLeft, Repeat: true})
	s.Handle(Press(ActionMoveLeft))
	assert.Equal(t, 2, mustActive(t, s).Pos.X, "held key does not move again on press")

	s.Update(MoveWait - time.Millisecond)
	assert.Equal(t, 2, mustActive(t, s).Pos.X)
	s.Update(time.Millisecond)
	assert.Equal(t, 1, mustActive(t, s).Pos.X)
	s.Update(MoveInterval)
	assert.Equal(t, 0, mustActive(t, s).Pos.X)
	s.Update(MoveInterval)
	assert.Equal(t, 0, mustActive(t, s).Pos.X, "wall")

	s.Handle(Release(ActionMoveRight))
	assert.Equal(t, ShiftLeft, s.shiftDir, "releasing the other direction keeps the shift")

	s.Handle(Press(ActionMoveRight))
	assert.Equal(t, ShiftRight, s.shiftDir)
	assert.Equal(t, 1, mustActive(t, s).Pos.X)
	assert.Equal(t, MoveWait, s.shiftTimer)

	s.Handle(Release(ActionMoveRight))
	assert.Equal(t, ShiftNone, s.shiftDir)
	s.Update(MoveWait)
	assert.Equal(t, 1, mustActive(t, s).Pos.X)
}

func TestSessionShiftAfterLock(t *testing.T) {
	s := NewSession(scripted([BagSize]PieceType{T, S, Z, O, I, J, L}))
	s.Handle(Press(ActionMoveRight))
	s.Update(MoveWait - 50*time.Millisecond)
	s.Handle(Press(ActionHardDrop))
	before := s.board.Cells()

	// The repeat fires while the key is held and no piece is active.
	s.Update(60 * time.Millisecond)
	assert.Equal(t, MoveInterval, s.shiftTimer)
	assert.Equal(t, before, s.board.Cells())
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestSessionUpdateNegativeDelta(t *testing.T) {
	s := NewSession(scripted(PieceTypes))
	before := s.Snapshot()
	s.Update(-time.Second)
	assert.Equal(t, before, s.Snapshot())
}

func TestSessionSnapshot(t *testing.T) {
	s := NewSession(scripted(PieceTypes), WithPreview(5))
	snap := s.Snapshot()

	assert.True(t, snap.Active)
	assert.Equal(t, I, snap.Piece.Type)
	assert.Equal(t, Height-2, snap.Ghost.Pos.Y)
	assert.Equal(t, []PieceType{J, L, O, S, T}, snap.Next)

	snap.Next[0] = Z
	snap.Board[0][0] = Z
	assert.Equal(t, J, s.Next(), "snapshot shares no memory")
	_, ok := s.board.At(0, 0)
	assert.False(t, ok)

	s.Handle(Press(ActionHardDrop))
	snap = s.Snapshot()
	assert.False(t, snap.Active)
	assert.Equal(t, Piece{}, snap.Ghost)
}

func TestSessionPreviewClamp(t *testing.T) {
	assert.Len(t, NewSession(WithSeed(1), WithPreview(0)).Snapshot().Next, 1)
	assert.Len(t, NewSession(WithSeed(1), WithPreview(50)).Snapshot().Next, BagSize)
}

func TestSessionSeedDeterminism(t *testing.T) {
	a := NewSession(WithSeed(99), WithPreview(BagSize))
	b := NewSession(WithSeed(99), WithPreview(BagSize))
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestSessionVerify(t *testing.T) {
	s := NewSession(scripted(PieceTypes))
	require.NoError(t, s.Verify())

	s.piece.Pos.X = -3
	assert.ErrorIs(t, s.Verify(), ErrPieceOutOfBounds)

	s.piece.Pos = SpawnPoint
	s.board.Set(1, 4, Z)
	assert.ErrorIs(t, s.Verify(), ErrPieceOverlap)

	s.board.Reset()
	s.piece.Rotation = RotationR
	assert.ErrorIs(t, s.Verify(), ErrPieceShape)

	s.piece.Rotation = RotationZero
	s.score = -1
	assert.ErrorIs(t, s.Verify(), ErrCounters)
}

// TestSessionRandomPlay feeds a long stream of random inputs and time steps
// and checks the invariants after every one.
func TestSessionRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	s := NewSession(WithSeed(3), WithPreview(3))

	games := 0
	lines, score := 0, 0
	for i := range 50_000 {
		if rng.IntN(3) == 0 {
			ev := Event{Action: Actions[rng.IntN(len(Actions))], Release: rng.IntN(3) == 0}
			s.Handle(ev)
		} else {
			s.Update(time.Duration(rng.IntN(120)) * time.Millisecond)
		}
		require.NoError(t, s.Verify(), "step %d", i)

		if s.State() == Dead {
			games++
			s.Handle(Press(ActionRestart))
			lines, score = 0, 0
			continue
		}
		require.GreaterOrEqual(t, s.Lines(), lines, "step %d", i)
		require.GreaterOrEqual(t, s.Score(), score, "step %d", i)
		lines, score = s.Lines(), s.Score()
	}
	t.Logf("played %d games", games)
}

func BenchmarkSessionUpdate(b *testing.B) {
	s := NewSession(WithSeed(1))
	rng := rand.New(rand.NewPCG(1, 1))
	for b.Loop() {
		if rng.IntN(8) == 0 {
			s.Handle(Press(Actions[rng.IntN(len(Actions))]))
		}
		s.Update(16 * time.Millisecond)
		if s.State() == Dead {
			s.Handle(Press(ActionRestart))
		}
	}
}
