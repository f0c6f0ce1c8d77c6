package tetris_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestLineClearScore(t *testing.T) {
	tests := []struct {
		rows, level, want int
	}{
		{0, 1, 0},
		{1, 1, 100},
		{2, 1, 300},
		{3, 1, 500},
		{4, 1, 800},
		{2, 3, 900},
		{4, 20, 16000},
		{5, 1, 0},
		{-1, 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tetris.LineClearScore(tt.rows, tt.level), "rows=%d level=%d", tt.rows, tt.level)
	}
}

func TestLevelForLines(t *testing.T) {
	assert.Equal(t, 1, tetris.LevelForLines(0))
	assert.Equal(t, 1, tetris.LevelForLines(9))
	assert.Equal(t, 2, tetris.LevelForLines(10))
	assert.Equal(t, 3, tetris.LevelForLines(29))
	assert.Equal(t, tetris.MaxLevel, tetris.LevelForLines(190))
	assert.Equal(t, tetris.MaxLevel, tetris.LevelForLines(10_000))
	assert.Equal(t, 1, tetris.LevelForLines(-5))
}

func TestFallInterval(t *testing.T) {
	assert.Equal(t, time.Second, tetris.FallInterval(1))
	assert.Equal(t, time.Second, tetris.FallInterval(0), "clamped to level 1")
	assert.Equal(t, tetris.FallInterval(tetris.MaxLevel), tetris.FallInterval(tetris.MaxLevel+5))

	// Roughly 0.793s, 0.618s and 0.473s; truncation may shave a millisecond.
	assert.InDelta(t, 793, tetris.FallInterval(2).Milliseconds(), 1)
	assert.InDelta(t, 617, tetris.FallInterval(3).Milliseconds(), 1)
	assert.InDelta(t, 472, tetris.FallInterval(4).Milliseconds(), 1)

	prev := tetris.FallInterval(1)
	for level := 2; level <= tetris.MaxLevel; level++ {
		cur := tetris.FallInterval(level)
		assert.LessOrEqual(t, cur, prev, "level %d", level)
		assert.GreaterOrEqual(t, cur, time.Duration(0))
		assert.Zero(t, cur%time.Millisecond)
		prev = cur
	}
}
