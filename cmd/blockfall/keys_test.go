package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

type fakeKeyboard struct {
	pressed  map[ebiten.Key]bool
	released map[ebiten.Key]bool
}

func (f fakeKeyboard) JustPressed(k ebiten.Key) bool  { return f.pressed[k] }
func (f fakeKeyboard) JustReleased(k ebiten.Key) bool { return f.released[k] }

type recorder []tetris.Event

func (r *recorder) Push(ev tetris.Event) {
	*r = append(*r, ev)
}

func TestPollKeys(t *testing.T) {
	kb := fakeKeyboard{
		pressed:  map[ebiten.Key]bool{ebiten.KeySpace: true, ebiten.KeyArrowLeft: true},
		released: map[ebiten.Key]bool{ebiten.KeyArrowLeft: true},
	}
	var got recorder
	n := pollKeys(kb, &got)

	assert.Equal(t, 3, n)
	assert.Equal(t, recorder{
		tetris.Release(tetris.ActionMoveLeft),
		tetris.Press(tetris.ActionMoveLeft),
		tetris.Press(tetris.ActionHardDrop),
	}, got)
}

func TestPollKeysIdle(t *testing.T) {
	var got recorder
	assert.Zero(t, pollKeys(fakeKeyboard{}, &got))
	assert.Empty(t, got)
}

func TestBindingsCoverActions(t *testing.T) {
	bound := map[tetris.Action]int{}
	for _, b := range bindings {
		bound[b.action]++
	}
	for _, a := range tetris.Actions {
		assert.Positive(t, bound[a], "%s has no key", a)
	}
	for _, a := range []tetris.Action{tetris.ActionMoveLeft, tetris.ActionMoveRight, tetris.ActionSoftDrop} {
		assert.Equal(t, 1, bound[a], "%s must have a single key", a)
	}
}
