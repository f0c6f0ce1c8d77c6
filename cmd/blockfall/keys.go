package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/tetris/debugui"
)

type binding struct {
	key    ebiten.Key
	action tetris.Action
}

// Each held action has exactly one key so a release always matches its press.
var bindings = []binding{
	{ebiten.KeyArrowLeft, tetris.ActionMoveLeft},
	{ebiten.KeyArrowRight, tetris.ActionMoveRight},
	{ebiten.KeyArrowDown, tetris.ActionSoftDrop},
	{ebiten.KeyArrowUp, tetris.ActionRotateCW},
	{ebiten.KeyX, tetris.ActionRotateCW},
	{ebiten.KeyZ, tetris.ActionRotateCCW},
	{ebiten.KeySpace, tetris.ActionHardDrop},
	{ebiten.KeyC, tetris.ActionHold},
	{ebiten.KeyR, tetris.ActionRestart},
}

// keyboard reports key edges for the current tick.
type keyboard interface {
	JustPressed(k ebiten.Key) bool
	JustReleased(k ebiten.Key) bool
}

type ebitenKeyboard struct{}

func (ebitenKeyboard) JustPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (ebitenKeyboard) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }

// pollKeys forwards this tick's key edges to p and returns how many events
// were pushed.
func pollKeys(kb keyboard, p debugui.Pusher) int {
	n := 0
	for _, b := range bindings {
		if kb.JustReleased(b.key) {
			p.Push(tetris.Release(b.action))
			n++
		}
	}
	for _, b := range bindings {
		if kb.JustPressed(b.key) {
			p.Push(tetris.Press(b.action))
			n++
		}
	}
	return n
}
