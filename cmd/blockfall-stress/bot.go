package main

import (
	"math/rand/v2"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/tetris"
)

// Bot produces random input. Every press of a movement or soft-drop key is
// eventually followed by its release so held-key timers get exercised.
type Bot struct {
	rng  *rand.Rand
	rate float64
	held *intmap.Set[tetris.Action]
}

func NewBot(seed uint64, rate float64) *Bot {
	return &Bot{
		rng:  rand.New(rand.NewPCG(seed, seed+1)),
		rate: rate,
		held: intmap.NewSet[tetris.Action](len(tetris.Actions)),
	}
}

// holdable reports whether a releases something the session tracks.
func holdable(a tetris.Action) bool {
	switch a {
	case tetris.ActionMoveLeft, tetris.ActionMoveRight, tetris.ActionSoftDrop:
		return true
	}
	return false
}

// Next returns the input for one tick, if any. Restart is never chosen; the
// soak restarts on game over itself.
func (b *Bot) Next() (tetris.Event, bool) {
	if b.rng.Float64() >= b.rate {
		return tetris.Event{}, false
	}

	action := tetris.Actions[b.rng.IntN(len(tetris.Actions)-1)]
	if holdable(action) && b.held.Has(action) {
		b.held.Del(action)
		return tetris.Release(action), true
	}
	if holdable(action) {
		b.held.Add(action)
	}
	// Hard drops end a piece at once; keep them rare so stacks build up.
	if action == tetris.ActionHardDrop && b.rng.IntN(4) != 0 {
		action = tetris.ActionRotateCW
	}
	return tetris.Press(action), true
}
