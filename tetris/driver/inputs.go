package driver

import "github.com/plus3/blockfall/tetris"

// Handler consumes input events. *tetris.Session is the usual Handler.
type Handler interface {
	Handle(ev tetris.Event)
}

// Inputs buffers events between frames so they reach the session in arrival
// order at a single point of the tick, never while it is mid-update.
type Inputs struct {
	events []tetris.Event
	defers []func()
}

// NewInputs returns an empty buffer.
func NewInputs() *Inputs {
	return &Inputs{}
}

// Push queues ev.
func (in *Inputs) Push(ev tetris.Event) {
	in.events = append(in.events, ev)
}

// Press queues a key-down for a.
func (in *Inputs) Press(a tetris.Action) {
	in.Push(tetris.Press(a))
}

// Release queues a key-up for a.
func (in *Inputs) Release(a tetris.Action) {
	in.Push(tetris.Release(a))
}

// Defer queues fn to run after the events of the next Flush.
func (in *Inputs) Defer(fn func()) {
	in.defers = append(in.defers, fn)
}

// Len is the number of queued events.
func (in *Inputs) Len() int {
	return len(in.events)
}

// Flush hands every queued event to h in order, runs deferred functions and
// resets the buffer. It returns the number of events delivered.
func (in *Inputs) Flush(h Handler) int {
	n := len(in.events)
	for _, ev := range in.events {
		h.Handle(ev)
	}
	for _, fn := range in.defers {
		fn()
	}

	clear(in.events)
	in.events = in.events[:0]
	clear(in.defers)
	in.defers = in.defers[:0]
	return n
}
