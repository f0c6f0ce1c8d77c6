// Package debugui provides Dear ImGui debug windows for a running game: a
// session inspector with input injection, a board view and driver
// performance stats.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

// Item holds a Dear ImGui render function drawn once per frame.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Frontends use it to keep keys typed into a debug window away from the game.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Pusher accepts input events. *driver.Driver is a Pusher.
type Pusher interface {
	Push(ev tetris.Event)
}

// Overlay is the list of items drawn every frame.
type Overlay struct {
	items []Item
	input InputState
}

// NewOverlay returns an overlay drawing items in the given order.
func NewOverlay(items ...Item) *Overlay {
	return &Overlay{items: items}
}

// Add appends an item.
func (o *Overlay) Add(render func()) {
	o.items = append(o.items, Item{Render: render})
}

// Render refreshes the input state and runs every item. It must be called
// between the backend's BeginFrame and EndFrame.
func (o *Overlay) Render() {
	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range o.items {
		item.Render()
	}
}

// InputState returns the capture state as of the last Render.
func (o *Overlay) InputState() InputState {
	return o.input
}
