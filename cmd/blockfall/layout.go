package main

import (
	"github.com/plus3/blockfall/tetris"
)

// layout places the well and the side panel for a given cell size. All
// values are in screen pixels.
type layout struct {
	cell   float32
	wellX  float32
	wellY  float32
	panelX float32
}

// panelCells is the width of the side panel in cells.
const panelCells = 6

func newLayout(scale int) layout {
	cell := float32(scale)
	return layout{
		cell:   cell,
		wellX:  cell,
		wellY:  cell,
		panelX: cell*2 + cell*tetris.Width,
	}
}

// size returns the window size that fits the well, the panel and margins.
func (l layout) size() (int, int) {
	w := l.panelX + l.cell*(panelCells+1)
	h := l.wellY*2 + l.cell*tetris.Height
	return int(w), int(h)
}

// cellAt returns the top-left corner of well cell (col, row).
func (l layout) cellAt(col, row int) (float32, float32) {
	return l.wellX + float32(col)*l.cell, l.wellY + float32(row)*l.cell
}

// inWell reports whether p is a visible well cell. Kicks can lift a piece
// above row 0.
func inWell(p tetris.Point) bool {
	return p.X >= 0 && p.X < tetris.Width && p.Y >= 0 && p.Y < tetris.Height
}

// wellCell maps a screen position back to a well cell.
func (l layout) wellCell(x, y int) (tetris.Point, bool) {
	fx, fy := float32(x)-l.wellX, float32(y)-l.wellY
	if fx < 0 || fy < 0 {
		return tetris.Point{}, false
	}
	p := tetris.Point{X: int(fx / l.cell), Y: int(fy / l.cell)}
	if p.X >= tetris.Width || p.Y >= tetris.Height {
		return tetris.Point{}, false
	}
	return p, true
}
