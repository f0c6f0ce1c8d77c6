package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/tetris/palette"
)

// Gap between neighbouring cells so the grid stays visible.
const cellGap = 1

func (l layout) fillCell(screen *ebiten.Image, col, row int, c color.RGBA) {
	if !inWell(tetris.Point{X: col, Y: row}) {
		return
	}
	x, y := l.cellAt(col, row)
	vector.DrawFilledRect(screen, x, y, l.cell-cellGap, l.cell-cellGap, c, false)
}

func drawBoard(screen *ebiten.Image, l layout, snap tetris.Snapshot) {
	vector.DrawFilledRect(screen, l.wellX-2, l.wellY-2, l.cell*tetris.Width+4, l.cell*tetris.Height+4, palette.GridLine, false)
	vector.DrawFilledRect(screen, l.wellX, l.wellY, l.cell*tetris.Width, l.cell*tetris.Height, palette.Well, false)

	for row := range tetris.Height {
		for col := range tetris.Width {
			if t := snap.Board[row][col]; t != tetris.None {
				l.fillCell(screen, col, row, palette.Piece(t))
			}
		}
	}

	if !snap.Active {
		return
	}
	for _, p := range snap.Ghost.Cells() {
		l.fillCell(screen, p.X, p.Y, palette.Ghost(snap.Ghost.Type))
	}
	for _, p := range snap.Piece.Cells() {
		l.fillCell(screen, p.X, p.Y, palette.Piece(snap.Piece.Type))
	}
}

// drawMini draws t in its spawn orientation with its box at (x, y).
func drawMini(screen *ebiten.Image, t tetris.PieceType, x, y, cell float32) {
	if !t.Valid() {
		return
	}
	for _, b := range t.Blocks() {
		vector.DrawFilledRect(screen, x+float32(b.X)*cell, y+float32(b.Y)*cell, cell-cellGap, cell-cellGap, palette.Piece(t), false)
	}
}

func drawPanel(screen *ebiten.Image, l layout, snap tetris.Snapshot) {
	x := l.panelX
	y := l.wellY
	mini := l.cell / 2

	ebitenutil.DebugPrintAt(screen, "HOLD", int(x), int(y))
	drawMini(screen, snap.Held, x, y+16, mini)
	y += 16 + mini*4

	ebitenutil.DebugPrintAt(screen, "NEXT", int(x), int(y))
	y += 16
	for _, t := range snap.Next {
		drawMini(screen, t, x, y, mini)
		y += mini * 3
	}
	y += mini

	stats := fmt.Sprintf("SCORE\n%d\n\nLEVEL\n%d\n\nLINES\n%d", snap.Score, snap.Level, snap.Lines)
	ebitenutil.DebugPrintAt(screen, stats, int(x), int(y))
}

func drawGameOver(screen *ebiten.Image, l layout) {
	w := l.cell * tetris.Width
	y := l.wellY + l.cell*tetris.Height/2 - l.cell
	vector.DrawFilledRect(screen, l.wellX, y, w, l.cell*2, color.RGBA{0, 0, 0, 200}, false)
	msg := strings.Join([]string{"GAME OVER", "Press R to restart"}, "\n")
	ebitenutil.DebugPrintAt(screen, msg, int(l.wellX+l.cell), int(y+l.cell/2))
}
