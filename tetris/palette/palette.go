// Package palette holds the colours shared by every frontend.
package palette

import (
	"image/color"

	"github.com/plus3/blockfall/tetris"
)

var (
	Background = color.RGBA{18, 18, 24, 255}
	Well       = color.RGBA{30, 30, 40, 255}
	GridLine   = color.RGBA{45, 45, 58, 255}
	Text       = color.RGBA{230, 230, 230, 255}
	GameOver   = color.RGBA{255, 90, 90, 255}
)

var pieces = [...]color.RGBA{
	tetris.None: {0, 0, 0, 0},
	tetris.I:    {0, 240, 240, 255},
	tetris.J:    {0, 80, 240, 255},
	tetris.L:    {240, 160, 0, 255},
	tetris.O:    {240, 240, 0, 255},
	tetris.S:    {0, 220, 60, 255},
	tetris.T:    {170, 0, 240, 255},
	tetris.Z:    {240, 30, 40, 255},
}

// Piece returns the fill colour for t. None is transparent.
func Piece(t tetris.PieceType) color.RGBA {
	if int(t) >= len(pieces) {
		return pieces[tetris.None]
	}
	return pieces[t]
}

// Ghost returns a translucent variant of Piece(t) for the landing preview.
func Ghost(t tetris.PieceType) color.RGBA {
	c := Piece(t)
	// Premultiplied alpha: scale the channels with it.
	return color.RGBA{R: c.R / 4, G: c.G / 4, B: c.B / 4, A: c.A / 4}
}
