package palette_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/tetris/palette"
	"github.com/stretchr/testify/assert"
)

func TestPiece(t *testing.T) {
	seen := map[[4]uint8]tetris.PieceType{}
	for _, pt := range tetris.PieceTypes {
		c := palette.Piece(pt)
		assert.Equal(t, uint8(255), c.A, pt.String())
		key := [4]uint8{c.R, c.G, c.B, c.A}
		if other, dup := seen[key]; dup {
			t.Errorf("%s shares a colour with %s", pt, other)
		}
		seen[key] = pt
	}
	assert.Zero(t, palette.Piece(tetris.None).A)
	assert.Zero(t, palette.Piece(tetris.PieceType(200)).A)
}

func TestGhost(t *testing.T) {
	for _, pt := range tetris.PieceTypes {
		g := palette.Ghost(pt)
		assert.Less(t, g.A, palette.Piece(pt).A)
		assert.LessOrEqual(t, g.R, g.A)
		assert.LessOrEqual(t, g.G, g.A)
		assert.LessOrEqual(t, g.B, g.A)
	}
}
