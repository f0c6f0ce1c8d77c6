package tetris

import "strings"

// Board dimensions in cells.
const (
	Width  = 10
	Height = 20
)

// Grid is a copy of the board contents indexed [row][col].
type Grid [Height][Width]PieceType

// Board is the fixed-size playfield holding locked blocks. The zero value is
// an empty board.
type Board struct {
	cells Grid
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Height && col >= 0 && col < Width
}

// At returns the type locked at (row, col). The second result is false for
// empty cells and for any out-of-range index.
func (b *Board) At(row, col int) (PieceType, bool) {
	if !inBounds(row, col) {
		return None, false
	}
	t := b.cells[row][col]
	return t, t != None
}

// Set writes a cell. Writes outside the board are dropped.
func (b *Board) Set(row, col int, t PieceType) {
	if !inBounds(row, col) {
		return
	}
	b.cells[row][col] = t
}

// RowFull reports whether every cell of row is occupied.
func (b *Board) RowFull(row int) bool {
	if row < 0 || row >= Height {
		return false
	}
	for _, c := range b.cells[row] {
		if c == None {
			return false
		}
	}
	return true
}

// ClearRow empties row and moves every row above it down by one. Row 0 is
// left empty. Rows below row are untouched.
func (b *Board) ClearRow(row int) {
	if row < 0 || row >= Height {
		return
	}
	for r := row; r > 0; r-- {
		b.cells[r] = b.cells[r-1]
	}
	b.cells[0] = [Width]PieceType{}
}

// Fits reports whether blocks placed at pos lie within the side walls, above
// the floor and on empty cells. Cells above row 0 are allowed.
func (b *Board) Fits(blocks [4]Point, pos Point) bool {
	for _, blk := range blocks {
		c := pos.Add(blk)
		if c.X < 0 || c.X >= Width || c.Y >= Height {
			return false
		}
		if _, ok := b.At(c.Y, c.X); ok {
			return false
		}
	}
	return true
}

// Cells returns a copy of the grid.
func (b *Board) Cells() Grid {
	return b.cells
}

// Reset empties every cell.
func (b *Board) Reset() {
	b.cells = Grid{}
}

// String renders the board one row per line, using '.' for empty cells.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for _, row := range b.cells {
		for _, c := range row {
			if c == None {
				sb.WriteByte('.')
			} else {
				sb.WriteString(c.String())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
