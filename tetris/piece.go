package tetris

// Piece is a tetromino in play: a type, its four block offsets for the
// current rotation and the anchor those offsets are relative to.
//
// Piece is a plain value; copying it yields an independent clone, which is how
// ghost positions are computed.
type Piece struct {
	Type     PieceType
	Blocks   [4]Point
	Pos      Point
	Rotation Rotation
}

// NewPiece returns a piece of type t in spawn orientation anchored at pos.
func NewPiece(t PieceType, pos Point) Piece {
	return Piece{
		Type:   t,
		Blocks: t.Blocks(),
		Pos:    pos,
	}
}

// Cells returns the absolute board coordinates of the four blocks.
func (p Piece) Cells() [4]Point {
	var out [4]Point
	for i, b := range p.Blocks {
		out[i] = p.Pos.Add(b)
	}
	return out
}

func (p *Piece) shift(b *Board, d Point) bool {
	next := p.Pos.Add(d)
	if !b.Fits(p.Blocks, next) {
		return false
	}
	p.Pos = next
	return true
}

// Fall moves the piece down one row if it fits there.
func (p *Piece) Fall(b *Board) bool {
	return p.shift(b, Point{Y: 1})
}

// MoveLeft moves the piece one column left if it fits there.
func (p *Piece) MoveLeft(b *Board) bool {
	return p.shift(b, Point{X: -1})
}

// MoveRight moves the piece one column right if it fits there.
func (p *Piece) MoveRight(b *Board) bool {
	return p.shift(b, Point{X: 1})
}

// AtBottom reports whether the piece rests on the floor or the stack, that
// is whether a Fall would be rejected. It never moves the piece.
func (p Piece) AtBottom(b *Board) bool {
	return !b.Fits(p.Blocks, p.Pos.Add(Point{Y: 1}))
}

// Rotate turns the piece a quarter in dir, trying each kick offset for the
// current rotation state in order. It returns false and leaves the piece
// untouched when every candidate collides. O pieces never change.
func (p *Piece) Rotate(dir Direction, b *Board) bool {
	if p.Type == O {
		return true
	}
	rotated := rotateBlocks(p.Blocks, p.Type.PivotSize(), dir)
	for _, kick := range Kicks(p.Type, dir, p.Rotation) {
		pos := p.Pos.Add(kick)
		if !b.Fits(rotated, pos) {
			continue
		}
		p.Blocks = rotated
		p.Pos = pos
		p.Rotation = p.Rotation.Turn(dir)
		return true
	}
	return false
}

// Drop returns a copy of p moved down until it rests, without touching p.
func (p Piece) Drop(b *Board) Piece {
	for p.Fall(b) {
	}
	return p
}

// Fits reports whether the piece overlaps nothing and is within the walls
// and above the floor.
func (p Piece) Fits(b *Board) bool {
	return b.Fits(p.Blocks, p.Pos)
}
