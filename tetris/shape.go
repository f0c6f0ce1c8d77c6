package tetris

// Point is a board coordinate. X grows to the right and Y grows downward,
// so row 0 is the top of the board.
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of p and o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// PieceType identifies one of the seven tetrominoes. The zero value None is
// used for empty board cells and empty hold slots.
type PieceType uint8

const (
	None PieceType = iota
	I
	J
	L
	O
	S
	T
	Z
)

// PieceTypes lists every playable type in a fixed order.
var PieceTypes = [7]PieceType{I, J, L, O, S, T, Z}

var pieceTypeNames = [...]string{
	None: "-",
	I:    "I",
	J:    "J",
	L:    "L",
	O:    "O",
	S:    "S",
	T:    "T",
	Z:    "Z",
}

func (t PieceType) String() string {
	if int(t) < len(pieceTypeNames) {
		return pieceTypeNames[t]
	}
	return "?"
}

// Valid reports whether t is one of the seven playable types.
func (t PieceType) Valid() bool {
	return t >= I && t <= Z
}

// spawnBlocks holds the block offsets of every type in its spawn orientation,
// relative to the top-left corner of its pivot box.
var spawnBlocks = [...][4]Point{
	I: {{0, 1}, {1, 1}, {2, 1}, {3, 1}},
	J: {{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	L: {{0, 1}, {1, 1}, {2, 1}, {2, 0}},
	O: {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	S: {{0, 1}, {1, 1}, {1, 0}, {2, 0}},
	T: {{1, 0}, {0, 1}, {1, 1}, {2, 1}},
	Z: {{0, 0}, {1, 0}, {1, 1}, {2, 1}},
}

// Blocks returns the spawn orientation offsets for t. None has no blocks and
// returns the zero array.
func (t PieceType) Blocks() [4]Point {
	if !t.Valid() {
		return [4]Point{}
	}
	return spawnBlocks[t]
}

// PivotSize is the side of the square box the type rotates in.
func (t PieceType) PivotSize() int {
	switch t {
	case I:
		return 4
	case O:
		return 2
	default:
		return 3
	}
}

// Rotation is the orientation of a piece relative to its spawn state.
type Rotation uint8

const (
	RotationZero Rotation = iota
	RotationR
	RotationTwo
	RotationL
)

func (r Rotation) String() string {
	switch r {
	case RotationZero:
		return "0"
	case RotationR:
		return "R"
	case RotationTwo:
		return "2"
	case RotationL:
		return "L"
	}
	return "?"
}

// Turn returns the rotation state reached by turning once in dir.
func (r Rotation) Turn(dir Direction) Rotation {
	if dir == Clockwise {
		return (r + 1) % 4
	}
	return (r + 3) % 4
}

// Direction selects the sense of a rotation.
type Direction uint8

const (
	Clockwise Direction = iota
	CounterClockwise
)

func (d Direction) String() string {
	if d == Clockwise {
		return "cw"
	}
	return "ccw"
}

// rotateBlocks turns blocks by 90 degrees inside a size×size box.
func rotateBlocks(blocks [4]Point, size int, dir Direction) [4]Point {
	edge := size - 1
	var out [4]Point
	for i, b := range blocks {
		if dir == Clockwise {
			out[i] = Point{X: abs(edge - b.Y), Y: b.X}
		} else {
			out[i] = Point{X: b.Y, Y: abs(edge - b.X)}
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// KickTable holds the candidate translations tried for a rotation, one row per
// starting rotation state. Every row starts with the unkicked (0, 0) offset.
type KickTable [4][5]Point

// Offsets are in board coordinates, so a negative Y kicks the piece upward.
var (
	kicksClockwise = KickTable{
		RotationZero: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		RotationR:    {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		RotationTwo:  {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		RotationL:    {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	}
	kicksCounterClockwise = KickTable{
		RotationZero: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		RotationR:    {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		RotationTwo:  {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		RotationL:    {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	}
	kicksIClockwise = KickTable{
		RotationZero: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		RotationR:    {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
		RotationTwo:  {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		RotationL:    {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
	}
	kicksICounterClockwise = KickTable{
		RotationZero: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
		RotationR:    {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		RotationTwo:  {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		RotationL:    {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
	}
)

// Kicks returns the candidate offsets for turning a piece of type t from the
// rotation state from in direction dir.
func Kicks(t PieceType, dir Direction, from Rotation) [5]Point {
	from %= 4
	switch {
	case t == I && dir == Clockwise:
		return kicksIClockwise[from]
	case t == I:
		return kicksICounterClockwise[from]
	case dir == Clockwise:
		return kicksClockwise[from]
	default:
		return kicksCounterClockwise[from]
	}
}
