package debugui

import (
	"fmt"
	"image/color"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/tetris/palette"
)

// BoardView draws the well cell by cell with the active piece and its ghost,
// and reports the cell under the mouse.
type BoardView struct {
	CellSize float32
}

func NewBoardView(cellSize float32) BoardView {
	return BoardView{CellSize: cellSize}
}

func (bv *BoardView) Render(snap tetris.Snapshot) {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 10), imgui.CondOnce, imgui.NewVec2(0, 0))

	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	cells := composeCells(snap)

	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()
	size := bv.CellSize
	for row := range tetris.Height {
		for col := range tetris.Width {
			lo := imgui.NewVec2(origin.X+float32(col)*size, origin.Y+float32(row)*size)
			hi := imgui.NewVec2(lo.X+size-1, lo.Y+size-1)
			drawList.AddRectFilled(lo, hi, colorU32(cells[row][col]))
		}
	}
	imgui.Dummy(imgui.NewVec2(size*tetris.Width, size*tetris.Height))

	mouse := imgui.CurrentIO().MousePos()
	col := int((mouse.X - origin.X) / size)
	row := int((mouse.Y - origin.Y) / size)
	if mouse.X >= origin.X && mouse.Y >= origin.Y && col < tetris.Width && row < tetris.Height {
		imgui.Text(fmt.Sprintf("Cell (%d, %d): %s", row, col, snap.Board[row][col]))
	} else {
		imgui.Text("Cell: -")
	}

	imgui.End()
}

// composeCells flattens the locked grid, the ghost and the active piece into
// one colour per cell.
func composeCells(snap tetris.Snapshot) [tetris.Height][tetris.Width]color.RGBA {
	var out [tetris.Height][tetris.Width]color.RGBA
	for row := range tetris.Height {
		for col := range tetris.Width {
			out[row][col] = palette.Well
			if t := snap.Board[row][col]; t != tetris.None {
				out[row][col] = palette.Piece(t)
			}
		}
	}
	if !snap.Active {
		return out
	}
	paint := func(p tetris.Piece, c color.RGBA) {
		for _, cell := range p.Cells() {
			if cell.Y >= 0 && cell.Y < tetris.Height && cell.X >= 0 && cell.X < tetris.Width {
				out[cell.Y][cell.X] = c
			}
		}
	}
	paint(snap.Ghost, palette.Ghost(snap.Ghost.Type))
	paint(snap.Piece, palette.Piece(snap.Piece.Type))
	return out
}

func colorU32(c color.RGBA) uint32 {
	return imgui.ColorU32Vec4(imgui.NewVec4(
		float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255,
	))
}
