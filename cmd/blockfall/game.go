package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/tetris/debugui"
	debugui_ebiten "github.com/plus3/blockfall/tetris/debugui/ebiten"
	"github.com/plus3/blockfall/tetris/driver"
	"github.com/plus3/blockfall/tetris/palette"
)

// Game implements ebiten.Game on top of a driver.
type Game struct {
	driver   *driver.Driver
	keyboard keyboard
	layout   layout
	tick     time.Duration

	// Debug overlay, nil unless enabled.
	backend   *debugui_ebiten.ImguiBackend
	inspector *debugui.SessionInspector
	perf      *debugui.PerformanceStats
	frames    *debugui.FrameTimer
}

func NewGame(d *driver.Driver, scale, tps int) *Game {
	return &Game{
		driver:   d,
		keyboard: ebitenKeyboard{},
		layout:   newLayout(scale),
		tick:     time.Second / time.Duration(tps),
	}
}

// EnableDebug attaches the Dear ImGui overlay with the session inspector,
// a board view and performance plots.
func (g *Game) EnableDebug(backend *debugui_ebiten.ImguiBackend) {
	g.backend = backend
	g.inspector = debugui.NewSessionInspector(g.driver)
	g.perf = debugui.NewPerformanceStats(240)
	g.frames = debugui.NewFrameTimer()
	board := debugui.NewBoardView(12)

	backend.Overlay.Add(func() {
		snap := g.driver.Snapshot()
		g.inspector.Render(snap)
		board.Render(snap)
	})
	backend.Overlay.Add(func() {
		g.perf.Render(g.driver.Stats())
	})
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.backend == nil || !g.backend.Overlay.InputState().WantCaptureKeyboard {
		pollKeys(g.keyboard, g.driver)
	}

	if g.inspector == nil || g.inspector.ShouldTick() {
		g.driver.Once(g.tick)
	}

	if g.backend != nil {
		g.perf.Record(debugui.FrameSample{Delta: g.frames.Delta(), Stats: g.driver.Stats()})
		g.backend.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(palette.Background)

	snap := g.driver.Snapshot()
	drawBoard(screen, g.layout, snap)
	drawPanel(screen, g.layout, snap)
	if snap.State == tetris.Dead {
		drawGameOver(screen, g.layout)
	}

	w, h := g.layout.size()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.0f", ebiten.ActualFPS()), w-int(g.layout.cell)*3, h-20)

	if g.backend != nil {
		if p, ok := g.layout.wellCell(ebiten.CursorPosition()); ok {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("cell %d,%d", p.X, p.Y), int(g.layout.wellX), h-20)
		}
		g.backend.DrawOver(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.layout.size()
}
