// Command blockfall plays the game in a window.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/tetris"
	debugui_ebiten "github.com/plus3/blockfall/tetris/debugui/ebiten"
	"github.com/plus3/blockfall/tetris/driver"
)

func main() {
	cfg, err := config.ParseGame(flag.CommandLine, os.Args[1:], nil)
	if err != nil {
		log.Fatal(err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("seed %d, preview %d, %d ticks/s", seed, cfg.Preview, cfg.TPS)

	session := tetris.NewSession(tetris.WithSeed(seed), tetris.WithPreview(cfg.Preview))
	d := driver.New(session, driver.WithGameOver(func(snap tetris.Snapshot) {
		log.Printf("game over: score %d, lines %d, level %d", snap.Score, snap.Lines, snap.Level)
	}))
	game := NewGame(d, cfg.Scale, cfg.TPS)

	w, h := game.layout.size()
	ebiten.SetTPS(cfg.TPS)
	if cfg.Debug {
		// The overlay needs room beside the well.
		w, h = max(w, 1280), max(h, 800)
		game.EnableDebug(debugui_ebiten.NewImguiBackend("Blockfall", w, h))
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Blockfall")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
