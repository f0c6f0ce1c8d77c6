// Package config reads command configuration: environment variables first,
// then command-line flags, which take precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/plus3/blockfall/tetris"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// ParseEnv loads configuration from environment variables. A nil environ
// reads the process environment.
func ParseEnv(target any, environ map[string]string) error {
	if err := env.ParseWithOptions(target, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Game configures the interactive frontend.
type Game struct {
	Seed    uint64 `env:"BLOCKFALL_SEED"`
	Preview int    `env:"BLOCKFALL_PREVIEW" envDefault:"3"`
	Scale   int    `env:"BLOCKFALL_SCALE" envDefault:"28"`
	TPS     int    `env:"BLOCKFALL_TPS" envDefault:"60"`
	Debug   bool   `env:"BLOCKFALL_DEBUG"`
}

// ParseGame parses environ and then args into a Game.
func ParseGame(fs *flag.FlagSet, args []string, environ map[string]string) (Game, error) {
	var cfg Game
	if err := ParseEnv(&cfg, environ); err != nil {
		return Game{}, err
	}

	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "randomizer seed, 0 seeds from the clock (default: BLOCKFALL_SEED)")
	fs.IntVar(&cfg.Preview, "preview", cfg.Preview, "number of upcoming pieces shown, 1 to 7 (default: BLOCKFALL_PREVIEW)")
	fs.IntVar(&cfg.Scale, "scale", cfg.Scale, "cell size in pixels (default: BLOCKFALL_SCALE)")
	fs.IntVar(&cfg.TPS, "tps", cfg.TPS, "game ticks per second (default: BLOCKFALL_TPS)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "show the Dear ImGui debug overlay (default: BLOCKFALL_DEBUG)")
	if err := fs.Parse(args); err != nil {
		return Game{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Game{}, err
	}
	return cfg, nil
}

// Validate checks ranges.
func (g Game) Validate() error {
	if g.Preview < 1 || g.Preview > tetris.BagSize {
		return fmt.Errorf("%w: preview %d not in [1, %d]", ErrInvalid, g.Preview, tetris.BagSize)
	}
	if g.Scale < 8 || g.Scale > 128 {
		return fmt.Errorf("%w: scale %d not in [8, 128]", ErrInvalid, g.Scale)
	}
	if g.TPS < 10 || g.TPS > 480 {
		return fmt.Errorf("%w: tps %d not in [10, 480]", ErrInvalid, g.TPS)
	}
	return nil
}

// Stress configures the soak test.
type Stress struct {
	Duration       time.Duration `env:"BLOCKFALL_STRESS_DURATION" envDefault:"10s"`
	Seed           uint64        `env:"BLOCKFALL_SEED"`
	Tick           time.Duration `env:"BLOCKFALL_STRESS_TICK" envDefault:"16ms"`
	InputRate      float64       `env:"BLOCKFALL_STRESS_INPUT_RATE" envDefault:"0.3"`
	Preview        int           `env:"BLOCKFALL_PREVIEW" envDefault:"3"`
	GCPauseMetrics bool
}

// ParseStress parses environ and then args into a Stress.
func ParseStress(fs *flag.FlagSet, args []string, environ map[string]string) (Stress, error) {
	var cfg Stress
	if err := ParseEnv(&cfg, environ); err != nil {
		return Stress{}, err
	}

	fs.DurationVar(&cfg.Duration, "duration", cfg.Duration, "the total duration the test should run for")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed for pieces and bot input, 0 seeds from the clock")
	fs.DurationVar(&cfg.Tick, "tick", cfg.Tick, "simulated time per tick")
	fs.Float64Var(&cfg.InputRate, "input-rate", cfg.InputRate, "probability of a bot input per tick")
	fs.IntVar(&cfg.Preview, "preview", cfg.Preview, "preview length captured in snapshots")
	fs.BoolVar(&cfg.GCPauseMetrics, "gc-pause-metrics", false, "enable detailed GC pause metrics in the report")
	if err := fs.Parse(args); err != nil {
		return Stress{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Stress{}, err
	}
	return cfg, nil
}

// Validate checks ranges.
func (s Stress) Validate() error {
	if s.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalid)
	}
	if s.Tick <= 0 {
		return fmt.Errorf("%w: tick must be positive", ErrInvalid)
	}
	if s.InputRate < 0 || s.InputRate > 1 {
		return fmt.Errorf("%w: input rate %g not in [0, 1]", ErrInvalid, s.InputRate)
	}
	if s.Preview < 1 || s.Preview > tetris.BagSize {
		return fmt.Errorf("%w: preview %d not in [1, %d]", ErrInvalid, s.Preview, tetris.BagSize)
	}
	return nil
}
