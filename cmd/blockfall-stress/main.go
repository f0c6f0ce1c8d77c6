package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/tetris"
)

func main() {
	cfg, err := config.ParseStress(flag.CommandLine, os.Args[1:], nil)
	if err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	log.Println("Starting blockfall soak test...")

	session := tetris.NewSession(tetris.WithSeed(cfg.Seed), tetris.WithPreview(cfg.Preview))
	report := NewReport()
	report.Duration = cfg.Duration
	report.Seed = cfg.Seed
	report.Tick = cfg.Tick
	report.InputRate = cfg.InputRate
	report.GCPauseMetrics = cfg.GCPauseMetrics
	report.UpdateTime.Samples = make([]time.Duration, 0)

	soak := NewSoak(session, NewBot(cfg.Seed, cfg.InputRate), cfg.Tick, report)

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running soak for %s with seed %d...\n", cfg.Duration, cfg.Seed)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	startTime := time.Now()
	soak.Run(ctx)

	report.TotalTime = time.Since(startTime)
	report.SimulatedTime = soak.Stats().Simulated
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak finished.")

	fmt.Println("\n\n--- Soak Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if report.Violations > 0 {
		log.Fatalf("Soak found %d invariant violations", report.Violations)
	}
	log.Println("Soak test complete.")
}
