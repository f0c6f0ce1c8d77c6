package main

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"text/template"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/tetris"
)

type Report struct {
	// Configuration
	Duration  time.Duration
	Seed      uint64
	Tick      time.Duration
	InputRate float64

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	SimulatedTime  time.Duration
	UpdateTime     Stats
	Games          int64
	MaxScore       int
	MaxLines       int
	MaxLevel       int
	Violations     int64
	FirstViolation string
	Inputs         int64

	pieces *intmap.Map[tetris.PieceType, int64]
	clears *intmap.Map[int, int64]

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

// Bucket is one histogram row.
type Bucket struct {
	Label string
	Count int64
}

func NewReport() *Report {
	return &Report{
		pieces: intmap.New[tetris.PieceType, int64](tetris.BagSize),
		clears: intmap.New[int, int64](4),
	}
}

// AddPiece counts a spawn of t.
func (r *Report) AddPiece(t tetris.PieceType) {
	n, _ := r.pieces.Get(t)
	r.pieces.Put(t, n+1)
}

// AddClear counts one lock that cleared rows rows.
func (r *Report) AddClear(rows int) {
	n, _ := r.clears.Get(rows)
	r.clears.Put(rows, n+1)
}

// AddGame records the final state of a finished game.
func (r *Report) AddGame(snap tetris.Snapshot) {
	r.Games++
	r.MaxScore = max(r.MaxScore, snap.Score)
	r.MaxLines = max(r.MaxLines, snap.Lines)
	r.MaxLevel = max(r.MaxLevel, snap.Level)
}

// AddViolation records a failed invariant check.
func (r *Report) AddViolation(tick int64, err error) {
	r.Violations++
	if r.FirstViolation == "" {
		r.FirstViolation = fmt.Sprintf("tick %d: %v", tick, err)
	}
}

// Pieces lists spawn counts in PieceTypes order.
func (r *Report) Pieces() []Bucket {
	out := make([]Bucket, 0, tetris.BagSize)
	for _, t := range tetris.PieceTypes {
		n, _ := r.pieces.Get(t)
		out = append(out, Bucket{Label: t.String(), Count: n})
	}
	return out
}

// Clears lists lock counts by rows cleared, ascending.
func (r *Report) Clears() []Bucket {
	rows := make([]int, 0, r.clears.Len())
	for k := range r.clears.Keys() {
		rows = append(rows, k)
	}
	sort.Ints(rows)

	out := make([]Bucket, 0, len(rows))
	for _, k := range rows {
		n, _ := r.clears.Get(k)
		out = append(out, Bucket{Label: fmt.Sprintf("%d rows", k), Count: n})
	}
	return out
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Soak Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Tick:** {{.Tick}}
- **Input Rate:** {{printf "%.2f" .InputRate}}

## Game Results
- **Games Finished:** {{.Games}}
- **Inputs Sent:** {{.Inputs}}
- **Max Score:** {{.MaxScore}}
- **Max Lines:** {{.MaxLines}}
- **Max Level:** {{.MaxLevel}}
- **Invariant Violations:** {{.Violations}}{{if .FirstViolation}} (first: {{.FirstViolation}}){{end}}

### Pieces Spawned
{{range .Pieces}}- {{.Label}}: {{.Count}}
{{end}}
### Line Clears
{{range .Clears}}- {{.Label}}: {{.Count}}
{{else}}- none
{{end}}
## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Simulated Time:** {{.SimulatedTime}}
- **Update Time (Tick):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
