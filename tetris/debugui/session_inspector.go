package debugui

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

// SessionInspector shows the live session state and can pause the game,
// single-step it and inject input.
type SessionInspector struct {
	Paused bool

	pusher Pusher
	step   bool
}

// NewSessionInspector returns an inspector that injects input through p.
func NewSessionInspector(p Pusher) *SessionInspector {
	return &SessionInspector{pusher: p}
}

// ShouldTick reports whether the game loop should advance this frame. It
// consumes a pending single-step request.
func (si *SessionInspector) ShouldTick() bool {
	if !si.Paused {
		return true
	}
	if si.step {
		si.step = false
		return true
	}
	return false
}

func (si *SessionInspector) Render(snap tetris.Snapshot) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 460), imgui.CondOnce)

	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	si.renderControls()
	imgui.Separator()

	if snap.State == tetris.Dead {
		imgui.TextColored(imgui.NewVec4(1.0, 0.3, 0.3, 1.0), "DEAD")
	} else {
		imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "PLAYING")
	}
	imgui.Text(fmt.Sprintf("Score: %d", snap.Score))
	imgui.Text(fmt.Sprintf("Lines: %d", snap.Lines))
	imgui.Text(fmt.Sprintf("Level: %d (gravity %s)", snap.Level, tetris.FallInterval(snap.Level)))
	imgui.Separator()

	if snap.Active {
		p := snap.Piece
		imgui.Text(fmt.Sprintf("Piece: %s at (%d, %d) rot %s", p.Type, p.Pos.X, p.Pos.Y, p.Rotation))
		imgui.Text(fmt.Sprintf("Ghost: row %d", snap.Ghost.Pos.Y))
	} else {
		imgui.Text("Piece: none")
	}
	held := "-"
	if snap.Held != tetris.None {
		held = snap.Held.String()
	}
	imgui.Text(fmt.Sprintf("Hold: %s (used %t)", held, snap.HoldUsed))
	imgui.Text(fmt.Sprintf("Next: %s", joinTypes(snap.Next)))

	if imgui.TreeNodeStr("Timers") {
		si.renderTimers(snap)
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Inject Input") {
		si.renderInjector()
		imgui.TreePop()
	}

	imgui.End()
}

func (si *SessionInspector) renderControls() {
	if si.Paused {
		imgui.PushStyleColorVec4(imgui.ColButton, imgui.NewVec4(0.2, 0.7, 0.2, 1.0))
		imgui.PushStyleColorVec4(imgui.ColButtonHovered, imgui.NewVec4(0.3, 0.8, 0.3, 1.0))
		imgui.PushStyleColorVec4(imgui.ColButtonActive, imgui.NewVec4(0.1, 0.6, 0.1, 1.0))
		if imgui.Button("Resume") {
			si.Paused = false
		}
		imgui.PopStyleColor()
		imgui.PopStyleColor()
		imgui.PopStyleColor()

		imgui.SameLine()
		if imgui.Button("Step") {
			si.step = true
		}
		imgui.SameLine()
		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "PAUSED")
		return
	}

	if imgui.Button("Pause") {
		si.Paused = true
	}
}

func (si *SessionInspector) renderTimers(snap tetris.Snapshot) {
	gravity := tetris.FallInterval(snap.Level)
	if snap.FallMode == tetris.FallSoftDrop {
		gravity = tetris.SoftDropInterval
	}
	if snap.LockArmed {
		gravity = tetris.LockDelay
	}

	label := "Fall"
	if snap.LockArmed {
		label = "Lock"
	}
	timerBar(label, snap.FallTimer, gravity)
	imgui.Text(fmt.Sprintf("Fall mode: %s", snap.FallMode))

	if !snap.Active {
		timerBar("Spawn", snap.SpawnTimer, tetris.SpawnDelay)
	}

	imgui.Text(fmt.Sprintf("Shift: %s", snap.Shift))
	if snap.Shift != tetris.ShiftNone {
		timerBar("Repeat", snap.ShiftTimer, tetris.MoveWait)
	}
}

func (si *SessionInspector) renderInjector() {
	if si.pusher == nil {
		imgui.Text("No input target")
		return
	}
	for i, action := range tetris.Actions {
		if i%2 == 1 {
			imgui.SameLine()
		}
		if imgui.Button(action.String()) {
			si.pusher.Push(tetris.Press(action))
			si.pusher.Push(tetris.Release(action))
		}
	}
}

func timerBar(label string, remaining, total time.Duration) {
	imgui.Text(label)
	imgui.SameLine()
	imgui.ProgressBarV(timerFraction(remaining, total), imgui.NewVec2(-1, 0), remaining.String())
}

// timerFraction is the share of total still remaining, clamped to [0, 1].
func timerFraction(remaining, total time.Duration) float32 {
	if total <= 0 {
		return 0
	}
	return float32(min(max(float64(remaining)/float64(total), 0), 1))
}

func joinTypes(types []tetris.PieceType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, " ")
}
