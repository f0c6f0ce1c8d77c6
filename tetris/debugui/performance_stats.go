package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/blockfall/tetris/driver"
)

// PerformanceStats plots render frame time next to the driver's tick cost
// and lists input counts.
type PerformanceStats struct {
	frames *History
	ticks  *History
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		frames: NewHistory(historyFrames),
		ticks:  NewHistory(historyFrames),
	}
}

// Record adds one frame worth of samples. Call it once per rendered frame.
func (ps *PerformanceStats) Record(frame FrameSample) {
	ps.frames.PushDuration(frame.Delta)
	ps.ticks.PushDuration(frame.Stats.LastFrame)
}

// FrameSample is what a frontend measures per rendered frame.
type FrameSample struct {
	Delta time.Duration
	Stats driver.Stats
}

func (ps *PerformanceStats) Render(stats driver.Stats) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 480), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 300), imgui.CondOnce)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := ps.frames.Avg()
	fps := float32(0)
	if avg > 0 {
		fps = 1000 / avg
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))
	imgui.Text(fmt.Sprintf("Ticks: %d  Simulated: %s", stats.Frames, stats.Simulated.Truncate(time.Millisecond)))
	imgui.Text(fmt.Sprintf("Tick Min/Avg/Max: %s / %s / %s", stats.MinFrame, stats.AvgFrame, stats.MaxFrame))
	imgui.Text(fmt.Sprintf("Games Over: %d", stats.Games))

	if imgui.BeginTabBar("PerfTabs") {
		if imgui.BeginTabItem("Frame Time") {
			samples := ps.frames.Ordered()
			imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))
			imgui.EndTabItem()
		}

		if imgui.BeginTabItem("Tick Cost") {
			samples := ps.ticks.Ordered()
			if implot.BeginPlotV("Tick Cost", imgui.NewVec2(-1, -1), 0) {
				implot.SetupAxesV("Frame", "Time (ms)", 0, implot.AxisFlagsAutoFit)
				implot.PlotLineFloatPtrInt("tick", &samples[0], int32(len(samples)))
				implot.EndPlot()
			}
			imgui.EndTabItem()
		}

		if imgui.BeginTabItem("Inputs") {
			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
			if imgui.BeginTableV("InputTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("Action")
				imgui.TableSetupColumn("Presses")
				imgui.TableHeadersRow()

				for _, ac := range stats.Actions {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					imgui.Text(ac.Action.String())
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", ac.Count))
				}

				imgui.EndTable()
			}
			imgui.EndTabItem()
		}

		imgui.EndTabBar()
	}

	imgui.End()
}
