package ui

import (
	"fmt"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Stars      int
	Sparks     int
	MaxStars   int
	Frame      uint64
	FPS        int32
	Shell      string
	Size       float64
	Speed      float64
	Paused     bool
	AutoLaunch bool
	Finale     bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	const x, width = 10, 260
	rl.DrawText(data.Title, x, 10, 20, rl.White)

	y := int32(36)
	y = h.renderer.DrawBar(x, y, "Stars", float32(data.Stars), float32(data.MaxStars), width)
	y = h.renderer.DrawLabelValue(x, y, "Sparks", fmt.Sprintf("%d", data.Sparks))
	y = h.renderer.DrawLabelValue(x, y, "Shell", fmt.Sprintf("%s (size %.0f)", data.Shell, data.Size))
	y = h.renderer.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%.2fx | FPS %d | Frame %d", data.Speed, data.FPS, data.Frame))

	rl.DrawText(statusText(data), x, y+2, 16, rl.Yellow)
}

func statusText(data HUDData) string {
	switch {
	case data.Paused:
		return "PAUSED"
	case data.Finale:
		return "Finale"
	case data.AutoLaunch:
		return "Auto launch"
	}
	return "Manual"
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Timing", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %.0fus (max %.0f) | %.0f fps", stats.AvgTickUS, stats.MaxTickUS, stats.FPS), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range PhasesByCost(stats) {
		pct := stats.PhasePct[name]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-8s %7.0fus %5.1f%%", name, stats.PhaseAvgUS[name], pct), x, y, 12, color)
		y += 14
	}
}

// PhasesByCost returns the phases sorted by average time, most expensive
// first.
func PhasesByCost(stats telemetry.PerfStats) []string {
	names := slices.Clone(telemetry.Phases)
	slices.SortStableFunc(names, func(a, b string) int {
		switch da, db := stats.PhaseAvgUS[a], stats.PhaseAvgUS[b]; {
		case da > db:
			return -1
		case da < db:
			return 1
		}
		return 0
	})
	return names
}
