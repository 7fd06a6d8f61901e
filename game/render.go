package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/ui"
)

const controlsLegend = "Click: launch | Space: pause | Tab: settings | F: finale | M: sound | C: clear | H/K/P/B: overlays | F11: fullscreen"

// Draw renders the game state.
func (g *Game) Draw() {
	if g.headless {
		return
	}
	rl.BeginDrawing()

	g.show.Render(g.renderer)
	g.drawUI()

	rl.EndDrawing()
}

// drawUI renders overlays, the settings panel and toasts on top of the show.
func (g *Game) drawUI() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	w := g.show.World

	if g.overlays.IsEnabled(ui.OverlayStage) {
		rl.DrawRectangleLines(int32(g.stage.OffsetX), int32(g.stage.OffsetY),
			int32(g.stage.ContainerW), int32(g.stage.ContainerH), rl.DarkGray)
	}

	if g.overlays.IsEnabled(ui.OverlayHUD) {
		g.hud.Draw(ui.HUDData{
			Title:      "Fireworks",
			Stars:      w.StarCount(),
			Sparks:     w.SparkCount(),
			MaxStars:   g.cfg.Simulation.MaxStars,
			Frame:      w.Frame(),
			FPS:        rl.GetFPS(),
			Shell:      g.runtime.Shell,
			Size:       g.runtime.Size,
			Speed:      g.runtime.Speed,
			Paused:     g.runtime.Paused,
			AutoLaunch: g.show.Auto.Running(),
			Finale:     g.show.Auto.FinaleActive(),
		})
	}

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.show.Perf())
	}

	if g.overlays.IsEnabled(ui.OverlayControls) {
		g.hud.DrawControls(screenH, controlsLegend)
	}

	changes := g.settings.Draw(g.runtime, g.show.Auto.FinaleActive())
	g.applyChanges(changes)

	g.toast.Draw(screenW, screenH, ui.DefaultTheme())
}

// applyChanges reacts to settings panel edits that need more than the new
// runtime value.
func (g *Game) applyChanges(c ui.Changes) {
	if !c.Any() {
		return
	}
	if c.Scale && g.stage.SetScale(g.runtime.Scale) {
		g.show.Resize(g.stage.W, g.stage.H)
	}
	if c.Finale {
		g.show.Finale()
	}
	if msg := ui.ChangeMessage(c, g.runtime); msg != "" {
		g.toast.Show(msg)
	}
}
