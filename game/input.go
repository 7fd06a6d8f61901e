package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.runtime.Paused = !g.runtime.Paused
		if g.runtime.Paused {
			g.toast.Show("Paused")
		}
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.settings.Toggle()
	}

	if rl.IsKeyPressed(rl.KeyF) {
		g.show.Finale()
		g.toast.Show(ui.ChangeMessage(ui.Changes{Finale: true}, g.runtime))
	}

	if rl.IsKeyPressed(rl.KeyM) {
		g.runtime.AudioMuted = !g.runtime.AudioMuted
		if g.player != nil {
			g.player.SetMuted(g.runtime.AudioMuted)
		}
		if g.runtime.AudioMuted {
			g.toast.Show("Sound off")
		} else {
			g.toast.Show("Sound on")
		}
	}

	if rl.IsKeyPressed(rl.KeyC) {
		g.show.World.Clear()
	}

	// Overlay toggles
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		g.overlays.HandleKeyPress(key)
	}

	g.handlePointer()
}

// handlePointer launches the selected shell where the user clicks.
func (g *Game) handlePointer() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	if g.settings.Contains(mouse.X, mouse.Y) {
		return
	}
	pos, height, ok := g.stage.PointerLaunch(float64(mouse.X), float64(mouse.Y))
	if !ok {
		return
	}
	g.show.Launch(pos, height)
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if g.stage.Resize(w, h) {
		g.show.Resize(g.stage.W, g.stage.H)
	}
	g.renderer.Resize()
	g.settings.SetPosition(int32(w)-settingsWidth-10, 10)
}
