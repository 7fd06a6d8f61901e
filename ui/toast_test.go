package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestToast_HoldThenFade(t *testing.T) {
	toast := NewToast(0.5, 0.5)
	if toast.Visible() {
		t.Fatal("new toast should be hidden")
	}

	toast.Show("Speed 0.50x")
	if toast.Alpha() != 1 || toast.Text() != "Speed 0.50x" {
		t.Fatalf("alpha %f text %q", toast.Alpha(), toast.Text())
	}

	toast.Update(0.4)
	if toast.Alpha() != 1 {
		t.Errorf("alpha %f during hold", toast.Alpha())
	}

	toast.Update(0.35) // 0.25s into the fade
	if a := toast.Alpha(); a <= 0 || a >= 1 {
		t.Errorf("alpha %f mid fade", a)
	}

	toast.Update(0.3)
	if toast.Visible() {
		t.Errorf("alpha %f after fade", toast.Alpha())
	}
}

func TestToast_ShowRestarts(t *testing.T) {
	toast := NewToast(0, 0.5)
	toast.Show("a")
	toast.Update(0.4)
	toast.Show("b")
	if toast.Alpha() != 1 || toast.Text() != "b" {
		t.Errorf("restart gave alpha %f text %q", toast.Alpha(), toast.Text())
	}
	toast.Update(0.6)
	if toast.Visible() {
		t.Error("restarted toast should have faded")
	}
}

// ---------- overlays ----------

func TestOverlayRegistry(t *testing.T) {
	reg := NewOverlayRegistry()
	if !reg.IsEnabled(OverlayHUD) || reg.IsEnabled(OverlayPerf) {
		t.Fatal("unexpected default overlay state")
	}

	id, on, ok := reg.HandleKeyPress(rl.KeyP)
	if !ok || id != OverlayPerf || !on {
		t.Errorf("P toggled %q on=%v ok=%v", id, on, ok)
	}
	if reg.Toggle(OverlayPerf) {
		t.Error("second toggle should disable")
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key toggled an overlay")
	}
	if reg.Toggle("missing") {
		t.Error("unknown overlay toggled")
	}
	if len(reg.All()) != 4 {
		t.Errorf("registered %d overlays", len(reg.All()))
	}
}
