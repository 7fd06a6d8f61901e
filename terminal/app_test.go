package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/show"
	"github.com/pthm-cable/fireworks/systems"
)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	screen := newTestScreen(t, 40, 20)
	s := show.New(show.Options{Config: cfg, Seed: 11})
	return NewApp(screen, s, 30), screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// ---------- keys ----------

func TestHandleEvent_Quit(t *testing.T) {
	a, _ := newTestApp(t)
	tests := []struct {
		name string
		ev   tcell.Event
		quit bool
	}{
		{"q", key('q'), true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), true},
		{"other rune", key('x'), false},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.HandleEvent(tt.ev); got != tt.quit {
				t.Errorf("quit = %v, want %v", got, tt.quit)
			}
		})
	}
}

func TestHandleEvent_Settings(t *testing.T) {
	a, _ := newTestApp(t)
	rt := a.show.Runtime

	a.HandleEvent(key(' '))
	if !rt.Paused {
		t.Error("space should pause")
	}
	a.HandleEvent(key('3'))
	if rt.Quality() != systems.QualityHigh {
		t.Errorf("quality %v", rt.Quality())
	}
	for i := 0; i < 5; i++ {
		a.HandleEvent(key('+'))
	}
	if rt.ShellSize() != 4 {
		t.Errorf("size %v, want clamp at 4", rt.ShellSize())
	}
	for i := 0; i < 6; i++ {
		a.HandleEvent(key('-'))
	}
	if rt.ShellSize() != 0 {
		t.Errorf("size %v, want clamp at 0", rt.ShellSize())
	}

	sky := rt.SkyLighting()
	for i := 0; i < 3; i++ {
		a.HandleEvent(key('s'))
	}
	if rt.SkyLighting() != sky {
		t.Errorf("three presses should cycle back to %v, got %v", sky, rt.SkyLighting())
	}

	a.HandleEvent(key('n'))
	if rt.ShellName() != systems.ShellCrackle {
		t.Errorf("next shell %q", rt.ShellName())
	}

	auto := rt.AutoLaunch
	a.HandleEvent(key('a'))
	if rt.AutoLaunch == auto {
		t.Error("a should toggle auto launch")
	}

	a.HandleEvent(key('f'))
	if !a.show.Auto.FinaleActive() {
		t.Error("f should start the finale")
	}
}

// ---------- pointer ----------

func TestHandleEvent_MouseLaunch(t *testing.T) {
	a, _ := newTestApp(t)
	w := a.show.World

	a.HandleEvent(tcell.NewEventMouse(20, 10, tcell.Button1, tcell.ModNone))
	if got := w.Counters().ShellsLaunched; got != 1 {
		t.Fatalf("press launched %d shells", got)
	}
	if a.show.Auto.Running() {
		t.Error("pointer launch should pause the auto launcher")
	}

	// Drag with the button held does not relaunch.
	a.HandleEvent(tcell.NewEventMouse(22, 10, tcell.Button1, tcell.ModNone))
	if got := w.Counters().ShellsLaunched; got != 1 {
		t.Errorf("drag launched, total %d", got)
	}

	a.HandleEvent(tcell.NewEventMouse(22, 10, tcell.ButtonNone, tcell.ModNone))
	a.HandleEvent(tcell.NewEventMouse(5, 5, tcell.Button1, tcell.ModNone))
	if got := w.Counters().ShellsLaunched; got != 2 {
		t.Errorf("second press, total %d", got)
	}
}

// ---------- frames ----------

func TestResize_UpdatesStage(t *testing.T) {
	a, screen := newTestApp(t)
	screen.SetSize(80, 30)
	a.HandleEvent(tcell.NewEventResize(80, 30))

	w, h := a.show.World.Size()
	if w != 80*stageUnitsPerPixel || h != 60*stageUnitsPerPixel {
		t.Errorf("stage %.0fx%.0f after resize", w, h)
	}
}

func TestFrame_DrawsEveryCell(t *testing.T) {
	a, screen := newTestApp(t)
	a.HandleEvent(tcell.NewEventMouse(20, 10, tcell.Button1, tcell.ModNone))
	for i := 0; i < 30; i++ {
		a.Frame(33 * time.Millisecond)
	}

	cells, width, height := screen.GetContents()
	if width != 40 || height != 20 {
		t.Fatalf("screen %dx%d", width, height)
	}
	lit := 0
	for _, c := range cells {
		if len(c.Runes) == 0 || c.Runes[0] != halfBlock {
			t.Fatal("every cell should hold a half block")
		}
		fg, _, _ := c.Style.Decompose()
		if r, g, b := fg.RGB(); r+g+b > 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("expected a lit cell after launching")
	}
}

func TestRun_StopsOnContext(t *testing.T) {
	a, _ := newTestApp(t)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != context.DeadlineExceeded {
		t.Errorf("Run returned %v", err)
	}
}

func TestRun_QuitKey(t *testing.T) {
	a, screen := newTestApp(t)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.Run(ctx); err != nil {
		t.Errorf("Run returned %v after q", err)
	}
}
