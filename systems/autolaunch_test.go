package systems

import (
	"testing"
	"time"
)

func TestAutoLauncher_LaunchesEveryInterval(t *testing.T) {
	w := newTestWorld(t, seededRand(1), normalSettings())
	a := NewAutoLauncher()

	launched := 0
	for i := 0; i < 10; i++ {
		launched += a.Update(w.World, 250*time.Millisecond)
	}
	if launched != 2 {
		t.Errorf("launched %d shells in 2.5s, want 2", launched)
	}
	if w.Counters().ShellsLaunched != 2 {
		t.Errorf("world counted %d launches", w.Counters().ShellsLaunched)
	}
}

func TestAutoLauncher_GesturePausesUntilIdle(t *testing.T) {
	w := newTestWorld(t, seededRand(1), normalSettings())
	a := NewAutoLauncher()

	a.Gesture()
	if a.Running() {
		t.Fatal("gesture should pause the launcher")
	}
	launched := 0
	for i := 0; i < 9; i++ {
		launched += a.Update(w.World, time.Second)
	}
	if launched != 0 {
		t.Fatalf("launched %d shells while paused", launched)
	}

	a.Update(w.World, time.Second)
	if !a.Running() {
		t.Fatal("launcher should resume after the idle timeout")
	}
	if got := a.Update(w.World, time.Second); got != 1 {
		t.Errorf("launched %d after resuming, want 1", got)
	}
}

func TestAutoLauncher_Disabled(t *testing.T) {
	w := newTestWorld(t, seededRand(1), normalSettings())
	a := NewAutoLauncher()
	a.Enabled = false
	for i := 0; i < 5; i++ {
		if a.Update(w.World, time.Second) != 0 {
			t.Fatal("disabled launcher fired")
		}
	}
}

func TestAutoLauncher_Finale(t *testing.T) {
	w := newTestWorld(t, seededRand(3), normalSettings())
	a := NewAutoLauncher()
	a.Enabled = false
	a.FinaleCount = 5
	a.FinaleInterval = 100 * time.Millisecond

	a.StartFinale()
	launched := 0
	for i := 0; i < 20 && a.FinaleActive(); i++ {
		launched += a.Update(w.World, 100*time.Millisecond)
	}
	if launched != 5 {
		t.Errorf("finale launched %d shells, want 5", launched)
	}
	if a.FinaleActive() {
		t.Error("finale still active")
	}
}
