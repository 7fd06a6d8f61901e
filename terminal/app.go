package terminal

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/fireworks/show"
	"github.com/pthm-cable/fireworks/systems"
)

// Each half-block pixel covers this many stage pixels at scale factor 1.
const stageUnitsPerPixel = 6.0

// App runs a show in a terminal.
type App struct {
	screen tcell.Screen
	canvas *Canvas
	show   *show.Show

	fps       int
	mouseDown bool
}

// NewApp wires a show to an initialized screen and sizes the stage to it.
func NewApp(screen tcell.Screen, s *show.Show, fps int) *App {
	if fps <= 0 {
		fps = 30
	}
	a := &App{
		screen: screen,
		canvas: NewCanvas(screen),
		show:   s,
		fps:    fps,
	}
	a.resize()
	return a
}

// Run draws frames at the configured rate until ctx is done or the user
// quits.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(a.fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if a.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			a.Frame(now.Sub(last))
			last = now
		}
	}
}

// Frame advances the show and draws it.
func (a *App) Frame(elapsed time.Duration) {
	a.show.Step(elapsed)
	a.show.Render(a.canvas)
}

// HandleEvent applies one input event. It reports whether the app should
// exit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	rt := a.show.Runtime

	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !a.mouseDown {
			col, row := ev.Position()
			pos, height := a.canvas.PointerLaunch(col, row)
			a.show.Launch(pos, height)
		}
		a.mouseDown = down

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
		default:
			return false
		}

		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			rt.Paused = !rt.Paused
		case 'f':
			a.show.Finale()
		case 'a':
			rt.AutoLaunch = !rt.AutoLaunch
		case 'c':
			a.show.World.Clear()
		case '1', '2', '3':
			rt.Q = systems.Quality(ev.Rune() - '0')
		case '+', '=':
			rt.Size = min(rt.Size+1, 4)
		case '-':
			rt.Size = max(rt.Size-1, 0)
		case 's':
			rt.Sky = (rt.Sky + 1) % (systems.SkyNormal + 1)
		case 'n':
			rt.Shell = systems.NextShellName(rt.Shell)
			slog.Debug("shell selected", "shell", rt.Shell)
		}
	}
	return false
}

func (a *App) resize() {
	a.canvas.Resize()
	scale := a.show.Runtime.ScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	w, h := a.canvas.StageSize(stageUnitsPerPixel / scale)
	a.canvas.SetStage(w, h)
	a.show.Resize(w, h)
}
