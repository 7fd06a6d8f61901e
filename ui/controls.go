package ui

import (
	"fmt"
	"math"
	"slices"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/systems"
)

// Slider ranges.
const (
	MinShellSize   = 0
	MaxShellSize   = 4
	MinSimSpeed    = 0.1
	MaxSimSpeed    = 1
	MinScaleFactor = 0.5
	MaxScaleFactor = 2
)

var (
	shellOptions   = strings.Join(systems.ShellNames, ";")
	qualityOptions = "Low;Normal;High"
	skyOptions     = "Off;Dim;Normal"
)

// PanelValues is the state edited by the settings panel, in raygui units.
type PanelValues struct {
	Shell      int32
	Size       float32
	Speed      float32
	Scale      float32
	Quality    int32 // 0-based toggle index
	Sky        int32
	AutoLaunch bool
	Finale     bool
}

// Changes reports which settings an edit touched.
type Changes struct {
	Shell, Size, Speed, Scale, Quality, Sky, AutoLaunch bool

	// Finale is set when the user asked for a finale.
	Finale bool
}

// Any reports whether anything changed.
func (c Changes) Any() bool {
	return c.Shell || c.Size || c.Speed || c.Scale || c.Quality || c.Sky || c.AutoLaunch || c.Finale
}

// ValuesFrom reads the panel state from runtime settings.
func ValuesFrom(rt *config.Runtime, finaleActive bool) PanelValues {
	shell := int32(slices.Index(systems.ShellNames, rt.Shell))
	return PanelValues{
		Shell:      max(shell, 0),
		Size:       float32(rt.Size),
		Speed:      float32(rt.Speed),
		Scale:      float32(rt.Scale),
		Quality:    int32(rt.Q) - int32(systems.QualityLow),
		Sky:        int32(rt.Sky),
		AutoLaunch: rt.AutoLaunch,
		Finale:     finaleActive,
	}
}

// Apply writes edited values back to the runtime settings. Sizes snap to
// whole numbers and every value is clamped to its slider range.
func (v PanelValues) Apply(rt *config.Runtime, finaleActive bool) Changes {
	var c Changes

	if i := int(v.Shell); i >= 0 && i < len(systems.ShellNames) && systems.ShellNames[i] != rt.Shell {
		rt.Shell = systems.ShellNames[i]
		c.Shell = true
	}
	if size := math.Round(systems.Clamp(float64(v.Size), MinShellSize, MaxShellSize)); size != rt.Size {
		rt.Size = size
		c.Size = true
	}
	if speed := systems.Clamp(float64(v.Speed), MinSimSpeed, MaxSimSpeed); math.Abs(speed-rt.Speed) > 1e-3 {
		rt.Speed = speed
		c.Speed = true
	}
	if scale := systems.Clamp(float64(v.Scale), MinScaleFactor, MaxScaleFactor); math.Abs(scale-rt.Scale) > 1e-3 {
		rt.Scale = scale
		c.Scale = true
	}
	if q := systems.Quality(v.Quality + int32(systems.QualityLow)); q != rt.Q && q >= systems.QualityLow && q <= systems.QualityHigh {
		rt.Q = q
		c.Quality = true
	}
	if sky := systems.SkyLighting(v.Sky); sky != rt.Sky && sky >= systems.SkyNone && sky <= systems.SkyNormal {
		rt.Sky = sky
		c.Sky = true
	}
	if v.AutoLaunch != rt.AutoLaunch {
		rt.AutoLaunch = v.AutoLaunch
		c.AutoLaunch = true
	}
	c.Finale = v.Finale && !finaleActive
	return c
}

// SettingsPanel renders the raygui settings panel.
type SettingsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewSettingsPanel creates a hidden settings panel.
func NewSettingsPanel(x, y, width int32) *SettingsPanel {
	return &SettingsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition moves the panel.
func (p *SettingsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// IsVisible returns whether the panel is shown.
func (p *SettingsPanel) IsVisible() bool {
	return p.visible
}

// Toggle switches panel visibility.
func (p *SettingsPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Contains reports whether a screen point is over the visible panel, so
// clicks there do not launch shells.
func (p *SettingsPanel) Contains(x, y float32) bool {
	if !p.visible {
		return false
	}
	return rl.CheckCollisionPointRec(rl.NewVector2(x, y), p.bounds())
}

func (p *SettingsPanel) bounds() rl.Rectangle {
	t := p.renderer.Theme
	rows := float32(9)
	h := float32(t.Padding*2+t.LineHeight) + rows*(t.ControlHeight+float32(t.LineHeight))
	return rl.NewRectangle(float32(p.x), float32(p.y), float32(p.width), h)
}

// Draw renders the panel and applies edits to rt.
func (p *SettingsPanel) Draw(rt *config.Runtime, finaleActive bool) Changes {
	if !p.visible {
		return Changes{}
	}

	t := p.renderer.Theme
	b := p.bounds()
	p.renderer.DrawPanel(p.x, p.y, p.width, int32(b.Height))

	v := ValuesFrom(rt, finaleActive)
	pad := float32(t.Padding)
	x := b.X + pad
	y := float32(p.renderer.DrawSectionHeader(p.x+t.Padding, p.y+t.Padding, "Settings"))
	w := b.Width - pad*2
	row := func(label string) rl.Rectangle {
		rl.DrawText(label, int32(x), int32(y), t.FontSize, t.LabelColor)
		r := rl.NewRectangle(x, y+float32(t.LineHeight), w, t.ControlHeight)
		y += t.ControlHeight + float32(t.LineHeight)
		return r
	}

	v.Shell = gui.ComboBox(row("Shell Type"), shellOptions, v.Shell)
	v.Size = gui.SliderBar(row(fmt.Sprintf("Shell Size  %.0f", v.Size)), "", "", v.Size, MinShellSize, MaxShellSize)
	v.Quality = gui.ToggleGroup(rowGroup(row("Quality"), 3), qualityOptions, v.Quality)
	v.Sky = gui.ToggleGroup(rowGroup(row("Sky Lighting"), 3), skyOptions, v.Sky)
	v.Speed = gui.SliderBar(row(fmt.Sprintf("Speed  %.2fx", v.Speed)), "", "", v.Speed, MinSimSpeed, MaxSimSpeed)
	v.Scale = gui.SliderBar(row(fmt.Sprintf("Scale  %.2f", v.Scale)), "", "", v.Scale, MinScaleFactor, MaxScaleFactor)

	y += 4
	v.AutoLaunch = gui.CheckBox(rl.NewRectangle(x, y, 16, 16), "Auto Launch", v.AutoLaunch)
	y += t.ControlHeight
	v.Finale = gui.CheckBox(rl.NewRectangle(x, y, 16, 16), "Finale", v.Finale)

	return v.Apply(rt, finaleActive)
}

// rowGroup narrows a row so that n toggle buttons fill it.
func rowGroup(r rl.Rectangle, n int) rl.Rectangle {
	r.Width = (r.Width - float32(n-1)*2) / float32(n)
	return r
}

// ChangeMessage describes a change for a toast, or "" if none is worth
// showing.
func ChangeMessage(c Changes, rt *config.Runtime) string {
	switch {
	case c.Finale:
		return "Finale!"
	case c.Speed:
		return fmt.Sprintf("Speed %.2fx", rt.Speed)
	case c.Scale:
		return fmt.Sprintf("Scale %.2f", rt.Scale)
	case c.Shell:
		return rt.Shell
	case c.Quality:
		return "Quality " + rt.Q.String()
	case c.AutoLaunch:
		if rt.AutoLaunch {
			return "Auto launch on"
		}
		return "Auto launch off"
	}
	return ""
}
