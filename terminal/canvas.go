// Package terminal renders the firework world into a tcell screen using
// half-block cells, two stage pixels per cell.
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/systems"
)

const halfBlock = '▀'

// Spark trails are drawn dimmer than stars.
const sparkIntensity = 0.55

type pixel struct {
	R, G, B float64
}

// Canvas implements systems.DrawSink over a tcell screen. The pixel buffer
// persists between frames and fades, which gives trails.
type Canvas struct {
	screen tcell.Screen

	cols, rows     int
	pxW, pxH       int
	stageW, stageH float64

	px    []pixel
	heads []int
}

// NewCanvas creates a canvas sized to the screen.
func NewCanvas(screen tcell.Screen) *Canvas {
	c := &Canvas{screen: screen}
	c.Resize()
	return c
}

// Resize matches the buffer to the current screen size and clears it.
func (c *Canvas) Resize() {
	c.cols, c.rows = c.screen.Size()
	c.pxW, c.pxH = c.cols, c.rows*2
	c.px = make([]pixel, c.pxW*c.pxH)
	if c.stageW == 0 {
		c.stageW, c.stageH = float64(c.pxW), float64(c.pxH)
	}
}

// SetStage sets the stage size mapped onto the screen.
func (c *Canvas) SetStage(w, h float64) {
	c.stageW, c.stageH = w, h
}

// StageSize returns a stage size with the screen's aspect ratio: cells are
// about twice as tall as wide, so each half block is roughly square.
func (c *Canvas) StageSize(scale float64) (w, h float64) {
	return float64(c.pxW) * scale, float64(c.pxH) * scale
}

// PointerLaunch converts a cell into a normalized launch position and burst
// height.
func (c *Canvas) PointerLaunch(col, row int) (position, height float64) {
	if c.cols == 0 || c.rows == 0 {
		return 0.5, 0.5
	}
	position = (float64(col) + 0.5) / float64(c.cols)
	height = 1 - (float64(row)+0.5)/float64(c.rows)
	return position, height
}

// BeginFrame fades the trail buffer. fade is the per-frame fade amount;
// every quality level renders the same on a terminal.
func (c *Canvas) BeginFrame(_ systems.Quality, fade float64) {
	keep := 1 - systems.Clamp(fade, 0, 1)
	for i := range c.px {
		c.px[i].R *= keep
		c.px[i].G *= keep
		c.px[i].B *= keep
	}
	c.heads = c.heads[:0]
}

// DrawFlash tints a disc around the burst.
func (c *Canvas) DrawFlash(x, y, radius float64) {
	cx, cy := c.toPixel(x, y)
	r := radius * c.scaleX() * 0.25
	ri := int(math.Ceil(r))
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			d := math.Hypot(float64(dx), float64(dy))
			if d > r {
				continue
			}
			k := 1 - d/math.Max(r, 1)
			c.add(floor(cx)+dx, floor(cy)+dy, pixel{255 * k * 0.5, 150 * k * 0.5, 30 * k * 0.5})
		}
	}
}

// DrawStars plots each star's last segment and remembers its head.
func (c *Canvas) DrawStars(col components.Color, stars []*components.Star) {
	rgb := col.RGB()
	p := pixel{float64(rgb.R), float64(rgb.G), float64(rgb.B)}
	for _, s := range stars {
		c.segment(s.PrevX, s.PrevY, s.X, s.Y, p)
		hx, hy := c.toPixel(s.X, s.Y)
		if i, ok := c.index(floor(hx), floor(hy)); ok {
			c.heads = append(c.heads, i)
		}
	}
}

// DrawSparks plots dim spark segments.
func (c *Canvas) DrawSparks(col components.Color, sparks []*components.Spark) {
	rgb := col.RGB()
	p := pixel{float64(rgb.R) * sparkIntensity, float64(rgb.G) * sparkIntensity, float64(rgb.B) * sparkIntensity}
	for _, s := range sparks {
		c.segment(s.PrevX, s.PrevY, s.X, s.Y, p)
	}
}

// EndFrame writes the buffer to the screen over the sky color and shows it.
func (c *Canvas) EndFrame(sky components.RGB) {
	heads := make(map[int]bool, len(c.heads))
	for _, i := range c.heads {
		heads[i] = true
	}
	base := pixel{float64(sky.R), float64(sky.G), float64(sky.B)}

	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			top := row*2*c.pxW + col
			bottom := top + c.pxW
			fg := c.shade(top, base, heads[top])
			bg := c.shade(bottom, base, heads[bottom])
			style := tcell.StyleDefault.Foreground(fg).Background(bg)
			c.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	c.screen.Show()
}

func (c *Canvas) shade(i int, sky pixel, head bool) tcell.Color {
	if head {
		return tcell.NewRGBColor(255, 255, 255)
	}
	p := c.px[i]
	return tcell.NewRGBColor(
		channel(math.Max(p.R, sky.R)),
		channel(math.Max(p.G, sky.G)),
		channel(math.Max(p.B, sky.B)),
	)
}

func channel(v float64) int32 {
	return int32(systems.Clamp(v, 0, 255))
}

func (c *Canvas) scaleX() float64 { return float64(c.pxW) / c.stageW }
func (c *Canvas) scaleY() float64 { return float64(c.pxH) / c.stageH }

func (c *Canvas) toPixel(x, y float64) (float64, float64) {
	return x * c.scaleX(), y * c.scaleY()
}

func floor(v float64) int { return int(math.Floor(v)) }

func (c *Canvas) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= c.pxW || y >= c.pxH {
		return 0, false
	}
	return y*c.pxW + x, true
}

// add brightens a pixel, keeping the brightest value per channel.
func (c *Canvas) add(x, y int, p pixel) {
	i, ok := c.index(x, y)
	if !ok {
		return
	}
	q := &c.px[i]
	q.R = math.Max(q.R, p.R)
	q.G = math.Max(q.G, p.G)
	q.B = math.Max(q.B, p.B)
}

// segment plots a line between two stage points.
func (c *Canvas) segment(x0, y0, x1, y1 float64, p pixel) {
	ax, ay := c.toPixel(x0, y0)
	bx, by := c.toPixel(x1, y1)
	steps := int(math.Max(math.Abs(bx-ax), math.Abs(by-ay))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.add(floor(ax+(bx-ax)*t), floor(ay+(by-ay)*t), p)
	}
}
