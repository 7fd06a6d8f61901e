// Package renderer draws the firework world with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/camera"
	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/systems"
)

// Star heads extend backward along the velocity by this factor.
const headLength = 1.6

// FireworksRenderer implements systems.DrawSink with two layers: a trails
// render texture that fades a little every frame, and a head layer redrawn
// from scratch.
type FireworksRenderer struct {
	stage   *camera.Stage
	quality systems.Quality

	trails      rl.RenderTexture2D
	texW, texH  int32
	initialized bool

	heads []rl.Vector2
}

// NewFireworksRenderer creates a renderer for the given stage.
func NewFireworksRenderer(stage *camera.Stage) *FireworksRenderer {
	return &FireworksRenderer{stage: stage}
}

// Init allocates the trails texture (must be called after the raylib
// window is created).
func (r *FireworksRenderer) Init() {
	if r.initialized {
		return
	}
	r.texW = int32(r.stage.WindowW)
	r.texH = int32(r.stage.WindowH)
	r.trails = rl.LoadRenderTexture(r.texW, r.texH)
	rl.BeginTextureMode(r.trails)
	rl.ClearBackground(rl.Blank)
	rl.EndTextureMode()
	r.initialized = true
}

// Resize reallocates the trails texture when the window size changed.
// Existing trails are discarded.
func (r *FireworksRenderer) Resize() {
	if !r.initialized {
		return
	}
	if int32(r.stage.WindowW) == r.texW && int32(r.stage.WindowH) == r.texH {
		return
	}
	r.Unload()
	r.Init()
}

// BeginFrame fades the trails layer and starts drawing into it. fade is
// the per-tick fade amount scaled by the simulation speed.
func (r *FireworksRenderer) BeginFrame(quality systems.Quality, fade float64) {
	if !r.initialized {
		r.Init()
	}
	r.quality = quality
	r.heads = r.heads[:0]

	rl.BeginTextureMode(r.trails)
	a := uint8(systems.Clamp(fade, 0, 1) * 255)
	rl.DrawRectangle(0, 0, r.texW, r.texH, rl.NewColor(0, 0, 0, a))
}

// DrawFlash draws a burst flash as layered radial gradients.
func (r *FireworksRenderer) DrawFlash(x, y, radius float64) {
	sx, sy := r.stage.StageToScreen(x, y)
	rad := float32(radius * r.stage.Scale)
	cx, cy := int32(sx), int32(sy)

	rl.DrawCircleGradient(cx, cy, rad, rl.NewColor(255, 140, 20, 28), rl.NewColor(255, 120, 20, 0))
	rl.DrawCircleGradient(cx, cy, rad*0.32, rl.NewColor(255, 160, 20, 51), rl.NewColor(255, 140, 20, 28))
	rl.DrawCircleGradient(cx, cy, rad*0.125, rl.White, rl.NewColor(255, 160, 20, 51))
}

// DrawStars draws star trails in the star color and queues white heads.
func (r *FireworksRenderer) DrawStars(c components.Color, stars []*components.Star) {
	col := toColor(c.RGB())
	width := float32(systems.StarDrawWidth * r.stage.Scale)

	rl.BeginBlendMode(rl.BlendAdditive)
	for _, s := range stars {
		from := r.point(s.PrevX, s.PrevY)
		to := r.point(s.X, s.Y)
		rl.DrawLineEx(from, to, width, col)
		if r.quality == systems.QualityHigh {
			rl.DrawCircleV(to, width/2, col)
		}
		r.heads = append(r.heads, to, r.point(s.X-s.SpeedX*headLength, s.Y-s.SpeedY*headLength))
	}
	rl.EndBlendMode()
}

// DrawSparks draws spark trails.
func (r *FireworksRenderer) DrawSparks(c components.Color, sparks []*components.Spark) {
	col := toColor(c.RGB())
	width := float32(systems.SparkDrawWidth(r.quality) * r.stage.Scale)

	rl.BeginBlendMode(rl.BlendAdditive)
	for _, s := range sparks {
		rl.DrawLineEx(r.point(s.PrevX, s.PrevY), r.point(s.X, s.Y), width, col)
	}
	rl.EndBlendMode()
}

// EndFrame closes the trails layer and composes the frame over the sky
// color. Callers wrap it in rl.BeginDrawing/rl.EndDrawing.
func (r *FireworksRenderer) EndFrame(sky components.RGB) {
	rl.EndTextureMode()

	rl.ClearBackground(toColor(sky))

	// Render textures are stored upside down.
	src := rl.NewRectangle(0, 0, float32(r.texW), -float32(r.texH))
	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DrawTextureRec(r.trails.Texture, src, rl.NewVector2(0, 0), rl.White)
	for i := 0; i+1 < len(r.heads); i += 2 {
		rl.DrawLineEx(r.heads[i], r.heads[i+1], float32(r.stage.Scale), rl.White)
	}
	rl.EndBlendMode()
}

// Unload frees resources.
func (r *FireworksRenderer) Unload() {
	if r.initialized {
		rl.UnloadRenderTexture(r.trails)
		r.initialized = false
	}
}

func (r *FireworksRenderer) point(x, y float64) rl.Vector2 {
	sx, sy := r.stage.StageToScreen(x, y)
	return rl.NewVector2(float32(sx), float32(sy))
}

func toColor(c components.RGB) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}
