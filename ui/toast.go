package ui

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Toast timings in seconds.
const (
	DefaultToastHold = 0.75
	DefaultToastFade = 0.5
)

// Toast shows a short message that holds, then fades out.
type Toast struct {
	hold, fade float32

	text     string
	holdLeft float32
	alpha    float32
	tween    *gween.Tween
}

// NewToast creates a toast with the given hold and fade durations in
// seconds.
func NewToast(hold, fade float32) *Toast {
	return &Toast{hold: hold, fade: fade}
}

// Show displays text, restarting the hold and fade.
func (t *Toast) Show(text string) {
	t.text = text
	t.alpha = 1
	t.holdLeft = t.hold
	t.tween = gween.New(1, 0, t.fade, ease.OutQuad)
}

// Update advances the toast by dt seconds.
func (t *Toast) Update(dt float32) {
	if t.tween == nil {
		return
	}
	if t.holdLeft > 0 {
		t.holdLeft -= dt
		if t.holdLeft > 0 {
			return
		}
		dt = -t.holdLeft
	}
	alpha, done := t.tween.Update(dt)
	t.alpha = alpha
	if done {
		t.alpha = 0
		t.tween = nil
	}
}

// Visible reports whether the toast is on screen.
func (t *Toast) Visible() bool { return t.alpha > 0 }

// Alpha returns the current opacity in [0, 1].
func (t *Toast) Alpha() float32 { return t.alpha }

// Text returns the current message.
func (t *Toast) Text() string { return t.text }

// Draw renders the toast centered near the bottom of the screen.
func (t *Toast) Draw(screenW, screenH int32, theme Theme) {
	if !t.Visible() {
		return
	}
	const fontSize = 20
	textW := rl.MeasureText(t.text, fontSize)
	pad := theme.Padding
	w := textW + pad*2
	h := int32(fontSize) + pad*2
	x := (screenW - w) / 2
	y := screenH - h - 60

	rl.DrawRectangle(x, y, w, h, rl.Fade(theme.ToastBg, t.alpha))
	rl.DrawText(t.text, x+pad, y+pad, fontSize, rl.Fade(theme.ToastText, t.alpha))
}
