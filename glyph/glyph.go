// Package glyph turns text into outline sample points for text bursts.
package glyph

import (
	"image"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/pthm-cable/fireworks/systems"
)

// Coverage above this alpha counts as ink.
const inkThreshold = 50

type key struct {
	text string
	size int
}

// Source rasterizes text with a bitmap face and keeps the outline pixels.
// It implements systems.GlyphSource. Not safe for concurrent use.
type Source struct {
	face  font.Face
	cache map[key][]systems.Point
}

// NewSource creates a source backed by the 7x13 bitmap face.
func NewSource() *Source {
	return &Source{
		face:  basicfont.Face7x13,
		cache: make(map[key][]systems.Point),
	}
}

// GlyphPoints returns the outline of text rendered size pixels tall. Points
// are in text-local pixels with the origin at the top left.
func (s *Source) GlyphPoints(text string, size int) []systems.Point {
	if text == "" || size <= 0 {
		return nil
	}
	k := key{text, size}
	if pts, ok := s.cache[k]; ok {
		return pts
	}
	pts := outline(s.scaled(text, size))
	s.cache[k] = pts
	return pts
}

// scaled renders text at the face's native size and scales the mask up
// with nearest-neighbour sampling so strokes stay crisp.
func (s *Source) scaled(text string, size int) *image.Alpha {
	m := s.face.Metrics()
	height := m.Height.Ceil()
	width := font.MeasureString(s.face, text).Ceil()

	src := image.NewAlpha(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  src,
		Src:  image.Opaque,
		Face: s.face,
		Dot:  fixed.P(0, m.Ascent.Ceil()),
	}
	d.DrawString(text)

	scale := float64(size) / float64(height)
	dw := max(1, int(float64(width)*scale+0.5))
	dst := image.NewAlpha(image.Rect(0, 0, dw, size))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// outline keeps inked pixels with at least one empty 4-neighbour.
func outline(img *image.Alpha) []systems.Point {
	b := img.Bounds()
	ink := func(x, y int) bool {
		if x < b.Min.X || y < b.Min.Y || x >= b.Max.X || y >= b.Max.Y {
			return false
		}
		return img.AlphaAt(x, y).A > inkThreshold
	}

	var pts []systems.Point
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !ink(x, y) {
				continue
			}
			if !ink(x+1, y) || !ink(x-1, y) || !ink(x, y+1) || !ink(x, y-1) {
				pts = append(pts, systems.Point{X: float64(x), Y: float64(y)})
			}
		}
	}
	return pts
}
