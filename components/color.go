// Package components defines the plain data shared by the simulation,
// renderers and configuration: the firework palette and shell descriptors.
package components

import "fmt"

// Color identifies a palette entry. Particles are bucketed by Color so that
// renderers can batch draw calls of the same stroke color.
type Color uint8

const (
	NoColor Color = iota // unset; never stored on a live particle
	Red
	Green
	Blue
	Purple
	Gold
	White
	Invisible // physics still apply, never drawn
)

// ColorSlots is the size of an array indexed directly by Color.
const ColorSlots = int(Invisible) + 1

// RGB is an 8-bit color tuple.
type RGB struct {
	R, G, B uint8
}

type paletteEntry struct {
	name string
	hex  string
	rgb  RGB
}

var palette = [ColorSlots]paletteEntry{
	NoColor:   {name: "none"},
	Red:       {name: "Red", hex: "#ff0043", rgb: RGB{0xff, 0x00, 0x43}},
	Green:     {name: "Green", hex: "#14fc56", rgb: RGB{0x14, 0xfc, 0x56}},
	Blue:      {name: "Blue", hex: "#1e7fff", rgb: RGB{0x1e, 0x7f, 0xff}},
	Purple:    {name: "Purple", hex: "#e60aff", rgb: RGB{0xe6, 0x0a, 0xff}},
	Gold:      {name: "Gold", hex: "#ffbf36", rgb: RGB{0xff, 0xbf, 0x36}},
	White:     {name: "White", hex: "#ffffff", rgb: RGB{0xff, 0xff, 0xff}},
	Invisible: {name: "Invisible"},
}

// VisibleColors lists the drawable palette in bucket order.
var VisibleColors = []Color{Red, Green, Blue, Purple, Gold, White}

// AllColors lists every bucket a live particle may occupy.
var AllColors = []Color{Red, Green, Blue, Purple, Gold, White, Invisible}

// String returns the palette name.
func (c Color) String() string {
	if int(c) >= ColorSlots {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return palette[c].name
}

// Hex returns the CSS-style hex code, or "" for NoColor and Invisible.
func (c Color) Hex() string {
	if int(c) >= ColorSlots {
		return ""
	}
	return palette[c].hex
}

// RGB returns the color tuple. Invisible and NoColor are black.
func (c Color) RGB() RGB {
	if int(c) >= ColorSlots {
		return RGB{}
	}
	return palette[c].rgb
}

// Visible reports whether the color is drawn.
func (c Color) Visible() bool {
	return c >= Red && c <= White
}

// Valid reports whether c may be assigned to a live particle.
func (c Color) Valid() bool {
	return c >= Red && c <= Invisible
}

// ParseColor resolves a palette name (case sensitive, as listed in the
// palette) to a Color.
func ParseColor(name string) (Color, error) {
	for _, c := range AllColors {
		if palette[c].name == name {
			return c, nil
		}
	}
	return NoColor, fmt.Errorf("unknown color %q", name)
}
