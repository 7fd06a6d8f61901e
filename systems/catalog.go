package systems

import (
	"fmt"
	"math"
	"slices"

	"github.com/pthm-cable/fireworks/components"
)

// Shell type names.
const (
	ShellRandom        = "Random"
	ShellCrackle       = "Crackle"
	ShellCrossette     = "Crossette"
	ShellCrysanthemum  = "Crysanthemum"
	ShellFallingLeaves = "Falling Leaves"
	ShellFloral        = "Floral"
	ShellGhost         = "Ghost"
	ShellHorseTail     = "Horse Tail"
	ShellPalm          = "Palm"
	ShellRing          = "Ring"
	ShellStrobe        = "Strobe"
	ShellWillow        = "Willow"
	ShellBless         = "Bless"
)

// ShellFactory builds a randomized recipe for a shell of the given size.
type ShellFactory func(w *World, size float64) components.ShellSpec

var shellTypes = map[string]ShellFactory{
	ShellCrackle:       crackleShell,
	ShellCrossette:     crossetteShell,
	ShellCrysanthemum:  crysanthemumShell,
	ShellFallingLeaves: fallingLeavesShell,
	ShellFloral:        floralShell,
	ShellGhost:         ghostShell,
	ShellHorseTail:     horsetailShell,
	ShellPalm:          palmShell,
	ShellRing:          ringShell,
	ShellStrobe:        strobeShell,
	ShellWillow:        willowShell,
	ShellBless:         blessShell,
}

// ShellNames lists every selectable shell type in menu order.
var ShellNames = []string{
	ShellRandom,
	ShellCrackle,
	ShellCrossette,
	ShellCrysanthemum,
	ShellFallingLeaves,
	ShellFloral,
	ShellGhost,
	ShellHorseTail,
	ShellPalm,
	ShellRing,
	ShellStrobe,
	ShellWillow,
	ShellBless,
}

// Bless is drawn separately so it keeps a fixed share of random picks.
var randomPool = []string{
	ShellCrackle,
	ShellCrossette,
	ShellCrysanthemum,
	ShellFallingLeaves,
	ShellFloral,
	ShellGhost,
	ShellHorseTail,
	ShellPalm,
	ShellRing,
	ShellStrobe,
	ShellWillow,
}

// Processing-heavy shells excluded from rapid sequences.
var fastShellBlacklist = []string{ShellFallingLeaves, ShellFloral, ShellWillow}

const blessChance = 0.2

// IsShellName reports whether name is a catalog entry or Random.
func IsShellName(name string) bool {
	_, ok := shellTypes[name]
	return ok || name == ShellRandom
}

// NextShellName returns the shell after name in menu order, wrapping
// around. Unknown names yield the first entry.
func NextShellName(name string) string {
	i := slices.Index(ShellNames, name)
	return ShellNames[(i+1)%len(ShellNames)]
}

// RandomShellName picks a concrete shell type.
func (w *World) RandomShellName() string {
	if w.rng.Float64() < blessChance {
		return ShellBless
	}
	return RandomChoice(w.rng, randomPool)
}

// RandomFastShellName picks a shell type that is cheap to simulate.
func (w *World) RandomFastShellName() string {
	if w.rng.Float64() < blessChance {
		return ShellBless
	}
	fast := slices.DeleteFunc(slices.Clone(randomPool), func(name string) bool {
		return slices.Contains(fastShellBlacklist, name)
	})
	return RandomChoice(w.rng, fast)
}

// ShellSpecByName builds a recipe from the catalog. Random resolves to a
// concrete type first.
func (w *World) ShellSpecByName(name string, size float64) (components.ShellSpec, error) {
	if name == ShellRandom {
		name = w.RandomShellName()
	}
	factory, ok := shellTypes[name]
	if !ok {
		return components.ShellSpec{}, fmt.Errorf("%w: %q", ErrUnknownShell, name)
	}
	spec := factory(w, size)
	spec.Name = name
	return spec, nil
}

// LaunchShell builds a catalog shell and launches it.
func (w *World) LaunchShell(name string, size, position, height float64) (*Shell, error) {
	spec, err := w.ShellSpecByName(name, size)
	if err != nil {
		return nil, err
	}
	shell, err := w.NewShell(spec)
	if err != nil {
		return nil, err
	}
	if err := shell.Launch(position, height); err != nil {
		return nil, err
	}
	return shell, nil
}

// Placement helpers

// fitShellPositionH keeps bursts away from the side edges.
func fitShellPositionH(position float64) float64 {
	const edge = 0.18
	return (1-edge*2)*position + edge
}

// fitShellPositionV keeps bursts below the top of the stage.
func fitShellPositionV(position float64) float64 {
	return position * 0.75
}

// RandomShellPosition returns a random launch position and burst height.
func (w *World) RandomShellPosition() (x, height float64) {
	return fitShellPositionH(w.rng.Float64()), fitShellPositionV(w.rng.Float64())
}

// RandomShellSize picks a size up to the selected shell size. Smaller shells
// burst lower and drift further from the center.
func (w *World) RandomShellSize() (size, x, height float64) {
	baseSize := w.settings.ShellSize()
	maxVariance := math.Min(2.5, baseSize)
	variance := w.rng.Float64() * maxVariance
	size = baseSize - variance
	if maxVariance == 0 {
		height = w.rng.Float64()
	} else {
		height = 1 - variance/maxVariance
	}
	centerOffset := w.rng.Float64() * (1 - height*0.65) * 0.5
	x = 0.5 + centerOffset
	if w.rng.Float64() < 0.5 {
		x = 0.5 - centerOffset
	}
	return size, fitShellPositionH(x), fitShellPositionV(height)
}

// Shell recipes

func crysanthemumShell(w *World, size float64) components.ShellSpec {
	glitter := w.rng.Float64() < 0.25
	color := w.randomColor()
	pistil := w.rng.Float64() < 0.42
	pistilColor := w.randomColor()
	secondColor := components.NoColor
	if w.rng.Float64() < 0.2 || color == components.White {
		secondColor = pistilColor
	}
	streamers := !pistil && color != components.White && w.rng.Float64() < 0.42

	density := 1.25 * 0.8
	if glitter {
		density = 1.1 * 0.8
	}
	if w.settings.Quality() == QualityHigh {
		density = 1.2
	}

	spec := components.ShellSpec{
		ShellSize:    size,
		SpreadSize:   300 + size*100,
		StarLife:     900 + size*200,
		StarDensity:  density,
		Color:        components.Single(color),
		SecondColor:  secondColor,
		GlitterColor: w.randomColor(),
		Pistil:       pistil,
		PistilColor:  pistilColor,
		Streamers:    streamers,
	}
	if glitter {
		spec.Glitter = components.GlitterLight
	}
	return spec
}

// ghostShell fades in from invisible to its color late in life.
func ghostShell(w *World, size float64) components.ShellSpec {
	spec := crysanthemumShell(w, size)
	spec.StarLife *= 1.5
	spec.Streamers = true
	spec.PistilColor = components.NoColor
	if w.rng.Float64() < 0.42 {
		spec.PistilColor = w.randomColor()
	}
	spec.Color = components.Single(components.Invisible)
	spec.SecondColor = w.randomColor()
	// Invisible stars would still emit glitter.
	spec.Glitter = components.GlitterNone
	return spec
}

func strobeShell(w *World, size float64) components.ShellSpec {
	strobeColor := components.NoColor
	color := w.randomColor()
	if w.rng.Float64() < 0.5 {
		strobeColor = components.White
	}
	return components.ShellSpec{
		ShellSize:         size,
		SpreadSize:        280 + size*92,
		StarLife:          1100 + size*200,
		StarLifeVariation: 0.40,
		StarDensity:       1.1,
		Color:             components.Single(color),
		Glitter:           components.GlitterLight,
		GlitterColor:      components.White,
		Strobe:            true,
		StrobeColor:       strobeColor,
		Pistil:            w.rng.Float64() < 0.5,
		PistilColor:       w.randomColor(),
	}
}

func palmShell(w *World, size float64) components.ShellSpec {
	color := w.randomColor()
	thick := w.rng.Float64() < 0.5
	spec := components.ShellSpec{
		ShellSize:   size,
		Color:       components.Single(color),
		SpreadSize:  250 + size*75,
		StarDensity: 0.4,
		StarLife:    1800 + size*200,
		Glitter:     components.GlitterHeavy,
	}
	if thick {
		spec.StarDensity = 0.15
		spec.Glitter = components.GlitterThick
	}
	return spec
}

func ringShell(w *World, size float64) components.ShellSpec {
	pistil := w.rng.Float64() < 0.75
	spec := components.ShellSpec{
		ShellSize:    size,
		Ring:         true,
		Color:        components.Single(w.randomColor()),
		SpreadSize:   300 + size*100,
		StarLife:     900 + size*200,
		StarCount:    2.2 * twoPi * (size + 1),
		Pistil:       pistil,
		PistilColor:  w.randomColor(),
		GlitterColor: components.White,
	}
	if !pistil {
		spec.Glitter = components.GlitterLight
	}
	if w.randomColor() == components.Gold {
		spec.GlitterColor = components.Gold
	}
	spec.Streamers = w.rng.Float64() < 0.3
	return spec
}

func crossetteShell(w *World, size float64) components.ShellSpec {
	return components.ShellSpec{
		ShellSize:         size,
		SpreadSize:        300 + size*100,
		StarLife:          750 + size*160,
		StarLifeVariation: 0.4,
		StarDensity:       0.85,
		Color:             components.Single(w.randomColor()),
		Effect:            components.EffectCrossette,
		Pistil:            w.rng.Float64() < 0.5,
		PistilColor:       w.randomColor(),
	}
}

func floralShell(w *World, size float64) components.ShellSpec {
	var color components.ShellColor
	switch {
	case w.rng.Float64() < 0.65:
		color = components.RandomColors()
	case w.rng.Float64() < 0.15:
		color = components.Single(w.randomColor())
	default:
		color = components.Pair(w.randomColor(), w.randomColor())
	}
	return components.ShellSpec{
		ShellSize:         size,
		SpreadSize:        300 + size*120,
		StarDensity:       0.12,
		StarLife:          500 + size*50,
		StarLifeVariation: 0.5,
		Color:             color,
		Effect:            components.EffectFloral,
	}
}

func fallingLeavesShell(_ *World, size float64) components.ShellSpec {
	return components.ShellSpec{
		ShellSize:         size,
		Color:             components.Single(components.Invisible),
		SpreadSize:        300 + size*120,
		StarDensity:       0.12,
		StarLife:          500 + size*50,
		StarLifeVariation: 0.5,
		Glitter:           components.GlitterMedium,
		GlitterColor:      components.Gold,
		Effect:            components.EffectFallingLeaves,
	}
}

func willowShell(_ *World, size float64) components.ShellSpec {
	return components.ShellSpec{
		ShellSize:    size,
		SpreadSize:   300 + size*100,
		StarDensity:  0.6,
		StarLife:     3000 + size*300,
		Glitter:      components.GlitterWillow,
		GlitterColor: components.Gold,
		Color:        components.Single(components.Invisible),
	}
}

func crackleShell(w *World, size float64) components.ShellSpec {
	density := 0.65
	if w.settings.Quality() == QualityHigh {
		density = 1
	}
	color := components.Gold
	if w.rng.Float64() >= 0.75 {
		color = w.randomColor()
	}
	return components.ShellSpec{
		ShellSize:         size,
		SpreadSize:        380 + size*75,
		StarDensity:       density,
		StarLife:          600 + size*100,
		StarLifeVariation: 0.32,
		Glitter:           components.GlitterLight,
		GlitterColor:      components.Gold,
		Color:             components.Single(color),
		Effect:            components.EffectCrackle,
		Pistil:            w.rng.Float64() < 0.65,
		PistilColor:       w.randomColor(),
	}
}

func horsetailShell(w *World, size float64) components.ShellSpec {
	return components.ShellSpec{
		ShellSize:    size,
		Horsetail:    true,
		Color:        components.Single(w.randomColor()),
		SpreadSize:   250 + size*38,
		StarDensity:  0.9,
		StarLife:     2500 + size*300,
		Glitter:      components.GlitterMedium,
		GlitterColor: w.randomColor(),
		// White horsetails strobe.
		Strobe: w.randomColor() == components.White,
	}
}

func blessShell(_ *World, size float64) components.ShellSpec {
	return components.ShellSpec{
		ShellSize:  size,
		SpreadSize: 300 + size*100,
		StarLife:   900 + size*200,
		Bless:      true,
	}
}
