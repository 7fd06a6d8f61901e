package components

// Glitter names a spark-emission profile attached to burst stars.
type Glitter uint8

const (
	GlitterNone Glitter = iota
	GlitterLight
	GlitterMedium
	GlitterHeavy
	GlitterThick
	GlitterStreamer
	GlitterWillow
)

var glitterNames = [...]string{"", "light", "medium", "heavy", "thick", "streamer", "willow"}

func (g Glitter) String() string {
	if int(g) < len(glitterNames) {
		return glitterNames[g]
	}
	return "invalid"
}

// Effect selects what happens when a star dies.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectCrossette
	EffectCrackle
	EffectFloral
	EffectFallingLeaves
	// EffectShellBurst detonates the shell that owns a comet. It is only
	// assigned by a launch and never appears on a ShellSpec.
	EffectShellBurst

	effectCount
)

// NumEffects is the size of an array indexed by Effect.
const NumEffects = int(effectCount)

var effectNames = [...]string{"none", "crossette", "crackle", "floral", "falling-leaves", "shell-burst"}

func (e Effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return "invalid"
}

// ShellColorKind tags the variant held by a ShellColor.
type ShellColorKind uint8

const (
	ShellColorUnset  ShellColorKind = iota // filled with a random palette pick
	ShellColorSingle                       // one color for every star
	ShellColorPair                         // split or twin burst in two colors
	ShellColorRandom                       // every star picks its own color
)

// ShellColor is the primary color of a shell: a single color, a pair, or
// a per-star random pick.
type ShellColor struct {
	Kind   ShellColorKind
	Colors [2]Color
}

// Single returns a one-color shell color.
func Single(c Color) ShellColor {
	return ShellColor{Kind: ShellColorSingle, Colors: [2]Color{c, NoColor}}
}

// Pair returns a two-color shell color.
func Pair(a, b Color) ShellColor {
	return ShellColor{Kind: ShellColorPair, Colors: [2]Color{a, b}}
}

// RandomColors returns a shell color whose stars each pick a palette color.
func RandomColors() ShellColor {
	return ShellColor{Kind: ShellColorRandom}
}

// Valid reports whether the variant is well formed. Unset is valid because
// it is defaulted at shell construction.
func (sc ShellColor) Valid() bool {
	switch sc.Kind {
	case ShellColorUnset, ShellColorRandom:
		return true
	case ShellColorSingle:
		return sc.Colors[0].Valid()
	case ShellColorPair:
		return sc.Colors[0].Valid() && sc.Colors[1].Valid()
	default:
		return false
	}
}

// Is reports whether sc is the single color c.
func (sc ShellColor) Is(c Color) bool {
	return sc.Kind == ShellColorSingle && sc.Colors[0] == c
}

// ShellSpec is the declarative recipe of one firework shell. Zero values
// mean "use the default" for StarCount, StarDensity, StarLifeVariation and
// every optional color.
type ShellSpec struct {
	Name      string
	ShellSize float64

	SpreadSize        float64 // burst radius in stage pixels
	StarCount         float64 // 0 derives the count from SpreadSize and StarDensity
	StarDensity       float64
	StarLife          float64 // milliseconds
	StarLifeVariation float64

	Color        ShellColor
	SecondColor  Color
	GlitterColor Color
	Glitter      Glitter

	Pistil      bool
	PistilColor Color
	Streamers   bool
	Ring        bool
	Horsetail   bool
	Strobe      bool
	StrobeColor Color
	Bless       bool

	Effect Effect
}
