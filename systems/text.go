package systems

// DefaultBlessings are the messages written by Bless shells.
var DefaultBlessings = []string{
	"HAPPY NEW YEAR",
	"GOOD FORTUNE",
	"PEACE",
	"BEST WISHES",
	"PROSPERITY",
	"JOY",
}

// Text burst stars hang in place and drift upward.
const (
	textStarLife  = 1000
	textStarDrift = -0.4
)

// text writes a random blessing centered on the burst point. It is a no-op
// without a glyph source.
func (b *burst) text() {
	w := b.shell.world
	if w.glyphs == nil {
		return
	}

	message := RandomChoice(w.rng, w.blessings)
	size := RandomInt(w.rng, 40, 59)
	points := w.glyphs.GlyphPoints(message, size)
	if len(points) == 0 {
		return
	}

	minX, maxX, maxY := points[0].X, points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	originX := b.x - (maxX-minX)/2
	originY := b.y - maxY/2

	color := b.starColor()
	for _, p := range points {
		w.AddStar(originX+p.X, originY+p.Y, color, 0, 0, textStarLife, 0, textStarDrift)
	}
}
