// Package collision turns sprite overlap into a program change: whenever
// two sprites' rendered bounds overlap, they trade scripts.
package collision

import (
	"fmt"
	"math"

	"github.com/thruflo/playground/internal/logging"
	"github.com/thruflo/playground/internal/sprite"
)

// DefaultSpriteSize is the rendered edge length of a sprite in stage units.
const DefaultSpriteSize = 48

// Rect is an axis-aligned rectangle in stage coordinates, y growing down.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Overlaps reports whether r and o intersect. Rectangles that only touch
// count as overlapping.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Right < o.Left ||
		r.Left > o.Right ||
		r.Bottom < o.Top ||
		r.Top > o.Bottom)
}

// Bounder reports the rendered bounds of a sprite.
type Bounder interface {
	Bounds(snap sprite.Snapshot) Rect
}

// BoxBounder models a sprite drawn as a Size×Size square whose top-left
// corner sits at the sprite position, rotated about its center by the
// heading. The bounds are the rotated square's axis-aligned box.
type BoxBounder struct {
	Size float64
}

// Bounds implements Bounder.
func (b BoxBounder) Bounds(snap sprite.Snapshot) Rect {
	size := b.Size
	if size <= 0 {
		size = DefaultSpriteSize
	}
	half := size / 2
	cx, cy := snap.X+half, snap.Y+half

	rad := snap.Heading * math.Pi / 180
	ext := half * (math.Abs(math.Cos(rad)) + math.Abs(math.Sin(rad)))

	return Rect{Left: cx - ext, Top: cy - ext, Right: cx + ext, Bottom: cy + ext}
}

// Notifier receives fire-and-forget user-facing messages.
type Notifier interface {
	Notify(msg string)
}

// Source supplies the sprites to check, in stage order.
type Source interface {
	Sprites() []*sprite.Sprite
}

// SwapMessage is the notification text for a swap between a and b.
func SwapMessage(a, b string) string {
	return fmt.Sprintf("%s & %s swapped animations!", a, b)
}

// Resolver runs collision passes.
type Resolver struct {
	source   Source
	bounder  Bounder
	notifier Notifier
	log      *logging.Logger
}

// NewResolver creates a Resolver. A nil bounder uses BoxBounder with the
// default size; a nil notifier drops messages.
func NewResolver(source Source, bounder Bounder, notifier Notifier, logger *logging.Logger) *Resolver {
	if bounder == nil {
		bounder = BoxBounder{Size: DefaultSpriteSize}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{
		source:   source,
		bounder:  bounder,
		notifier: notifier,
		log:      logger.With("component", "collision"),
	}
}

// Resolve runs one pass and returns the number of swaps.
//
// Bounds are measured once at the start of the pass. Pairs (i, j) with
// i < j are visited in order and each overlapping pair swaps immediately,
// so a sprite that overlaps several others trades scripts once per pair
// and later pairs see the result of earlier ones.
func (r *Resolver) Resolve() int {
	sprites := r.source.Sprites()
	bounds := make([]Rect, len(sprites))
	for i, s := range sprites {
		bounds[i] = r.bounder.Bounds(s.Snapshot())
	}

	swaps := 0
	for i := 0; i < len(sprites); i++ {
		for j := i + 1; j < len(sprites); j++ {
			if !bounds[i].Overlaps(bounds[j]) {
				continue
			}
			a, b := sprites[i], sprites[j]
			sprite.SwapScripts(a, b)
			swaps++
			r.log.Info("scripts swapped", "a", a.ID(), "b", b.ID())
			if r.notifier != nil {
				r.notifier.Notify(SwapMessage(a.ID(), b.ID()))
			}
		}
	}
	return swaps
}
