package tui

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Glide eases a sprite glyph from one stage position to another.
type Glide struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	toX    float64
	toY    float64
	X, Y   float64
	Done   bool
}

// NewGlide creates a glide lasting d. A non-positive d lands immediately.
func NewGlide(fromX, fromY, toX, toY float64, d time.Duration) *Glide {
	g := &Glide{X: fromX, Y: fromY, toX: toX, toY: toY}
	if d <= 0 || (fromX == toX && fromY == toY) {
		g.X, g.Y, g.Done = toX, toY, true
		return g
	}
	secs := float32(d.Seconds())
	g.tweenX = gween.New(float32(fromX), float32(toX), secs, ease.OutCubic)
	g.tweenY = gween.New(float32(fromY), float32(toY), secs, ease.OutCubic)
	return g
}

// Update advances the glide by dt.
func (g *Glide) Update(dt time.Duration) {
	if g.Done {
		return
	}
	secs := float32(dt.Seconds())
	x, doneX := g.tweenX.Update(secs)
	y, doneY := g.tweenY.Update(secs)
	g.X, g.Y = float64(x), float64(y)
	g.Done = doneX && doneY
	if g.Done {
		// Land exactly; the tweens run in float32.
		g.X, g.Y = g.toX, g.toY
	}
}
