// Package sprite holds the stage model: sprites, the scripts of command
// blocks they own, and the roster that orders and selects them.
//
// A Sprite guards its own fields and script with a mutex so the script
// runner and an interactive editor can touch it from different goroutines.
// Scripts change owner only through SwapScripts.
package sprite

import (
	"fmt"
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Sprite saturation and lightness are fixed; only the hue is randomized.
const (
	colorSaturation = 0.70
	colorLightness  = 0.55
)

// Color is a sprite's fill color.
type Color struct {
	Hue float64 // degrees, 0..360
}

// CSS returns the color in hsl() notation.
func (c Color) CSS() string {
	return fmt.Sprintf("hsl(%s,70%%,55%%)", formatNumber(c.Hue))
}

// RGB255 converts the color to 8-bit RGB components.
func (c Color) RGB255() (r, g, b uint8) {
	return colorful.Hsl(c.Hue, colorSaturation, colorLightness).Clamped().RGB255()
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return colorful.Hsl(c.Hue, colorSaturation, colorLightness).Clamped().Hex()
}

// Snapshot is a read-only copy of what the presentation layer needs to draw
// a sprite.
type Snapshot struct {
	ID      string
	Emoji   string
	Color   Color
	X, Y    float64
	Heading float64
}

// Script is the ordered list of blocks owned by one sprite. It is only read
// or modified under the owning sprite's lock.
type Script struct {
	blocks []Command
}

// NewScript creates a script holding cmds in order.
func NewScript(cmds ...Command) *Script {
	blocks := make([]Command, len(cmds))
	copy(blocks, cmds)
	return &Script{blocks: blocks}
}

// Len returns the number of blocks.
func (s *Script) Len() int {
	return len(s.blocks)
}

// Blocks returns a copy of the blocks.
func (s *Script) Blocks() []Command {
	out := make([]Command, len(s.blocks))
	copy(out, s.blocks)
	return out
}

func (s *Script) at(i int) (Command, bool) {
	if i < 0 || i >= len(s.blocks) {
		return Command{}, false
	}
	return s.blocks[i], true
}

func (s *Script) append(c Command) {
	s.blocks = append(s.blocks, c)
}

func (s *Script) remove(i int) error {
	if i < 0 || i >= len(s.blocks) {
		return fmt.Errorf("%w: %d (script has %d blocks)", ErrIndexOutOfRange, i, len(s.blocks))
	}
	s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
	return nil
}

// Sprite is one actor on the stage.
type Sprite struct {
	mu      sync.Mutex
	id      string
	emoji   string
	color   Color
	x, y    float64
	heading float64
	script  *Script
}

// New creates a sprite facing heading 0 with an empty script.
func New(id, emoji string, color Color, x, y float64) *Sprite {
	return &Sprite{
		id:     id,
		emoji:  emoji,
		color:  color,
		x:      x,
		y:      y,
		script: NewScript(),
	}
}

func (s *Sprite) ID() string    { return s.id }
func (s *Sprite) Emoji() string { return s.emoji }
func (s *Sprite) Color() Color  { return s.color }

// Position returns the sprite's stage coordinates.
func (s *Sprite) Position() (x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.x, s.y
}

// Heading returns the sprite's heading in degrees, always in [0, 360).
func (s *Sprite) Heading() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heading
}

// Move advances the sprite steps units along its heading.
func (s *Sprite) Move(steps float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rad := s.heading * math.Pi / 180
	s.x += steps * math.Cos(rad)
	s.y += steps * math.Sin(rad)
}

// Turn rotates the sprite by degrees.
func (s *Sprite) Turn(degrees float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heading = NormalizeHeading(s.heading + degrees)
}

// GoTo places the sprite at an absolute position.
func (s *Sprite) GoTo(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.x, s.y = x, y
}

// Snapshot copies the sprite's rendering state.
func (s *Sprite) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:      s.id,
		Emoji:   s.emoji,
		Color:   s.color,
		X:       s.x,
		Y:       s.y,
		Heading: s.heading,
	}
}

// Script returns the script the sprite currently owns. The pointer
// identifies the script across swaps; its contents must not be modified
// except through the sprite.
func (s *Sprite) Script() *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.script
}

// Len returns the length of the sprite's current script.
func (s *Sprite) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.script.Len()
}

// Block returns the block at index i of the current script.
func (s *Sprite) Block(i int) (Command, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.script.at(i)
}

// Blocks returns a copy of the current script's blocks.
func (s *Sprite) Blocks() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.script.Blocks()
}

// Append pushes c onto the end of the sprite's script.
func (s *Sprite) Append(c Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script.append(c)
}

// Delete removes the block at index i, keeping the order of the rest.
func (s *Sprite) Delete(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.script.remove(i)
}

// SwapScripts exchanges the scripts owned by a and b. Callers that may swap
// concurrently must pass sprites in a consistent order (the resolver uses
// roster order).
func SwapScripts(a, b *Sprite) {
	if a == b {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	b.mu.Lock()
	defer b.mu.Unlock()
	a.script, b.script = b.script, a.script
}

// NormalizeHeading wraps degrees into [0, 360).
func NormalizeHeading(degrees float64) float64 {
	h := math.Mod(degrees, 360)
	if h < 0 {
		h += 360
	}
	// -tiny + 360 rounds to exactly 360.
	if h >= 360 || math.IsNaN(h) {
		h = 0
	}
	return h
}
