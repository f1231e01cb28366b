package sprite

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var (
	// ErrNoSelection is returned when an edit needs a selected sprite and
	// there is none.
	ErrNoSelection = errors.New("no sprite selected")

	// ErrIndexOutOfRange is returned when deleting a block that doesn't exist.
	ErrIndexOutOfRange = errors.New("block index out of range")

	// ErrUnknownSprite is returned when selecting an id that isn't on the stage.
	ErrUnknownSprite = errors.New("unknown sprite")
)

// DefaultEmojis is the palette new sprites pick from.
var DefaultEmojis = []string{"😺", "🐶", "🦁", "🐘", "🦒", "🐻", "🐰", "🦊", "🐼", "🐨"}

// Spawn area for new sprites, in stage units (inclusive).
const (
	spawnMinX = 30
	spawnMaxX = 300
	spawnMinY = 30
	spawnMaxY = 140
)

// DemoScript returns the blocks the first sprite on an empty stage starts with.
func DemoScript() []Command {
	return []Command{
		Move(60),
		Turn(90),
		Move(40),
		Say("Demo", 2),
	}
}

// RosterOptions configures a Roster.
type RosterOptions struct {
	Emojis []string // defaults to DefaultEmojis
	Seed   int64    // 0 seeds from the clock
}

// Roster is the ordered list of sprites on the stage plus the current
// selection.
type Roster struct {
	mu       sync.Mutex
	sprites  []*Sprite
	selected *Sprite
	emojis   []string
	rng      *rand.Rand
}

// NewRoster creates an empty roster.
func NewRoster(opts RosterOptions) *Roster {
	emojis := opts.Emojis
	if len(emojis) == 0 {
		emojis = DefaultEmojis
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Roster{
		emojis: emojis,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// AddSprite creates a sprite with a random emoji, color and position,
// appends it to the stage and selects it. The first sprite on an empty
// stage gets the demo script.
func (r *Roster) AddSprite() *Sprite {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := fmt.Sprintf("Sprite%d", len(r.sprites)+1)
	s := New(
		id,
		r.emojis[r.intn(0, len(r.emojis)-1)],
		Color{Hue: float64(r.intn(0, 360))},
		float64(r.intn(spawnMinX, spawnMaxX)),
		float64(r.intn(spawnMinY, spawnMaxY)),
	)
	if len(r.sprites) == 0 {
		for _, c := range DemoScript() {
			s.Append(c)
		}
	}

	r.sprites = append(r.sprites, s)
	r.selected = s
	return s
}

// intn returns a uniform integer in [lo, hi].
func (r *Roster) intn(lo, hi int) int {
	return lo + r.rng.Intn(hi-lo+1)
}

// Sprites returns the sprites in stage order. The slice is a copy; the
// sprites are shared.
func (r *Roster) Sprites() []*Sprite {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Sprite, len(r.sprites))
	copy(out, r.sprites)
	return out
}

// Len returns the number of sprites on the stage.
func (r *Roster) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sprites)
}

// Get returns the sprite with the given id, or nil.
func (r *Roster) Get(id string) *Sprite {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(id)
}

func (r *Roster) find(id string) *Sprite {
	for _, s := range r.sprites {
		if s.id == id {
			return s
		}
	}
	return nil
}

// Selected returns the sprite being edited, or nil.
func (r *Roster) Selected() *Sprite {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected
}

// Select makes the sprite with the given id the one being edited.
func (r *Roster) Select(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.find(id)
	if s == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSprite, id)
	}
	r.selected = s
	return nil
}

// SelectNext moves the selection one sprite forward, wrapping around.
func (r *Roster) SelectNext() *Sprite {
	return r.step(1)
}

// SelectPrev moves the selection one sprite back, wrapping around.
func (r *Roster) SelectPrev() *Sprite {
	return r.step(-1)
}

func (r *Roster) step(delta int) *Sprite {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.sprites)
	if n == 0 {
		return nil
	}
	idx := -1
	for i, s := range r.sprites {
		if s == r.selected {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.selected = r.sprites[0]
		return r.selected
	}
	r.selected = r.sprites[((idx+delta)%n+n)%n]
	return r.selected
}

// Append adds c to the end of the selected sprite's script.
func (r *Roster) Append(c Command) (*Sprite, error) {
	s := r.Selected()
	if s == nil {
		return nil, ErrNoSelection
	}
	s.Append(c)
	return s, nil
}

// Delete removes block i from the selected sprite's script.
func (r *Roster) Delete(i int) error {
	s := r.Selected()
	if s == nil {
		return ErrNoSelection
	}
	return s.Delete(i)
}
