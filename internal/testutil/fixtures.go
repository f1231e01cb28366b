package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thruflo/playground/internal/sprite"
)

// FixtureSeed seeds every roster built by the fixtures.
const FixtureSeed = 42

// SpriteSpec places one sprite for NewStage.
type SpriteSpec struct {
	X, Y    float64
	Heading float64
	Script  []sprite.Command
}

// At is shorthand for a SpriteSpec at (x, y) facing 0 with the given script.
func At(x, y float64, script ...sprite.Command) SpriteSpec {
	return SpriteSpec{X: x, Y: y, Script: script}
}

// NewStage builds a roster holding one sprite per spec, in order, with ids
// Sprite1..SpriteN. Positions, headings and scripts are exactly as given;
// the demo script the first sprite would normally receive is cleared. The
// last sprite ends up selected.
func NewStage(t *testing.T, specs ...SpriteSpec) *sprite.Roster {
	t.Helper()

	r := sprite.NewRoster(sprite.RosterOptions{Seed: FixtureSeed})
	for _, spec := range specs {
		s := r.AddSprite()
		for s.Len() > 0 {
			require.NoError(t, s.Delete(0))
		}
		s.GoTo(spec.X, spec.Y)
		if spec.Heading != 0 {
			s.Turn(spec.Heading)
		}
		for _, c := range spec.Script {
			s.Append(c)
		}
	}
	return r
}

// SampleCommands returns one command of every kind, in toolbox order.
func SampleCommands() []sprite.Command {
	return []sprite.Command{
		sprite.Move(10),
		sprite.Turn(15),
		sprite.GoTo(100, 50),
		sprite.Repeat(2),
		sprite.Say("Hello", 2),
		sprite.Think("Hmm", 1.5),
	}
}
