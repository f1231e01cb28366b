package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/playground/internal/sprite"
)

// Tolerance is the float tolerance used by the position and heading
// assertions; trigonometry leaves residue around 1e-14.
const Tolerance = 1e-9

// AssertPosition asserts that s is at (x, y).
func AssertPosition(t *testing.T, s *sprite.Sprite, x, y float64) {
	t.Helper()
	gotX, gotY := s.Position()
	assert.InDelta(t, x, gotX, Tolerance, "%s x", s.ID())
	assert.InDelta(t, y, gotY, Tolerance, "%s y", s.ID())
}

// AssertHeading asserts that s faces deg.
func AssertHeading(t *testing.T, s *sprite.Sprite, deg float64) {
	t.Helper()
	assert.InDelta(t, deg, s.Heading(), Tolerance, "%s heading", s.ID())
}

// AssertScript asserts that s's script holds exactly cmds.
func AssertScript(t *testing.T, s *sprite.Sprite, cmds ...sprite.Command) {
	t.Helper()
	got := s.Blocks()
	require.Len(t, got, len(cmds), "%s script length", s.ID())
	for i := range cmds {
		assert.Equal(t, cmds[i], got[i], "%s block %d", s.ID(), i)
	}
}
