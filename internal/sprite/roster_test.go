package sprite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoster() *Roster {
	return NewRoster(RosterOptions{Seed: 7})
}

func TestRoster_AddSprite(t *testing.T) {
	t.Parallel()

	r := newTestRoster()
	first := r.AddSprite()
	second := r.AddSprite()

	assert.Equal(t, "Sprite1", first.ID())
	assert.Equal(t, "Sprite2", second.ID())
	assert.Equal(t, 2, r.Len())
	assert.Same(t, second, r.Selected(), "the newest sprite is selected")

	for _, s := range r.Sprites() {
		assert.Contains(t, DefaultEmojis, s.Emoji())

		x, y := s.Position()
		assert.GreaterOrEqual(t, x, float64(spawnMinX))
		assert.LessOrEqual(t, x, float64(spawnMaxX))
		assert.GreaterOrEqual(t, y, float64(spawnMinY))
		assert.LessOrEqual(t, y, float64(spawnMaxY))

		hue := s.Color().Hue
		assert.GreaterOrEqual(t, hue, 0.0)
		assert.LessOrEqual(t, hue, 360.0)

		assert.Zero(t, s.Heading())
	}
}

func TestRoster_FirstSpriteGetsDemoScript(t *testing.T) {
	t.Parallel()

	r := newTestRoster()
	first := r.AddSprite()
	second := r.AddSprite()

	assert.Equal(t, DemoScript(), first.Blocks())
	assert.Empty(t, second.Blocks())
}

func TestRoster_SeedIsDeterministic(t *testing.T) {
	t.Parallel()

	a := NewRoster(RosterOptions{Seed: 99}).AddSprite()
	b := NewRoster(RosterOptions{Seed: 99}).AddSprite()
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestRoster_CustomEmojis(t *testing.T) {
	t.Parallel()

	r := NewRoster(RosterOptions{Seed: 1, Emojis: []string{"🤖"}})
	for i := 0; i < 5; i++ {
		assert.Equal(t, "🤖", r.AddSprite().Emoji())
	}
}

func TestRoster_SpritesIsACopy(t *testing.T) {
	t.Parallel()

	r := newTestRoster()
	r.AddSprite()
	sprites := r.Sprites()
	sprites[0] = nil

	assert.NotNil(t, r.Sprites()[0])
}

func TestRoster_Select(t *testing.T) {
	t.Parallel()

	r := newTestRoster()
	first := r.AddSprite()
	r.AddSprite()

	require.NoError(t, r.Select("Sprite1"))
	assert.Same(t, first, r.Selected())
	assert.Same(t, first, r.Get("Sprite1"))

	err := r.Select("Sprite9")
	assert.ErrorIs(t, err, ErrUnknownSprite)
	assert.Same(t, first, r.Selected(), "failed select keeps the selection")
	assert.Nil(t, r.Get("Sprite9"))
}

func TestRoster_SelectNextPrevWrap(t *testing.T) {
	t.Parallel()

	r := newTestRoster()
	assert.Nil(t, r.SelectNext(), "empty stage")

	s1 := r.AddSprite()
	s2 := r.AddSprite()
	s3 := r.AddSprite()

	assert.Same(t, s1, r.SelectNext())
	assert.Same(t, s2, r.SelectNext())
	assert.Same(t, s3, r.SelectNext())
	assert.Same(t, s2, r.SelectPrev())
	assert.Same(t, s1, r.SelectPrev())
	assert.Same(t, s3, r.SelectPrev())
}

func TestRoster_AppendAndDeleteTargetSelection(t *testing.T) {
	t.Parallel()

	r := newTestRoster()
	s1 := r.AddSprite()
	s2 := r.AddSprite()

	got, err := r.Append(Move(5))
	require.NoError(t, err)
	assert.Same(t, s2, got)
	assert.Equal(t, []Command{Move(5)}, s2.Blocks())

	require.NoError(t, r.Select(s1.ID()))
	require.NoError(t, r.Delete(0))
	assert.Equal(t, DemoScript()[1:], s1.Blocks())

	assert.ErrorIs(t, r.Delete(10), ErrIndexOutOfRange)
}

func TestRoster_EditWithoutSelection(t *testing.T) {
	t.Parallel()

	r := newTestRoster()

	_, err := r.Append(Move(5))
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.ErrorIs(t, r.Delete(0), ErrNoSelection)
}
