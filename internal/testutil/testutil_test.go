package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/playground/internal/executor"
	"github.com/thruflo/playground/internal/sprite"
)

func TestNewStage(t *testing.T) {
	r := NewStage(t,
		At(10, 20, sprite.Move(5)),
		SpriteSpec{X: 100, Y: 100, Heading: 90},
	)

	sprites := r.Sprites()
	require.Len(t, sprites, 2)

	assert.Equal(t, "Sprite1", sprites[0].ID())
	AssertPosition(t, sprites[0], 10, 20)
	AssertScript(t, sprites[0], sprite.Move(5))

	AssertPosition(t, sprites[1], 100, 100)
	AssertHeading(t, sprites[1], 90)
	AssertScript(t, sprites[1])

	assert.Same(t, sprites[1], r.Selected())
}

func TestRecorder_Timeline(t *testing.T) {
	rec := NewRecorder()
	ctx := context.Background()

	rec.SpriteChanged(sprite.Snapshot{ID: "Sprite1", X: 1})
	rec.ShowBubble(executor.Bubble{Text: "hi"})
	require.NoError(t, rec.Pause(ctx, time.Second))
	rec.HideBubble(executor.Bubble{Text: "hi"})
	rec.Notify("hello")

	assert.Equal(t, []EventType{
		EventSpriteChanged, EventShowBubble, EventPause, EventHideBubble, EventNotify,
	}, rec.Types())
	assert.Equal(t, []time.Duration{time.Second}, rec.Pauses())
	assert.Equal(t, []string{"hello"}, rec.Messages())
	assert.Equal(t, "Sprite1", rec.Snapshots()[0].ID)

	rec.Reset()
	assert.Empty(t, rec.Events())
}

func TestRecorder_PauseHook(t *testing.T) {
	rec := NewRecorder()
	stop := errors.New("stop")
	rec.OnPause = func(n int, d time.Duration) error {
		if n == 2 {
			return stop
		}
		return nil
	}

	ctx := context.Background()
	assert.NoError(t, rec.Pause(ctx, time.Millisecond))
	assert.ErrorIs(t, rec.Pause(ctx, time.Millisecond), stop)
}

func TestRecorder_PauseCancelled(t *testing.T) {
	rec := NewRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, rec.Pause(ctx, time.Second), context.Canceled)
	assert.Empty(t, rec.Pauses())
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "pause", EventPause.String())
	assert.Equal(t, "unknown", EventType(99).String())
}

func TestRunContext(t *testing.T) {
	ctx := RunContext(t)
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.Greater(t, time.Until(deadline), time.Duration(0))
}
