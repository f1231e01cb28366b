// Package executor interprets one command block against one sprite.
//
// Every block ends with a fixed step delay so each effect stays visible.
// Say and think blocks additionally hold a bubble on screen for their own
// duration, and repeat replays the preceding block through the executor so
// the replay pays the full cost of that block, delays included.
package executor

import (
	"context"
	"time"

	"github.com/thruflo/playground/internal/logging"
	"github.com/thruflo/playground/internal/sprite"
)

// DefaultStepDelay is the pause after every block.
const DefaultStepDelay = 280 * time.Millisecond

// Bubble is a transient speech or thought bubble anchored at the sprite's
// position when it appeared.
type Bubble struct {
	SpriteID string
	Text     string
	Duration time.Duration
	Thought  bool
	X, Y     float64
}

// Presenter is the rendering surface for sprite state and bubbles.
type Presenter interface {
	SpriteChanged(snap sprite.Snapshot)
	ShowBubble(b Bubble)
	HideBubble(b Bubble)
}

// NopPresenter discards everything.
type NopPresenter struct{}

func (NopPresenter) SpriteChanged(sprite.Snapshot) {}
func (NopPresenter) ShowBubble(Bubble)             {}
func (NopPresenter) HideBubble(Bubble)             {}

// Pauser suspends the calling goroutine for d. Implementations return early
// with the context's error if it is cancelled.
type Pauser interface {
	Pause(ctx context.Context, d time.Duration) error
}

// TimerPauser pauses on a real timer.
type TimerPauser struct{}

// Pause waits for d or until ctx is done.
func (TimerPauser) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// InstantPauser skips every pause but still honours cancellation.
type InstantPauser struct{}

// Pause returns ctx's error, if any, without waiting.
func (InstantPauser) Pause(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// Options configures an Executor. Zero values select defaults.
type Options struct {
	Presenter Presenter
	Pauser    Pauser
	StepDelay time.Duration
	Logger    *logging.Logger
}

// Executor runs individual blocks.
type Executor struct {
	presenter Presenter
	pauser    Pauser
	stepDelay time.Duration
	log       *logging.Logger
}

// New creates an Executor.
func New(opts Options) *Executor {
	e := &Executor{
		presenter: opts.Presenter,
		pauser:    opts.Pauser,
		stepDelay: opts.StepDelay,
		log:       opts.Logger,
	}
	if e.presenter == nil {
		e.presenter = NopPresenter{}
	}
	if e.pauser == nil {
		e.pauser = TimerPauser{}
	}
	if e.stepDelay <= 0 {
		e.stepDelay = DefaultStepDelay
	}
	if e.log == nil {
		e.log = logging.Default()
	}
	e.log = e.log.With("component", "executor")
	return e
}

// StepDelay returns the pause taken after every block.
func (e *Executor) StepDelay() time.Duration {
	return e.stepDelay
}

// Execute runs the block at index pos of s's current script and then waits
// the step delay. An index past the end of the script (possible when the
// script was edited or swapped underneath) does nothing.
func (e *Executor) Execute(ctx context.Context, s *sprite.Sprite, pos int) error {
	cmd, ok := s.Block(pos)
	if !ok {
		return nil
	}

	if e.log.Enabled(logging.LevelDebug) {
		e.log.Debug("block", "sprite", s.ID(), "pos", pos, "block", cmd.Label())
	}

	switch cmd.Kind {
	case sprite.KindMove:
		s.Move(cmd.Steps)
		e.presenter.SpriteChanged(s.Snapshot())
	case sprite.KindTurn:
		s.Turn(cmd.Degrees)
		e.presenter.SpriteChanged(s.Snapshot())
	case sprite.KindGoTo:
		s.GoTo(cmd.X, cmd.Y)
		e.presenter.SpriteChanged(s.Snapshot())
	case sprite.KindRepeat:
		// Only the single preceding block is replayed; at the top of the
		// script there is nothing to replay.
		if pos > 0 {
			for i := 0; i < cmd.Times; i++ {
				if err := e.Execute(ctx, s, pos-1); err != nil {
					return err
				}
			}
		}
	case sprite.KindSay:
		if err := e.bubble(ctx, s, cmd.Text, cmd.Secs, false); err != nil {
			return err
		}
	case sprite.KindThink:
		if err := e.bubble(ctx, s, cmd.Text, cmd.Secs, true); err != nil {
			return err
		}
	default:
		// Unknown kinds are skipped but still take a step.
	}

	return e.pauser.Pause(ctx, e.stepDelay)
}

func (e *Executor) bubble(ctx context.Context, s *sprite.Sprite, text string, secs float64, thought bool) error {
	x, y := s.Position()
	b := Bubble{
		SpriteID: s.ID(),
		Text:     text,
		Duration: secondsToDuration(secs),
		Thought:  thought,
		X:        x,
		Y:        y,
	}
	e.presenter.ShowBubble(b)
	defer e.presenter.HideBubble(b)
	return e.pauser.Pause(ctx, b.Duration)
}

func secondsToDuration(secs float64) time.Duration {
	if secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}
