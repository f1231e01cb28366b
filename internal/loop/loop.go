package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/thruflo/playground/internal/executor"
	"github.com/thruflo/playground/internal/logging"
	"github.com/thruflo/playground/internal/sprite"
)

// ErrRunInProgress is returned by RunAll while another run is active.
var ErrRunInProgress = errors.New("run already in progress")

// ExitReason indicates why a run stopped.
type ExitReason int

const (
	ExitReasonUnknown   ExitReason = iota
	ExitReasonCompleted            // Every captured sprite finished its script
	ExitReasonCancelled            // Context cancelled mid-run
)

// String returns a human-readable description of the exit reason.
func (r ExitReason) String() string {
	switch r {
	case ExitReasonCompleted:
		return "completed"
	case ExitReasonCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result summarizes a run.
type Result struct {
	Reason  ExitReason
	Sprites int // sprites whose scripts were run
	Blocks  int // top-level blocks executed
	Swaps   int // scripts swapped by collision passes
	Elapsed time.Duration
}

// StepEvent describes one executed top-level block.
type StepEvent struct {
	Sprite sprite.Snapshot
	Pos    int
	Block  sprite.Command
	Swaps  int // swaps made by the pass that followed the block
}

// BlockExecutor executes the block at pos of a sprite's script.
type BlockExecutor interface {
	Execute(ctx context.Context, s *sprite.Sprite, pos int) error
}

// Resolver runs a collision pass and reports how many swaps it made.
type Resolver interface {
	Resolve() int
}

// Options holds the runner's collaborators. Roster, Executor and Resolver
// are required.
type Options struct {
	Roster    *sprite.Roster
	Executor  BlockExecutor
	Resolver  Resolver
	Presenter executor.Presenter // optional, receives a final snapshot per sprite
	OnStep    func(ev StepEvent) // optional progress hook
	Logger    *logging.Logger
	Now       func() time.Time // optional, for deterministic elapsed times
}

// Runner executes runs. A Runner allows only one run at a time.
type Runner struct {
	roster    *sprite.Roster
	exec      BlockExecutor
	resolver  Resolver
	presenter executor.Presenter
	onStep    func(ev StepEvent)
	log       *logging.Logger
	now       func() time.Time
	running   atomic.Bool
}

// NewRunner creates a Runner.
func NewRunner(opts Options) *Runner {
	r := &Runner{
		roster:    opts.Roster,
		exec:      opts.Executor,
		resolver:  opts.Resolver,
		presenter: opts.Presenter,
		onStep:    opts.OnStep,
		log:       opts.Logger,
		now:       opts.Now,
	}
	if r.presenter == nil {
		r.presenter = executor.NopPresenter{}
	}
	if r.log == nil {
		r.log = logging.Default()
	}
	r.log = r.log.With("component", "runner")
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Running reports whether a run is in progress.
func (r *Runner) Running() bool {
	return r.running.Load()
}

// RunAll runs every sprite on the stage, in stage order. Sprites added
// after the run starts are not run, though they still take part in
// collision passes.
func (r *Runner) RunAll(ctx context.Context) (Result, error) {
	if !r.running.CompareAndSwap(false, true) {
		return Result{}, ErrRunInProgress
	}
	defer r.running.Store(false)

	start := r.now()
	sprites := r.roster.Sprites()
	res := Result{Reason: ExitReasonCompleted}
	r.log.Info("run started", "sprites", len(sprites))

	for _, s := range sprites {
		if err := r.runSprite(ctx, s, &res); err != nil {
			res.Reason = ExitReasonCancelled
			res.Elapsed = r.now().Sub(start)
			r.log.Warn("run interrupted", "sprite", s.ID(), "error", err)
			return res, err
		}
		res.Sprites++
		r.presenter.SpriteChanged(s.Snapshot())
	}

	res.Elapsed = r.now().Sub(start)
	r.log.Info("run finished",
		"sprites", res.Sprites,
		"blocks", res.Blocks,
		"swaps", res.Swaps,
		"elapsed", res.Elapsed)
	return res, nil
}

// runSprite executes s's script block by block. The length and the next
// block are re-read every step because a collision pass may have handed s
// a different script.
func (r *Runner) runSprite(ctx context.Context, s *sprite.Sprite, res *Result) error {
	for pos := 0; ; pos++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		block, ok := s.Block(pos)
		if !ok {
			return nil
		}

		if err := r.exec.Execute(ctx, s, pos); err != nil {
			return err
		}
		res.Blocks++

		swaps := r.resolver.Resolve()
		res.Swaps += swaps

		if r.onStep != nil {
			r.onStep(StepEvent{Sprite: s.Snapshot(), Pos: pos, Block: block, Swaps: swaps})
		}
	}
}
