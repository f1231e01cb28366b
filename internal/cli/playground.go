package cli

import (
	"github.com/thruflo/playground/internal/collision"
	"github.com/thruflo/playground/internal/config"
	"github.com/thruflo/playground/internal/executor"
	"github.com/thruflo/playground/internal/logging"
	"github.com/thruflo/playground/internal/loop"
	"github.com/thruflo/playground/internal/sprite"
)

// PlaygroundOptions holds the front end a Playground reports to. Every
// field is optional.
type PlaygroundOptions struct {
	Presenter executor.Presenter
	Notifier  collision.Notifier
	Pauser    executor.Pauser
	OnStep    func(ev loop.StepEvent)
	Logger    *logging.Logger
}

// Playground is a stage wired to the block executor, the collision
// resolver and the script runner.
type Playground struct {
	Roster   *sprite.Roster
	Executor *executor.Executor
	Resolver *collision.Resolver
	Runner   *loop.Runner
}

// newRoster creates an empty stage from the config. A non-zero seed
// overrides the configured one.
func newRoster(cfg *config.Config, seed int64) *sprite.Roster {
	if seed == 0 {
		seed = cfg.Sprites.Seed
	}
	return sprite.NewRoster(sprite.RosterOptions{
		Emojis: cfg.Sprites.Emojis,
		Seed:   seed,
	})
}

// NewPlayground wires roster to a fresh executor, resolver and runner.
func NewPlayground(cfg *config.Config, roster *sprite.Roster, opts PlaygroundOptions) *Playground {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	exec := executor.New(executor.Options{
		Presenter: opts.Presenter,
		Pauser:    opts.Pauser,
		StepDelay: cfg.Timing.StepDelay(),
		Logger:    logger,
	})
	resolver := collision.NewResolver(
		roster,
		collision.BoxBounder{Size: float64(cfg.Stage.SpriteSize)},
		opts.Notifier,
		logger,
	)
	runner := loop.NewRunner(loop.Options{
		Roster:    roster,
		Executor:  exec,
		Resolver:  resolver,
		Presenter: opts.Presenter,
		OnStep:    opts.OnStep,
		Logger:    logger,
	})

	return &Playground{
		Roster:   roster,
		Executor: exec,
		Resolver: resolver,
		Runner:   runner,
	}
}
