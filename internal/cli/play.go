package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thruflo/playground/internal/config"
	"github.com/thruflo/playground/internal/executor"
	"github.com/thruflo/playground/internal/logging"
	"github.com/thruflo/playground/internal/loop"
	"github.com/thruflo/playground/internal/sprite"
	"github.com/thruflo/playground/internal/tui"
)

// runInProgressMessage is the toast shown when run is pressed mid-run.
const runInProgressMessage = "Already running, wait for the current run to finish"

var (
	playSprites int
	playSeed    int64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the interactive playground",
	Long: `Opens the playground in the terminal.

Add sprites with n, pick one with tab, and add blocks to its script with
the digits 1-6. Press p to run every sprite's script in stage order. When
two sprites touch, they swap scripts for the rest of the run.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&playSprites, "sprites", 0, "number of sprites to place before the playground opens")
	playCmd.Flags().Int64Var(&playSeed, "seed", 0, "seed for sprite emoji, color and placement (0 uses the config)")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := newPlayController(cfg, os.Stdout, playSeed, executor.TimerPauser{}, logging.Default())
	for i := 0; i < playSprites; i++ {
		c.addSprite()
	}
	return c.run(ctx)
}

// playController applies TUI actions to the playground. Actions are applied
// one at a time on the controller's goroutine; runs happen in the
// background so the stage stays editable while scripts execute.
type playController struct {
	pg  *Playground
	ui  *tui.TUI
	log *logging.Logger

	running atomic.Bool
	runs    sync.WaitGroup
}

func newPlayController(cfg *config.Config, out io.Writer, seed int64, pauser executor.Pauser, logger *logging.Logger) *playController {
	roster := newRoster(cfg, seed)
	ui := tui.NewTUI(tui.Options{
		Roster: roster,
		Out:    out,
		Stage: tui.StageView{
			Width:      float64(cfg.Stage.Width),
			Height:     float64(cfg.Stage.Height),
			SpriteSize: float64(cfg.Stage.SpriteSize),
		},
		GlideDuration: cfg.Timing.StepDelay(),
		ToastDuration: cfg.Timing.NotifyDuration(),
		FrameInterval: cfg.Timing.FrameInterval(),
		Logger:        logger,
	})
	pg := NewPlayground(cfg, roster, PlaygroundOptions{
		Presenter: ui,
		Notifier:  ui,
		Pauser:    pauser,
		Logger:    logger,
	})
	return &playController{
		pg:  pg,
		ui:  ui,
		log: logger.With("component", "play"),
	}
}

// run drives the TUI until the user quits or ctx ends. Runs still in
// flight are cancelled and awaited before it returns.
func (c *playController) run(ctx context.Context) error {
	runCtx, cancelRuns := context.WithCancel(ctx)
	defer func() {
		cancelRuns()
		c.runs.Wait()
	}()

	uiErr := make(chan error, 1)
	go func() {
		uiErr <- c.ui.Run(ctx)
	}()

	for {
		select {
		case err := <-uiErr:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case ev := <-c.ui.Actions():
			c.apply(runCtx, ev)
		}
	}
}

// apply performs one user action.
func (c *playController) apply(ctx context.Context, ev tui.ActionEvent) {
	roster := c.pg.Roster

	switch ev.Action {
	case tui.ActionAddSprite:
		c.addSprite()

	case tui.ActionRun:
		c.startRun(ctx)

	case tui.ActionAppend:
		if _, err := roster.Append(ev.Command); err != nil {
			if errors.Is(err, sprite.ErrNoSelection) {
				c.ui.Notify(tui.NoSelectionMessage)
			} else {
				c.log.Warn("append failed", "block", ev.Command.Label(), "error", err)
			}
		}

	case tui.ActionDelete:
		if err := roster.Delete(ev.Index); err != nil {
			c.log.Warn("delete failed", "index", ev.Index, "error", err)
		}

	case tui.ActionSelectNext:
		roster.SelectNext()

	case tui.ActionSelectPrev:
		roster.SelectPrev()
	}

	c.ui.Refresh()
}

func (c *playController) addSprite() *sprite.Sprite {
	s := c.pg.Roster.AddSprite()
	c.ui.SpriteChanged(s.Snapshot())
	c.log.Info("sprite added", "sprite", s.ID(), "emoji", s.Emoji())
	return s
}

// startRun runs every script in the background. Pressing run again before
// it finishes only shows a toast.
func (c *playController) startRun(ctx context.Context) {
	if !c.running.CompareAndSwap(false, true) {
		c.ui.Notify(runInProgressMessage)
		return
	}
	c.ui.SetRunning(true)

	c.runs.Add(1)
	go func() {
		defer c.runs.Done()
		defer c.running.Store(false)
		defer c.ui.SetRunning(false)

		res, err := c.pg.Runner.RunAll(ctx)
		switch {
		case errors.Is(err, loop.ErrRunInProgress):
			c.ui.Notify(runInProgressMessage)
		case err != nil:
			c.log.Info("run stopped", "reason", res.Reason, "blocks", res.Blocks, "error", err)
		default:
			c.log.Info("run completed", "sprites", res.Sprites, "blocks", res.Blocks, "swaps", res.Swaps)
		}
	}()
}
