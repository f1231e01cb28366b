// tui-demo is a manual test program for the stage rendering and glide
// animation. Run with: go run ./cmd/tui-demo
//
// Two sprites walk towards each other and swap scripts when they meet;
// the run repeats until you press q. Keys work as in the playground, so
// blocks can be added while the demo runs.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/thruflo/playground/internal/cli"
	"github.com/thruflo/playground/internal/config"
	"github.com/thruflo/playground/internal/executor"
	"github.com/thruflo/playground/internal/logging"
	"github.com/thruflo/playground/internal/sprite"
	"github.com/thruflo/playground/internal/tui"
)

func main() {
	fmt.Println("TUI Demo - Stage Rendering Test")
	fmt.Println("===============================")
	fmt.Println()
	fmt.Println("Two sprites will walk into each other and swap scripts.")
	fmt.Println("Watch the glide animation, the bubbles and the swap toast.")
	fmt.Println("Press q to exit.")
	fmt.Println()
	fmt.Println("Press Enter to start...")
	fmt.Scanln()

	if err := runDemo(); err != nil {
		fmt.Fprintf(os.Stderr, "Demo error: %v\n", err)
		os.Exit(1)
	}
}

func runDemo() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.DefaultConfig()
	roster := sprite.NewRoster(sprite.RosterOptions{Seed: 1})

	ui := tui.NewTUI(tui.Options{
		Roster:        roster,
		Out:           os.Stdout,
		GlideDuration: cfg.Timing.StepDelay(),
		ToastDuration: cfg.Timing.NotifyDuration(),
	})
	pg := cli.NewPlayground(&cfg, roster, cli.PlaygroundOptions{
		Presenter: ui,
		Notifier:  ui,
		Pauser:    executor.TimerPauser{},
		Logger:    logging.Default(),
	})

	left := roster.AddSprite()
	right := roster.AddSprite()
	resetStage(left, right)
	for _, s := range roster.Sprites() {
		ui.SpriteChanged(s.Snapshot())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- ui.Run(ctx)
	}()

	// Apply the edits the playground supports so the demo stays interactive.
	go func() {
		for action := range ui.Actions() {
			switch action.Action {
			case tui.ActionQuit:
				cancel()
			case tui.ActionAppend:
				roster.Append(action.Command)
			case tui.ActionDelete:
				roster.Delete(action.Index)
			case tui.ActionSelectNext:
				roster.SelectNext()
			case tui.ActionSelectPrev:
				roster.SelectPrev()
			}
			ui.Refresh()
		}
	}()

	// Run the scene over and over.
	go func() {
		for {
			ui.SetRunning(true)
			_, err := pg.Runner.RunAll(ctx)
			ui.SetRunning(false)
			if err != nil {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
				resetStage(left, right)
				ui.SpriteChanged(left.Snapshot())
				ui.SpriteChanged(right.Snapshot())
			}
		}
	}()

	return <-errCh
}

// resetStage puts the sprites at opposite ends of the stage facing each
// other, each with a script that walks it to the middle.
func resetStage(left, right *sprite.Sprite) {
	scripts := map[*sprite.Sprite][]sprite.Command{
		left: {
			sprite.Say("Going right", 1),
			sprite.Move(40),
			sprite.Repeat(4),
		},
		right: {
			sprite.Think("Going left?", 1),
			sprite.Move(40),
			sprite.Repeat(4),
		},
	}

	left.GoTo(20, 160)
	right.GoTo(412, 160)
	for s, script := range scripts {
		for s.Len() > 0 {
			s.Delete(0)
		}
		for _, c := range script {
			s.Append(c)
		}
	}
	left.Turn(-left.Heading())
	right.Turn(180 - right.Heading())
}
