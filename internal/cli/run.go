package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thruflo/playground/internal/config"
	"github.com/thruflo/playground/internal/executor"
	"github.com/thruflo/playground/internal/logging"
	"github.com/thruflo/playground/internal/loop"
	"github.com/thruflo/playground/internal/sprite"
)

var (
	runSprites int
	runSeed    int64
	runBlocks  []string
	runInstant bool
	runJSON    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a program without the TUI",
	Long: `Places sprites on the stage, runs every script once in stage order and
prints what happened.

Blocks are given as SPRITE=KIND ARGS, for example:

  playground run --sprites 2 \
    --block "Sprite1=move 120" \
    --block "Sprite1=say Hello there 2" \
    --block "Sprite2=turn 90"

For say and think, the last word is the duration in seconds when three or
more words follow the kind. Missing or invalid arguments fall back to the
same values the interactive prompts use. When any --block is given, every
sprite starts with an empty script.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVarP(&runSprites, "sprites", "n", 1, "number of sprites on the stage")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "seed for sprite emoji, color and placement (0 uses the config)")
	runCmd.Flags().StringArrayVarP(&runBlocks, "block", "b", nil, "block to append, as SPRITE=KIND ARGS (repeatable)")
	runCmd.Flags().BoolVar(&runInstant, "instant", false, "skip the step delay and bubble durations")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pauser executor.Pauser = executor.TimerPauser{}
	if runInstant {
		pauser = executor.InstantPauser{}
	}

	return runHeadless(ctx, cmd.OutOrStdout(), cfg, headlessOptions{
		Sprites: runSprites,
		Seed:    runSeed,
		Blocks:  runBlocks,
		Pauser:  pauser,
		JSON:    runJSON,
	})
}

// blockSpec is one --block flag: a command for a sprite.
type blockSpec struct {
	SpriteID string
	Command  sprite.Command
}

// parseBlockSpec parses SPRITE=KIND ARGS.
func parseBlockSpec(s string) (blockSpec, error) {
	id, rest, ok := strings.Cut(s, "=")
	id = strings.TrimSpace(id)
	fields := strings.Fields(rest)
	if !ok || id == "" || len(fields) == 0 {
		return blockSpec{}, fmt.Errorf("invalid block %q: want SPRITE=KIND ARGS", s)
	}

	kind, ok := sprite.ParseKind(fields[0])
	if !ok {
		return blockSpec{}, fmt.Errorf("invalid block %q: unknown kind %q", s, fields[0])
	}

	args := fields[1:]
	if (kind == sprite.KindSay || kind == sprite.KindThink) && len(args) > 2 {
		last := len(args) - 1
		args = []string{strings.Join(args[:last], " "), args[last]}
	}

	cmd, _ := sprite.ParseCommand(kind, args)
	return blockSpec{SpriteID: id, Command: cmd}, nil
}

type headlessOptions struct {
	Sprites int
	Seed    int64
	Blocks  []string
	Pauser  executor.Pauser
	JSON    bool
}

// HeadlessResult is the JSON output format for headless runs.
type HeadlessResult struct {
	Reason    string         `json:"reason"`          // Exit reason ("completed", "cancelled")
	Sprites   int            `json:"sprites"`         // Sprites whose scripts ran to the end
	Blocks    int            `json:"blocks"`          // Top-level blocks executed
	Swaps     int            `json:"swaps"`           // Scripts swapped by collisions
	ElapsedMS int64          `json:"elapsed_ms"`      // Wall-clock run time
	Messages  []string       `json:"messages"`        // Notifications, in order
	Stage     []SpriteResult `json:"stage"`           // Final state per sprite, in stage order
	Error     string         `json:"error,omitempty"` // Error message if any
}

// SpriteResult is one sprite's final state.
type SpriteResult struct {
	ID      string   `json:"id"`
	Emoji   string   `json:"emoji"`
	Color   string   `json:"color"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Heading float64  `json:"heading"`
	Script  []string `json:"script"`
}

// runHeadless builds the stage, runs it once and reports to out. A
// cancelled run is reported rather than returned as an error.
func runHeadless(ctx context.Context, out io.Writer, cfg *config.Config, opts headlessOptions) error {
	specs := make([]blockSpec, 0, len(opts.Blocks))
	for _, b := range opts.Blocks {
		spec, err := parseBlockSpec(b)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}

	roster := newRoster(cfg, opts.Seed)
	for i := 0; i < opts.Sprites; i++ {
		roster.AddSprite()
	}

	if len(specs) > 0 {
		for _, s := range roster.Sprites() {
			for s.Len() > 0 {
				if err := s.Delete(0); err != nil {
					return fmt.Errorf("failed to clear script of %s: %w", s.ID(), err)
				}
			}
		}
	}
	for _, spec := range specs {
		s := roster.Get(spec.SpriteID)
		if s == nil {
			return fmt.Errorf("unknown sprite %q (stage has %d sprites)", spec.SpriteID, roster.Len())
		}
		s.Append(spec.Command)
	}

	printer := &headlessPrinter{out: out, quiet: opts.JSON, messages: []string{}}
	pg := NewPlayground(cfg, roster, PlaygroundOptions{
		Presenter: printer,
		Notifier:  printer,
		Pauser:    opts.Pauser,
		OnStep:    printer.step,
		Logger:    logging.Default(),
	})

	if !opts.JSON {
		fmt.Fprintf(out, "Stage %dx%d, %d sprites\n", cfg.Stage.Width, cfg.Stage.Height, roster.Len())
		for _, s := range roster.Sprites() {
			printer.sprite(s)
		}
		fmt.Fprintln(out)
	}

	res, runErr := pg.Runner.RunAll(ctx)

	result := HeadlessResult{
		Reason:    res.Reason.String(),
		Sprites:   res.Sprites,
		Blocks:    res.Blocks,
		Swaps:     res.Swaps,
		ElapsedMS: res.Elapsed.Milliseconds(),
		Messages:  printer.messages,
	}
	if runErr != nil {
		result.Error = runErr.Error()
	}
	for _, s := range roster.Sprites() {
		result.Stage = append(result.Stage, spriteResult(s))
	}

	if opts.JSON {
		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal headless result: %w", err)
		}
		fmt.Fprintln(out, string(output))
		return nil
	}

	fmt.Fprintf(out, "\nRun %s: %d blocks, %d swaps\n", result.Reason, result.Blocks, result.Swaps)
	if result.Error != "" {
		fmt.Fprintf(out, "Error: %s\n", result.Error)
	}
	for _, s := range roster.Sprites() {
		printer.sprite(s)
	}
	return nil
}

func spriteResult(s *sprite.Sprite) SpriteResult {
	snap := s.Snapshot()
	blocks := s.Blocks()
	script := make([]string, len(blocks))
	for i, b := range blocks {
		script[i] = b.Label()
	}
	return SpriteResult{
		ID:      snap.ID,
		Emoji:   snap.Emoji,
		Color:   snap.Color.Hex(),
		X:       snap.X,
		Y:       snap.Y,
		Heading: snap.Heading,
		Script:  script,
	}
}

// headlessPrinter reports a run as plain text. It implements
// executor.Presenter and collision.Notifier; the runner calls it from a
// single goroutine.
type headlessPrinter struct {
	out      io.Writer
	quiet    bool
	messages []string
}

func (p *headlessPrinter) SpriteChanged(sprite.Snapshot) {}

func (p *headlessPrinter) ShowBubble(b executor.Bubble) {
	if p.quiet {
		return
	}
	verb := "says"
	if b.Thought {
		verb = "thinks"
	}
	fmt.Fprintf(p.out, "  %s %s %q for %s\n", b.SpriteID, verb, b.Text, b.Duration)
}

func (p *headlessPrinter) HideBubble(executor.Bubble) {}

func (p *headlessPrinter) Notify(msg string) {
	p.messages = append(p.messages, msg)
	if !p.quiet {
		fmt.Fprintf(p.out, "  * %s\n", msg)
	}
}

func (p *headlessPrinter) step(ev loop.StepEvent) {
	if p.quiet {
		return
	}
	snap := ev.Sprite
	fmt.Fprintf(p.out, "%s #%d %-22s -> (%s, %s) facing %s°\n",
		snap.ID, ev.Pos+1, ev.Block.Label(),
		formatCoord(snap.X), formatCoord(snap.Y), formatCoord(snap.Heading))
}

func (p *headlessPrinter) sprite(s *sprite.Sprite) {
	snap := s.Snapshot()
	fmt.Fprintf(p.out, "  %s %s at (%s, %s) facing %s°, %d blocks\n",
		snap.Emoji, snap.ID, formatCoord(snap.X), formatCoord(snap.Y), formatCoord(snap.Heading), s.Len())
}

// formatCoord prints a coordinate with at most two decimals.
func formatCoord(v float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.2f", v), "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
