// Package tui is the interactive terminal front end: a raw-mode event loop
// that draws the toolbox, the selected sprite's script and the stage, and
// turns key presses into actions for the caller to apply.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/thruflo/playground/internal/executor"
	"github.com/thruflo/playground/internal/logging"
	"github.com/thruflo/playground/internal/sprite"
)

// Defaults for Options.
const (
	DefaultFrameInterval = 33 * time.Millisecond
	DefaultWidth         = 100
	DefaultHeight        = 30
)

// Layout.
const (
	leftWidth     = 32
	toolboxHeight = 10 // 8 lines of blocks plus borders
	minScriptRows = 3
	minStageCols  = 16
	minStageRows  = 4
)

// Action represents a user action from the TUI.
type Action int

const (
	ActionNone       Action = iota
	ActionAddSprite         // Add a sprite to the stage
	ActionRun               // Run every sprite's script
	ActionAppend            // Append Command to the selected sprite
	ActionDelete            // Delete block Index of the selected sprite
	ActionSelectNext        // Select the next sprite
	ActionSelectPrev        // Select the previous sprite
	ActionQuit              // Leave the playground
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionAddSprite:
		return "add_sprite"
	case ActionRun:
		return "run"
	case ActionAppend:
		return "append"
	case ActionDelete:
		return "delete"
	case ActionSelectNext:
		return "select_next"
	case ActionSelectPrev:
		return "select_prev"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ActionEvent is sent when the user triggers an action.
type ActionEvent struct {
	Action  Action
	Command sprite.Command // ActionAppend
	Index   int            // ActionDelete
}

// Options configures a TUI. Roster is required.
type Options struct {
	Roster        *sprite.Roster
	Out           io.Writer
	Stage         StageView
	GlideDuration time.Duration // how long a sprite takes to slide to a new position
	ToastDuration time.Duration
	FrameInterval time.Duration
	Logger        *logging.Logger
}

// glyph is the drawn state of one sprite.
type glyph struct {
	x, y  float64
	glide *Glide
}

// TUI manages the terminal user interface. It implements
// executor.Presenter and collision.Notifier so the runner can drive it
// from another goroutine.
type TUI struct {
	terminal *Terminal
	roster   *sprite.Roster
	toasts   *Toasts
	stage    StageView
	glideFor time.Duration
	frame    time.Duration
	log      *logging.Logger
	actionCh chan ActionEvent

	mu      sync.Mutex
	glyphs  map[string]*glyph
	bubbles []executor.Bubble
	prompt  *Prompt
	cursor  int
	running bool // a program run is in progress
	dirty   bool
	bell    bool
	width   int
	height  int
}

// NewTUI creates a TUI.
func NewTUI(opts Options) *TUI {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	stage := opts.Stage
	if stage.Width <= 0 || stage.Height <= 0 {
		stage.Width, stage.Height = 480, 360
	}
	if stage.SpriteSize <= 0 {
		stage.SpriteSize = 48
	}
	frame := opts.FrameInterval
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &TUI{
		terminal: NewTerminal(out),
		roster:   opts.Roster,
		toasts:   NewToasts(nil, opts.ToastDuration),
		stage:    stage,
		glideFor: opts.GlideDuration,
		frame:    frame,
		log:      logger.With("component", "tui"),
		actionCh: make(chan ActionEvent, 32),
		glyphs:   make(map[string]*glyph),
		width:    DefaultWidth,
		height:   DefaultHeight,
	}
}

// Actions returns a channel that receives user actions.
func (t *TUI) Actions() <-chan ActionEvent {
	return t.actionCh
}

// SpriteChanged implements executor.Presenter. The sprite glides from
// where it is drawn to its new position.
func (t *TUI) SpriteChanged(snap sprite.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.glyphs[snap.ID]
	if !ok {
		t.glyphs[snap.ID] = &glyph{x: snap.X, y: snap.Y}
		t.dirty = true
		return
	}
	g.glide = NewGlide(g.x, g.y, snap.X, snap.Y, t.glideFor)
	if g.glide.Done {
		g.x, g.y, g.glide = snap.X, snap.Y, nil
	}
	t.dirty = true
}

// ShowBubble implements executor.Presenter.
func (t *TUI) ShowBubble(b executor.Bubble) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bubbles = append(t.bubbles, b)
	t.dirty = true
}

// HideBubble implements executor.Presenter.
func (t *TUI) HideBubble(b executor.Bubble) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.bubbles {
		if t.bubbles[i] == b {
			t.bubbles = append(t.bubbles[:i], t.bubbles[i+1:]...)
			break
		}
	}
	t.dirty = true
}

// Notify implements collision.Notifier: a toast plus the terminal bell.
func (t *TUI) Notify(msg string) {
	t.toasts.Notify(msg)
	t.mu.Lock()
	t.bell = true
	t.dirty = true
	t.mu.Unlock()
}

// Toasts returns the messages currently on screen.
func (t *TUI) Toasts() []string {
	return t.toasts.Active()
}

// SetRunning marks whether a program run is in progress.
func (t *TUI) SetRunning(running bool) {
	t.mu.Lock()
	t.running = running
	t.dirty = true
	t.mu.Unlock()
}

// Refresh schedules a redraw on the next frame.
func (t *TUI) Refresh() {
	t.mu.Lock()
	t.dirty = true
	t.mu.Unlock()
}

// Prompting reports whether a parameter prompt is open.
func (t *TUI) Prompting() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prompt != nil
}

// Cursor returns the script cursor, clamped to the selected script.
func (t *TUI) Cursor() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clampCursor()
}

func (t *TUI) clampCursor() int {
	n := 0
	if s := t.roster.Selected(); s != nil {
		n = s.Len()
	}
	if t.cursor >= n {
		t.cursor = n - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	return t.cursor
}

// advance moves glides forward by dt and reports whether anything moved.
func (t *TUI) advance(dt time.Duration) bool {
	moved := false
	for _, g := range t.glyphs {
		if g.glide == nil {
			continue
		}
		g.glide.Update(dt)
		g.x, g.y = g.glide.X, g.glide.Y
		if g.glide.Done {
			g.glide = nil
		}
		moved = true
	}
	return moved
}

// tick advances one frame and reports whether a redraw is needed.
func (t *TUI) tick(dt time.Duration) bool {
	expired := t.toasts.Expire()
	t.mu.Lock()
	defer t.mu.Unlock()
	moved := t.advance(dt)
	dirty := t.dirty
	t.dirty = false
	return moved || expired || dirty
}

// stageSprites returns the roster as drawn. Sprites that are not gliding
// are drawn where the model has them.
func (t *TUI) stageSprites() []StageSprite {
	selected := t.roster.Selected()
	sprites := t.roster.Sprites()
	out := make([]StageSprite, len(sprites))
	for i, s := range sprites {
		snap := s.Snapshot()
		g, ok := t.glyphs[snap.ID]
		switch {
		case !ok:
			t.glyphs[snap.ID] = &glyph{x: snap.X, y: snap.Y}
		case g.glide == nil:
			g.x, g.y = snap.X, snap.Y
		default:
			snap.X, snap.Y = g.x, g.y
		}
		out[i] = StageSprite{Snapshot: snap, Selected: s == selected}
	}
	return out
}

// Render lays out a full frame for a width×height terminal.
func (t *TUI) Render(width, height int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	toasts := t.toasts.Active()
	sprites := t.stageSprites()

	// title + body + toasts + help
	body := max(height-2-len(toasts), toolboxHeight+minScriptRows+2)

	left := ToolboxView{}.Render(leftWidth)
	scriptRows := max(body-toolboxHeight-2, minScriptRows)
	if t.prompt != nil {
		left = append(left, PromptView{}.Render(t.prompt, leftWidth, scriptRows)...)
	} else {
		left = append(left, ScriptView{}.Render(t.scriptState(), leftWidth, scriptRows)...)
	}

	rightWidth := max(width-leftWidth-1, minStageCols+4)
	cols := rightWidth - 4
	rows := max(body-3, minStageRows)
	right := BoxWithContent(rightWidth, "Stage", t.stage.Render(sprites, t.bubbles, cols, rows))
	right = append(right, SpriteListView{}.Render(sprites, rightWidth))

	lines := []string{TitleLine(t.running, width)}
	lines = append(lines, JoinHorizontal(1, left, right)...)
	lines = append(lines, ToastLines(toasts, width)...)
	lines = append(lines, HelpLine(width))
	return lines
}

func (t *TUI) scriptState() ScriptState {
	s := t.roster.Selected()
	if s == nil {
		return ScriptState{}
	}
	snap := s.Snapshot()
	return ScriptState{
		Sprite: &snap,
		Blocks: s.Blocks(),
		Cursor: t.clampCursor(),
	}
}

// handleKey processes a key event and returns any triggered action.
func (t *TUI) handleKey(ev KeyEvent) ActionEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dirty = true

	if t.prompt != nil {
		return t.handlePromptKey(ev)
	}

	switch ParseShortcut(ev) {
	case ShortcutBlock:
		kind, _ := BlockKind(ev)
		if t.roster.Selected() == nil {
			t.toasts.Notify(NoSelectionMessage)
			t.bell = true
			return ActionEvent{Action: ActionNone}
		}
		t.prompt = NewPrompt(kind)

	case ShortcutAddSprite:
		t.cursor = 0
		return ActionEvent{Action: ActionAddSprite}

	case ShortcutRun:
		return ActionEvent{Action: ActionRun}

	case ShortcutNextSprite:
		t.cursor = 0
		return ActionEvent{Action: ActionSelectNext}

	case ShortcutPrevSprite:
		t.cursor = 0
		return ActionEvent{Action: ActionSelectPrev}

	case ShortcutCursorUp:
		t.cursor = t.clampCursor() - 1
		t.clampCursor()

	case ShortcutCursorDown:
		t.cursor = t.clampCursor() + 1
		t.clampCursor()

	case ShortcutDelete:
		s := t.roster.Selected()
		if s == nil || s.Len() == 0 {
			return ActionEvent{Action: ActionNone}
		}
		return ActionEvent{Action: ActionDelete, Index: t.clampCursor()}

	case ShortcutQuit:
		return ActionEvent{Action: ActionQuit}
	}

	return ActionEvent{Action: ActionNone}
}

// handlePromptKey feeds the open prompt. Called with t.mu held.
func (t *TUI) handlePromptKey(ev KeyEvent) ActionEvent {
	if ev.Key == KeyCtrlC {
		t.prompt = nil
		return ActionEvent{Action: ActionQuit}
	}
	if !t.prompt.HandleKey(ev) {
		return ActionEvent{Action: ActionNone}
	}

	cmd, ok := t.prompt.Command()
	t.prompt = nil
	if !ok {
		return ActionEvent{Action: ActionNone}
	}
	// Put the cursor on the block about to be appended.
	if s := t.roster.Selected(); s != nil {
		t.cursor = s.Len()
	}
	return ActionEvent{Action: ActionAppend, Command: cmd}
}

// emit hands an action to the caller without blocking the event loop.
func (t *TUI) emit(ev ActionEvent) {
	select {
	case t.actionCh <- ev:
	default:
		t.log.Warn("action dropped", "action", ev.Action)
	}
}

// draw repaints the screen.
func (t *TUI) draw() {
	if width, height, err := t.terminal.Size(); err == nil {
		t.mu.Lock()
		t.width, t.height = width, height
		t.mu.Unlock()
	}

	t.mu.Lock()
	width, height, bell := t.width, t.height, t.bell
	t.bell = false
	t.mu.Unlock()

	t.terminal.DrawFrame(t.Render(width, height))
	if bell {
		t.terminal.RingBell()
	}
}

// Run starts the event loop. It returns nil when the user quits, or the
// context's error when ctx ends first.
func (t *TUI) Run(ctx context.Context) error {
	if err := t.terminal.EnterRaw(); err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer t.terminal.ExitRaw()
	t.terminal.EnterAltScreen()
	defer t.terminal.ExitAltScreen()
	t.terminal.HideCursor()
	defer t.terminal.ShowCursor()

	keyReader := NewKeyReader(t.terminal)
	keyCh := make(chan KeyEvent, 10)
	keyErr := make(chan error, 1)
	go func() {
		for {
			ev, err := keyReader.ReadKey()
			if err != nil {
				keyErr <- err
				return
			}
			select {
			case keyCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(t.frame)
	defer ticker.Stop()
	last := time.Now()
	t.draw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-keyErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err

		case ev := <-keyCh:
			action := t.handleKey(ev)
			if action.Action != ActionNone {
				t.log.Debug("action", "action", action.Action)
				t.emit(action)
			}
			if action.Action == ActionQuit {
				return nil
			}
			t.draw()

		case now := <-ticker.C:
			if t.tick(now.Sub(last)) {
				t.draw()
			}
			last = now
		}
	}
}
