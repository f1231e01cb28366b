package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/thruflo/playground/internal/executor"
	"github.com/thruflo/playground/internal/sprite"
)

// NoSelectionMessage is shown when a block is added with no sprite selected.
const NoSelectionMessage = "Please select or add a sprite first"

// Toolbox colors per block family.
const (
	motionHex = "#2563eb"
	repeatHex = "#f97316"
	looksHex  = "#9333ea"
	toastHex  = "#f43f5e"
	titleHex  = "#4f46e5"
)

// hexColor turns a #rrggbb string into a truecolor sequence, foreground or
// background.
func hexColor(hex string, background bool) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return ""
	}
	r, g, b := c.RGB255()
	if background {
		return BgRGB(r, g, b)
	}
	return FgRGB(r, g, b)
}

// BlockColor returns the foreground color for blocks of kind.
func BlockColor(kind sprite.Kind) string {
	switch kind {
	case sprite.KindRepeat:
		return hexColor(repeatHex, false)
	case sprite.KindSay, sprite.KindThink:
		return hexColor(looksHex, false)
	case sprite.KindMove, sprite.KindTurn, sprite.KindGoTo:
		return hexColor(motionHex, false)
	default:
		return ""
	}
}

// SpriteColor returns the truecolor foreground for a sprite's fill color.
func SpriteColor(c sprite.Color) string {
	return FgRGB(c.RGB255())
}

// ToolboxLabel is the block template shown in the toolbox.
func ToolboxLabel(kind sprite.Kind) string {
	switch kind {
	case sprite.KindMove:
		return "Move __ steps"
	case sprite.KindTurn:
		return "Turn __°"
	case sprite.KindGoTo:
		return "Go to x:__ y:__"
	case sprite.KindRepeat:
		return "Repeat __×"
	case sprite.KindSay:
		return `Say "__" for __s`
	case sprite.KindThink:
		return `Think "__" for __s`
	default:
		return ""
	}
}

// ToolboxView lists the block kinds by category with their shortcut digit.
type ToolboxView struct{}

// Render renders the toolbox as a box of the given width.
func (ToolboxView) Render(width int) []string {
	var content []string
	category := ""
	for i, kind := range sprite.Kinds() {
		if c := kind.Category(); c != category {
			category = c
			content = append(content, Style(category, Dim))
		}
		content = append(content, fmt.Sprintf("[%d] %s", i+1, Style(ToolboxLabel(kind), BlockColor(kind))))
	}
	return BoxWithContent(width, "Toolbox", content)
}

// ScriptState is what the script view needs about the selected sprite.
type ScriptState struct {
	Sprite *sprite.Snapshot // nil when nothing is selected
	Blocks []sprite.Command
	Cursor int
}

// ScriptView lists the selected sprite's blocks.
type ScriptView struct{}

// Render renders the script box with room for height lines of blocks.
func (ScriptView) Render(state ScriptState, width, height int) []string {
	if height < 1 {
		height = 1
	}

	if state.Sprite == nil {
		return BoxWithContent(width, "Script", padLines([]string{
			Style("No sprite selected.", Dim),
			Style("Press n to add one.", Dim),
		}, height))
	}

	title := fmt.Sprintf("%s %s", state.Sprite.Emoji, state.Sprite.ID)
	if len(state.Blocks) == 0 {
		return BoxWithContent(width, title, padLines([]string{
			Style("Add blocks with 1-6.", Dim),
		}, height))
	}

	// Scroll so the cursor stays visible.
	start := 0
	if state.Cursor >= height {
		start = state.Cursor - height + 1
	}
	end := min(start+height, len(state.Blocks))

	content := make([]string, 0, height)
	for i := start; i < end; i++ {
		block := state.Blocks[i]
		label := fmt.Sprintf("%2d %s", i+1, block.Label())
		if i == state.Cursor {
			content = append(content, Style(PadOrTruncate(label, width-4), Reverse, BlockColor(block.Kind)))
			continue
		}
		content = append(content, Style(label, BlockColor(block.Kind)))
	}
	return BoxWithContent(width, title, padLines(content, height))
}

func padLines(lines []string, height int) []string {
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

// HeadingArrow returns the arrow pointing along heading, with y growing
// down (90 points down the screen).
func HeadingArrow(heading float64) string {
	arrows := [...]string{"→", "↘", "↓", "↙", "←", "↖", "↑", "↗"}
	i := int(math.Round(sprite.NormalizeHeading(heading)/45)) % len(arrows)
	return arrows[i]
}

// StageSprite is one sprite as drawn: its snapshot with the displayed
// (possibly mid-glide) position.
type StageSprite struct {
	Snapshot sprite.Snapshot
	Selected bool
}

// StageView maps stage coordinates onto a grid of terminal cells.
type StageView struct {
	Width      float64
	Height     float64
	SpriteSize float64
}

// Cell returns the grid cell of the center of a sprite at (x, y). The cell
// may fall outside the grid.
func (v StageView) Cell(x, y float64, cols, rows int) (col, row int) {
	half := v.SpriteSize / 2
	col = int(math.Floor((x + half) * float64(cols) / v.Width))
	row = int(math.Floor((y + half) * float64(rows) / v.Height))
	return col, row
}

// Render draws the stage as rows lines of exactly cols cells. Sprites draw
// in stage order; bubbles draw above their anchor, over sprites. Anything
// off the grid is clipped.
func (v StageView) Render(sprites []StageSprite, bubbles []executor.Bubble, cols, rows int) []string {
	if cols < 1 || rows < 1 || v.Width <= 0 || v.Height <= 0 {
		return nil
	}
	g := newGrid(cols, rows)

	for _, s := range sprites {
		snap := s.Snapshot
		col, row := v.Cell(snap.X, snap.Y, cols, rows)
		next := g.write(row, col, snap.Emoji, "")
		arrowStyle := SpriteColor(snap.Color)
		if s.Selected {
			arrowStyle += Reverse
		}
		g.write(row, next, HeadingArrow(snap.Heading), arrowStyle)
	}

	for _, b := range bubbles {
		col, row := v.Cell(b.X, b.Y, cols, rows)
		if b.Thought {
			g.write(row-1, col, "💭 "+b.Text, Italic+FgBrightBlack)
		} else {
			g.write(row-1, col, "💬 "+b.Text, Bold)
		}
	}

	lines := make([]string, rows)
	for r := range lines {
		lines[r] = g.line(r)
	}
	return lines
}

type cell struct {
	text  string // "" marks the right half of a wide rune
	style string
}

var blank = cell{text: " "}

type grid struct {
	cols, rows int
	cells      [][]cell
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: cols, rows: rows, cells: make([][]cell, rows)}
	for r := range g.cells {
		g.cells[r] = make([]cell, cols)
		for c := range g.cells[r] {
			g.cells[r][c] = blank
		}
	}
	return g
}

// write puts s at (row, col) rune by rune and returns the column after it.
// Runes that would cross the right edge are dropped.
func (g *grid) write(row, col int, s, style string) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		g.put(row, col, string(r), w, style)
		col += w
	}
	return col
}

func (g *grid) put(row, col int, text string, w int, style string) {
	if row < 0 || row >= g.rows || col < 0 || col+w > g.cols {
		return
	}
	for i := 0; i < w; i++ {
		g.clear(row, col+i)
	}
	g.cells[row][col] = cell{text: text, style: style}
	if w == 2 {
		g.cells[row][col+1] = cell{}
	}
}

// clear blanks a cell, repairing any wide rune it was half of.
func (g *grid) clear(row, col int) {
	c := g.cells[row][col]
	switch {
	case c.text == "" && col > 0:
		g.cells[row][col-1] = blank
	case runewidth.StringWidth(c.text) == 2 && col+1 < g.cols:
		g.cells[row][col+1] = blank
	}
	g.cells[row][col] = blank
}

func (g *grid) line(row int) string {
	var b strings.Builder
	for _, c := range g.cells[row] {
		if c.text == "" {
			continue
		}
		if c.style == "" {
			b.WriteString(c.text)
			continue
		}
		b.WriteString(Style(c.text, c.style))
	}
	return b.String()
}

// SpriteListView renders the sprite roster on one line, selection
// highlighted.
type SpriteListView struct{}

// Render renders the list fitted to width.
func (SpriteListView) Render(sprites []StageSprite, width int) string {
	if len(sprites) == 0 {
		return PadOrTruncate(Style("No sprites yet.", Dim), width)
	}
	parts := make([]string, len(sprites))
	for i, s := range sprites {
		label := s.Snapshot.Emoji + " " + s.Snapshot.ID
		if s.Selected {
			label = Style(" "+label+" ", Reverse, Bold)
		}
		parts[i] = label
	}
	return PadOrTruncate(strings.Join(parts, "  "), width)
}

// PromptView renders the parameter prompt for a block being added.
type PromptView struct{}

// Render renders p as a box of the given width.
func (PromptView) Render(p *Prompt, width, height int) []string {
	innerWidth := max(width-4, 1)
	field := p.Field()
	step, total := p.Step()

	content := []string{
		Style(ToolboxLabel(p.Kind()), Bold, BlockColor(p.Kind())),
		"",
	}
	content = append(content, WrapText(field.Prompt, innerWidth)...)

	editor := p.Editor()
	prompt := "> "
	text := []rune(editor.Text())
	cursor := editor.Cursor()
	maxInput := max(innerWidth-len(prompt)-1, 1)
	start := 0
	if cursor > maxInput {
		start = cursor - maxInput
	}
	end := min(start+maxInput, len(text))
	visible := text[start:end]
	cur := cursor - start

	var line strings.Builder
	line.WriteString(prompt)
	line.WriteString(string(visible[:cur]))
	if cur < len(visible) {
		line.WriteString(Style(string(visible[cur]), Reverse))
		line.WriteString(string(visible[cur+1:]))
	} else {
		line.WriteString(Style(" ", Reverse))
	}
	content = append(content, line.String(), "")
	content = append(content, Style(fmt.Sprintf("%d/%d  Enter accept, Esc skip", step, total), Dim))

	return BoxWithContent(width, "Add block", padLines(content, height))
}

// ToastLines renders active toasts, newest last.
func ToastLines(messages []string, width int) []string {
	lines := make([]string, len(messages))
	for i, msg := range messages {
		lines[i] = Style(" "+Truncate(msg, max(width-2, 1))+" ", hexColor(toastHex, true), FgWhite, Bold)
	}
	return lines
}

// HelpLine lists the shortcuts.
func HelpLine(width int) string {
	return PadOrTruncate(Style("[1-6] block  [n] sprite  [p] play  [tab] select  [↑↓] cursor  [x] delete  [q] quit", Dim), width)
}

// TitleLine renders the header bar.
func TitleLine(running bool, width int) string {
	title := Style(" Visual Coding Playground ", hexColor(titleHex, true), FgWhite, Bold)
	if running {
		title += " " + Style("▶ running", FgGreen, Bold)
	}
	return PadOrTruncate(title, width)
}
