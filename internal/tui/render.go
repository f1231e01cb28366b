package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Box drawing characters (Unicode)
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
)

// StripANSI removes CSI escape sequences from s.
func StripANSI(s string) string {
	if !strings.Contains(s, "\033") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			i += 2
			// Parameter and intermediate bytes end at a final byte in @..~.
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7E) {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// VisibleWidth returns the number of terminal cells s occupies, ignoring
// escape sequences and counting wide runes such as emoji as two cells.
func VisibleWidth(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// PadOrTruncate fits s to exactly width cells. Styled text that is too
// wide loses its styling when truncated.
func PadOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := VisibleWidth(s)
	if w == width {
		return s
	}
	if w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return runewidth.FillRight(Truncate(StripANSI(s), width), width)
}

// Truncate cuts s to at most width cells, ending in "..." when it had to
// cut and there is room for it.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width >= 3 {
		return runewidth.Truncate(s, width, "...")
	}
	return runewidth.Truncate(s, width, "")
}

// Box draws an empty box.
func Box(width, height int) []string {
	if width < 2 || height < 2 {
		return nil
	}

	lines := make([]string, height)
	lines[0] = BoxTopLeft + strings.Repeat(BoxHorizontal, width-2) + BoxTopRight
	middle := BoxVertical + strings.Repeat(" ", width-2) + BoxVertical
	for i := 1; i < height-1; i++ {
		lines[i] = middle
	}
	lines[height-1] = BoxBottomLeft + strings.Repeat(BoxHorizontal, width-2) + BoxBottomRight
	return lines
}

// BoxWithContent draws a box around content, one space of padding on each
// side. A non-empty title is set into the top border.
func BoxWithContent(width int, title string, content []string) []string {
	if width < 4 {
		return nil
	}

	innerWidth := width - 4
	lines := make([]string, 0, len(content)+2)
	lines = append(lines, topBorder(width, title))
	for _, line := range content {
		lines = append(lines, BoxVertical+" "+PadOrTruncate(line, innerWidth)+" "+BoxVertical)
	}
	lines = append(lines, BoxBottomLeft+strings.Repeat(BoxHorizontal, width-2)+BoxBottomRight)
	return lines
}

func topBorder(width int, title string) string {
	if title == "" || width < 8 {
		return BoxTopLeft + strings.Repeat(BoxHorizontal, width-2) + BoxTopRight
	}
	label := " " + Truncate(title, width-6) + " "
	rest := width - 3 - runewidth.StringWidth(label)
	return BoxTopLeft + BoxHorizontal + Style(label, Bold) + strings.Repeat(BoxHorizontal, rest) + BoxTopRight
}

// JoinHorizontal places blocks side by side, separated by gap spaces. Each
// block is padded to its widest line; shorter blocks are padded with blank
// lines.
func JoinHorizontal(gap int, blocks ...[]string) []string {
	height := 0
	widths := make([]int, len(blocks))
	for i, block := range blocks {
		if len(block) > height {
			height = len(block)
		}
		for _, line := range block {
			if w := VisibleWidth(line); w > widths[i] {
				widths[i] = w
			}
		}
	}

	out := make([]string, height)
	sep := strings.Repeat(" ", gap)
	for row := 0; row < height; row++ {
		var b strings.Builder
		for i, block := range blocks {
			if i > 0 {
				b.WriteString(sep)
			}
			line := ""
			if row < len(block) {
				line = block[row]
			}
			if i == len(blocks)-1 {
				b.WriteString(line)
				continue
			}
			b.WriteString(PadOrTruncate(line, widths[i]))
		}
		out[row] = b.String()
	}
	return out
}

// WrapText wraps text on word boundaries to fit within width cells.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if runewidth.StringWidth(current)+1+runewidth.StringWidth(word) <= width {
			current += " " + word
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// CenterText centers s within width cells.
func CenterText(s string, width int) string {
	w := VisibleWidth(s)
	if w >= width {
		return PadOrTruncate(s, width)
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// Style wraps s in the given ANSI codes and a trailing reset.
func Style(s string, codes ...string) string {
	if len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}
