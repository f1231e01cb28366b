package tui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal wraps the controlling terminal: raw mode, size queries and
// ANSI output.
type Terminal struct {
	in       *os.File
	out      io.Writer
	oldState *term.State
	isRaw    bool
}

// NewTerminal creates a Terminal that reads from stdin and writes to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		in:  os.Stdin,
		out: out,
	}
}

// EnterRaw puts the terminal into raw mode.
func (t *Terminal) EnterRaw() error {
	if t.isRaw {
		return fmt.Errorf("terminal already in raw mode")
	}

	oldState, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}

	t.oldState = oldState
	t.isRaw = true
	return nil
}

// ExitRaw restores the terminal. Safe to call when not in raw mode.
func (t *Terminal) ExitRaw() error {
	if !t.isRaw || t.oldState == nil {
		return nil
	}

	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}

	t.isRaw = false
	t.oldState = nil
	return nil
}

// IsRaw returns true if the terminal is in raw mode.
func (t *Terminal) IsRaw() bool {
	return t.isRaw
}

// IsTerminal reports whether stdin is a terminal at all.
func (t *Terminal) IsTerminal() bool {
	return term.IsTerminal(int(t.in.Fd()))
}

// Size returns the current terminal width and height.
func (t *Terminal) Size() (width, height int, err error) {
	width, height, err = term.GetSize(int(t.in.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	return width, height, nil
}

// Read reads raw input bytes.
func (t *Terminal) Read(p []byte) (n int, err error) {
	return t.in.Read(p)
}

// ANSI escape sequences
const (
	ClearScreen  = "\033[2J"
	ClearLine    = "\033[K"
	ClearBelow   = "\033[J"
	CursorHome   = "\033[H"
	CursorHide   = "\033[?25l"
	CursorShow   = "\033[?25h"
	AltScreenOn  = "\033[?1049h"
	AltScreenOff = "\033[?1049l"

	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Italic  = "\033[3m"
	Reverse = "\033[7m"

	FgRed         = "\033[31m"
	FgGreen       = "\033[32m"
	FgYellow      = "\033[33m"
	FgBlue        = "\033[34m"
	FgMagenta     = "\033[35m"
	FgCyan        = "\033[36m"
	FgWhite       = "\033[37m"
	FgBrightBlack = "\033[90m"

	Bell = "\a"
)

// FgRGB returns a 24-bit foreground color sequence.
func FgRGB(r, g, b uint8) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
}

// BgRGB returns a 24-bit background color sequence.
func BgRGB(r, g, b uint8) string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm", r, g, b)
}

// CursorTo returns the sequence moving the cursor to (row, col), 1-indexed.
func CursorTo(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}

// Clear clears the screen and moves the cursor home.
func (t *Terminal) Clear() {
	fmt.Fprint(t.out, ClearScreen+CursorHome)
}

// HideCursor hides the cursor.
func (t *Terminal) HideCursor() {
	fmt.Fprint(t.out, CursorHide)
}

// ShowCursor shows the cursor.
func (t *Terminal) ShowCursor() {
	fmt.Fprint(t.out, CursorShow)
}

// EnterAltScreen switches to the alternate screen buffer.
func (t *Terminal) EnterAltScreen() {
	fmt.Fprint(t.out, AltScreenOn)
}

// ExitAltScreen returns to the main screen buffer.
func (t *Terminal) ExitAltScreen() {
	fmt.Fprint(t.out, AltScreenOff)
}

// RingBell sounds the terminal bell.
func (t *Terminal) RingBell() {
	fmt.Fprint(t.out, Bell)
}

// Write writes s verbatim.
func (t *Terminal) Write(s string) {
	fmt.Fprint(t.out, s)
}

// DrawFrame repaints the screen from the top without clearing it first,
// clearing each line's tail and everything below the frame. Raw mode needs
// explicit carriage returns.
func (t *Terminal) DrawFrame(lines []string) {
	var b []byte
	b = append(b, CursorHome...)
	for i, line := range lines {
		if i > 0 {
			b = append(b, "\r\n"...)
		}
		b = append(b, line...)
		b = append(b, Reset+ClearLine...)
	}
	b = append(b, "\r\n"+ClearBelow...)
	t.out.Write(b)
}
