package tui

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/thruflo/playground/internal/sprite"
)

// Key represents a keyboard input.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyTab
	KeyBackTab // Shift+Tab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyCtrlC
	KeyCtrlU
	KeyRune // Regular character
)

// KeyEvent represents a key press event.
type KeyEvent struct {
	Key  Key
	Rune rune // Only valid when Key == KeyRune
}

// KeyReader decodes key presses from raw terminal input.
type KeyReader struct {
	reader *bufio.Reader
}

// NewKeyReader creates a KeyReader over r, typically stdin in raw mode.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{
		reader: bufio.NewReaderSize(r, 64),
	}
}

// ReadKey blocks until one key event is available.
func (k *KeyReader) ReadKey() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}

	switch b {
	case 0x03:
		return KeyEvent{Key: KeyCtrlC}, nil
	case 0x09:
		return KeyEvent{Key: KeyTab}, nil
	case 0x0D, 0x0A:
		return KeyEvent{Key: KeyEnter}, nil
	case 0x15:
		return KeyEvent{Key: KeyCtrlU}, nil
	case 0x7F, 0x08:
		return KeyEvent{Key: KeyBackspace}, nil
	case 0x1B:
		return k.readEscapeSequence()
	default:
		if b >= 0x20 && b < 0x7F {
			return KeyEvent{Key: KeyRune, Rune: rune(b)}, nil
		}
		if b >= 0xC0 {
			return k.readUTF8(b)
		}
		return KeyEvent{Key: KeyUnknown}, nil
	}
}

// readEscapeSequence tells a lone Escape from the start of a CSI or SS3
// sequence. A lone Escape is only recognized when nothing follows it in the
// same read.
func (k *KeyReader) readEscapeSequence() (KeyEvent, error) {
	if k.reader.Buffered() == 0 {
		return KeyEvent{Key: KeyEscape}, nil
	}

	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	if b != '[' && b != 'O' {
		_ = k.reader.UnreadByte()
		return KeyEvent{Key: KeyEscape}, nil
	}
	return k.parseCSI()
}

func (k *KeyReader) parseCSI() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}

	switch b {
	case 'A':
		return KeyEvent{Key: KeyUp}, nil
	case 'B':
		return KeyEvent{Key: KeyDown}, nil
	case 'C':
		return KeyEvent{Key: KeyRight}, nil
	case 'D':
		return KeyEvent{Key: KeyLeft}, nil
	case 'H':
		return KeyEvent{Key: KeyHome}, nil
	case 'F':
		return KeyEvent{Key: KeyEnd}, nil
	case 'Z':
		return KeyEvent{Key: KeyBackTab}, nil
	}

	// Numeric sequences such as ESC [ 3 ~ (Delete).
	params := []byte{b}
	for b >= '0' && b <= '9' || b == ';' {
		if b, err = k.reader.ReadByte(); err != nil {
			return KeyEvent{Key: KeyUnknown}, nil
		}
		params = append(params, b)
	}
	switch string(params) {
	case "3~":
		return KeyEvent{Key: KeyDelete}, nil
	case "1~", "7~":
		return KeyEvent{Key: KeyHome}, nil
	case "4~", "8~":
		return KeyEvent{Key: KeyEnd}, nil
	}
	return KeyEvent{Key: KeyUnknown}, nil
}

func (k *KeyReader) readUTF8(first byte) (KeyEvent, error) {
	var buf [4]byte
	buf[0] = first

	var n int
	switch {
	case first&0xE0 == 0xC0:
		n = 2
	case first&0xF0 == 0xE0:
		n = 3
	case first&0xF8 == 0xF0:
		n = 4
	default:
		return KeyEvent{Key: KeyUnknown}, nil
	}

	for i := 1; i < n; i++ {
		b, err := k.reader.ReadByte()
		if err != nil {
			return KeyEvent{Key: KeyUnknown}, err
		}
		buf[i] = b
	}

	r, _ := utf8.DecodeRune(buf[:n])
	if r == utf8.RuneError {
		return KeyEvent{Key: KeyUnknown}, nil
	}
	return KeyEvent{Key: KeyRune, Rune: r}, nil
}

// Shortcut is a playground keyboard command outside of prompts.
type Shortcut int

const (
	ShortcutNone       Shortcut = iota
	ShortcutBlock               // '1'..'6' - add a block of that toolbox kind
	ShortcutAddSprite           // 'n' - new sprite
	ShortcutRun                 // 'p' or space - run every script
	ShortcutNextSprite          // tab - select next sprite
	ShortcutPrevSprite          // shift+tab - select previous sprite
	ShortcutCursorUp            // up or 'k'
	ShortcutCursorDown          // down or 'j'
	ShortcutDelete              // 'x', backspace or delete - remove block at cursor
	ShortcutQuit                // 'q' or ctrl+c
)

// ParseShortcut converts a KeyEvent to a Shortcut.
func ParseShortcut(ev KeyEvent) Shortcut {
	switch ev.Key {
	case KeyCtrlC:
		return ShortcutQuit
	case KeyTab:
		return ShortcutNextSprite
	case KeyBackTab:
		return ShortcutPrevSprite
	case KeyUp:
		return ShortcutCursorUp
	case KeyDown:
		return ShortcutCursorDown
	case KeyBackspace, KeyDelete:
		return ShortcutDelete
	case KeyRune:
		if _, ok := BlockKind(ev); ok {
			return ShortcutBlock
		}
		switch ev.Rune {
		case 'n', 'N':
			return ShortcutAddSprite
		case 'p', 'P', ' ':
			return ShortcutRun
		case 'k':
			return ShortcutCursorUp
		case 'j':
			return ShortcutCursorDown
		case 'x', 'X':
			return ShortcutDelete
		case 'q', 'Q':
			return ShortcutQuit
		}
	}
	return ShortcutNone
}

// BlockKind maps the digit keys to toolbox kinds: '1' is the first kind in
// sprite.Kinds, and so on.
func BlockKind(ev KeyEvent) (sprite.Kind, bool) {
	if ev.Key != KeyRune {
		return sprite.KindUnknown, false
	}
	kinds := sprite.Kinds()
	i := int(ev.Rune - '1')
	if i < 0 || i >= len(kinds) {
		return sprite.KindUnknown, false
	}
	return kinds[i], true
}

// LineEditor is a single-line text buffer with a cursor.
type LineEditor struct {
	buffer []rune
	cursor int
}

// NewLineEditor creates an empty LineEditor.
func NewLineEditor() *LineEditor {
	return &LineEditor{buffer: make([]rune, 0, 64)}
}

// HandleKey applies ev to the buffer and reports whether Enter was pressed.
func (e *LineEditor) HandleKey(ev KeyEvent) bool {
	switch ev.Key {
	case KeyEnter:
		return true
	case KeyBackspace:
		if e.cursor > 0 {
			copy(e.buffer[e.cursor-1:], e.buffer[e.cursor:])
			e.buffer = e.buffer[:len(e.buffer)-1]
			e.cursor--
		}
	case KeyDelete:
		if e.cursor < len(e.buffer) {
			copy(e.buffer[e.cursor:], e.buffer[e.cursor+1:])
			e.buffer = e.buffer[:len(e.buffer)-1]
		}
	case KeyLeft:
		if e.cursor > 0 {
			e.cursor--
		}
	case KeyRight:
		if e.cursor < len(e.buffer) {
			e.cursor++
		}
	case KeyHome:
		e.cursor = 0
	case KeyEnd:
		e.cursor = len(e.buffer)
	case KeyCtrlU:
		e.Clear()
	case KeyRune:
		e.buffer = append(e.buffer, 0)
		copy(e.buffer[e.cursor+1:], e.buffer[e.cursor:])
		e.buffer[e.cursor] = ev.Rune
		e.cursor++
	}
	return false
}

// SetText replaces the buffer and puts the cursor at the end.
func (e *LineEditor) SetText(s string) {
	e.buffer = append(e.buffer[:0], []rune(s)...)
	e.cursor = len(e.buffer)
}

// Text returns the current line content.
func (e *LineEditor) Text() string {
	return string(e.buffer)
}

// Clear resets the line editor.
func (e *LineEditor) Clear() {
	e.buffer = e.buffer[:0]
	e.cursor = 0
}

// Cursor returns the cursor position in runes.
func (e *LineEditor) Cursor() int {
	return e.cursor
}

// Len returns the buffer length in runes.
func (e *LineEditor) Len() int {
	return len(e.buffer)
}
