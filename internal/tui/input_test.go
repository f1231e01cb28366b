package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/playground/internal/sprite"
)

func readKeys(t *testing.T, input string, n int) []KeyEvent {
	t.Helper()
	reader := NewKeyReader(bytes.NewReader([]byte(input)))
	out := make([]KeyEvent, n)
	for i := range out {
		ev, err := reader.ReadKey()
		require.NoError(t, err)
		out[i] = ev
	}
	return out
}

func TestKeyReader_ReadKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  KeyEvent
	}{
		{"letter", "a", KeyEvent{Key: KeyRune, Rune: 'a'}},
		{"digit", "5", KeyEvent{Key: KeyRune, Rune: '5'}},
		{"space", " ", KeyEvent{Key: KeyRune, Rune: ' '}},
		{"utf8", "é", KeyEvent{Key: KeyRune, Rune: 'é'}},
		{"emoji", "😺", KeyEvent{Key: KeyRune, Rune: '😺'}},
		{"ctrl+c", "\x03", KeyEvent{Key: KeyCtrlC}},
		{"ctrl+u", "\x15", KeyEvent{Key: KeyCtrlU}},
		{"tab", "\t", KeyEvent{Key: KeyTab}},
		{"enter CR", "\r", KeyEvent{Key: KeyEnter}},
		{"enter LF", "\n", KeyEvent{Key: KeyEnter}},
		{"backspace DEL", "\x7f", KeyEvent{Key: KeyBackspace}},
		{"backspace BS", "\x08", KeyEvent{Key: KeyBackspace}},
		{"escape", "\x1b", KeyEvent{Key: KeyEscape}},
		{"up", "\x1b[A", KeyEvent{Key: KeyUp}},
		{"down", "\x1b[B", KeyEvent{Key: KeyDown}},
		{"right", "\x1b[C", KeyEvent{Key: KeyRight}},
		{"left", "\x1b[D", KeyEvent{Key: KeyLeft}},
		{"up SS3", "\x1bOA", KeyEvent{Key: KeyUp}},
		{"home", "\x1b[H", KeyEvent{Key: KeyHome}},
		{"end tilde", "\x1b[4~", KeyEvent{Key: KeyEnd}},
		{"shift+tab", "\x1b[Z", KeyEvent{Key: KeyBackTab}},
		{"delete", "\x1b[3~", KeyEvent{Key: KeyDelete}},
		{"unknown sequence", "\x1b[15~", KeyEvent{Key: KeyUnknown}},
		{"control char", "\x01", KeyEvent{Key: KeyUnknown}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, readKeys(t, tt.input, 1)[0])
		})
	}
}

func TestKeyReader_EscapeThenKey(t *testing.T) {
	t.Parallel()

	got := readKeys(t, "\x1bx", 2)
	assert.Equal(t, []KeyEvent{{Key: KeyEscape}, {Key: KeyRune, Rune: 'x'}}, got)
}

func TestKeyReader_Sequence(t *testing.T) {
	t.Parallel()

	got := readKeys(t, "1\x1b[Bq", 3)
	assert.Equal(t, []KeyEvent{
		{Key: KeyRune, Rune: '1'},
		{Key: KeyDown},
		{Key: KeyRune, Rune: 'q'},
	}, got)
}

func TestParseShortcut(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   KeyEvent
		want Shortcut
	}{
		{"digit 1", KeyEvent{Key: KeyRune, Rune: '1'}, ShortcutBlock},
		{"digit 6", KeyEvent{Key: KeyRune, Rune: '6'}, ShortcutBlock},
		{"digit 7", KeyEvent{Key: KeyRune, Rune: '7'}, ShortcutNone},
		{"n", KeyEvent{Key: KeyRune, Rune: 'n'}, ShortcutAddSprite},
		{"p", KeyEvent{Key: KeyRune, Rune: 'p'}, ShortcutRun},
		{"space", KeyEvent{Key: KeyRune, Rune: ' '}, ShortcutRun},
		{"tab", KeyEvent{Key: KeyTab}, ShortcutNextSprite},
		{"shift+tab", KeyEvent{Key: KeyBackTab}, ShortcutPrevSprite},
		{"up", KeyEvent{Key: KeyUp}, ShortcutCursorUp},
		{"k", KeyEvent{Key: KeyRune, Rune: 'k'}, ShortcutCursorUp},
		{"down", KeyEvent{Key: KeyDown}, ShortcutCursorDown},
		{"j", KeyEvent{Key: KeyRune, Rune: 'j'}, ShortcutCursorDown},
		{"x", KeyEvent{Key: KeyRune, Rune: 'x'}, ShortcutDelete},
		{"backspace", KeyEvent{Key: KeyBackspace}, ShortcutDelete},
		{"delete", KeyEvent{Key: KeyDelete}, ShortcutDelete},
		{"q", KeyEvent{Key: KeyRune, Rune: 'q'}, ShortcutQuit},
		{"ctrl+c", KeyEvent{Key: KeyCtrlC}, ShortcutQuit},
		{"escape", KeyEvent{Key: KeyEscape}, ShortcutNone},
		{"other", KeyEvent{Key: KeyRune, Rune: 'z'}, ShortcutNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseShortcut(tt.ev))
		})
	}
}

func TestBlockKind(t *testing.T) {
	t.Parallel()

	for i, want := range sprite.Kinds() {
		got, ok := BlockKind(KeyEvent{Key: KeyRune, Rune: rune('1' + i)})
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := BlockKind(KeyEvent{Key: KeyRune, Rune: '0'})
	assert.False(t, ok)
	_, ok = BlockKind(KeyEvent{Key: KeyEnter})
	assert.False(t, ok)
}

func typeText(e *LineEditor, s string) {
	for _, r := range s {
		e.HandleKey(KeyEvent{Key: KeyRune, Rune: r})
	}
}

func TestLineEditor(t *testing.T) {
	t.Parallel()

	e := NewLineEditor()
	typeText(e, "helo")
	assert.Equal(t, "helo", e.Text())
	assert.Equal(t, 4, e.Cursor())

	e.HandleKey(KeyEvent{Key: KeyLeft})
	typeText(e, "l")
	assert.Equal(t, "hello", e.Text())

	e.HandleKey(KeyEvent{Key: KeyHome})
	e.HandleKey(KeyEvent{Key: KeyDelete})
	assert.Equal(t, "ello", e.Text())
	assert.Equal(t, 0, e.Cursor())

	e.HandleKey(KeyEvent{Key: KeyBackspace})
	assert.Equal(t, "ello", e.Text(), "backspace at start does nothing")

	e.HandleKey(KeyEvent{Key: KeyEnd})
	e.HandleKey(KeyEvent{Key: KeyBackspace})
	assert.Equal(t, "ell", e.Text())
	assert.Equal(t, 3, e.Len())

	assert.True(t, e.HandleKey(KeyEvent{Key: KeyEnter}))

	e.HandleKey(KeyEvent{Key: KeyCtrlU})
	assert.Equal(t, "", e.Text())
	assert.Equal(t, 0, e.Cursor())
}

func TestLineEditor_SetText(t *testing.T) {
	t.Parallel()

	e := NewLineEditor()
	e.SetText("Hello")
	assert.Equal(t, "Hello", e.Text())
	assert.Equal(t, 5, e.Cursor())

	typeText(e, "!")
	assert.Equal(t, "Hello!", e.Text())

	e.Clear()
	assert.Equal(t, 0, e.Len())
}
