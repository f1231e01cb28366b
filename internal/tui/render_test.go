package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, in, want string
	}{
		{"plain", "hello", "hello"},
		{"styled", Style("hello", Bold, FgRed), "hello"},
		{"truecolor", FgRGB(1, 2, 3) + "x" + Reset, "x"},
		{"cursor", CursorTo(3, 4) + "y", "y"},
		{"emoji kept", Style("😺", Reverse), "😺"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StripANSI(tt.in))
		})
	}
}

func TestVisibleWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, VisibleWidth("hello"))
	assert.Equal(t, 5, VisibleWidth(Style("hello", Bold)))
	assert.Equal(t, 2, VisibleWidth("😺"))
	assert.Equal(t, 4, VisibleWidth("😺→ "))
	assert.Equal(t, 0, VisibleWidth(""))
}

func TestPadOrTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"exact", "abc", 3, "abc"},
		{"pad", "ab", 4, "ab  "},
		{"truncate", "hello world", 8, "hello..."},
		{"tiny", "hello", 2, "he"},
		{"zero", "hello", 0, ""},
		{"emoji pad", "😺", 3, "😺 "},
		{"styled pad", Style("ab", Bold), 3, Style("ab", Bold) + " "},
		{"styled truncate drops style", Style("hello world", Bold), 8, "hello..."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := PadOrTruncate(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.width, VisibleWidth(got))
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "he...", Truncate("hello world", 5))
	assert.Equal(t, "he", Truncate("hello", 2))
	assert.Equal(t, "", Truncate("hello", 0))
}

func TestBox(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"┌──┐", "│  │", "└──┘"}, Box(4, 3))
	assert.Nil(t, Box(1, 3))
}

func TestBoxWithContent(t *testing.T) {
	t.Parallel()

	lines := BoxWithContent(10, "", []string{"hi", "a much longer line"})
	assert.Equal(t, []string{
		"┌────────┐",
		"│ hi     │",
		"│ a m... │",
		"└────────┘",
	}, lines)
	assert.Nil(t, BoxWithContent(3, "", nil))
}

func TestBoxWithContent_Title(t *testing.T) {
	t.Parallel()

	lines := BoxWithContent(20, "Stage", []string{Style("x", FgRed)})
	assert.Equal(t, "┌─ Stage ──────────┐", StripANSI(lines[0]))
	for _, line := range lines {
		assert.Equal(t, 20, VisibleWidth(line))
	}
}

func TestJoinHorizontal(t *testing.T) {
	t.Parallel()

	got := JoinHorizontal(1,
		[]string{"ab", "c"},
		[]string{"x", "y", "z"},
	)
	assert.Equal(t, []string{"ab x", "c  y", "   z"}, got)
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Steps to", "move?"}, WrapText("Steps to move?", 10))
	assert.Equal(t, []string{"single"}, WrapText("single", 3))
	assert.Nil(t, WrapText("   ", 10))
	assert.Nil(t, WrapText("text", 0))
}

func TestCenterText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "  ab  ", CenterText("ab", 6))
	assert.Equal(t, " ab  ", CenterText("ab", 5))
	assert.Equal(t, "ab", CenterText("abc", 2))
}

func TestStyle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", Style("plain"))
	assert.Equal(t, Bold+FgRed+"x"+Reset, Style("x", Bold, FgRed))
}
