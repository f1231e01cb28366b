package sprite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_StringAndCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     Kind
		name     string
		category string
	}{
		{KindMove, "move", "Motion"},
		{KindTurn, "turn", "Motion"},
		{KindGoTo, "goto", "Motion"},
		{KindRepeat, "repeat", "Motion"},
		{KindSay, "say", "Looks"},
		{KindThink, "think", "Looks"},
		{KindUnknown, "unknown", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.category, tt.kind.Category())
		})
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}

	got, ok := ParseKind("  MOVE ")
	assert.True(t, ok)
	assert.Equal(t, KindMove, got)

	_, ok = ParseKind("jump")
	assert.False(t, ok)
	_, ok = ParseKind("unknown")
	assert.False(t, ok)
}

func TestCommand_Label(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd  Command
		want string
	}{
		{Move(10), "Move 10 steps"},
		{Move(-2.5), "Move -2.5 steps"},
		{Turn(15), "Turn 15°"},
		{GoTo(0, -5), "Go to x:0 y:-5"},
		{Repeat(2), "Repeat 2×"},
		{Say("Hi", 2), `Say "Hi" for 2s`},
		{Think("Hmm", 1.5), `Think "Hmm" for 1.5s`},
		{Command{}, ""},
	}

	for _, tt := range tests {
		tt := tt
		assert.Equal(t, tt.want, tt.cmd.Label())
	}
}

func TestFields_DefaultsParseToThemselves(t *testing.T) {
	t.Parallel()

	want := map[Kind]Command{
		KindMove:   Move(10),
		KindTurn:   Turn(15),
		KindGoTo:   GoTo(0, 0),
		KindRepeat: Repeat(2),
		KindSay:    Say("Hello", 2),
		KindThink:  Think("Hmm", 2),
	}

	for _, k := range Kinds() {
		fields := Fields(k)
		require.NotEmpty(t, fields, k.String())

		inputs := make([]string, len(fields))
		for i, f := range fields {
			assert.NotEmpty(t, f.Prompt)
			inputs[i] = f.Default
		}
		got, ok := ParseCommand(k, inputs)
		require.True(t, ok)
		assert.Equal(t, want[k], got, k.String())
	}

	assert.Nil(t, Fields(KindUnknown))
}

func TestParseCommand_Fallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		kind   Kind
		inputs []string
		want   Command
	}{
		{"move number", KindMove, []string{" 25 "}, Move(25)},
		{"move empty", KindMove, []string{""}, Move(0)},
		{"move garbage", KindMove, []string{"far"}, Move(0)},
		{"move missing", KindMove, nil, Move(0)},
		{"move NaN", KindMove, []string{"NaN"}, Move(0)},
		{"move Inf", KindMove, []string{"+Inf"}, Move(0)},
		{"turn negative", KindTurn, []string{"-45"}, Turn(-45)},
		{"goto partial", KindGoTo, []string{"10", "x"}, GoTo(10, 0)},
		{"repeat empty", KindRepeat, []string{""}, Repeat(1)},
		{"repeat zero", KindRepeat, []string{"0"}, Repeat(1)},
		{"repeat fractional rounds up", KindRepeat, []string{"2.5"}, Repeat(3)},
		{"repeat huge is capped", KindRepeat, []string{"1e30"}, Repeat(maxTimes)},
		{"say empty", KindSay, []string{"", ""}, Say("Hello", 1)},
		{"say zero seconds", KindSay, []string{"Hi", "0"}, Say("Hi", 1)},
		{"say keeps whitespace text", KindSay, []string{" hi ", "0.5"}, Say(" hi ", 0.5)},
		{"think empty", KindThink, nil, Think("Hmm", 1)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseCommand(tt.kind, tt.inputs)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_UnknownKind(t *testing.T) {
	t.Parallel()

	_, ok := ParseCommand(KindUnknown, []string{"1"})
	assert.False(t, ok)
}
