package sprite

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the type of a command block.
type Kind int

const (
	KindUnknown Kind = iota
	KindMove         // Move N steps along the heading
	KindTurn         // Turn N degrees
	KindGoTo         // Jump to an absolute position
	KindRepeat       // Replay the preceding block N times
	KindSay          // Speech bubble for N seconds
	KindThink        // Thought bubble for N seconds
)

// Kinds returns every block kind in toolbox order.
func Kinds() []Kind {
	return []Kind{KindMove, KindTurn, KindGoTo, KindRepeat, KindSay, KindThink}
}

// String returns the block name used by the input layer.
func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindTurn:
		return "turn"
	case KindGoTo:
		return "goto"
	case KindRepeat:
		return "repeat"
	case KindSay:
		return "say"
	case KindThink:
		return "think"
	default:
		return "unknown"
	}
}

// Category returns the toolbox section the kind is listed under.
func (k Kind) Category() string {
	switch k {
	case KindMove, KindTurn, KindGoTo, KindRepeat:
		return "Motion"
	case KindSay, KindThink:
		return "Looks"
	default:
		return ""
	}
}

// ParseKind maps a block name to its Kind. Unknown names report false.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds() {
		if k.String() == name {
			return k, true
		}
	}
	return KindUnknown, false
}

// Command is a single block in a sprite's script. Only the fields that
// belong to Kind are meaningful.
type Command struct {
	Kind    Kind
	Steps   float64 // move
	Degrees float64 // turn
	X, Y    float64 // goto
	Times   int     // repeat
	Text    string  // say, think
	Secs    float64 // say, think
}

func Move(steps float64) Command { return Command{Kind: KindMove, Steps: steps} }

func Turn(degrees float64) Command { return Command{Kind: KindTurn, Degrees: degrees} }

func GoTo(x, y float64) Command { return Command{Kind: KindGoTo, X: x, Y: y} }

func Repeat(times int) Command { return Command{Kind: KindRepeat, Times: times} }

func Say(text string, secs float64) Command {
	return Command{Kind: KindSay, Text: text, Secs: secs}
}

func Think(text string, secs float64) Command {
	return Command{Kind: KindThink, Text: text, Secs: secs}
}

// Label renders the command the way the script editor shows it.
func (c Command) Label() string {
	switch c.Kind {
	case KindMove:
		return fmt.Sprintf("Move %s steps", formatNumber(c.Steps))
	case KindTurn:
		return fmt.Sprintf("Turn %s°", formatNumber(c.Degrees))
	case KindGoTo:
		return fmt.Sprintf("Go to x:%s y:%s", formatNumber(c.X), formatNumber(c.Y))
	case KindRepeat:
		return fmt.Sprintf("Repeat %d×", c.Times)
	case KindSay:
		return fmt.Sprintf("Say %q for %ss", c.Text, formatNumber(c.Secs))
	case KindThink:
		return fmt.Sprintf("Think %q for %ss", c.Text, formatNumber(c.Secs))
	default:
		return ""
	}
}

// Field describes one parameter prompt for a block kind.
type Field struct {
	Name    string
	Prompt  string
	Default string // prefilled answer offered to the user
}

// Fields returns the parameter prompts for kind, in the order ParseCommand
// expects its inputs.
func Fields(kind Kind) []Field {
	switch kind {
	case KindMove:
		return []Field{{Name: "steps", Prompt: "Steps to move?", Default: "10"}}
	case KindTurn:
		return []Field{{Name: "degrees", Prompt: "Degrees to turn?", Default: "15"}}
	case KindGoTo:
		return []Field{
			{Name: "x", Prompt: "X coordinate?", Default: "0"},
			{Name: "y", Prompt: "Y coordinate?", Default: "0"},
		}
	case KindRepeat:
		return []Field{{Name: "times", Prompt: "Repeat how many times?", Default: "2"}}
	case KindSay:
		return []Field{
			{Name: "text", Prompt: "What to say?", Default: "Hello"},
			{Name: "secs", Prompt: "Duration (s)?", Default: "2"},
		}
	case KindThink:
		return []Field{
			{Name: "text", Prompt: "What to think?", Default: "Hmm"},
			{Name: "secs", Prompt: "Duration (s)?", Default: "2"},
		}
	default:
		return nil
	}
}

// maxTimes caps repeat counts so coercion never overflows int.
const maxTimes = math.MaxInt32

// ParseCommand builds a command of the given kind from raw prompt answers,
// positionally matching Fields(kind). Missing, empty, non-numeric or zero
// answers fall back to a fixed per-field value instead of failing. It
// reports false only for an unknown kind.
func ParseCommand(kind Kind, inputs []string) (Command, bool) {
	in := func(i int) string {
		if i < len(inputs) {
			return inputs[i]
		}
		return ""
	}

	switch kind {
	case KindMove:
		return Move(numberOr(in(0), 0)), true
	case KindTurn:
		return Turn(numberOr(in(0), 0)), true
	case KindGoTo:
		return GoTo(numberOr(in(0), 0), numberOr(in(1), 0)), true
	case KindRepeat:
		// Fractional counts round up: a loop of i < 2.5 runs three times.
		times := math.Min(math.Ceil(numberOr(in(0), 1)), maxTimes)
		return Repeat(int(times)), true
	case KindSay:
		return Say(textOr(in(0), "Hello"), numberOr(in(1), 1)), true
	case KindThink:
		return Think(textOr(in(0), "Hmm"), numberOr(in(1), 1)), true
	default:
		return Command{}, false
	}
}

// numberOr parses s as a number, falling back when it is empty, malformed,
// non-finite or zero.
func numberOr(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func textOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
