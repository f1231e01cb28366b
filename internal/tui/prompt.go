package tui

import "github.com/thruflo/playground/internal/sprite"

// Prompt collects a block's parameters one field at a time. Each field
// starts prefilled with its default; Esc skips the field, leaving it empty
// so the parser substitutes its fallback.
type Prompt struct {
	kind    sprite.Kind
	fields  []sprite.Field
	answers []string
	editor  *LineEditor
}

// NewPrompt starts a prompt for kind. It returns nil for kinds without
// parameters.
func NewPrompt(kind sprite.Kind) *Prompt {
	fields := sprite.Fields(kind)
	if len(fields) == 0 {
		return nil
	}
	p := &Prompt{
		kind:   kind,
		fields: fields,
		editor: NewLineEditor(),
	}
	p.editor.SetText(fields[0].Default)
	return p
}

// Kind returns the block kind being prompted for.
func (p *Prompt) Kind() sprite.Kind {
	return p.kind
}

// Field returns the field currently being asked, or the last one once the
// prompt is done.
func (p *Prompt) Field() sprite.Field {
	return p.fields[min(len(p.answers), len(p.fields)-1)]
}

// Step returns the 1-based number of the current field and the field count.
func (p *Prompt) Step() (current, total int) {
	return min(len(p.answers)+1, len(p.fields)), len(p.fields)
}

// Editor returns the line editor for the current field.
func (p *Prompt) Editor() *LineEditor {
	return p.editor
}

// Done reports whether every field has been answered.
func (p *Prompt) Done() bool {
	return len(p.answers) == len(p.fields)
}

// HandleKey feeds a key to the current field and reports whether the
// prompt is now done.
func (p *Prompt) HandleKey(ev KeyEvent) bool {
	if p.Done() {
		return true
	}
	switch {
	case ev.Key == KeyEscape:
		p.answer("")
	case p.editor.HandleKey(ev):
		p.answer(p.editor.Text())
	}
	return p.Done()
}

func (p *Prompt) answer(s string) {
	p.answers = append(p.answers, s)
	if !p.Done() {
		p.editor.SetText(p.fields[len(p.answers)].Default)
	}
}

// Answers returns the raw answers given so far.
func (p *Prompt) Answers() []string {
	out := make([]string, len(p.answers))
	copy(out, p.answers)
	return out
}

// Command parses the answers into a command.
func (p *Prompt) Command() (sprite.Command, bool) {
	return sprite.ParseCommand(p.kind, p.answers)
}
