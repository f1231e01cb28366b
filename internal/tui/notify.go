package tui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// DefaultToastDuration is how long a toast stays on screen.
const DefaultToastDuration = 2800 * time.Millisecond

// maxToasts bounds how many toasts are stacked at once; the oldest go first.
const maxToasts = 4

// Toast is one transient message.
type Toast struct {
	Message string
	Expires time.Time
}

// Toasts is the notification surface of the interactive UI: every message
// rings the terminal bell and stays listed until it expires.
type Toasts struct {
	mu       sync.Mutex
	out      io.Writer
	duration time.Duration
	now      func() time.Time
	items    []Toast
}

// NewToasts creates a Toasts that rings the bell on out. A non-positive
// duration uses DefaultToastDuration.
func NewToasts(out io.Writer, duration time.Duration) *Toasts {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return &Toasts{
		out:      out,
		duration: duration,
		now:      time.Now,
	}
}

// Bell writes the terminal bell character.
func (t *Toasts) Bell() {
	if t.out != nil {
		fmt.Fprint(t.out, Bell)
	}
}

// Notify shows msg for the toast duration. It implements collision.Notifier.
func (t *Toasts) Notify(msg string) {
	t.mu.Lock()
	t.items = append(t.items, Toast{Message: msg, Expires: t.now().Add(t.duration)})
	if len(t.items) > maxToasts {
		t.items = t.items[len(t.items)-maxToasts:]
	}
	t.mu.Unlock()

	t.Bell()
}

// Active returns the messages that have not expired, oldest first.
func (t *Toasts) Active() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prune()
	out := make([]string, len(t.items))
	for i, item := range t.items {
		out[i] = item.Message
	}
	return out
}

// Expire drops expired toasts and reports whether any were dropped.
func (t *Toasts) Expire() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prune()
}

func (t *Toasts) prune() bool {
	now := t.now()
	kept := t.items[:0]
	for _, item := range t.items {
		if now.Before(item.Expires) {
			kept = append(kept, item)
		}
	}
	dropped := len(kept) != len(t.items)
	t.items = kept
	return dropped
}
