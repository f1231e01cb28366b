package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/thruflo/playground/internal/executor"
	"github.com/thruflo/playground/internal/sprite"
)

// EventType identifies a recorded call.
type EventType int

const (
	EventSpriteChanged EventType = iota
	EventShowBubble
	EventHideBubble
	EventPause
	EventNotify
)

// String returns the event name.
func (e EventType) String() string {
	switch e {
	case EventSpriteChanged:
		return "sprite_changed"
	case EventShowBubble:
		return "show_bubble"
	case EventHideBubble:
		return "hide_bubble"
	case EventPause:
		return "pause"
	case EventNotify:
		return "notify"
	default:
		return "unknown"
	}
}

// Event is one recorded call. Only the fields for Type are set.
type Event struct {
	Type    EventType
	Sprite  sprite.Snapshot
	Bubble  executor.Bubble
	Pause   time.Duration
	Message string
}

// Recorder records presenter, pauser and notifier calls in order. Pauses
// return immediately.
type Recorder struct {
	mu     sync.Mutex
	events []Event

	// OnPause, if set, runs for every pause before it returns; its error is
	// returned from Pause.
	OnPause func(n int, d time.Duration) error
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(ev Event) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return len(r.events)
}

// SpriteChanged implements executor.Presenter.
func (r *Recorder) SpriteChanged(snap sprite.Snapshot) {
	r.add(Event{Type: EventSpriteChanged, Sprite: snap})
}

// ShowBubble implements executor.Presenter.
func (r *Recorder) ShowBubble(b executor.Bubble) {
	r.add(Event{Type: EventShowBubble, Bubble: b})
}

// HideBubble implements executor.Presenter.
func (r *Recorder) HideBubble(b executor.Bubble) {
	r.add(Event{Type: EventHideBubble, Bubble: b})
}

// Notify implements collision.Notifier.
func (r *Recorder) Notify(msg string) {
	r.add(Event{Type: EventNotify, Message: msg})
}

// Pause implements executor.Pauser without sleeping.
func (r *Recorder) Pause(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	pauses := 0
	for _, ev := range r.events {
		if ev.Type == EventPause {
			pauses++
		}
	}
	r.events = append(r.events, Event{Type: EventPause, Pause: d})
	hook := r.OnPause
	r.mu.Unlock()

	if hook != nil {
		return hook(pauses+1, d)
	}
	return nil
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []EventType {
	events := r.Events()
	out := make([]EventType, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

// Pauses returns the recorded pause durations in order.
func (r *Recorder) Pauses() []time.Duration {
	var out []time.Duration
	for _, ev := range r.Events() {
		if ev.Type == EventPause {
			out = append(out, ev.Pause)
		}
	}
	return out
}

// Messages returns the recorded notifications in order.
func (r *Recorder) Messages() []string {
	var out []string
	for _, ev := range r.Events() {
		if ev.Type == EventNotify {
			out = append(out, ev.Message)
		}
	}
	return out
}

// Snapshots returns the recorded sprite snapshots in order.
func (r *Recorder) Snapshots() []sprite.Snapshot {
	var out []sprite.Snapshot
	for _, ev := range r.Events() {
		if ev.Type == EventSpriteChanged {
			out = append(out, ev.Sprite)
		}
	}
	return out
}

// Reset clears the timeline.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
