// Package testutil provides shared test helpers for the playground.
//
// # Fixtures
//
//   - NewStage(t, specs...) - a roster with sprites at fixed positions and scripts
//   - SampleCommands() - one command of every kind
//
// # Recorder
//
// Recorder implements executor.Presenter, executor.Pauser and
// collision.Notifier at once and keeps every call on a single ordered
// timeline, so tests can assert what happened and in which order without
// sleeping:
//
//	rec := testutil.NewRecorder()
//	exec := executor.New(executor.Options{Presenter: rec, Pauser: rec})
//	...
//	assert.Equal(t, []time.Duration{280 * time.Millisecond}, rec.Pauses())
//
// # Assertions
//
//   - AssertPosition(t, s, x, y) - position within a small tolerance
//   - AssertHeading(t, s, deg) - heading within a small tolerance
//   - AssertScript(t, s, cmds...) - exact script contents
package testutil
