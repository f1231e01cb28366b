package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultRunTimeout bounds a test run that uses real timers.
const DefaultRunTimeout = 10 * time.Second

// DefaultTestBuffer is subtracted from the test deadline to leave time for
// cleanup before the test binary times out.
const DefaultTestBuffer = 2 * time.Second

// ContextWithTestDeadline returns a context that ends before the test's
// deadline (minus DefaultTestBuffer), or after fallback when the test has
// no deadline. The context is cancelled when the test finishes.
func ContextWithTestDeadline(t *testing.T, fallback time.Duration) context.Context {
	t.Helper()

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if deadline, ok := t.Deadline(); ok && time.Until(deadline.Add(-DefaultTestBuffer)) > 0 {
		ctx, cancel = context.WithDeadline(context.Background(), deadline.Add(-DefaultTestBuffer))
	} else {
		ctx, cancel = context.WithTimeout(context.Background(), fallback)
	}
	t.Cleanup(cancel)
	return ctx
}

// RunContext is ContextWithTestDeadline with DefaultRunTimeout.
func RunContext(t *testing.T) context.Context {
	t.Helper()
	return ContextWithTestDeadline(t, DefaultRunTimeout)
}
