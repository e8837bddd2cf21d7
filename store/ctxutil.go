package store

import (
	"context"
	"time"
)

// DefaultOpTimeout bounds a single operation when the config does not
// say otherwise.
const DefaultOpTimeout = 5 * time.Second

// withOpTimeout returns ctx unchanged when it is already ≤ d away from
// expiring; otherwise it wraps ctx in context.WithTimeout(ctx, d).
// The returned cancel is always safe to defer: when no new context is
// created we return a stub that does nothing, so callers can write:
//
//	ctx, cancel := withOpTimeout(parentCtx, d)
//	defer cancel() // safe even if cancel is a no-op
//
// without extra branching or nil checks.
func withOpTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if err := ctx.Err(); err != nil {
		// Parent context is already canceled or deadline exceeded.
		return ctx, func() {}
	}
	if dl, ok := ctx.Deadline(); ok && time.Until(dl) <= d {
		// The existing deadline is stricter than the requested timeout.
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
