// Package ctxutil provides context utility functions.
package ctxutil

import "context"

// Canceled returns the reason ctx is done, or nil while it is still active.
// The reason is the cancellation cause when one was given, so callers can tell
// a user interruption from a plain cancellation with errors.Is.
func Canceled(ctx context.Context) error {
	if ctx.Err() == nil {
		return nil
	}
	return context.Cause(ctx)
}
