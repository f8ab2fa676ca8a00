// Package time holds timing helpers for the command line.
package time

import (
	"context"
	"time"
)

// WithTimeout is context.WithTimeout, except that a non-positive timeout
// means no deadline.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// Seconds converts a possibly fractional number of seconds into a Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
