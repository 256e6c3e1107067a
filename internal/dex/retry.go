package dex

import (
	"context"
	"errors"
	"time"
)

const (
	defaultBackoff = 100 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// RetryPolicy bounds how RPC reads are retried.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// delay is the wait before retry number attempt (0-based), doubling from
// Backoff up to maxBackoff.
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.Backoff
	if d <= 0 {
		d = defaultBackoff
	}
	for i := 0; i < attempt && d < maxBackoff; i++ {
		d *= 2
	}
	if d > maxBackoff {
		d = maxBackoff
	}
	return d
}

// run calls fn until it succeeds or MaxRetries retries are spent. A
// cancelled context stops the loop with the context error.
func (p RetryPolicy) run(ctx context.Context, fn func(ctx context.Context, attempt int) error) error {
	for attempt := 0; ; attempt++ {
		err := fn(ctx, attempt)
		if err == nil {
			return nil
		}
		if attempt >= p.MaxRetries || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		timer := time.NewTimer(p.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
