package dnsprobe

import (
	"context"
	"time"
)

// RetryPolicy is the exponential-backoff schedule for a single DnsProbe
// attempt: retryCount attempts beyond the first, each wait multiplied by
// retryFactor and clamped to [retryMinTimeout, retryMaxTimeout].
type RetryPolicy struct {
	Count      int
	Factor     float64
	MinTimeout time.Duration
	MaxTimeout time.Duration
}

// DefaultRetryPolicy returns the documented default backoff schedule.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Count:      3,
		Factor:     2,
		MinTimeout: 1000 * time.Millisecond,
		MaxTimeout: 16000 * time.Millisecond,
	}
}

// WithRetry runs fn up to p.Count+1 times, sleeping a backoff-scaled delay
// between attempts. It returns the last error if every attempt fails, or
// nil as soon as one attempt succeeds. A canceled/expired ctx aborts
// immediately without consuming further attempts.
//
// Exported so whoisheuristic can reuse the same backoff loop for its own
// retry policy rather than duplicating it.
func WithRetry(ctx context.Context, p RetryPolicy, fn func() (bool, error)) (bool, error) {
	wait := p.MinTimeout
	var lastErr error

	for attempt := 0; attempt <= p.Count; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(wait):
			}
			wait = time.Duration(float64(wait) * p.Factor)
			if wait > p.MaxTimeout {
				wait = p.MaxTimeout
			}
		}

		confirmed, err := fn()
		if err == nil {
			return confirmed, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return false, ctx.Err()
		}
	}

	return false, lastErr
}
