package utils

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// RetryPolicy describes a fixed-delay retry: at most Attempts calls, with a
// pause of Delay between the end of a failed call and the next one.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// ErrRetryExhausted is wrapped by Retry when every attempt failed.
var ErrRetryExhausted = errors.New("retry attempts exhausted")

// Retry calls fn until it returns nil or the policy runs out of attempts.
// fn receives the 1-based attempt number. There is no wait after the last
// failed attempt. A cancelled ctx stops the loop and its error is returned.
func Retry(ctx context.Context, policy RetryPolicy, fn func(attempt int) error) error {
	attempts := max(policy.Attempts, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := pause(ctx, policy.Delay); err != nil {
				return errors.Wrapf(err, "retry attempt %d/%d", attempt, attempts)
			}
		}

		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
	}
	return errors.Wrapf(ErrRetryExhausted, "%d attempts, last error: %v", attempts, lastErr)
}

// pause blocks for d counted from now. The limiter starts with its only
// token spent, so Wait returns once a full interval has passed.
func pause(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	lim := rate.NewLimiter(rate.Every(d), 1)
	lim.Allow()
	if err := lim.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}
