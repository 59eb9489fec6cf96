// Package retry provides a small bounded-attempt combinator shared by
// the access gate recheck and resilient delivery.
package retry

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

// Do runs op up to attempts times, waiting per the policy between
// failures. It returns nil as soon as op succeeds, otherwise the last
// error. The context cancels waiting between attempts.
func Do(ctx context.Context, attempts int, policy backoff.BackOff, op func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(attempts-1)), ctx)
	return backoff.Retry(op, b)
}

// Constant waits the same delay between every attempt.
func Constant(delay time.Duration) backoff.BackOff {
	return backoff.NewConstantBackOff(delay)
}

// Exponential starts at initial and doubles after each failure, without
// jitter so the schedule stays deterministic.
func Exponential(initial time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = 16 * initial
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}
