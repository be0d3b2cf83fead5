// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"context"
	"math/rand"
	"time"
)

// RetryStrategy selects how the delay between attempts grows.
type RetryStrategy int

const (
	// StrategyFixed retries after the same delay every time.
	StrategyFixed RetryStrategy = iota

	// StrategyExponentialBackoff multiplies the delay by Multiplier
	// after each failed attempt.
	StrategyExponentialBackoff

	// StrategyLinearBackoff adds Increment to the delay after each
	// failed attempt.
	StrategyLinearBackoff
)

// RetryPolicy governs how GRPCClient and ConnectionPool retry a failed
// call: how many times, how long to wait between attempts, and how
// much random jitter to add so many clients backing off at once don't
// all retry in lockstep.
type RetryPolicy struct {
	Strategy     RetryStrategy
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Increment    time.Duration
	JitterFactor float64

	// ShouldRetry reports whether err warrants another attempt. A nil
	// ShouldRetry retries every non-nil error.
	ShouldRetry func(err error) bool
}

// DefaultRetryPolicy is a general-purpose policy: exponential backoff,
// three attempts, capped at 30 seconds between tries.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Strategy:     StrategyExponentialBackoff,
		MaxAttempts:  3,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.1,
	}
}

// NetworkOptimizedRetryPolicy retries more aggressively for transient
// connectivity failures: five attempts, starting from a shorter delay.
func NetworkOptimizedRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Strategy:     StrategyExponentialBackoff,
		MaxAttempts:  5,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     60 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.2,
	}
}

// delay returns the wait before the given attempt (1-indexed; attempt
// 1 is the first retry after an initial failure).
func (p RetryPolicy) delay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	var base time.Duration
	switch p.Strategy {
	case StrategyFixed:
		base = p.InitialDelay
	case StrategyLinearBackoff:
		base = p.InitialDelay + p.Increment*time.Duration(attempt-1)
	default: // StrategyExponentialBackoff
		multiplier := p.Multiplier
		if multiplier <= 0 {
			multiplier = 2.0
		}
		scaled := float64(p.InitialDelay) * pow(multiplier, attempt-1)
		base = time.Duration(scaled)
	}

	if p.MaxDelay > 0 && base > p.MaxDelay {
		base = p.MaxDelay
	}
	if p.JitterFactor <= 0 {
		return base
	}

	jitter := time.Duration(float64(base) * p.JitterFactor * rand.Float64())
	if rand.Intn(2) == 0 {
		return base + jitter
	}
	if jitter > base {
		return 0
	}
	return base - jitter
}

func pow(base float64, exp int) float64 {
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

// Do runs fn, retrying up to MaxAttempts-1 additional times (per
// ShouldRetry) with the policy's backoff delay between attempts. It
// returns the last error if every attempt fails, or nil on the first
// success.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.delay(attempt)):
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if p.ShouldRetry != nil && !p.ShouldRetry(lastErr) {
			return lastErr
		}
	}
	return transportError(ErrInvokeFailed, "exhausted all retry attempts", lastErr)
}
