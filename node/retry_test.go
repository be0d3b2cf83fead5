package node

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetryPolicyDoSucceedsWithoutRetry(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, InitialDelay: time.Millisecond}

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestRetryPolicyDoRetriesUntilSuccess(t *testing.T) {
	policy := RetryPolicy{
		Strategy:     StrategyFixed,
		MaxAttempts:  5,
		InitialDelay: time.Millisecond,
	}

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryPolicyDoExhaustsAttempts(t *testing.T) {
	policy := RetryPolicy{
		Strategy:     StrategyFixed,
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
	}

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		return errors.New("always fails")
	})
	require.Error(t, err)
	require.Equal(t, 3, calls)

	var te TransportError
	require.ErrorAs(t, err, &te)
	require.Equal(t, ErrInvokeFailed, te.ErrorCode)
}

func TestRetryPolicyDoHonorsShouldRetry(t *testing.T) {
	sentinel := errors.New("do not retry me")
	policy := RetryPolicy{
		MaxAttempts:  5,
		InitialDelay: time.Millisecond,
		ShouldRetry:  func(err error) bool { return !errors.Is(err, sentinel) },
	}

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 1, calls)
}

func TestRetryPolicyDoRespectsContextCancellation(t *testing.T) {
	policy := RetryPolicy{
		Strategy:     StrategyFixed,
		MaxAttempts:  5,
		InitialDelay: time.Hour,
	}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := policy.Do(ctx, func() error {
		calls++
		return errors.New("fail")
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}

func TestRetryPolicyDelayCapsAtMaxDelay(t *testing.T) {
	policy := RetryPolicy{
		Strategy:     StrategyExponentialBackoff,
		InitialDelay: time.Second,
		MaxDelay:     2 * time.Second,
		Multiplier:   10,
	}
	require.LessOrEqual(t, policy.delay(5), 2*time.Second)
}

func TestRetryPolicyDelayLinearGrowth(t *testing.T) {
	policy := RetryPolicy{
		Strategy:     StrategyLinearBackoff,
		InitialDelay: time.Second,
		Increment:    500 * time.Millisecond,
	}
	require.Equal(t, time.Second, policy.delay(1))
	require.Equal(t, 1500*time.Millisecond, policy.delay(2))
	require.Equal(t, 2*time.Second, policy.delay(3))
}

func TestDefaultRetryPolicyAndNetworkOptimizedDiffer(t *testing.T) {
	d := DefaultRetryPolicy()
	n := NetworkOptimizedRetryPolicy()
	require.Less(t, n.InitialDelay, d.InitialDelay)
	require.Greater(t, n.MaxAttempts, d.MaxAttempts)
}
