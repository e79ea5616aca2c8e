package screeningsrv

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/sift/screening"
)

func TestRetryExactAttemptBound(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}

	attempts := 0
	_, err := policy.Do(context.Background(), func(context.Context) (*screening.Result, error) {
		attempts++
		return nil, fmt.Errorf("attempt %d failed", attempts)
	})

	require.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryPropagatesLastErrorUnchanged(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 1, BaseDelay: time.Millisecond}

	first := errors.New("first failure")
	last := errors.New("last failure")
	attempts := 0
	_, err := policy.Do(context.Background(), func(context.Context) (*screening.Result, error) {
		attempts++
		if attempts == 1 {
			return nil, first
		}
		return nil, last
	})

	assert.Same(t, last, err)
}

func TestRetryStopsOnFirstSuccess(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}

	attempts := 0
	result, err := policy.Do(context.Background(), func(context.Context) (*screening.Result, error) {
		attempts++
		if attempts < 2 {
			return nil, errors.New("transient")
		}
		return &screening.Result{CandidateName: "Jane"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "Jane", result.CandidateName)
}

func TestRetryZeroRetriesMeansSingleAttempt(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 0, BaseDelay: time.Millisecond}

	attempts := 0
	_, err := policy.Do(context.Background(), func(context.Context) (*screening.Result, error) {
		attempts++
		return nil, errors.New("boom")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryBacksOffBetweenFailedAttempts(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 2, BaseDelay: 20 * time.Millisecond}

	start := time.Now()
	attempts := 0
	_, err := policy.Do(context.Background(), func(context.Context) (*screening.Result, error) {
		attempts++
		return nil, errors.New("always fails")
	})

	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	// Doubling schedule: 20ms before the second attempt, 40ms before the
	// third. No backoff after the final failure.
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestRetryHonorsCancellationDuringBackoff(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 3, BaseDelay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := policy.Do(ctx, func(context.Context) (*screening.Result, error) {
		attempts++
		return nil, errors.New("always fails")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}
