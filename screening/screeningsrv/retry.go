package screeningsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/sift/pkg/logx"
	"github.com/Abraxas-365/sift/screening"
)

// RetryPolicy bounds the retries around a single provider call. Retries are
// sequential; every failure class is retried identically and the last error
// is propagated unchanged.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultRetryPolicy allows 2 additional attempts after the first, with the
// backoff delay doubling from the base each retry.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		BaseDelay:  time.Second,
	}
}

// Do invokes fn up to 1+MaxRetries times. The backoff between attempt n and
// n+1 is BaseDelay << n. Cancellation during a backoff window returns the
// context error.
func (p RetryPolicy) Do(ctx context.Context, fn func(context.Context) (*screening.Result, error)) (*screening.Result, error) {
	attempts := p.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}
		delay := p.BaseDelay * time.Duration(1<<attempt)
		logx.Warnf("provider call failed (attempt %d/%d), retrying in %s: %v",
			attempt+1, attempts, delay, lastErr)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}
