package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pantrychef/backend/internal/domain"
)

// RetryPolicy bounds a call to the suggestion service. Attempt n (0-based)
// runs with Timeout + n*TimeoutStep and is followed by a Backoff * 2^n pause
// when it failed with a retryable error.
type RetryPolicy struct {
	Attempts    int
	Timeout     time.Duration
	TimeoutStep time.Duration
	Backoff     time.Duration
}

// DefaultSubstitutionPolicy allows 2 attempts with 30s/40s timeouts.
func DefaultSubstitutionPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:    2,
		Timeout:     30 * time.Second,
		TimeoutStep: 10 * time.Second,
		Backoff:     2 * time.Second,
	}
}

// DefaultClassificationPolicy is a single 20s attempt.
func DefaultClassificationPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts: 1,
		Timeout:  20 * time.Second,
	}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	if p.Timeout <= 0 {
		p.Timeout = 30 * time.Second
	}
	return p
}

// retryable reports whether another attempt may succeed. Timeouts of the
// attempt itself are retried; cancellation of the parent context is not.
func retryable(parent context.Context, err error) bool {
	if parent.Err() != nil {
		return false
	}
	return errors.Is(err, domain.ErrSuggestionRetryable) || errors.Is(err, context.DeadlineExceeded)
}

// callWithFallback runs call under policy and returns fallback() when every
// attempt failed. The returned error is the last failure and is nil when call
// succeeded; it is informational only since a result is always produced.
func callWithFallback[T any](
	ctx context.Context,
	policy RetryPolicy,
	logger *zap.Logger,
	op string,
	call func(ctx context.Context) (T, error),
	fallback func() T,
) (T, error) {
	policy = policy.normalized()

	var lastErr error
retry:
	for attempt := 0; attempt < policy.Attempts; attempt++ {
		timeout := policy.Timeout + time.Duration(attempt)*policy.TimeoutStep
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		result, err := call(attemptCtx)
		cancel()

		if err == nil {
			return result, nil
		}
		lastErr = err

		logger.Warn("suggestion call failed",
			zap.String("call", op),
			zap.Int("attempt", attempt+1),
			zap.Duration("timeout", timeout),
			zap.Error(err))

		if attempt == policy.Attempts-1 || !retryable(ctx, err) {
			break retry
		}

		backoff := policy.Backoff * time.Duration(1<<attempt)
		select {
		case <-ctx.Done():
			lastErr = ctx.Err()
			break retry
		case <-time.After(backoff):
		}
	}

	logger.Info("using rule-based fallback",
		zap.String("call", op),
		zap.NamedError("reason", lastErr))
	return fallback(), lastErr
}
