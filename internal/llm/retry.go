package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient provider failures with exponential
// backoff and ±20% jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic. MaxAttempts below 1 is
// treated as a single attempt.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

type retryDecision int

const (
	giveUp retryDecision = iota
	retryTransient
	retryInvalid // a malformed reply, retried once per call
)

// classify sorts an error into the retry policy.
func classify(err error) retryDecision {
	var (
		maxTok  *ErrMaxTokensExceeded
		auth    *ErrAuthentication
		invalid *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return giveUp
	case errors.As(err, &maxTok), errors.As(err, &auth):
		return giveUp
	case errors.As(err, &invalid):
		return retryInvalid
	default:
		// Rate limits, unavailable providers and network errors.
		return retryTransient
	}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	invalidSeen := false

	var lastErr error
	for attempt := range attempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch classify(err) {
		case giveUp:
			return nil, err
		case retryInvalid:
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}

		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.wait(attempt, err)):
		}
	}
	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// wait honors a provider's RetryAfter hint, otherwise backs off
// exponentially up to MaxWait.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := min(float64(r.config.InitialWait)*math.Pow(r.config.Multiplier, float64(attempt)), float64(r.config.MaxWait))
	d += d * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(max(d, 0))
}
