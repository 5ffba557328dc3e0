package provider

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// RetryProvider wraps a Provider with exponential backoff retry logic.
type RetryProvider struct {
	inner      Provider
	maxRetries int
	baseDelay  time.Duration
}

func WithRetry(p Provider, maxRetries int) *RetryProvider {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &RetryProvider{inner: p, maxRetries: maxRetries, baseDelay: 500 * time.Millisecond}
}

func (r *RetryProvider) Name() string { return r.inner.Name() }

func (r *RetryProvider) ModelName() string { return r.inner.ModelName() }

func (r *RetryProvider) Chat(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		resp, err := r.inner.Chat(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !isRetryable(err) {
			return nil, err
		}
		if attempt == r.maxRetries {
			break
		}
		if err := r.backoff(ctx, attempt); err != nil {
			return nil, lastErr
		}
	}
	return nil, fmt.Errorf("after %d retries: %w", r.maxRetries, lastErr)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == 429 || se.StatusCode == 529 || se.StatusCode >= 500
	}
	// Retry on connection issues
	msg := err.Error()
	for _, s := range []string{"connection refused", "timeout", "deadline exceeded", "EOF", "reset by peer", "timed out"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

func (r *RetryProvider) backoff(ctx context.Context, attempt int) error {
	delay := time.Duration(float64(r.baseDelay) * math.Pow(2, float64(attempt)))
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
