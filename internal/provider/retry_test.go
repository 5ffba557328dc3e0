package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider returns errs in order, then succeeds.
type scriptedProvider struct {
	errs  []error
	calls int
}

func (p *scriptedProvider) Name() string      { return "scripted" }
func (p *scriptedProvider) ModelName() string { return "test-model" }

func (p *scriptedProvider) Chat(_ context.Context, _ Request) (*Response, error) {
	p.calls++
	if p.calls <= len(p.errs) {
		return nil, p.errs[p.calls-1]
	}
	return &Response{Content: "ok"}, nil
}

func fastRetry(p Provider, n int) *RetryProvider {
	r := WithRetry(p, n)
	r.baseDelay = time.Millisecond
	return r
}

func TestRetryRecoversFromTransientErrors(t *testing.T) {
	inner := &scriptedProvider{errs: []error{
		&StatusError{StatusCode: 503, Message: "unavailable"},
		errors.New("read: connection reset by peer"),
	}}
	r := fastRetry(inner, 3)

	resp, err := r.Chat(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, "scripted", r.Name())
	assert.Equal(t, "test-model", r.ModelName())
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	inner := &scriptedProvider{errs: []error{&StatusError{StatusCode: 401, Message: "bad key"}}}
	r := fastRetry(inner, 3)

	_, err := r.Chat(context.Background(), Request{})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 401, se.StatusCode)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryGivesUp(t *testing.T) {
	busy := &StatusError{StatusCode: 429, Message: "slow down"}
	inner := &scriptedProvider{errs: []error{busy, busy, busy}}
	r := fastRetry(inner, 2)

	_, err := r.Chat(context.Background(), Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 retries")
	assert.ErrorIs(t, err, busy)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryHonoursCancellation(t *testing.T) {
	inner := &scriptedProvider{errs: []error{&StatusError{StatusCode: 500, Message: "x"}}}
	r := WithRetry(inner, 3)
	r.baseDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Chat(ctx, Request{})
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, isRetryable(context.Canceled))
	assert.True(t, isRetryable(&StatusError{StatusCode: 529}))
	assert.True(t, isRetryable(&StatusError{StatusCode: 502}))
	assert.False(t, isRetryable(&StatusError{StatusCode: 404}))
	assert.True(t, isRetryable(errors.New("dial tcp: connection refused")))
	assert.False(t, isRetryable(errors.New("invalid tool schema")))
}

func TestFriendly(t *testing.T) {
	assert.NoError(t, Friendly(nil))

	raw := errors.New("dial tcp 127.0.0.1:11434: connect: connection refused")
	err := Friendly(raw)
	assert.Contains(t, err.Error(), "is the service running?")
	assert.ErrorIs(t, err, raw)

	plain := errors.New("something odd")
	assert.Equal(t, plain, Friendly(plain))
	assert.Equal(t, "rate limited, too many requests", statusMessage(429, ""))
	assert.Equal(t, "quota exceeded", statusMessage(429, "quota exceeded"))
}
