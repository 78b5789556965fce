package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

var okReply = MockJSON(`{"ok":true}`)

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func malformed() MockResponse {
	return MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}
}

func TestRetry_Policy(t *testing.T) {
	tests := []struct {
		name      string
		script    []MockResponse
		wantCalls int
		wantErr   bool
	}{
		{"first attempt succeeds", []MockResponse{okReply}, 1, false},
		{"transient then success", []MockResponse{down(), okReply}, 2, false},
		{"all attempts fail", []MockResponse{down(), down(), down(), okReply}, 3, true},
		{"max tokens not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{}`)}}, okReply}, 1, true},
		{"rejected key not retried", []MockResponse{{Err: &ErrAuthentication{Provider: "openai", Err: errors.New("401")}}, okReply}, 1, true},
		{"malformed reply retried once", []MockResponse{malformed(), malformed(), okReply}, 2, true},
		{"malformed then transient then success", []MockResponse{malformed(), down(), okReply}, 3, false},
		{"rate limit honors retry after", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}, okReply}, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.script...)
			resp, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})

			assert.Equal(t, tt.wantCalls, mock.CallCount())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
		})
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(down(), down(), okReply)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, retryConfig()).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(okReply)
	resp, err := WithRetry(mock, RetryConfig{}).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	assert.Equal(t, "mock", WithRetry(NewMockProvider(), retryConfig()).ModelID())
}

func TestRetry_WaitIsBounded(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: time.Second, MaxWait: 4 * time.Second, Multiplier: 2}}
	for attempt := range 6 {
		d := r.wait(attempt, errors.New("x"))
		assert.LessOrEqual(t, d, 4*time.Second*12/10, "attempt %d", attempt)
		assert.GreaterOrEqual(t, d, time.Duration(0))
	}
	assert.Equal(t, 3*time.Second, r.wait(0, &ErrRateLimit{RetryAfter: 3 * time.Second}))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, giveUp, classify(context.DeadlineExceeded))
	assert.Equal(t, giveUp, classify(&ErrAuthentication{}))
	assert.Equal(t, retryInvalid, classify(&ErrInvalidResponse{}))
	assert.Equal(t, retryTransient, classify(&ErrRateLimit{}))
	assert.Equal(t, retryTransient, classify(errors.New("connection reset")))
}
