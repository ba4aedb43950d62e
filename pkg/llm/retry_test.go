package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scriptedProvider fails a fixed number of times before succeeding.
type scriptedProvider struct {
	failures int
	failWith error
	calls    int
}

func (p *scriptedProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	p.calls++
	if p.calls <= p.failures {
		return "", p.failWith
	}
	return "the answer", nil
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return p.Chat(ctx, []Message{{Role: "user", Content: prompt}}, options...)
}

func transientErr() error {
	return &ProviderError{Provider: "test", StatusCode: 429, Transient: true, Err: errors.New("rate limited")}
}

func newTestRetrier(inner LLMProvider, slept *[]time.Duration) *Retrier {
	r := NewRetrier(inner, DefaultRetryConfig())
	r.sleep = func(ctx context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
	return r
}

func TestRetrierBackoffSchedule(t *testing.T) {
	var slept []time.Duration
	inner := &scriptedProvider{failures: 2, failWith: transientErr()}
	r := newTestRetrier(inner, &slept)

	got, err := r.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "the answer" {
		t.Errorf("Chat() = %q, want %q", got, "the answer")
	}
	if inner.calls != 3 {
		t.Errorf("calls = %d, want 3", inner.calls)
	}

	want := []time.Duration{4 * time.Second, 8 * time.Second}
	if len(slept) != len(want) {
		t.Fatalf("slept %v, want %v", slept, want)
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Errorf("slept[%d] = %v, want %v", i, slept[i], want[i])
		}
	}
}

func TestRetrierExhaustion(t *testing.T) {
	var slept []time.Duration
	inner := &scriptedProvider{failures: 10, failWith: transientErr()}
	r := newTestRetrier(inner, &slept)

	_, err := r.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}})

	var exhausted *RetryExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error = %v, want RetryExhaustedError", err)
	}
	if exhausted.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", exhausted.Attempts)
	}
	if inner.calls != 3 {
		t.Errorf("calls = %d, want 3", inner.calls)
	}
	// Two pauses separate three attempts.
	if len(slept) != 2 {
		t.Errorf("slept %d times, want 2", len(slept))
	}
}

func TestRetrierFatalFailsFast(t *testing.T) {
	var slept []time.Duration
	fatal := &ProviderError{Provider: "test", StatusCode: 401, Transient: false, Err: errors.New("bad key")}
	inner := &scriptedProvider{failures: 10, failWith: fatal}
	r := newTestRetrier(inner, &slept)

	_, err := r.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}})

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error = %v, want ProviderError", err)
	}
	if provErr.StatusCode != 401 {
		t.Errorf("StatusCode = %d, want 401", provErr.StatusCode)
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on fatal error)", inner.calls)
	}
	if len(slept) != 0 {
		t.Errorf("slept %d times, want 0", len(slept))
	}
}

func TestRetrierInvalidRequestFailsFast(t *testing.T) {
	var slept []time.Duration
	inner := &scriptedProvider{failures: 10, failWith: &InvalidRequestError{Reason: "empty prompt"}}
	r := newTestRetrier(inner, &slept)

	_, err := r.Chat(context.Background(), []Message{{Role: "user", Content: ""}})

	var invalid *InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidRequestError", err)
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1", inner.calls)
	}
}

func TestRetrierEmptyResponseIsTransient(t *testing.T) {
	var slept []time.Duration
	inner := &scriptedProvider{failures: 1, failWith: ErrEmptyResponse}
	r := newTestRetrier(inner, &slept)

	got, err := r.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "the answer" {
		t.Errorf("Chat() = %q, want %q", got, "the answer")
	}
	if inner.calls != 2 {
		t.Errorf("calls = %d, want 2", inner.calls)
	}
}

func TestRetrierCancelledDuringBackoff(t *testing.T) {
	inner := &scriptedProvider{failures: 10, failWith: transientErr()}
	r := NewRetrier(inner, DefaultRetryConfig())
	r.sleep = func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	}

	_, err := r.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1", inner.calls)
	}
}

func TestRetryStateAdvance(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts: 5,
		BaseDelay:   4 * time.Second,
		Multiplier:  2,
		MaxDelay:    10 * time.Second,
	}

	state := RetryState{Attempt: 1}

	tests := []struct {
		wantDelay   time.Duration
		wantAttempt int
	}{
		{4 * time.Second, 2},
		{8 * time.Second, 3},
		{10 * time.Second, 4}, // 16s capped at MaxDelay
		{10 * time.Second, 5},
	}

	for i, tt := range tests {
		delay := state.Advance(cfg)
		if delay != tt.wantDelay {
			t.Errorf("step %d: delay = %v, want %v", i, delay, tt.wantDelay)
		}
		if state.Attempt != tt.wantAttempt {
			t.Errorf("step %d: Attempt = %d, want %d", i, state.Attempt, tt.wantAttempt)
		}
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status        int
		wantTransient bool
	}{
		{400, false},
		{401, false},
		{403, false},
		{404, false},
		{408, true},
		{422, false},
		{429, true},
		{500, true},
		{502, true},
		{503, true},
	}

	for _, tt := range tests {
		provErr := ClassifyHTTPError("test", tt.status, []byte("body"))
		if provErr.Transient != tt.wantTransient {
			t.Errorf("status %d: Transient = %v, want %v", tt.status, provErr.Transient, tt.wantTransient)
		}
	}
}
