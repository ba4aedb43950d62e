package llm

import (
	"context"
	"time"
)

// RetryConfig bounds the retry state machine applied around every provider.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
}

// DefaultRetryConfig mirrors the backoff schedule the product shipped with:
// three attempts with 4s and 8s pauses, capped at one minute.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   4 * time.Second,
		Multiplier:  2,
		MaxDelay:    60 * time.Second,
	}
}

// RetryState tracks a single logical call through the retry machine. It is a
// plain value so tests can inspect attempt counts and delays without any
// network involvement.
type RetryState struct {
	Attempt   int
	NextDelay time.Duration
}

// Advance moves the state to the next attempt, returning the delay to sleep
// before it. The delay grows exponentially and is capped at MaxDelay.
func (s *RetryState) Advance(cfg RetryConfig) time.Duration {
	delay := cfg.BaseDelay
	for i := 1; i < s.Attempt; i++ {
		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay >= cfg.MaxDelay {
			delay = cfg.MaxDelay
			break
		}
	}
	if delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}
	s.Attempt++
	s.NextDelay = delay
	return delay
}

// Retrier wraps any LLMProvider with the shared retry/backoff contract.
// Fatal errors and invalid requests pass through immediately; transient
// failures are re-attempted with exponential backoff until MaxAttempts.
type Retrier struct {
	inner LLMProvider
	cfg   RetryConfig

	// sleep is swappable in tests; production uses a ctx-aware timer.
	sleep func(ctx context.Context, d time.Duration) error
}

var _ LLMProvider = &Retrier{}

func NewRetrier(inner LLMProvider, cfg RetryConfig) *Retrier {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultRetryConfig().MaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultRetryConfig().BaseDelay
	}
	if cfg.Multiplier <= 1 {
		cfg.Multiplier = DefaultRetryConfig().Multiplier
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultRetryConfig().MaxDelay
	}
	return &Retrier{
		inner: inner,
		cfg:   cfg,
		sleep: sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Retrier) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	state := RetryState{Attempt: 1}
	var lastErr error

	for state.Attempt <= r.cfg.MaxAttempts {
		text, err := r.inner.Chat(ctx, history, options...)
		if err == nil {
			return text, nil
		}
		if !IsRetryable(err) {
			return "", err
		}
		lastErr = err

		if state.Attempt == r.cfg.MaxAttempts {
			break
		}
		delay := state.Advance(r.cfg)
		if err := r.sleep(ctx, delay); err != nil {
			// Cancelled mid-backoff: report the cancellation, not the
			// provider error the caller no longer cares about.
			return "", err
		}
	}

	return "", &RetryExhaustedError{Attempts: r.cfg.MaxAttempts, LastErr: lastErr}
}

func (r *Retrier) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return r.Chat(ctx, []Message{{Role: "user", Content: prompt}}, options...)
}
