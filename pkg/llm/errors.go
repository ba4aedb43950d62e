package llm

import (
	"errors"
	"fmt"
)

// ErrUnsupportedProvider is returned by the factory for unknown provider names.
var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

// ErrEmptyResponse marks a 200-class response carrying no generated text.
// The original backends occasionally return these under load, so the gateway
// treats them as transient failures rather than empty successes.
var ErrEmptyResponse = errors.New("empty response from provider")

// InvalidRequestError covers malformed caller input (empty prompt, bad
// parameters). Fails fast, never retried.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// ProviderError wraps a failure reported by a concrete backend. Transient
// errors (rate limit, timeout, server error) are eligible for retry; fatal
// errors (auth, malformed request) are not.
type ProviderError struct {
	Provider   string
	StatusCode int
	Transient  bool
	Err        error
}

func (e *ProviderError) Error() string {
	kind := "fatal"
	if e.Transient {
		kind = "transient"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s provider error (%s, status %d): %v", e.Provider, kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s provider error (%s): %v", e.Provider, kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// RetryExhaustedError is the terminal outcome of the retry wrapper when every
// attempt failed with a transient error. Attempts is surfaced so callers can
// tell the user how hard we tried.
type RetryExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("provider unavailable after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.LastErr
}

// IsRetryable reports whether a provider call may be attempted again.
// Invalid requests and fatal provider errors fail fast; an empty response is
// treated like a transient backend hiccup.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var invalid *InvalidRequestError
	if errors.As(err, &invalid) {
		return false
	}
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Transient
	}
	if errors.Is(err, ErrEmptyResponse) {
		return true
	}
	// Transport-level failures (connection reset, DNS) arrive unclassified.
	return true
}

// classifyStatus maps an HTTP status code onto the transient/fatal split
// shared by all providers.
func classifyStatus(status int) bool {
	switch {
	case status == 408 || status == 429:
		return true
	case status >= 500:
		return true
	default:
		return false
	}
}

// ClassifyHTTPError builds a ProviderError from a non-2xx backend response.
// The body is truncated so a misbehaving backend cannot flood the logs.
func ClassifyHTTPError(provider string, status int, body []byte) *ProviderError {
	const maxBody = 512
	if len(body) > maxBody {
		body = body[:maxBody]
	}
	return &ProviderError{
		Provider:   provider,
		StatusCode: status,
		Transient:  classifyStatus(status),
		Err:        fmt.Errorf("status %d: %s", status, string(body)),
	}
}
