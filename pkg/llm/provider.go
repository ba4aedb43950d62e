package llm

import (
	"context"
	"strings"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature  float64
	MaxTokens    int
	Model        string // Override default model
	SystemPrompt string // Provider-level system instruction
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithSystemPrompt(prompt string) Option {
	return func(o *Options) {
		o.SystemPrompt = prompt
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// ResolveOptions applies the given options over provider defaults.
func ResolveOptions(defaults Options, opts ...Option) *Options {
	resolved := defaults
	for _, o := range opts {
		o(&resolved)
	}
	return &resolved
}

// ValidateChatInput checks request parameters before any network call.
// Empty prompts, non-positive token limits and out-of-range temperatures
// are caller bugs and must never be retried.
func ValidateChatInput(history []Message, opts *Options) error {
	hasContent := false
	for _, msg := range history {
		if strings.TrimSpace(msg.Content) != "" {
			hasContent = true
			break
		}
	}
	if !hasContent {
		return &InvalidRequestError{Reason: "prompt is empty"}
	}
	if opts.MaxTokens <= 0 {
		return &InvalidRequestError{Reason: "max tokens must be positive"}
	}
	if opts.Temperature < 0 || opts.Temperature > 1 {
		return &InvalidRequestError{Reason: "temperature must be within [0, 1]"}
	}
	return nil
}
