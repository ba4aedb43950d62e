package factory

import (
	"errors"
	"testing"

	"ai-docchat-be/pkg/llm"
)

func TestResolveAliases(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"claude", "anthropic"},
		{"anthropic", "anthropic"},
		{"gpt", "openai"},
		{"openai", "openai"},
		{"gemini", "gemini"},
		{"google", "gemini"},
		{"Claude", "anthropic"},
		{"  OPENAI  ", "openai"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Resolve(tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveUnknownProvider(t *testing.T) {
	for _, name := range []string{"", "llama", "bard"} {
		_, err := Resolve(name)
		if !errors.Is(err, llm.ErrUnsupportedProvider) {
			t.Errorf("Resolve(%q) error = %v, want ErrUnsupportedProvider", name, err)
		}
	}
}

func TestNewLLMProviderUnknown(t *testing.T) {
	_, err := NewLLMProvider("definitely-not-real", Config{APIKey: "k"})
	if !errors.Is(err, llm.ErrUnsupportedProvider) {
		t.Errorf("error = %v, want ErrUnsupportedProvider", err)
	}
}

func TestNewLLMProviderWrapsWithRetrier(t *testing.T) {
	provider, err := NewLLMProvider("claude", Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewLLMProvider() error = %v", err)
	}
	if _, ok := provider.(*llm.Retrier); !ok {
		t.Errorf("provider type = %T, want *llm.Retrier", provider)
	}
}
