package factory

import (
	"fmt"
	"strings"

	"ai-docchat-be/pkg/llm"
	"ai-docchat-be/pkg/llm/anthropic"
	"ai-docchat-be/pkg/llm/gemini"
	"ai-docchat-be/pkg/llm/openai"
)

// aliases maps the short provider names users type to canonical providers.
var aliases = map[string]string{
	"claude":    "anthropic",
	"anthropic": "anthropic",
	"gpt":       "openai",
	"openai":    "openai",
	"gemini":    "gemini",
	"google":    "gemini",
}

// Config carries everything needed to construct a concrete provider.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Retry   llm.RetryConfig
}

// Resolve normalizes a provider name through the alias table. Unknown names
// fail before any client is constructed or network touched.
func Resolve(providerName string) (string, error) {
	canonical, ok := aliases[strings.ToLower(strings.TrimSpace(providerName))]
	if !ok {
		return "", fmt.Errorf("%w: %q", llm.ErrUnsupportedProvider, providerName)
	}
	return canonical, nil
}

// NewLLMProvider builds the requested provider wrapped in the shared retry
// machine. Every variant gets the exact same backoff contract.
func NewLLMProvider(providerName string, cfg Config) (llm.LLMProvider, error) {
	canonical, err := Resolve(providerName)
	if err != nil {
		return nil, err
	}

	var inner llm.LLMProvider
	switch canonical {
	case "anthropic":
		inner = anthropic.NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case "openai":
		inner = openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case "gemini":
		inner = gemini.NewGeminiProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("%w: %q", llm.ErrUnsupportedProvider, providerName)
	}

	return llm.NewRetrier(inner, cfg.Retry), nil
}
