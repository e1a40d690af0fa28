package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Provider identifies an external model service.
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderOpenRouter Provider = "openrouter"
	ProviderOllama     Provider = "ollama"
	ProviderAnthropic  Provider = "anthropic"
	ProviderGemini     Provider = "gemini"
)

// LLMClient abstracts the model call so providers are interchangeable and
// tests can substitute a mock. One request, one plain-text response, no retry.
type LLMClient interface {
	Invoke(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// providerRegistry maps each provider to its client constructor. Each client
// owns its own response-shape validation rule.
var providerRegistry = map[Provider]func(LLMSettings) LLMClient{
	ProviderOpenAI:     func(s LLMSettings) LLMClient { return newOpenAICompatClient(ProviderOpenAI, s) },
	ProviderOpenRouter: func(s LLMSettings) LLMClient { return newOpenAICompatClient(ProviderOpenRouter, s) },
	ProviderOllama:     func(s LLMSettings) LLMClient { return newOpenAICompatClient(ProviderOllama, s) },
	ProviderAnthropic:  func(s LLMSettings) LLMClient { return newAnthropicClient(s) },
	ProviderGemini:     func(s LLMSettings) LLMClient { return newGeminiClient(s) },
}

// NewLLMClient builds the client selected by configuration.
func NewLLMClient(cfg *Config) (LLMClient, error) {
	build, ok := providerRegistry[Provider(cfg.LLM.Provider)]
	if !ok {
		return nil, &ConfigError{
			Field:  "llm.provider",
			Reason: fmt.Sprintf("unknown value %q (valid values: %s)", cfg.LLM.Provider, strings.Join(validProviders(), ", ")),
		}
	}
	return build(cfg.LLM), nil
}

func validProviders() []string {
	names := make([]string, 0, len(providerRegistry))
	for p := range providerRegistry {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}
