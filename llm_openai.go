package main

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// defaultBaseURLs holds the well-known endpoints for providers that speak the
// chat-completions protocol but are not api.openai.com.
var defaultBaseURLs = map[Provider]string{
	ProviderOpenRouter: "https://openrouter.ai/api/v1",
	ProviderOllama:     "http://localhost:11434/v1",
}

// openAICompatClient implements LLMClient for openai, openrouter, and ollama
// using the official openai-go SDK (chat completions).
type openAICompatClient struct {
	provider Provider
	model    string
	opts     []option.RequestOption
}

func newOpenAICompatClient(provider Provider, settings LLMSettings) *openAICompatClient {
	apiKey := settings.APIKey
	if apiKey == "" {
		// ollama ignores the key but the SDK requires a non-empty string
		apiKey = "ollama"
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}

	baseURL := settings.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURLs[provider]
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &openAICompatClient{
		provider: provider,
		model:    settings.Model,
		opts:     opts,
	}
}

func (c *openAICompatClient) Invoke(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	client := openai.NewClient(c.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userMessage),
		},
	})
	if err != nil {
		return "", &ProviderCallError{Provider: c.provider, Err: err}
	}

	return extractChatCompletionText(c.provider, resp)
}

// extractChatCompletionText keeps the first choice's message content, which
// must be non-empty after trimming.
func extractChatCompletionText(provider Provider, resp *openai.ChatCompletion) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w (%s)", ErrEmptyResponse, provider)
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w (%s)", ErrEmptyResponse, provider)
	}
	return content, nil
}
