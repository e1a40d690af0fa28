package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
)

const anthropicMaxTokens = 4096

// anthropicClient implements LLMClient via llmkit's Anthropic bindings.
type anthropicClient struct {
	apiKey string
	model  string
}

func newAnthropicClient(settings LLMSettings) *anthropicClient {
	return &anthropicClient{
		apiKey: settings.APIKey,
		model:  settings.Model,
	}
}

func (c *anthropicClient) Invoke(_ context.Context, systemPrompt, userMessage string) (string, error) {
	settings := types.RequestSettings{
		Model:     c.model,
		MaxTokens: anthropicMaxTokens,
	}

	resp, err := anthropic.PromptWithSettings(systemPrompt, userMessage, "", c.apiKey, settings)
	if err != nil {
		return "", &ProviderCallError{Provider: ProviderAnthropic, Err: err}
	}

	return extractBlockText(resp.Content)
}

// extractBlockText selects the first content block carrying non-empty text.
// Non-text blocks (tool use and the like) are skipped.
func extractBlockText(blocks []types.Content) (string, error) {
	for _, block := range blocks {
		if strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("%w (%s)", ErrEmptyResponse, ProviderAnthropic)
}
