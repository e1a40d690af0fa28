package main

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// geminiClient implements LLMClient via the official Gemini SDK.
type geminiClient struct {
	apiKey string
	model  string
}

func newGeminiClient(settings LLMSettings) *geminiClient {
	return &geminiClient{
		apiKey: settings.APIKey,
		model:  settings.Model,
	}
}

func (c *geminiClient) Invoke(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", &ProviderCallError{Provider: ProviderGemini, Err: err}
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(userMessage), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	})
	if err != nil {
		return "", &ProviderCallError{Provider: ProviderGemini, Err: err}
	}

	return extractResolvedText(resp.Text())
}

// extractResolvedText validates the SDK's already-flattened text output.
func extractResolvedText(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w (%s)", ErrEmptyResponse, ProviderGemini)
	}
	return text, nil
}
