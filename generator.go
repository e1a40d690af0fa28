package main

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// NoteGenerator orchestrates prompt assembly and the model call, returning
// validated markdown for a single input. It adds no error kinds of its own;
// provider and configuration errors pass through unchanged.
type NoteGenerator struct {
	llm       LLMClient
	assembler *ContextAssembler
}

func NewNoteGenerator(llm LLMClient, assembler *ContextAssembler) (*NoteGenerator, error) {
	if llm == nil {
		return nil, fmt.Errorf("llm client is required")
	}
	if assembler == nil {
		return nil, fmt.Errorf("context assembler is required")
	}
	return &NoteGenerator{llm: llm, assembler: assembler}, nil
}

// Generate produces the markdown note for one inbox file. The raw text is
// framed between explicit markers so the model cannot lose the boundary
// between instructions and content.
func (g *NoteGenerator) Generate(ctx context.Context, filename, rawText string) (string, error) {
	systemPrompt := g.assembler.BuildSystemPrompt()
	userMessage := fmt.Sprintf("Original filename: %s\n\n--- BEGIN CONTENT ---\n%s\n--- END CONTENT ---", filename, rawText)

	raw, err := g.llm.Invoke(ctx, systemPrompt, userMessage)
	if err != nil {
		return "", err
	}

	return stripMarkdownFence(strings.TrimSpace(raw)), nil
}

var markdownFence = regexp.MustCompile("(?s)^```(?:markdown)?\n(.*?)```$")

// stripMarkdownFence removes a single outer code fence the model might add
// despite instructions. Unfenced text passes through unchanged.
func stripMarkdownFence(text string) string {
	m := markdownFence.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	return strings.TrimSpace(m[1])
}
