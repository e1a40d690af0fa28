package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

//go:embed prompts/system-instructions.md
var systemInstructions string

const noExamplesNotice = "_No existing notes found — rely on the format guide above._"

// ContextAssembler builds the model instructions from live project state.
// Nothing is cached: every generation re-reads the overview, the format guide,
// and the newest notes, so edits to project conventions take effect
// immediately.
type ContextAssembler struct {
	cfg *Config
}

func NewContextAssembler(cfg *Config) *ContextAssembler {
	return &ContextAssembler{cfg: cfg}
}

// BuildSystemPrompt concatenates the fixed instruction header with the project
// overview, the format guide, and up to the configured number of recent notes,
// in that order.
func (a *ContextAssembler) BuildSystemPrompt() string {
	overview := readFileOrEmpty(a.cfg.OverviewPath)
	formatGuide := readFileOrEmpty(a.cfg.FormatGuidePath)
	examples := a.loadExampleNotes(a.cfg.ExampleNotes)

	exampleSection := noExamplesNotice
	if len(examples) > 0 {
		blocks := make([]string, 0, len(examples))
		for _, ex := range examples {
			blocks = append(blocks, fmt.Sprintf("### Example: %s\n\n```md\n%s\n```", ex.Name, strings.TrimSpace(ex.Content)))
		}
		exampleSection = strings.Join(blocks, "\n\n")
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(systemInstructions))
	b.WriteString("\n\n---\n\n## Project Overview\n\n")
	b.WriteString(overview)
	b.WriteString("\n\n---\n\n## Note Format Guide\n\n")
	b.WriteString(formatGuide)
	b.WriteString("\n\n---\n\n## Real Note Examples from This Project\n\n")
	b.WriteString(exampleSection)
	return b.String()
}

type exampleNote struct {
	Name    string
	Content string
	modTime time.Time
}

// loadExampleNotes returns the raw markdown of up to limit most-recently
// modified notes from the content store.
func (a *ContextAssembler) loadExampleNotes(limit int) []exampleNote {
	if limit < 1 {
		return nil
	}

	entries, err := os.ReadDir(a.cfg.NotesDir)
	if err != nil {
		return nil
	}

	notes := make([]exampleNote, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		notes = append(notes, exampleNote{Name: entry.Name(), modTime: info.ModTime()})
	}

	sort.Slice(notes, func(i, j int) bool { return notes[i].modTime.After(notes[j].modTime) })
	if len(notes) > limit {
		notes = notes[:limit]
	}

	loaded := notes[:0]
	for _, note := range notes {
		content, err := os.ReadFile(filepath.Join(a.cfg.NotesDir, note.Name))
		if err != nil {
			continue
		}
		note.Content = string(content)
		loaded = append(loaded, note)
	}
	return loaded
}

// readFileOrEmpty is tolerant of absence: a missing overview or format guide
// contributes an empty section instead of failing the generation.
func readFileOrEmpty(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
