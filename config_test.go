package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "content/inbox", cfg.InboxDir)
	assert.Equal(t, "content/notes", cfg.NotesDir)
	assert.Equal(t, "README.md", cfg.OverviewPath)
	assert.Equal(t, "docs/note-format.md", cfg.FormatGuidePath)
	assert.Equal(t, defaultMaxInputBytes, cfg.MaxInputBytes)
	assert.Equal(t, 3, cfg.ExampleNotes)
	assert.Contains(t, cfg.Extensions, ".txt")
	assert.Contains(t, cfg.Extensions, ".html")
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL", "claude-sonnet-4-20250514")
	t.Setenv("LLM_BASE_URL", "https://proxy.internal/v1")
	t.Setenv("INBOX_DIR", "drop/here")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	// Provider value is normalized.
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.LLM.Model)
	assert.Equal(t, "https://proxy.internal/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "drop/here", cfg.InboxDir)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "llm:\n  provider: ollama\n  model: llama3\ninbox_dir: inbox\nmax_input_bytes: 2048\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "llama3", cfg.LLM.Model)
	assert.Equal(t, "inbox", cfg.InboxDir)
	assert.Equal(t, 2048, cfg.MaxInputBytes)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing provider", func(c *Config) { c.LLM.Provider = "" }, "llm.provider"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "grok" }, `unknown value "grok"`},
		{"missing model", func(c *Config) { c.LLM.Model = "" }, "llm.model"},
		{"missing inbox", func(c *Config) { c.InboxDir = "" }, "inbox_dir"},
		{"missing notes dir", func(c *Config) { c.NotesDir = "" }, "notes_dir"},
		{"bad size ceiling", func(c *Config) { c.MaxInputBytes = 0 }, "max_input_bytes"},
		{"no extensions", func(c *Config) { c.Extensions = nil }, "extensions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigValidateNamesValidProviders(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM.Provider = "grok"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic, gemini, ollama, openai, openrouter")
}

func TestExtensionAllowed(t *testing.T) {
	cfg := testConfig(t)
	assert.True(t, cfg.ExtensionAllowed(".txt"))
	assert.True(t, cfg.ExtensionAllowed(".markdown"))
	assert.False(t, cfg.ExtensionAllowed(".pdf"))
	assert.False(t, cfg.ExtensionAllowed(""))
}
