package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const defaultMaxInputBytes = 100 * 1024

// LLMSettings holds the provider selection and credentials for model calls.
// Resolved once at startup; immutable afterwards.
type LLMSettings struct {
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	BaseURL  string `mapstructure:"base_url"`
}

// Config is the full application configuration, built once in main and passed
// by reference into each component. No ambient lookups elsewhere.
type Config struct {
	LLM             LLMSettings `mapstructure:"llm"`
	InboxDir        string      `mapstructure:"inbox_dir"`
	NotesDir        string      `mapstructure:"notes_dir"`
	OverviewPath    string      `mapstructure:"overview_path"`
	FormatGuidePath string      `mapstructure:"format_guide_path"`
	MaxInputBytes   int         `mapstructure:"max_input_bytes"`
	Extensions      []string    `mapstructure:"extensions"`
	ExampleNotes    int         `mapstructure:"example_notes"`
}

// LoadConfig reads configuration from an optional YAML file and the
// environment. Flag overrides are applied by the caller afterwards.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v)
	bindEnvVars(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))

	return cfg, nil
}

// Validate checks the configuration before any processing begins. A missing
// or unknown provider is a startup error, not a per-file error.
func (c *Config) Validate() error {
	if c.LLM.Provider == "" {
		return &ConfigError{
			Field:  "llm.provider",
			Reason: fmt.Sprintf("not set (set LLM_PROVIDER; valid values: %s)", strings.Join(validProviders(), ", ")),
		}
	}
	if _, ok := providerRegistry[Provider(c.LLM.Provider)]; !ok {
		return &ConfigError{
			Field:  "llm.provider",
			Reason: fmt.Sprintf("unknown value %q (valid values: %s)", c.LLM.Provider, strings.Join(validProviders(), ", ")),
		}
	}
	if c.LLM.Model == "" {
		return &ConfigError{Field: "llm.model", Reason: "must not be empty"}
	}
	if c.InboxDir == "" {
		return &ConfigError{Field: "inbox_dir", Reason: "must not be empty"}
	}
	if c.NotesDir == "" {
		return &ConfigError{Field: "notes_dir", Reason: "must not be empty"}
	}
	if c.MaxInputBytes < 1 {
		return &ConfigError{Field: "max_input_bytes", Reason: "must be at least 1"}
	}
	if len(c.Extensions) == 0 {
		return &ConfigError{Field: "extensions", Reason: "must list at least one extension"}
	}
	return nil
}

// ExtensionAllowed reports whether a lowercased file extension (with leading
// dot) is accepted by the dispatcher filter.
func (c *Config) ExtensionAllowed(ext string) bool {
	for _, allowed := range c.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("inbox_dir", "content/inbox")
	v.SetDefault("notes_dir", "content/notes")
	v.SetDefault("overview_path", "README.md")
	v.SetDefault("format_guide_path", "docs/note-format.md")
	v.SetDefault("max_input_bytes", defaultMaxInputBytes)
	v.SetDefault("extensions", []string{".txt", ".md", ".markdown", ".html", ".htm"})
	v.SetDefault("example_notes", 3)
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("llm.provider", "LLM_PROVIDER")
	v.BindEnv("llm.api_key", "LLM_API_KEY")
	v.BindEnv("llm.model", "LLM_MODEL")
	v.BindEnv("llm.base_url", "LLM_BASE_URL")
	v.BindEnv("inbox_dir", "INBOX_DIR")
	v.BindEnv("notes_dir", "NOTES_DIR")
}
