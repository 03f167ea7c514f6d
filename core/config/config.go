package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// LLMConfig holds settings for the OpenAI-compatible chat endpoint used for
// summaries and translations.
type LLMConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
}

// Config holds the runtime settings of the CLI host.
type Config struct {
	// Format is the default output format (text, markdown or html).
	Format string `mapstructure:"format"`

	// OutputDir receives written files; empty means the working directory.
	OutputDir string `mapstructure:"output_dir"`

	// Timeout bounds each HTTP fetch.
	Timeout time.Duration `mapstructure:"timeout"`

	// UserAgent is sent with HTTP fetches.
	UserAgent string `mapstructure:"user_agent"`

	// TablesPath optionally points at a YAML file overriding DefaultTables.
	TablesPath string `mapstructure:"tables"`

	// FontPath is a UTF-8 TrueType font for PDF output.
	FontPath string `mapstructure:"font"`

	LLM LLMConfig `mapstructure:"llm"`
}

// SetDefaults registers the default settings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("format", "text")
	v.SetDefault("output_dir", "")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("user_agent", "ContentLens/1.0 (https://github.com/gaurav-prasanna/contentlens)")
	v.SetDefault("tables", "")
	v.SetDefault("font", "")
	v.SetDefault("llm.base_url", "https://api.deepseek.com/v1")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "deepseek-chat")
	v.SetDefault("llm.temperature", 0.7)
}

// Load decodes the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return cfg, nil
}
