// Package config loads the resume-pilot configuration from an optional YAML
// file plus environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jaswanthpalla/resume-pilot/internal/llm"
	"github.com/jaswanthpalla/resume-pilot/internal/output"
	"github.com/jaswanthpalla/resume-pilot/internal/prompts"
	"github.com/jaswanthpalla/resume-pilot/internal/skills"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "config.yaml"

// Config is the root configuration for resume-pilot.
type Config struct {
	Extractor ExtractorConfig
	Gemini    GeminiConfig
	Output    output.Paths
	// PromptTemplate is the path of the editable generation prompt.
	PromptTemplate string
	// DatabaseURL enables PostgreSQL run persistence when non-empty.
	DatabaseURL string
}

// ExtractorConfig controls the extraction-service client: where it lives
// and how patient the orchestrator is with it. Timeout and retry policy are
// explicit here rather than left to platform defaults.
type ExtractorConfig struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// GeminiConfig controls the cloud generation call.
type GeminiConfig struct {
	Model  string
	APIKey string // expanded from env by Load, never read from the file
}

// rawConfig is used for YAML unmarshaling (snake_case fields, durations as strings).
type rawConfig struct {
	Extractor struct {
		BaseURL        string `yaml:"base_url"`
		Timeout        string `yaml:"timeout"`
		MaxRetries     int    `yaml:"max_retries"`
		RetryBaseDelay string `yaml:"retry_base_delay"`
	} `yaml:"extractor"`
	Gemini struct {
		Model string `yaml:"model"`
	} `yaml:"gemini"`
	Output struct {
		ResumePath      string `yaml:"resume_path"`
		CoverLetterPath string `yaml:"cover_letter_path"`
	} `yaml:"output"`
	PromptTemplate string `yaml:"prompt_template"`
}

// Default returns the configuration used when no file and no env overrides
// are present.
func Default() *Config {
	return &Config{
		Extractor: ExtractorConfig{
			BaseURL:        skills.DefaultBaseURL,
			Timeout:        skills.DefaultTimeout,
			MaxRetries:     0,
			RetryBaseDelay: 2 * time.Second,
		},
		Gemini: GeminiConfig{
			Model: llm.DefaultModel,
		},
		Output:         output.DefaultPaths(),
		PromptTemplate: prompts.DefaultTemplatePath,
	}
}

// Load reads the configuration from path, applying defaults for anything
// unset and environment overrides on top. A missing file is not an error;
// a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults plus env only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		var raw rawConfig
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if err := cfg.applyFile(&raw); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyFile merges non-zero file values into the config.
func (c *Config) applyFile(raw *rawConfig) error {
	if raw.Extractor.BaseURL != "" {
		c.Extractor.BaseURL = raw.Extractor.BaseURL
	}
	if raw.Extractor.Timeout != "" {
		d, err := time.ParseDuration(raw.Extractor.Timeout)
		if err != nil {
			return fmt.Errorf("extractor.timeout: %w", err)
		}
		c.Extractor.Timeout = d
	}
	if raw.Extractor.MaxRetries > 0 {
		c.Extractor.MaxRetries = raw.Extractor.MaxRetries
	}
	if raw.Extractor.RetryBaseDelay != "" {
		d, err := time.ParseDuration(raw.Extractor.RetryBaseDelay)
		if err != nil {
			return fmt.Errorf("extractor.retry_base_delay: %w", err)
		}
		c.Extractor.RetryBaseDelay = d
	}
	if raw.Gemini.Model != "" {
		c.Gemini.Model = raw.Gemini.Model
	}
	if raw.Output.ResumePath != "" {
		c.Output.Resume = raw.Output.ResumePath
	}
	if raw.Output.CoverLetterPath != "" {
		c.Output.CoverLetter = raw.Output.CoverLetterPath
	}
	if raw.PromptTemplate != "" {
		c.PromptTemplate = raw.PromptTemplate
	}
	return nil
}

// applyEnv expands environment overrides and secrets.
func (c *Config) applyEnv() {
	if v := os.Getenv("EXTRACTOR_URL"); v != "" {
		c.Extractor.BaseURL = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.Gemini.Model = v
	}
	c.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	c.DatabaseURL = os.Getenv("DATABASE_URL")
}
