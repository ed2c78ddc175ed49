package llm

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Config holds the generation model configuration.
type Config struct {
	Model string
	// Temperature overrides the provider default when set.
	Temperature *float32
}

// DefaultConfig returns the default generation configuration.
func DefaultConfig() *Config {
	return &Config{Model: DefaultModel}
}

// WithModel returns a copy of the config using the given model name.
// An empty name keeps the current model.
func (c *Config) WithModel(model string) *Config {
	out := *c
	if model != "" {
		out.Model = model
	}
	return &out
}
