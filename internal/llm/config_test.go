package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, DefaultModel, config.Model)
	assert.Nil(t, config.Temperature)
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()

	custom := config.WithModel("gemini-2.5-pro")
	assert.Equal(t, "gemini-2.5-pro", custom.Model)
	// Original is untouched.
	assert.Equal(t, DefaultModel, config.Model)

	same := config.WithModel("")
	assert.Equal(t, DefaultModel, same.Model)
}

func TestNewGeminiClientRequiresAPIKey(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	assert.Error(t, err)
	assert.Nil(t, client)
}
