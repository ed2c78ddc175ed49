package extractor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompleter returns a canned response or error.
type stubCompleter struct {
	response string
	err      error
	calls    int
}

func (s *stubCompleter) Complete(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestExtractBeforeModelLoaded(t *testing.T) {
	backend := &stubCompleter{response: "ok"}
	service := NewService(backend)

	_, err := service.Extract(context.Background(), "Backend Engineer", "Acme", "Build APIs")
	require.Error(t, err)

	var notReady *NotReadyError
	assert.ErrorAs(t, err, &notReady)
	assert.False(t, service.Ready())
	// The backend must not be touched before load completes.
	assert.Zero(t, backend.calls)
}

func TestExtractEmptyDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
	}{
		{name: "Empty string", description: ""},
		{name: "Whitespace only", description: "   \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &stubCompleter{response: "ok"}
			service := NewService(backend)
			service.MarkReady()

			_, err := service.Extract(context.Background(), "", "", tt.description)
			require.Error(t, err)

			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Zero(t, backend.calls)
		})
	}
}

func TestExtractSuccess(t *testing.T) {
	backend := &stubCompleter{response: `{"Required Skills": "Go, SQL"}`}
	service := NewService(backend)
	service.MarkReady()

	result, err := service.Extract(context.Background(), "Backend Engineer", "Acme", "Build APIs in a compiled language")
	require.NoError(t, err)

	// The completion is passed through verbatim, never parsed.
	assert.Equal(t, `{"Required Skills": "Go, SQL"}`, result.Response)
	assert.Equal(t, "Backend Engineer", result.JobTitle)
	assert.Equal(t, "Acme", result.Company)
	assert.Contains(t, result.Prompt, "Job Title: Backend Engineer")
	assert.Contains(t, result.Prompt, "Company: Acme")
	assert.Contains(t, result.Prompt, "Build APIs in a compiled language")
}

func TestExtractMalformedOutputPassesThrough(t *testing.T) {
	backend := &stubCompleter{response: "not json at all {{{"}
	service := NewService(backend)
	service.MarkReady()

	result, err := service.Extract(context.Background(), "T", "C", "desc")
	require.NoError(t, err)
	assert.Equal(t, "not json at all {{{", result.Response)
}

func TestExtractBackendFailure(t *testing.T) {
	backend := &stubCompleter{err: errors.New("CUDA out of memory")}
	service := NewService(backend)
	service.MarkReady()

	_, err := service.Extract(context.Background(), "T", "C", "desc")
	require.Error(t, err)

	var internalErr *InternalError
	require.ErrorAs(t, err, &internalErr)
	assert.Contains(t, err.Error(), "An error occurred during extraction")
	assert.Contains(t, err.Error(), "CUDA out of memory")
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Backend Engineer", "Acme", "Build APIs")

	assert.True(t, strings.HasPrefix(prompt, "### Instruction:"))
	for _, key := range []string{
		"Core Responsibilities", "Required Skills", "Educational Requirements",
		"Experience Level", "Preferred Qualifications", "Compensation and Benefits",
	} {
		assert.Contains(t, prompt, key)
	}
	assert.Contains(t, prompt, `use "N/A"`)
}

func TestWarmUp(t *testing.T) {
	backend := &stubCompleter{response: "pong"}
	service := NewService(backend)

	err := service.WarmUp(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.True(t, service.Ready())
}

func TestWarmUpExhaustsAttempts(t *testing.T) {
	backend := &stubCompleter{err: errors.New("model still loading")}
	service := NewService(backend)

	err := service.WarmUp(context.Background(), 1, 2)
	require.Error(t, err)
	assert.False(t, service.Ready())
	assert.Equal(t, 2, backend.calls)
}
