// Package prompts loads the generation prompt template and fills its
// placeholders with the request payload.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"strings"

	"github.com/jaswanthpalla/resume-pilot/internal/types"
)

// DefaultTemplatePath is the editable template file looked up at runtime.
const DefaultTemplatePath = "prompt_template.txt"

// Placeholder tokens substituted into the template.
const (
	PlaceholderUserProfile     = "<<USER_PROFILE>>"
	PlaceholderJobRequirements = "<<JOB_REQUIREMENTS>>"
)

// defaultTemplate is the built-in fallback used when the template file is
// missing. It predates the placeholder tokens and contains none of them, so
// substitution is a no-op on this path; the output still generates but
// without the merged payload embedded. Kept as-is to match the original
// fallback behavior.
//
//go:embed default_template.txt
var defaultTemplate string

// Load reads the prompt template from path, falling back to the built-in
// default when the file does not exist. Any other read failure is returned.
func Load(path string) (string, error) {
	if path == "" {
		path = DefaultTemplatePath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultTemplate, nil
		}
		return "", fmt.Errorf("failed to read prompt template %s: %w", path, err)
	}
	return string(data), nil
}

// Fill substitutes the user-profile and job-requirements placeholders with
// indented JSON serializations of the request payload.
func Fill(template string, req *types.GenerationRequest) (string, error) {
	profileJSON, err := json.MarshalIndent(req.UserProfile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal user profile: %w", err)
	}

	requirementsJSON, err := json.MarshalIndent(req.JobRequirements, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal job requirements: %w", err)
	}

	filled := strings.ReplaceAll(template, PlaceholderUserProfile, string(profileJSON))
	filled = strings.ReplaceAll(filled, PlaceholderJobRequirements, string(requirementsJSON))
	return filled, nil
}

// DefaultTemplate exposes the embedded fallback template.
func DefaultTemplate() string {
	return defaultTemplate
}
