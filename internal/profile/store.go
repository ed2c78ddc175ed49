// Package profile persists the candidate's profile as JSON, the same
// document the external profile editor reads and writes.
package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jaswanthpalla/resume-pilot/internal/schemas"
	"github.com/jaswanthpalla/resume-pilot/internal/types"
)

// DefaultPath is the well-known profile filename.
const DefaultPath = "user_profile.json"

// NotFoundError indicates no profile has been saved yet.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no profile found at %s", e.Path)
}

// Store reads and writes the profile document at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store. An empty path uses the well-known filename.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and decodes the persisted profile.
func (s *Store) Load() (*types.UserProfile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: s.path}
		}
		return nil, fmt.Errorf("failed to read profile %s: %w", s.path, err)
	}

	var profile types.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", s.path, err)
	}
	return &profile, nil
}

// Save validates and writes the profile as indented JSON, overwriting any
// previous document.
func (s *Store) Save(profile *types.UserProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return s.SaveRaw(data)
}

// SaveRaw validates raw profile JSON against the profile schema and writes
// it verbatim. Used by the API surface, which receives the editor's
// document untouched.
func (s *Store) SaveRaw(data []byte) error {
	if err := schemas.ValidateUserProfile(data); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", s.path, err)
	}
	return nil
}
