package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaswanthpalla/resume-pilot/internal/schemas"
	"github.com/jaswanthpalla/resume-pilot/internal/types"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "user_profile.json"))

	saved := &types.UserProfile{
		Name:   "Jane Doe",
		Email:  "jane@x.com",
		Skills: []string{"Go", "SQL"},
		Leadership: []types.LeadershipPosition{
			{Title: "Team Lead", Organization: "Student Council", Duration: "2023"},
		},
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadMissingProfile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "user_profile.json"))

	_, err := store.Load()
	require.Error(t, err)

	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestSaveInvalidProfileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_profile.json")
	store := NewStore(path)

	err := store.SaveRaw([]byte(`{"name": "Jane Doe"}`)) // missing email
	require.Error(t, err)

	var ve *schemas.ValidationError
	assert.ErrorAs(t, err, &ve)

	// Nothing may be written when validation fails.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveRawPreservesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_profile.json")
	store := NewStore(path)

	doc := []byte(`{"name": "Jane Doe", "email": "jane@x.com", "skills": ["Go"]}`)
	require.NoError(t, store.SaveRaw(doc))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, written)
}

func TestLoadCorruptProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_profile.json")
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0o644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}
