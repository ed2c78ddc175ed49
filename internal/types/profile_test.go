package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfileValidate(t *testing.T) {
	tests := []struct {
		name      string
		profile   UserProfile
		wantError bool
	}{
		{
			name:      "Valid minimal profile",
			profile:   UserProfile{Name: "Jane Doe", Email: "jane@x.com"},
			wantError: false,
		},
		{
			name:      "Missing email",
			profile:   UserProfile{Name: "Jane Doe"},
			wantError: true,
		},
		{
			name:      "Missing name",
			profile:   UserProfile{Email: "jane@x.com"},
			wantError: true,
		},
		{
			name:      "Malformed email",
			profile:   UserProfile{Name: "Jane Doe", Email: "not-an-email"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserProfileJSONKeys(t *testing.T) {
	profile := UserProfile{
		Name:  "Jane Doe",
		Email: "jane@x.com",
		Education: []Education{
			{Degree: "B.Tech Computer Science", Institute: "IIT Delhi", CGPA: "8.5/10", Year: "2024"},
		},
		Leadership: []LeadershipPosition{
			{Title: "Team Lead", Organization: "Student Council", Duration: "Jan 2023 - Dec 2023"},
		},
		Skills: []string{"Go", "SQL"},
	}

	data, err := json.Marshal(&profile)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	// Keys must match the persisted user_profile.json format the editor writes.
	assert.Contains(t, raw, "por")
	assert.Contains(t, raw, "education")
	assert.Contains(t, raw, "skills")

	por := raw["por"].([]any)
	require.Len(t, por, 1)
	assert.Equal(t, "Student Council", por[0].(map[string]any)["org"])
}

func TestJobPostingValidate(t *testing.T) {
	valid := JobPosting{Title: "Backend Engineer", Company: "Acme", Description: "Build APIs"}
	assert.NoError(t, valid.Validate())

	empty := JobPosting{Title: "Backend Engineer", Company: "Acme"}
	assert.Error(t, empty.Validate())
}

func TestGenerationRequestShape(t *testing.T) {
	req := GenerationRequest{
		UserProfile: &UserProfile{Name: "Jane Doe", Email: "jane@x.com"},
		JobRequirements: JobRequirements{
			JobTitle:       "Backend Engineer",
			Company:        "Acme",
			RequiredSkills: "Required Skills: Go, SQL",
		},
	}

	data, err := json.Marshal(&req)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	jobReq := raw["job_requirements"].(map[string]any)
	// The extraction output is carried as one opaque string, not a parsed list.
	assert.Equal(t, "Required Skills: Go, SQL", jobReq["required_skills"])
	assert.Equal(t, "Acme", jobReq["company"])
}
