package types

import (
	"github.com/go-playground/validator/v10"
)

// JobPosting represents the target job a resume is tailored for.
type JobPosting struct {
	Title       string `json:"job_title" validate:"required,min=1"`
	Company     string `json:"company" validate:"required,min=1"`
	Description string `json:"description" validate:"required,min=1"`
}

// JobRequirements merges the job posting identity with the raw extraction
// output. RequiredSkills carries the extraction service's completion text
// verbatim; it is never parsed into structured fields downstream.
type JobRequirements struct {
	JobTitle       string `json:"job_title"`
	Company        string `json:"company"`
	RequiredSkills string `json:"required_skills"`
}

// GenerationRequest is the combined payload handed to the cloud generation
// model: the candidate profile plus the merged job requirements.
type GenerationRequest struct {
	UserProfile     *UserProfile    `json:"user_profile"`
	JobRequirements JobRequirements `json:"job_requirements"`
}

// Validate validates the JobPosting using the validator.
func (j *JobPosting) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}
