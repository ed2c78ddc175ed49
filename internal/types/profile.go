// Package types provides type definitions for structured data used throughout the resume-pilot system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// UserProfile represents the candidate's full profile as produced by the
// profile editor and persisted in user_profile.json. It is an immutable
// input for the duration of one generation request.
type UserProfile struct {
	Name     string `json:"name" validate:"required,min=1"`
	Course   string `json:"course,omitempty"`
	Roll     string `json:"roll,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email" validate:"required,email"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`

	Education    []Education          `json:"education,omitempty"`
	Experience   []Experience         `json:"experience,omitempty"`
	Projects     []Project            `json:"projects,omitempty"`
	Skills       []string             `json:"skills,omitempty"`
	Leadership   []LeadershipPosition `json:"por,omitempty"`
	Achievements []string             `json:"achievements,omitempty"`
}

// Education represents a single education entry.
type Education struct {
	Degree    string `json:"degree"`
	Institute string `json:"institute"`
	CGPA      string `json:"cgpa,omitempty"`
	Year      string `json:"year,omitempty"`
}

// Experience represents a single work experience entry.
type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// Project represents a single project entry.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// LeadershipPosition represents a position of responsibility entry.
// The json key "por" on the parent slice matches the persisted profile format.
type LeadershipPosition struct {
	Title        string `json:"title"`
	Organization string `json:"org"`
	Duration     string `json:"duration,omitempty"`
}

// Validate validates the UserProfile using the validator.
func (p *UserProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
