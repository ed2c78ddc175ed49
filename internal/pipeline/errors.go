package pipeline

import "fmt"

// ValidationError indicates the profile or job posting failed a
// precondition. It is raised before any network call is made.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// StepError wraps a failure in one pipeline step, identifying which step
// failed while preserving the underlying cause.
type StepError struct {
	State State
	Cause error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.stepName(), e.Cause)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}

func (e *StepError) stepName() string {
	switch e.State {
	case StateFetchingSkills:
		return "fetching required skills"
	case StateGenerating:
		return "generating resume"
	case StateSaving:
		return "saving output"
	default:
		return string(e.State)
	}
}
