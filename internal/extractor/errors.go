package extractor

import "fmt"

// ValidationError indicates a caller-supplied parameter failed a precondition.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotReadyError indicates the extraction model has not finished loading.
// It is a distinct, retryable condition from validation failure.
type NotReadyError struct{}

func (e *NotReadyError) Error() string {
	return "Model not loaded. Please wait for the server to initialize."
}

// InternalError wraps an unexpected failure during generation, preserving
// the underlying message.
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("An error occurred during extraction: %v", e.Cause)
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}
