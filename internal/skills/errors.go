package skills

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError indicates a transport-level failure reaching the extraction
// service.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("extraction service unreachable: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// ServiceError is a non-2xx response from the extraction service, carrying
// the error message from its JSON envelope.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("extraction service returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("extraction service returned status %d", e.StatusCode)
}

// Unavailable reports whether the service refused because the model has not
// finished loading. This is the only user-retryable condition.
func (e *ServiceError) Unavailable() bool {
	return e.StatusCode == http.StatusServiceUnavailable
}

// IsRetryable reports whether the error is transient: a transport failure
// or a service-unavailable response.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Unavailable()
	}
	return false
}
