package skills

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jaswanthpalla/resume-pilot/internal/types"
)

// RetryExtractor is a decorator that retries transient extraction failures
// with exponential backoff before delegating to the wrapped Extractor. The
// default policy is zero retries, matching the single-attempt behavior of
// the original pipeline; deployments opt in through configuration.
type RetryExtractor struct {
	inner      Extractor
	maxRetries int
	baseDelay  time.Duration
}

// NewRetryExtractor wraps an Extractor with retry logic. maxRetries is the
// number of additional attempts after the first failure; baseDelay is the
// delay before the first retry, doubled on each subsequent one.
func NewRetryExtractor(inner Extractor, maxRetries int, baseDelay time.Duration) *RetryExtractor {
	if baseDelay <= 0 {
		baseDelay = 2 * time.Second
	}
	return &RetryExtractor{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

// RequiredSkills attempts the extraction, retrying on transient errors only.
// Validation and internal-error responses fail immediately.
func (r *RetryExtractor) RequiredSkills(ctx context.Context, job types.JobPosting) (string, error) {
	response, err := r.inner.RequiredSkills(ctx, job)
	if err == nil {
		return response, nil
	}

	if !IsRetryable(err) {
		return "", err
	}

	lastErr := err
	delay := r.baseDelay
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		log.Printf("Retrying extraction after transient error (attempt %d/%d, delay %v): %v",
			attempt, r.maxRetries, delay, lastErr)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("extraction retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		response, err = r.inner.RequiredSkills(ctx, job)
		if err == nil {
			return response, nil
		}
		if !IsRetryable(err) {
			return "", err
		}
		lastErr = err
		delay *= 2
	}

	return "", lastErr
}
