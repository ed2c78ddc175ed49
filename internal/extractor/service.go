// Package extractor implements the job-information extraction service: a
// thin HTTP wrapper around a fine-tuned causal language model that turns a
// job description into a structured-looking text summary of requirements.
package extractor

import (
	"context"
	"log"
	"strings"
	"sync/atomic"
	"time"
)

// Result is the outcome of one extraction call. Response carries the raw
// model completion; downstream consumers treat it as an opaque string.
type Result struct {
	Prompt   string
	Response string
	JobTitle string
	Company  string
}

// Service owns the model backend and its readiness state. It is stateless
// per call aside from the one-time warm-up at process start.
type Service struct {
	backend Completer
	ready   atomic.Bool
}

// NewService creates an extraction service over the given backend. The
// service reports not-ready until WarmUp (or MarkReady) succeeds.
func NewService(backend Completer) *Service {
	return &Service{backend: backend}
}

// Ready reports whether the model has finished loading.
func (s *Service) Ready() bool {
	return s.ready.Load()
}

// MarkReady forces the ready state. Exposed for tests and for backends with
// no meaningful warm-up.
func (s *Service) MarkReady() {
	s.ready.Store(true)
}

// WarmUp probes the backend until a trivial completion succeeds, then marks
// the service ready. It blocks until success, failure of the context, or
// the retry interval elapsing maxAttempts times; a zero maxAttempts retries
// until the context is done.
func (s *Service) WarmUp(ctx context.Context, interval time.Duration, maxAttempts int) error {
	if interval <= 0 {
		interval = 5 * time.Second
	}

	attempt := 0
	for {
		attempt++
		_, err := s.backend.Complete(ctx, "ping")
		if err == nil {
			s.ready.Store(true)
			log.Printf("Model loaded successfully after %d warm-up attempt(s)", attempt)
			return nil
		}

		log.Printf("Warm-up attempt %d failed: %v", attempt, err)
		if maxAttempts > 0 && attempt >= maxAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// Extract runs one extraction. The job description must be non-empty after
// trimming; the model must be loaded. The completion text is returned
// verbatim with no parsing or validation.
func (s *Service) Extract(ctx context.Context, jobTitle, company, jobDescription string) (*Result, error) {
	if !s.ready.Load() {
		return nil, &NotReadyError{}
	}

	if strings.TrimSpace(jobDescription) == "" {
		return nil, &ValidationError{Message: "job_description parameter is required"}
	}

	prompt := BuildPrompt(jobTitle, company, jobDescription)

	log.Printf("Processing job extraction request for %q at %q", jobTitle, company)

	response, err := s.backend.Complete(ctx, prompt)
	if err != nil {
		return nil, &InternalError{Cause: err}
	}

	log.Printf("Job extraction completed successfully")

	return &Result{
		Prompt:   prompt,
		Response: response,
		JobTitle: jobTitle,
		Company:  company,
	}, nil
}
