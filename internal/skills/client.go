// Package skills provides the orchestrator-side client for the extraction
// service, which converts a job posting into a textual summary of required
// skills and other job attributes.
package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jaswanthpalla/resume-pilot/internal/types"
)

// DefaultBaseURL is the local extraction server address.
const DefaultBaseURL = "http://127.0.0.1:5000"

// DefaultTimeout bounds one extraction request end to end.
const DefaultTimeout = 60 * time.Second

// degradedResponse is returned when the service answers 200 but the
// envelope is missing success/response fields. The generation request still
// proceeds with this string as the skills payload.
const degradedResponse = "Skills extraction failed"

// Extractor fetches the required-skills text for a job posting.
type Extractor interface {
	RequiredSkills(ctx context.Context, job types.JobPosting) (string, error)
}

// extractEnvelope mirrors the extraction service's 200 response body.
type extractEnvelope struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Client calls the extraction service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an extraction client. An empty baseURL uses the local
// default; a nil httpClient gets one with the default timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// RequiredSkills calls GET /extract and returns the raw extraction text.
// Transport failures map to NetworkError, non-2xx statuses to ServiceError.
// A 200 response without the expected fields degrades to a placeholder
// string rather than failing the run.
func (c *Client) RequiredSkills(ctx context.Context, job types.JobPosting) (string, error) {
	params := url.Values{
		"job_title":       {job.Title},
		"company":         {job.Company},
		"job_description": {job.Description},
	}

	reqURL := c.baseURL + "/extract?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("create extraction request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope extractEnvelope
		_ = json.Unmarshal(body, &envelope)
		return "", &ServiceError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}

	var envelope extractEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return degradedResponse, nil
	}
	if !envelope.Success || envelope.Response == "" {
		return degradedResponse, nil
	}

	return envelope.Response, nil
}
