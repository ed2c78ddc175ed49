package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jaswanthpalla/resume-pilot/internal/db"
	"github.com/jaswanthpalla/resume-pilot/internal/output"
	"github.com/jaswanthpalla/resume-pilot/internal/pipeline"
	"github.com/jaswanthpalla/resume-pilot/internal/profile"
	"github.com/jaswanthpalla/resume-pilot/internal/schemas"
	"github.com/jaswanthpalla/resume-pilot/internal/skills"
	"github.com/jaswanthpalla/resume-pilot/internal/types"
)

// GenerateRequest represents the request body for /generate. When
// user_profile is omitted the profile stored on the server is used.
type GenerateRequest struct {
	UserProfile *types.UserProfile `json:"user_profile,omitempty"`
	Job         types.JobPosting   `json:"job"`
}

// GenerateResponse represents the response for /generate
type GenerateResponse struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// RunStatusResponse represents the response for /runs/{id}
type RunStatusResponse struct {
	RunID     string `json:"run_id"`
	Company   string `json:"company"`
	JobTitle  string `json:"job_title"`
	State     string `json:"state"`
	Percent   int    `json:"percent"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	CreatedAt string `json:"created_at"`
}

// runRecord tracks one generation run in memory.
type runRecord struct {
	ID          uuid.UUID
	Company     string
	JobTitle    string
	State       pipeline.State
	Percent     int
	Message     string
	Error       string
	Resume      string
	CoverLetter string
	CreatedAt   time.Time
}

// runRegistry is the in-memory run store. The database, when configured,
// additionally persists runs across restarts.
type runRegistry struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*runRecord
}

func newRunRegistry() *runRegistry {
	return &runRegistry{runs: make(map[uuid.UUID]*runRecord)}
}

func (r *runRegistry) create(id uuid.UUID, company, jobTitle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[id] = &runRecord{
		ID:        id,
		Company:   company,
		JobTitle:  jobTitle,
		State:     pipeline.StateIdle,
		CreatedAt: time.Now().UTC(),
	}
}

func (r *runRegistry) progress(id uuid.UUID, event pipeline.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.runs[id]
	if !ok {
		return
	}
	rec.Percent = event.Percent
	rec.Message = event.Message
	// Done is recorded by complete() together with the artifacts, so a
	// run never reads as done before its artifacts are servable.
	if event.State != pipeline.StateDone {
		rec.State = event.State
	}
}

func (r *runRegistry) complete(id uuid.UUID, result *pipeline.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.runs[id]
	if !ok {
		return
	}
	resume, coverLetter, err := output.Split(result.Output)
	if err == nil {
		rec.Resume = resume
		rec.CoverLetter = coverLetter
	}
	rec.State = pipeline.StateDone
	rec.Percent = 100
}

func (r *runRegistry) fail(id uuid.UUID, runErr error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.runs[id]
	if !ok {
		return
	}
	rec.State = pipeline.StateFailed
	rec.Error = runErr.Error()
}

// get returns a copy so callers never race with updates.
func (r *runRegistry) get(id uuid.UUID) (runRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.runs[id]
	if !ok {
		return runRecord{}, false
	}
	return *rec, true
}

// decodeGenerateRequest parses the body and resolves the profile, falling
// back to the stored one when the request carries none.
func (s *Server) decodeGenerateRequest(r *http.Request) (*types.UserProfile, types.JobPosting, error) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, types.JobPosting{}, &pipeline.ValidationError{Message: "invalid request body", Cause: err}
	}

	userProfile := req.UserProfile
	if userProfile == nil {
		stored, err := s.profiles.Load()
		if err != nil {
			var nf *profile.NotFoundError
			if errors.As(err, &nf) {
				return nil, types.JobPosting{}, &pipeline.ValidationError{Message: "no user profile on record; include user_profile or PUT /profile first"}
			}
			return nil, types.JobPosting{}, err
		}
		userProfile = stored
	}

	if err := userProfile.Validate(); err != nil {
		return nil, types.JobPosting{}, &pipeline.ValidationError{Message: "incomplete user profile", Cause: err}
	}
	if err := req.Job.Validate(); err != nil {
		return nil, types.JobPosting{}, &pipeline.ValidationError{Message: "incomplete job information", Cause: err}
	}
	return userProfile, req.Job, nil
}

func (s *Server) pipelineOptions(runID uuid.UUID) pipeline.Options {
	return pipeline.Options{
		Extractor:    s.extractor,
		Generator:    s.generator,
		TemplatePath: s.cfg.PromptTemplate,
		Output:       s.cfg.Output,
		Database:     s.db,
		RunID:        runID,
	}
}

// handleGenerate starts a generation run in the background
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	userProfile, job, err := s.decodeGenerateRequest(r)
	if err != nil {
		s.requestError(w, err)
		return
	}

	if !s.busy.TryAcquire(1) {
		s.errorResponse(w, http.StatusConflict, "A generation run is already in progress")
		return
	}

	runID := s.registerRun(r.Context(), job)
	log.Printf("Starting generation run %s", runID)

	go func() {
		defer s.busy.Release(1)
		ctx := context.Background()

		opts := s.pipelineOptions(runID)
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			s.runs.progress(runID, event)
		}

		result, err := pipeline.Generate(ctx, userProfile, job, opts)
		if err != nil {
			log.Printf("Generation run %s failed: %v", runID, err)
			s.runs.fail(runID, err)
			s.finishRun(ctx, runID, db.StatusFailed, err.Error())
			return
		}
		s.runs.complete(runID, result)
		s.finishRun(ctx, runID, db.StatusCompleted, "")
	}()

	s.jsonResponse(w, http.StatusAccepted, GenerateResponse{
		RunID:  runID.String(),
		Status: "started",
	})
}

// handleGenerateStream runs a generation synchronously and streams progress
// via SSE
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	userProfile, job, err := s.decodeGenerateRequest(r)
	if err != nil {
		s.requestError(w, err)
		return
	}

	if !s.busy.TryAcquire(1) {
		s.errorResponse(w, http.StatusConflict, "A generation run is already in progress")
		return
	}
	defer s.busy.Release(1)

	stream, err := newEventStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	runID := s.registerRun(r.Context(), job)
	log.Printf("Starting streaming generation run %s", runID)

	opts := s.pipelineOptions(runID)
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		s.runs.progress(runID, event)
		if err := stream.Progress(event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	}

	result, err := pipeline.Generate(r.Context(), userProfile, job, opts)
	if err != nil {
		log.Printf("Generation run %s failed: %v", runID, err)
		s.runs.fail(runID, err)
		s.finishRun(r.Context(), runID, db.StatusFailed, err.Error())
		stream.Fail(err.Error())
		return
	}
	s.runs.complete(runID, result)
	s.finishRun(r.Context(), runID, db.StatusCompleted, "")
	stream.Complete(runID)
}

// registerRun records a new run in memory and, when configured, in the
// database. The database-assigned ID wins so /runs/{id} lookups survive a
// restart.
func (s *Server) registerRun(ctx context.Context, job types.JobPosting) uuid.UUID {
	runID := uuid.New()
	if s.db != nil {
		if id, err := s.db.CreateRun(ctx, job.Company, job.Title); err != nil {
			log.Printf("Warning: failed to persist run: %v", err)
		} else {
			runID = id
		}
	}
	s.runs.create(runID, job.Company, job.Title)
	return runID
}

func (s *Server) finishRun(ctx context.Context, runID uuid.UUID, status, errMessage string) {
	if s.db == nil {
		return
	}
	if err := s.db.CompleteRun(ctx, runID, status, errMessage); err != nil {
		log.Printf("Warning: failed to mark run %s %s: %v", runID, status, err)
	}
}

// handleRunStatus returns the state of a generation run
func (s *Server) handleRunStatus(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	if rec, ok := s.runs.get(runID); ok {
		s.jsonResponse(w, http.StatusOK, RunStatusResponse{
			RunID:     rec.ID.String(),
			Company:   rec.Company,
			JobTitle:  rec.JobTitle,
			State:     string(rec.State),
			Percent:   rec.Percent,
			Message:   rec.Message,
			Error:     rec.Error,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		})
		return
	}

	if s.db != nil {
		run, err := s.db.GetRun(r.Context(), runID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		if run != nil {
			s.jsonResponse(w, http.StatusOK, RunStatusResponse{
				RunID:     run.ID.String(),
				Company:   run.Company,
				JobTitle:  run.JobTitle,
				State:     stateForStatus(run.Status),
				Percent:   percentForStatus(run.Status),
				Error:     run.Error,
				CreatedAt: run.CreatedAt.Format(time.RFC3339),
			})
			return
		}
	}

	s.errorResponse(w, http.StatusNotFound, "Run not found")
}

// handleRunResume serves the generated LaTeX resume
func (s *Server) handleRunResume(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, db.StepResumeTex, "application/x-tex")
}

// handleRunCoverLetter serves the generated cover letter
func (s *Server) handleRunCoverLetter(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, db.StepCoverLetter, "text/plain; charset=utf-8")
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, step, contentType string) {
	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	if rec, ok := s.runs.get(runID); ok && rec.State == pipeline.StateDone {
		content := rec.Resume
		if step == db.StepCoverLetter {
			content = rec.CoverLetter
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(content))
		return
	}

	if s.db != nil {
		artifact, err := s.db.GetArtifact(r.Context(), runID, step)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		if artifact != nil {
			w.Header().Set("Content-Type", contentType)
			_, _ = w.Write([]byte(artifact.Content))
			return
		}
	}

	s.errorResponse(w, http.StatusNotFound, "Artifact not found")
}

// handleGetProfile returns the stored user profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	stored, err := s.profiles.Load()
	if err != nil {
		var nf *profile.NotFoundError
		if errors.As(err, &nf) {
			s.errorResponse(w, http.StatusNotFound, "No user profile on record")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

// handlePutProfile validates and stores a user profile document
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.profiles.SaveRaw(body); err != nil {
		var verr *schemas.ValidationError
		if errors.As(err, &verr) {
			s.jsonResponse(w, http.StatusBadRequest, map[string]any{
				"error":  "Profile failed validation",
				"fields": verr.Errors,
			})
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) parseRunID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	runID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return uuid.Nil, false
	}
	return runID, true
}

// requestError maps request-phase failures to status codes. Pipeline errors
// from a background run surface through /runs/{id} instead.
func (s *Server) requestError(w http.ResponseWriter, err error) {
	var verr *pipeline.ValidationError
	if errors.As(err, &verr) {
		s.errorResponse(w, http.StatusBadRequest, verr.Error())
		return
	}
	var serr *skills.ServiceError
	if errors.As(err, &serr) && serr.Unavailable() {
		s.errorResponse(w, http.StatusServiceUnavailable, serr.Error())
		return
	}
	s.errorResponse(w, http.StatusInternalServerError, err.Error())
}

func stateForStatus(status string) string {
	switch status {
	case db.StatusCompleted:
		return string(pipeline.StateDone)
	case db.StatusFailed:
		return string(pipeline.StateFailed)
	default:
		return string(pipeline.StateGenerating)
	}
}

func percentForStatus(status string) int {
	if status == db.StatusCompleted {
		return 100
	}
	return 0
}
