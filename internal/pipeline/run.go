// Package pipeline provides the high-level orchestration for one resume and
// cover-letter generation request: skills extraction, prompt assembly, cloud
// generation, and output persistence.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jaswanthpalla/resume-pilot/internal/db"
	"github.com/jaswanthpalla/resume-pilot/internal/llm"
	"github.com/jaswanthpalla/resume-pilot/internal/output"
	"github.com/jaswanthpalla/resume-pilot/internal/prompts"
	"github.com/jaswanthpalla/resume-pilot/internal/skills"
	"github.com/jaswanthpalla/resume-pilot/internal/types"
)

// ProgressEvent is one progress update during a generation run. Percent is
// monotonically non-decreasing across a run and reaches 100 only on success.
type ProgressEvent struct {
	State   State  `json:"state"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// ProgressCallback is called as the pipeline advances.
type ProgressCallback func(event ProgressEvent)

// Options holds the collaborators and configuration for one run.
type Options struct {
	// Extractor fetches required skills from the extraction service. Required.
	Extractor skills.Extractor
	// Generator is the cloud generation client. Required.
	Generator llm.Client
	// TemplatePath locates the prompt template; the embedded default is
	// used when the file is absent.
	TemplatePath string
	// Output holds the destination files.
	Output output.Paths
	// OnProgress receives state/percent updates. Optional.
	OnProgress ProgressCallback
	// Database persists run artifacts when set. Failures here never fail
	// the run. Optional.
	Database *db.DB
	RunID    uuid.UUID
}

// Result is a successful run's outcome. Output carries the full generated
// document for preview.
type Result struct {
	ResumePath      string
	CoverLetterPath string
	Output          string
}

// Generate runs the full pipeline for one profile/job pair. Steps execute
// strictly sequentially; any failure short-circuits the rest and no partial
// output is produced before the saving step. Cancellation is observed at
// each network call through ctx.
func Generate(ctx context.Context, userProfile *types.UserProfile, job types.JobPosting, opts Options) (*Result, error) {
	if opts.Extractor == nil || opts.Generator == nil {
		return nil, fmt.Errorf("pipeline requires an extractor and a generator")
	}
	if opts.Output.Resume == "" || opts.Output.CoverLetter == "" {
		opts.Output = output.DefaultPaths()
	}

	// Preconditions are checked before any network call.
	if err := userProfile.Validate(); err != nil {
		return nil, &ValidationError{Message: "incomplete user profile", Cause: err}
	}
	if err := job.Validate(); err != nil {
		return nil, &ValidationError{Message: "incomplete job information", Cause: err}
	}

	emit := func(state State, percent int, message string) {
		if opts.OnProgress != nil {
			opts.OnProgress(ProgressEvent{State: state, Percent: percent, Message: message})
		}
	}
	record := func(step, content string) {
		if opts.Database == nil || opts.RunID == uuid.Nil {
			return
		}
		if err := opts.Database.SaveArtifact(ctx, opts.RunID, step, content); err != nil {
			log.Printf("Warning: failed to save %s artifact: %v", step, err)
		}
	}

	// Step 1: required skills from the extraction service.
	emit(StateFetchingSkills, 10, "Getting required skills from the extraction server...")
	requiredSkills, err := opts.Extractor.RequiredSkills(ctx, job)
	if err != nil {
		return nil, &StepError{State: StateFetchingSkills, Cause: err}
	}
	record(db.StepExtraction, requiredSkills)

	// Step 2: merge into the generation request. The extraction text stays
	// an opaque string.
	emit(StateFetchingSkills, 30, "Preparing data for the generation model...")
	request := &types.GenerationRequest{
		UserProfile: userProfile,
		JobRequirements: types.JobRequirements{
			JobTitle:       job.Title,
			Company:        job.Company,
			RequiredSkills: requiredSkills,
		},
	}

	// Steps 3-4: template load and placeholder substitution.
	template, err := prompts.Load(opts.TemplatePath)
	if err != nil {
		return nil, &StepError{State: StateGenerating, Cause: err}
	}
	prompt, err := prompts.Fill(template, request)
	if err != nil {
		return nil, &StepError{State: StateGenerating, Cause: err}
	}
	record(db.StepPrompt, prompt)

	// Step 5: single cloud generation call.
	emit(StateGenerating, 50, "Generating resume with the cloud model...")
	document, err := opts.Generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, &StepError{State: StateGenerating, Cause: err}
	}

	// Step 6: split and persist.
	emit(StateSaving, 80, "Saving generated resume and cover letter...")
	if err := output.Write(document, opts.Output); err != nil {
		return nil, &StepError{State: StateSaving, Cause: err}
	}

	resume, coverLetter, _ := output.Split(document)
	record(db.StepResumeTex, resume)
	record(db.StepCoverLetter, coverLetter)

	emit(StateDone, 100, "Resume generated successfully!")

	return &Result{
		ResumePath:      opts.Output.Resume,
		CoverLetterPath: opts.Output.CoverLetter,
		Output:          document,
	}, nil
}
