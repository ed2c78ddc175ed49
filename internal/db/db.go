// Package db provides optional PostgreSQL persistence for generation runs
// and their artifacts.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Artifact step names.
const (
	StepExtraction  = "extraction"
	StepPrompt      = "prompt"
	StepResumeTex   = "resume_tex"
	StepCoverLetter = "cover_letter"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one generation run record.
type Run struct {
	ID        uuid.UUID
	Company   string
	JobTitle  string
	Status    string
	Error     string
	CreatedAt time.Time
}

// Artifact is one persisted step output.
type Artifact struct {
	ID        uuid.UUID
	RunID     uuid.UUID
	Step      string
	Content   string
	CreatedAt time.Time
}

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateRun records a new generation run and returns its ID.
func (db *DB) CreateRun(ctx context.Context, company, jobTitle string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO generation_runs (company, job_title, status)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		company, jobTitle, StatusRunning,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a run finished with the given status and optional error message.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status, errMessage string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE generation_runs SET status = $1, error = $2, completed_at = NOW() WHERE id = $3`,
		status, errMessage, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// GetRun fetches one run, or nil when it does not exist.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, company, job_title, status, COALESCE(error, ''), created_at
		 FROM generation_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.Company, &run.JobTitle, &run.Status, &run.Error, &run.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// SaveArtifact stores one text artifact for a run, replacing any previous
// artifact for the same step.
func (db *DB) SaveArtifact(ctx context.Context, runID uuid.UUID, step, content string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO run_artifacts (run_id, step, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, step) DO UPDATE SET content = $3, created_at = NOW()`,
		runID, step, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", step, err)
	}
	return nil
}

// GetArtifact fetches one artifact by run and step, or nil when absent.
func (db *DB) GetArtifact(ctx context.Context, runID uuid.UUID, step string) (*Artifact, error) {
	var artifact Artifact
	err := db.pool.QueryRow(ctx,
		`SELECT id, run_id, step, content, created_at
		 FROM run_artifacts WHERE run_id = $1 AND step = $2`,
		runID, step,
	).Scan(&artifact.ID, &artifact.RunID, &artifact.Step, &artifact.Content, &artifact.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact: %w", err)
	}
	return &artifact, nil
}
