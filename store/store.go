// Package store persists pipeline runs in SQLite. Every run is recorded,
// including halted and failed ones, so the audit trail survives the gates
// that withhold prose from the user.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a requested run does not exist.
var ErrNotFound = errors.New("store: run not found")

// Run represents a row in the runs table. A HALTED or FAILED run carries
// the same shape as a SUCCEEDED one; the failure report lives in
// FailureMessage and the partial state columns stay populated.
type Run struct {
	ID                   int64   `json:"id"`
	PersonName           string  `json:"person_name"`
	Company              string  `json:"company,omitempty"`
	PipelineKind         string  `json:"pipeline_kind"`
	RunStatus            string  `json:"run_status"`
	DossierMode          string  `json:"dossier_mode,omitempty"`
	ModeReason           string  `json:"mode_reason,omitempty"`
	DossierText          string  `json:"dossier_text,omitempty"`
	EntityLockScore      int     `json:"entity_lock_score"`
	EntityLockStatus     string  `json:"entity_lock_status,omitempty"`
	VisibilityRows       int     `json:"visibility_rows"`
	VisibilityConfidence int     `json:"visibility_confidence"`
	EvidenceCoveragePct  float64 `json:"evidence_coverage_pct"`
	HasPublicResults     bool    `json:"has_public_results"`
	FailureMessage       string  `json:"failure_message,omitempty"`
	GraphSnapshot        string  `json:"graph_snapshot,omitempty"`
	QAReport             string  `json:"qa_report,omitempty"`
	Brief                string  `json:"brief,omitempty"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

// Store wraps the SQLite database for all dossier persistence.
type Store struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at the given path and
// initialises the runs schema.
func New(dbPath string) (*Store, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Create schema
	if _, err := db.Exec(schemaSQL()); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	// Connection pool settings for SQLite.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db}

	// Run pending migrations.
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for advanced queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// CreateRun inserts a new run in RUNNING status and returns its ID.
func (s *Store) CreateRun(ctx context.Context, personName, company, pipelineKind string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (person_name, company, pipeline_kind, run_status)
		VALUES (?, ?, ?, 'RUNNING')
	`, personName, company, pipelineKind)
	if err != nil {
		return 0, fmt.Errorf("creating run: %w", err)
	}
	return res.LastInsertId()
}

// UpdateRun writes the full run state back. Called on every terminal
// status and also mid-pipeline, so partial state is never lost.
func (s *Store) UpdateRun(ctx context.Context, run Run) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET
			run_status = ?,
			dossier_mode = ?,
			mode_reason = ?,
			dossier_text = ?,
			entity_lock_score = ?,
			entity_lock_status = ?,
			visibility_rows = ?,
			visibility_confidence = ?,
			evidence_coverage_pct = ?,
			has_public_results = ?,
			failure_message = ?,
			graph_snapshot = ?,
			qa_report = ?,
			brief = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, run.RunStatus, run.DossierMode, run.ModeReason, run.DossierText,
		run.EntityLockScore, run.EntityLockStatus, run.VisibilityRows,
		run.VisibilityConfidence, run.EvidenceCoveragePct, run.HasPublicResults,
		run.FailureMessage, run.GraphSnapshot, run.QAReport, run.Brief, run.ID)
	if err != nil {
		return fmt.Errorf("updating run %d: %w", run.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const runColumns = `
	id, person_name, company, pipeline_kind, run_status,
	dossier_mode, mode_reason, dossier_text,
	entity_lock_score, entity_lock_status,
	visibility_rows, visibility_confidence, evidence_coverage_pct,
	has_public_results, failure_message,
	graph_snapshot, qa_report, brief,
	created_at, updated_at`

func scanRun(row interface{ Scan(...any) error }) (*Run, error) {
	run := &Run{}
	var (
		company, mode, reason, text sql.NullString
		lockStatus, failure         sql.NullString
		graph, qaReport, brief      sql.NullString
	)
	err := row.Scan(&run.ID, &run.PersonName, &company, &run.PipelineKind, &run.RunStatus,
		&mode, &reason, &text,
		&run.EntityLockScore, &lockStatus,
		&run.VisibilityRows, &run.VisibilityConfidence, &run.EvidenceCoveragePct,
		&run.HasPublicResults, &failure,
		&graph, &qaReport, &brief,
		&run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	run.Company = company.String
	run.DossierMode = mode.String
	run.ModeReason = reason.String
	run.DossierText = text.String
	run.EntityLockStatus = lockStatus.String
	run.FailureMessage = failure.String
	run.GraphSnapshot = graph.String
	run.QAReport = qaReport.String
	run.Brief = brief.String
	return run, nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(ctx context.Context, id int64) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT"+runColumns+" FROM runs WHERE id = ?", id)
	return scanRun(row)
}

// LatestRun returns the most recent run for a person, any status.
func (s *Store) LatestRun(ctx context.Context, personName string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT"+runColumns+" FROM runs WHERE person_name = ? ORDER BY id DESC LIMIT 1",
		personName)
	return scanRun(row)
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT"+runColumns+" FROM runs ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}
