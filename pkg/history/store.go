package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Run is one recorded solver submission.
type Run struct {
	ID          string
	ModelName   string
	TestType    string
	Environment string
	JobDir      string
	Status      string
	Error       string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Duration returns the wall time of a finished run, zero otherwise.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store records solver runs in a sqlite database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the run history database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		model_name TEXT NOT NULL,
		test_type TEXT NOT NULL,
		environment TEXT NOT NULL,
		job_dir TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		started_at DATETIME NOT NULL,
		finished_at DATETIME
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_test_type ON runs(test_type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordStart inserts a run in the running state.
func (s *Store) RecordStart(run *Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, model_name, test_type, environment, job_dir, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.ModelName, run.TestType, run.Environment, run.JobDir,
		StatusRunning, run.StartedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run start: %w", err)
	}
	return nil
}

// RecordResult marks a run finished. runErr nil means success.
func (s *Store) RecordResult(id string, runErr error) error {
	status := StatusSucceeded
	errText := ""
	if runErr != nil {
		status = StatusFailed
		errText = runErr.Error()
	}

	res, err := s.db.Exec(`
		UPDATE runs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		status, errText, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to record run result: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, model_name, test_type, environment, job_dir, status, error,
		       started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		var finished sql.NullTime
		if err := rows.Scan(&run.ID, &run.ModelName, &run.TestType, &run.Environment,
			&run.JobDir, &run.Status, &run.Error, &run.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if finished.Valid {
			run.FinishedAt = finished.Time
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
