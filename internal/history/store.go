// Package history persists one row per launched analysis run, so operators
// can answer "what ran, when, and how did it end" after the fact.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome classifies how a run resolved.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeStopped Outcome = "stopped"
	OutcomeFailed  Outcome = "failed"
)

// Run is one recorded launch.
type Run struct {
	ID         string
	Command    string
	Outcome    Outcome
	Status     int
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record inserts a completed run. A fresh ID is generated when run.ID is empty.
func (s *Store) Record(ctx context.Context, run Run) (string, error) {
	if run.Command == "" {
		return "", fmt.Errorf("command is empty")
	}
	if run.Outcome == "" {
		return "", fmt.Errorf("outcome is empty")
	}

	id := run.ID
	if id == "" {
		id = uuid.NewString()
	}

	var errText any
	if run.Error != "" {
		errText = run.Error
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO run_log(id, command, outcome, status, started_at, finished_at, error)
VALUES(?, ?, ?, ?, ?, ?, ?);
`, id, run.Command, string(run.Outcome), run.Status,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		errText)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, command, outcome, status, started_at, finished_at, error
FROM run_log
ORDER BY started_at DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns one run by ID, or (nil, nil) if it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, command, outcome, status, started_at, finished_at, error
FROM run_log
WHERE id = ?;
`, id)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanRun(rows)
}

func scanRun(rows *sql.Rows) (*Run, error) {
	var run Run
	var outcome, startedAt, finishedAt string
	var errText sql.NullString
	if err := rows.Scan(&run.ID, &run.Command, &outcome, &run.Status, &startedAt, &finishedAt, &errText); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	run.Outcome = Outcome(outcome)
	run.Error = errText.String

	var err error
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}
	return &run, nil
}
