package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Run is one driver invocation (prebuild, build, or all).
type Run struct {
	ID           string
	Command      string
	ProjectRoot  string
	StartedAt    time.Time
	FinishedAt   time.Time
	Finished     bool
	Status       int
	Invoked      int
	Skipped      int
	ErrorKind    string
	ErrorMessage string
}

// Duration returns how long a finished run took.
func (r Run) Duration() time.Duration {
	if !r.Finished || r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Outcome summarizes the run for display.
type Outcome struct {
	Status       int
	Invoked      int
	Skipped      int
	ErrorKind    string
	ErrorMessage string
}

// Step is a recorded tool decision within a run.
type Step struct {
	RunID        string
	Pipeline     string
	Label        string
	Source       string
	Destination  string
	Action       string
	Status       int
	Duration     time.Duration
	Command      string
	ErrorMessage string
	RecordedAt   time.Time
}

const runColumns = "id, command, project_root, started_at, finished_at, status, invoked, skipped, error_kind, error_message"

// BeginRun inserts a run that has started but not finished.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return errors.New("run id is required")
	}
	started := run.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	if err := s.exec(ctx,
		`INSERT INTO runs (id, command, project_root, started_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Command, run.ProjectRoot, formatTime(started),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun records the outcome of a run started with BeginRun.
func (s *Store) FinishRun(ctx context.Context, id string, outcome Outcome) error {
	if err := s.exec(ctx,
		`UPDATE runs SET finished_at = ?, status = ?, invoked = ?, skipped = ?, error_kind = ?, error_message = ?
         WHERE id = ?`,
		formatTime(time.Now()),
		outcome.Status,
		outcome.Invoked,
		outcome.Skipped,
		nullableString(outcome.ErrorKind),
		nullableString(outcome.ErrorMessage),
		id,
	); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecordStep appends a step to a run.
func (s *Store) RecordStep(ctx context.Context, step Step) error {
	recorded := step.RecordedAt
	if recorded.IsZero() {
		recorded = time.Now()
	}
	if err := s.exec(ctx,
		`INSERT INTO steps (
            run_id, pipeline, label, source, destination, action, status,
            duration_ms, command, error_message, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		step.RunID,
		nullableString(step.Pipeline),
		step.Label,
		step.Source,
		step.Destination,
		step.Action,
		step.Status,
		step.Duration.Milliseconds(),
		nullableString(step.Command),
		nullableString(step.ErrorMessage),
		formatTime(recorded),
	); err != nil {
		return fmt.Errorf("insert step: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A non-positive limit
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ErrAmbiguousRun is returned when a run id prefix matches more than one run.
var ErrAmbiguousRun = errors.New("run id prefix matches more than one run")

// GetRun fetches a run by its full id or a unique id prefix, as printed by
// the history table. A missing run returns (nil, nil).
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\'
         ORDER BY id = ? DESC LIMIT 2`,
		id, escapeLike(id)+"%", id)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("get run: %w", err)
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	switch {
	case len(matches) == 0:
		return nil, nil
	case matches[0].ID == id || len(matches) == 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, id)
	}
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

// Steps returns the recorded steps of a run in insertion order.
func (s *Store) Steps(ctx context.Context, runID string) ([]Step, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, pipeline, label, source, destination, action, status, duration_ms, command, error_message, recorded_at
         FROM steps WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()

	var steps []Step
	for rows.Next() {
		var (
			step       Step
			pipeline   sql.NullString
			durationMS int64
			command    sql.NullString
			errMessage sql.NullString
			recorded   string
		)
		if err := rows.Scan(&step.RunID, &pipeline, &step.Label, &step.Source, &step.Destination,
			&step.Action, &step.Status, &durationMS, &command, &errMessage, &recorded); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		step.Pipeline = pipeline.String
		step.Duration = time.Duration(durationMS) * time.Millisecond
		step.Command = command.String
		step.ErrorMessage = errMessage.String
		step.RecordedAt = parseTime(recorded)
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run        Run
		started    string
		finished   sql.NullString
		status     sql.NullInt64
		errKind    sql.NullString
		errMessage sql.NullString
	)
	if err := scanner.Scan(&run.ID, &run.Command, &run.ProjectRoot, &started, &finished,
		&status, &run.Invoked, &run.Skipped, &errKind, &errMessage); err != nil {
		return Run{}, err
	}
	run.StartedAt = parseTime(started)
	if finished.Valid {
		run.Finished = true
		run.FinishedAt = parseTime(finished.String)
	}
	run.Status = int(status.Int64)
	run.ErrorKind = errKind.String
	run.ErrorMessage = errMessage.String
	return run, nil
}
