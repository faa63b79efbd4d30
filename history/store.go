// Package history records reconciliation runs in SQLite so past runs can be
// listed and inspected after the terminal output is gone.
package history

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/gwu-libraries/wasync/db"
	"github.com/gwu-libraries/wasync/errors"
	"github.com/gwu-libraries/wasync/reconcile"
)

// DefaultListLimit bounds ListRuns when no limit is given
const DefaultListLimit = 20

// Run is one row of the runs table
type Run struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	DryRun     bool      `json:"dry_run"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Records    int       `json:"records"`
	Updated    int       `json:"updated"`
	Unchanged  int       `json:"unchanged"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
}

// Duration is the wall time of the run
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store persists run reports
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

var _ reconcile.Recorder = (*Store)(nil)

// NewStore wraps a migrated database
func NewStore(conn *sql.DB, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{db: conn, logger: logger}
}

// SaveRun writes the report and its outcomes in one transaction
func (s *Store) SaveRun(ctx context.Context, report *reconcile.RunReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDB(err, "begin run transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			id, mode, dry_run, started_at, finished_at,
			records, updated, unchanged, skipped, failed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.Mode, report.DryRun,
		report.StartedAt.UTC(), report.FinishedAt.UTC(),
		report.Records, report.Updated, report.Unchanged, report.Skipped, report.Failed,
	)
	if err != nil {
		return wrapDB(err, "insert run "+report.ID)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO outcomes (
			run_id, record_uri, url, source, collection_id, match, status,
			begin_date, end_date, captures, changed, ancestors_changed,
			digital_object, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return wrapDB(err, "prepare outcome insert")
	}
	defer stmt.Close()

	for _, o := range report.Outcomes {
		_, err := stmt.ExecContext(ctx,
			report.ID, o.RecordURI, o.URL, o.Source, o.Collection, o.Match, string(o.Status),
			o.Begin, o.End, o.Captures, o.Changed, o.AncestorsChanged,
			o.DigitalObject, o.Error,
		)
		if err != nil {
			return wrapDB(err, "insert outcome for "+o.RecordURI)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapDB(err, "commit run "+report.ID)
	}

	s.logger.Debugw("Recorded run", "run_id", report.ID, "outcomes", len(report.Outcomes))
	return nil
}

// ListRuns returns the most recent runs, newest first
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, dry_run, started_at, finished_at,
			records, updated, unchanged, skipped, failed
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, wrapDB(err, "list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDB(err, "iterate runs")
	}
	return runs, nil
}

// GetRun returns one run, or ErrNotFound
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, mode, dry_run, started_at, finished_at,
			records, updated, unchanged, skipped, failed
		FROM runs
		WHERE id = ?`, id)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.WithHint(
			errors.Mark(errors.Newf("run %s not found", id), errors.ErrNotFound),
			"list recorded runs with: wasync history ls")
	}
	return r, err
}

// Outcomes returns the per-URL outcomes of a run in the order they were recorded
func (s *Store) Outcomes(ctx context.Context, runID string) ([]reconcile.Outcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record_uri, url, source, collection_id, match, status,
			begin_date, end_date, captures, changed, ancestors_changed,
			digital_object, error
		FROM outcomes
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, wrapDB(err, "query outcomes")
	}
	defer rows.Close()

	var outcomes []reconcile.Outcome
	for rows.Next() {
		var (
			o      reconcile.Outcome
			status string
		)
		err := rows.Scan(
			&o.RecordURI, &o.URL, &o.Source, &o.Collection, &o.Match, &status,
			&o.Begin, &o.End, &o.Captures, &o.Changed, &o.AncestorsChanged,
			&o.DigitalObject, &o.Error,
		)
		if err != nil {
			return nil, wrapDB(err, "scan outcome")
		}
		o.Status = reconcile.Status(status)
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDB(err, "iterate outcomes")
	}
	return outcomes, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*Run, error) {
	var r Run
	err := row.Scan(
		&r.ID, &r.Mode, &r.DryRun, &r.StartedAt, &r.FinishedAt,
		&r.Records, &r.Updated, &r.Unchanged, &r.Skipped, &r.Failed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, wrapDB(err, "scan run")
	}
	return &r, nil
}

func wrapDB(err error, op string) error {
	if db.IsDatabaseClosed(err) {
		return errors.Mark(errors.Wrap(err, op), db.ErrDatabaseClosed)
	}
	return errors.Wrap(err, op)
}
