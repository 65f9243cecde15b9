package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"suitekit/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		run_id VARCHAR(64) NOT NULL PRIMARY KEY,
		run_seq INTEGER NOT NULL UNIQUE,
		started_at VARCHAR(64) NOT NULL,
		total INTEGER NOT NULL,
		passed INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		aborted INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		duration_seconds DOUBLE PRECISION NOT NULL,
		workers INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS invocations (
		run_id VARCHAR(64) NOT NULL,
		position INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		suite VARCHAR(255) NOT NULL,
		test_id VARCHAR(255) NOT NULL,
		display_name VARCHAR(1024) NOT NULL,
		status VARCHAR(16) NOT NULL,
		message TEXT,
		PRIMARY KEY (run_id, position)
	)`,
}

// SQLHistory records runs in a SQL database (sqlite3 or mysql).
type SQLHistory struct {
	db *sql.DB
}

// OpenHistory connects to the history database and creates the schema.
func OpenHistory(ctx context.Context, driver, dsn string) (*SQLHistory, error) {
	switch driver {
	case "sqlite3":
		if dsn == "" {
			return nil, fmt.Errorf("sqlite3 history requires a database path")
		}
		if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
				return nil, fmt.Errorf("create history dir: %w", err)
			}
		}
	case "mysql":
		if dsn == "" {
			return nil, fmt.Errorf("mysql history requires a DSN")
		}
	default:
		return nil, fmt.Errorf("unsupported history driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if driver == "sqlite3" {
		// One connection keeps :memory: databases shared and serializes writes.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create history schema: %w", err)
		}
	}

	return &SQLHistory{db: db}, nil
}

// Record stores the run meta and one row per invocation in one transaction.
func (h *SQLHistory) Record(ctx context.Context, output *domain.TestResultsOutput) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	// Timestamps have second precision, so recording order is kept separately.
	var runSeq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(run_seq), 0) + 1 FROM runs`).Scan(&runSeq); err != nil {
		return fmt.Errorf("next run sequence: %w", err)
	}

	m := output.Meta
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, run_seq, started_at, total, passed, failed, aborted, skipped, duration_seconds, workers)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RunID, runSeq, m.Timestamp, m.TotalTests, m.PassedTests, m.FailedTests, m.AbortedTests, m.SkippedTests,
		m.DurationSeconds, m.Workers,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", m.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO invocations (run_id, position, seq, suite, test_id, display_name, status, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare invocation insert: %w", err)
	}
	defer stmt.Close()

	// Synthetic after-all results share a sequence number with the suite's
	// last invocation, so rows are keyed by position in the report.
	for i, rec := range output.Tests {
		if _, err := stmt.ExecContext(ctx, m.RunID, i, rec.Seq, rec.Suite, rec.TestID, rec.DisplayName, string(rec.Status), rec.Message); err != nil {
			return fmt.Errorf("insert invocation %d: %w", rec.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}
	return nil
}

// Runs returns the most recent runs, most recently recorded first.
func (h *SQLHistory) Runs(ctx context.Context, limit int) ([]domain.TestResultsMeta, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT run_id, started_at, total, passed, failed, aborted, skipped, duration_seconds, workers
		 FROM runs ORDER BY run_seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.TestResultsMeta
	for rows.Next() {
		var m domain.TestResultsMeta
		if err := rows.Scan(&m.RunID, &m.Timestamp, &m.TotalTests, &m.PassedTests, &m.FailedTests,
			&m.AbortedTests, &m.SkippedTests, &m.DurationSeconds, &m.Workers); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, m)
	}
	return runs, rows.Err()
}

// FailedTests returns the failed test IDs of a run as "suite::test".
func (h *SQLHistory) FailedTests(ctx context.Context, runID string) ([]string, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT DISTINCT suite, test_id FROM invocations WHERE run_id = ? AND status = ? ORDER BY suite, test_id`,
		runID, string(domain.StatusFailed))
	if err != nil {
		return nil, fmt.Errorf("query failed tests: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var suiteName, testID string
		if err := rows.Scan(&suiteName, &testID); err != nil {
			return nil, fmt.Errorf("scan failed test: %w", err)
		}
		names = append(names, suiteName+"::"+testID)
	}
	return names, rows.Err()
}

// Close closes the database.
func (h *SQLHistory) Close() error {
	return h.db.Close()
}

var _ History = (*SQLHistory)(nil)
