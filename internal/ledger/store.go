// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a SQLite log of generation attempts. Only outcome
// metadata is stored; generated plan text is never written, so the ledger
// cannot serve as a plan cache.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lesson-planner/pkg/types"
)

// DefaultLimit is the number of attempts Recent returns when limit <= 0.
const DefaultLimit = 20

// Store manages the attempts database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the attempts database at path and creates the
// schema if it does not exist.
func Open(cfg types.LedgerConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("ledger path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// created_at holds Unix nanoseconds so rows order numerically by time.
func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			subject TEXT,
			topic TEXT,
			grade_level TEXT,
			teaching_style TEXT,
			outcome TEXT NOT NULL,
			status_code INTEGER,
			message TEXT,
			duration_ms INTEGER,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_created_at ON attempts(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_session_id ON attempts(session_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one attempt. A missing ID or timestamp is filled in.
func (s *Store) Record(ctx context.Context, a types.Attempt) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (id, session_id, subject, topic, grade_level, teaching_style,
			outcome, status_code, message, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.SessionID, a.Request.Subject, a.Request.Topic,
		string(a.Request.GradeLevel), string(a.Request.TeachingStyle),
		string(a.Outcome), a.StatusCode, a.Message, a.Duration.Milliseconds(),
		a.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("inserting attempt %s: %w", a.ID, err)
	}
	return nil
}

// Recent returns up to limit attempts, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.Attempt, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, subject, topic, grade_level, teaching_style,
			outcome, status_code, message, duration_ms, created_at
		 FROM attempts ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying attempts: %w", err)
	}
	defer rows.Close()

	var out []types.Attempt
	for rows.Next() {
		var (
			a                  types.Attempt
			grade, style, outc string
			durationMS         int64
			createdAt          int64
		)
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Request.Subject, &a.Request.Topic,
			&grade, &style, &outc, &a.StatusCode, &a.Message, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning attempt: %w", err)
		}
		a.Request.GradeLevel = types.GradeLevel(grade)
		a.Request.TeachingStyle = types.TeachingStyle(style)
		a.Outcome = types.AttemptOutcome(outc)
		a.Duration = time.Duration(durationMS) * time.Millisecond
		a.CreatedAt = time.Unix(0, createdAt).UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

// Counts returns the number of recorded attempts per outcome.
func (s *Store) Counts(ctx context.Context) (map[types.AttemptOutcome]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT outcome, count(*) FROM attempts GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("counting attempts: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.AttemptOutcome]int)
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[types.AttemptOutcome(outcome)] = n
	}
	return counts, rows.Err()
}

// WriteYAML writes the most recent attempts to w as a YAML sequence.
func (s *Store) WriteYAML(ctx context.Context, w io.Writer, limit int) error {
	attempts, err := s.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if attempts == nil {
		attempts = []types.Attempt{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(attempts); err != nil {
		return fmt.Errorf("encoding attempts: %w", err)
	}
	return enc.Close()
}
