// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists fetched works in a local SQLite database so
// past runs can be inspected without refetching.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Doggel/orcid-fetcher/pkg/types"
)

// Store manages the archive SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the archive database at cfg.DBPath and
// ensures the schema exists.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	s := &Store{db: db}
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

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			work_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS works (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			name TEXT NOT NULL,
			orcid TEXT NOT NULL,
			title TEXT,
			publication_date TEXT,
			journal TEXT,
			doi TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_works_run ON works(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_works_orcid ON works(orcid)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RunSummary describes one archived run.
type RunSummary struct {
	ID        int64
	StartedAt time.Time
	WorkCount int
}

// SaveRun inserts one run row and all its works in a single transaction
// and returns the run id.
func (s *Store) SaveRun(ctx context.Context, startedAt time.Time, works []types.Work) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, work_count) VALUES (?, ?)`,
		startedAt.UTC().Format(time.RFC3339), len(works))
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO works
		(run_id, name, orcid, title, publication_date, journal, doi)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing work insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range works {
		if _, err := stmt.ExecContext(ctx, runID,
			w.OwnerName, w.OwnerORCID, w.Title, w.PublicationDate, w.Journal, w.DOI); err != nil {
			return 0, fmt.Errorf("inserting work: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// RecentRuns returns up to n archived runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, n int) ([]RunSummary, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, work_count FROM runs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var started string
		if err := rows.Scan(&r.ID, &started, &r.WorkCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, started); parseErr == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunWorks returns the works archived under one run, in insertion order.
func (s *Store) RunWorks(ctx context.Context, runID int64) ([]types.Work, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, orcid, title, publication_date, journal, doi
		 FROM works WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying works: %w", err)
	}
	defer rows.Close()

	var works []types.Work
	for rows.Next() {
		var w types.Work
		if err := rows.Scan(&w.OwnerName, &w.OwnerORCID,
			&w.Title, &w.PublicationDate, &w.Journal, &w.DOI); err != nil {
			return nil, fmt.Errorf("scanning work: %w", err)
		}
		works = append(works, w)
	}
	return works, rows.Err()
}
