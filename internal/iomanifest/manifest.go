// Package iomanifest keeps fetch status of organisms in a SQLite database
// next to the cached listing pages.
package iomanifest

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"time"

	"github.com/gnames/mycocurate/internal/iofs"
	_ "modernc.org/sqlite"
)

// Status is the outcome of the last fetch of an organism.
type Status string

const (
	// StatusRunning marks an organism claimed by a worker.
	StatusRunning Status = "running"
	// StatusDone means all pages were saved.
	StatusDone Status = "done"
	// StatusEmpty means the API returned no files for the organism.
	StatusEmpty Status = "empty"
	// StatusFailed means the fetch stopped on an error.
	StatusFailed Status = "failed"
)

// IsCached returns true for statuses that do not need a new fetch.
func (s Status) IsCached() bool {
	return s == StatusDone || s == StatusEmpty
}

// Entry is one row of the manifest.
type Entry struct {
	Organism  string
	Status    Status
	Pages     int
	Files     int
	RunID     string
	UpdatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS fetches (
	organism TEXT PRIMARY KEY,
	status TEXT NOT NULL,
	pages INTEGER NOT NULL DEFAULT 0,
	files INTEGER NOT NULL DEFAULT 0,
	run_id TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
)`

// Manifest is a handle of the fetch manifest database.
type Manifest struct {
	db   *sql.DB
	path string
}

// Open creates or opens the manifest at path.
func Open(ctx context.Context, path string) (*Manifest, error) {
	err := iofs.TouchDir(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, ManifestError(path, err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, ManifestError(path, err)
	}
	return &Manifest{db: db, path: path}, nil
}

// Close releases the database.
func (m *Manifest) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

// Path returns the location of the database file.
func (m *Manifest) Path() string {
	return m.path
}

// IsEmpty checks if the manifest has no rows yet.
func (m *Manifest) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	err := m.db.QueryRowContext(ctx, "SELECT count(*) FROM fetches").Scan(&n)
	if err != nil {
		return false, ManifestError(m.path, err)
	}
	return n == 0, nil
}

// Claim marks an organism as running for the given run. It returns false
// if the organism is cached or already claimed by the same run. A running
// row left by another run is claimed again.
func (m *Manifest) Claim(
	ctx context.Context,
	organism, runID string,
) (bool, error) {
	q := `
INSERT INTO fetches (organism, status, pages, files, run_id, updated_at)
VALUES (?, 'running', 0, 0, ?, ?)
ON CONFLICT(organism) DO UPDATE SET
	status = 'running', pages = 0, files = 0,
	run_id = excluded.run_id, updated_at = excluded.updated_at
WHERE fetches.status NOT IN ('done', 'empty')
	AND NOT (fetches.status = 'running' AND fetches.run_id = excluded.run_id)`

	res, err := m.db.ExecContext(ctx, q, organism, runID, now())
	if err != nil {
		return false, ManifestError(m.path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, ManifestError(m.path, err)
	}
	return n == 1, nil
}

// Finish records the outcome of a claimed fetch.
func (m *Manifest) Finish(
	ctx context.Context,
	organism string,
	status Status,
	pages, files int,
) error {
	q := `
UPDATE fetches SET status = ?, pages = ?, files = ?, updated_at = ?
WHERE organism = ?`
	_, err := m.db.ExecContext(ctx, q, string(status), pages, files, now(), organism)
	if err != nil {
		return ManifestError(m.path, err)
	}
	return nil
}

// Import adds an organism fetched before the manifest existed. Existing
// rows are not changed.
func (m *Manifest) Import(
	ctx context.Context,
	organism, runID string,
	pages, files int,
) error {
	q := `
INSERT INTO fetches (organism, status, pages, files, run_id, updated_at)
VALUES (?, 'done', ?, ?, ?, ?)
ON CONFLICT(organism) DO NOTHING`
	_, err := m.db.ExecContext(ctx, q, organism, pages, files, runID, now())
	if err != nil {
		return ManifestError(m.path, err)
	}
	return nil
}

// Get returns the manifest entry of an organism.
func (m *Manifest) Get(ctx context.Context, organism string) (Entry, bool, error) {
	q := `
SELECT organism, status, pages, files, run_id, updated_at
FROM fetches WHERE organism = ?`
	res, err := scan(m.db.QueryRowContext(ctx, q, organism))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, ManifestError(m.path, err)
	}
	return res, true, nil
}

// Entries returns all rows sorted by organism.
func (m *Manifest) Entries(ctx context.Context) ([]Entry, error) {
	q := `
SELECT organism, status, pages, files, run_id, updated_at
FROM fetches ORDER BY organism`
	rows, err := m.db.QueryContext(ctx, q)
	if err != nil {
		return nil, ManifestError(m.path, err)
	}
	defer rows.Close()

	var res []Entry
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, ManifestError(m.path, err)
		}
		res = append(res, e)
	}
	if err = rows.Err(); err != nil {
		return nil, ManifestError(m.path, err)
	}
	return res, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (Entry, error) {
	var res Entry
	var status, updated string
	err := s.Scan(
		&res.Organism, &status, &res.Pages, &res.Files, &res.RunID, &updated,
	)
	if err != nil {
		return res, err
	}
	res.Status = Status(status)
	res.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return res, nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
