package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/mdclip"
)

// Compile-time interface verification.
var _ mdclip.HistoryService = (*HistoryService)(nil)

// HistoryService implements mdclip.HistoryService using SQLite.
type HistoryService struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db, Now: time.Now}
}

// Record upserts url: a new entry starts with a count of 1, an existing one
// gets its count incremented and last-extracted time bumped. The store is
// then capped at mdclip.MaxHistoryEntries, evicting the oldest entries.
func (s *HistoryService) Record(ctx context.Context, url string) (*mdclip.HistoryEntry, error) {
	if strings.TrimSpace(url) == "" {
		return nil, mdclip.Errorf(mdclip.EINVALID, "url required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	now := formatTime(s.Now())
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO history (url, first_extracted, last_extracted, count)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(url) DO UPDATE SET
			last_extracted = excluded.last_extracted,
			count = count + 1
	`, url, now, now); err != nil {
		return nil, err
	}

	if err := trim(ctx, tx, mdclip.MaxHistoryEntries); err != nil {
		return nil, err
	}

	entry, err := findEntry(ctx, tx, url)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return entry, nil
}

// Contains reports whether url has been extracted before.
func (s *HistoryService) Contains(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM history WHERE url = ?)`, url).Scan(&exists)
	return exists, err
}

// FindEntry returns the entry for url.
func (s *HistoryService) FindEntry(ctx context.Context, url string) (*mdclip.HistoryEntry, error) {
	return findEntry(ctx, s.db.db, url)
}

// List returns all entries, most recently extracted first.
func (s *HistoryService) List(ctx context.Context) ([]*mdclip.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, first_extracted, last_extracted, count
		FROM history
		ORDER BY last_extracted DESC, rowid DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*mdclip.HistoryEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Clear removes every entry.
func (s *HistoryService) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}

// Trim keeps only the n most recently extracted entries.
func (s *HistoryService) Trim(ctx context.Context, n int) error {
	if n < 0 {
		return mdclip.Errorf(mdclip.EINVALID, "trim size must not be negative")
	}
	return trim(ctx, s.db.db, n)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func trim(ctx context.Context, db execer, n int) error {
	_, err := db.ExecContext(ctx, `
		DELETE FROM history
		WHERE url NOT IN (
			SELECT url FROM history
			ORDER BY last_extracted DESC, rowid DESC
			LIMIT ?
		)
	`, n)
	return err
}

func findEntry(ctx context.Context, db queryer, url string) (*mdclip.HistoryEntry, error) {
	row := db.QueryRowContext(ctx, `
		SELECT url, first_extracted, last_extracted, count
		FROM history
		WHERE url = ?
	`, url)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, mdclip.Errorf(mdclip.ENOTFOUND, "history entry not found")
	}
	return entry, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*mdclip.HistoryEntry, error) {
	var entry mdclip.HistoryEntry
	var first, last string
	if err := row.Scan(&entry.URL, &first, &last, &entry.Count); err != nil {
		return nil, err
	}

	var err error
	if entry.FirstExtracted, err = parseTime(first, "first_extracted"); err != nil {
		return nil, err
	}
	if entry.LastExtracted, err = parseTime(last, "last_extracted"); err != nil {
		return nil, err
	}
	return &entry, nil
}
