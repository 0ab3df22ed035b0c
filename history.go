package mdclip

import (
	"context"
	"time"
)

// MaxHistoryEntries bounds the extraction history.
const MaxHistoryEntries = 100

// HistoryEntry records how often a page URL has been extracted.
type HistoryEntry struct {
	URL            string    `json:"url"`
	FirstExtracted time.Time `json:"firstExtracted"`
	LastExtracted  time.Time `json:"lastExtracted"`
	Count          int       `json:"count"`
}

// HistoryService is the durable extraction history.
// Operations are read-modify-write with last-writer-wins semantics.
type HistoryService interface {
	// Record inserts the URL with count 1 or bumps LastExtracted and Count
	// of an existing entry. After an insert the history is truncated to
	// the MaxHistoryEntries most recently extracted entries.
	Record(ctx context.Context, url string) (*HistoryEntry, error)

	// Contains reports whether the URL was extracted before.
	Contains(ctx context.Context, url string) (bool, error)

	// FindEntry returns the entry for url.
	// Returns ENOTFOUND if the URL was never extracted.
	FindEntry(ctx context.Context, url string) (*HistoryEntry, error)

	// List returns all entries, most recently extracted first.
	List(ctx context.Context) ([]*HistoryEntry, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Trim keeps the n most recently extracted entries.
	Trim(ctx context.Context, n int) error
}
