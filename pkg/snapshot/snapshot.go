// Package snapshot persists query reports so an interactive answer can be
// kept after the session ends.
//
// A snapshot captures the query that produced a report and its rendered
// body. Stores are pluggable; the file store is the default for the CLI.
package snapshot

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a saved query report.
type Snapshot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Query     string    `json:"query"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists snapshots.
type Store interface {
	// Save stores a snapshot, assigning an ID if it has none.
	Save(ctx context.Context, snap *Snapshot) error
	// Get retrieves a snapshot by ID. Returns ErrNotFound if missing.
	Get(ctx context.Context, id string) (*Snapshot, error)
	// List returns all snapshots ordered by creation time, newest first.
	List(ctx context.Context) ([]*Snapshot, error)
	// Delete removes a snapshot. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context, id string) error
	Close() error
}

// New creates a snapshot for a query result. The name is derived from the
// query and made filename safe; the ID is a fresh UUID.
func New(query, body string) *Snapshot {
	return &Snapshot{
		ID:        uuid.NewString(),
		Name:      SafeName(query),
		Query:     query,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// SafeName converts an arbitrary query string into a name usable as a file
// stem: lowercased, with runs of unsafe characters collapsed to a single
// dash. An empty or fully unsafe input yields "snapshot".
func SafeName(s string) string {
	name := unsafeChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		return "snapshot"
	}
	return name
}
