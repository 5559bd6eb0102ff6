package types

import (
	"errors"
	"time"
)

// Event kinds recorded in the backup catalog.
const (
	EventBackup     = "backup"
	EventRegenerate = "regenerate"
)

// Event is one catalog journal entry.
type Event struct {
	ID        string    `json:"event_id"`
	Kind      string    `json:"kind"`
	Path      string    `json:"path"`
	BackupID  string    `json:"backup_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Journal records artifact events. The SQLite catalog implements it; the
// artifact manager accepts any implementation.
type Journal interface {
	// Record stores the event. When ID is empty a new UUID v7 is generated.
	// Returns the ID used.
	Record(event Event) (string, error)
}

// Catalog lifecycle errors.
var (
	ErrCatalogDetached  = errors.New("catalog is detached")
	ErrAlreadyAttached  = errors.New("catalog is already attached")
	ErrUnknownEventKind = errors.New("unknown event kind")
)

// ValidEventKind reports whether kind is a known event kind.
func ValidEventKind(kind string) bool {
	return kind == EventBackup || kind == EventRegenerate
}
