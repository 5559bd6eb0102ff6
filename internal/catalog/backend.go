// Package catalog journals backup and regeneration events. JSON lines in the
// data directory are the source of truth; an in-memory SQLite database is the
// query engine and is rebuilt from them on every Attach.
//
// Several processes may hold the same data directory attached. Each Record
// appends one line to events.jsonl, so no process overwrites another's
// events. A backend's queries see the events present at Attach plus the
// ones it recorded itself.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

// memoryDSN opens a private in-memory database. Nothing on disk is shared
// between processes.
const memoryDSN = "file::memory:"

// Backend implements types.Journal on SQLite with JSONL persistence.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	dataDir  string
	db       *sql.DB
	now      func() time.Time
}

// NewBackend creates a new catalog backend. The backend is not attached;
// call Attach to initialize it.
func NewBackend() *Backend {
	return &Backend{now: time.Now}
}

// Attach opens the catalog in dataDir, creating the directory and an empty
// events.jsonl if needed, and loads existing events into a fresh in-memory
// database. Files in dataDir are never removed. Returns types.ErrAlreadyAttached if already attached.
func (b *Backend) Attach(dataDir string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return fmt.Errorf("open catalog database: %w", err)
	}
	// Every pooled connection would get its own empty in-memory database.
	db.SetMaxOpenConns(1)
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("create schema: %w", err)
		}
	}

	if err := initJSONL(dataDir); err != nil {
		db.Close()
		return err
	}
	if _, err := loadEvents(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.dataDir = dataDir
	b.attached = true
	return nil
}

// Detach closes the database. After Detach, operations return
// types.ErrCatalogDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// DataDir returns the attached data directory, or "" when detached.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dataDir
}

// generateUUID generates a new UUID v7 for event IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
