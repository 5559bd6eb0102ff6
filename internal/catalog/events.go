package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

const insertEventSQL = `INSERT INTO events (event_id, kind, path, backup_id, detail, created_at)
VALUES (?, ?, ?, ?, ?, ?)`

const selectEventsSQL = `SELECT event_id, kind, path, backup_id, detail, created_at FROM events`

// Filter narrows Events. Zero values match everything.
type Filter struct {
	Kind  string
	Path  string
	Limit int
}

// Record appends event to events.jsonl and indexes it. An empty ID is replaced by
// a new UUID v7 and a zero CreatedAt by the current time.
func (b *Backend) Record(event types.Event) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrCatalogDetached
	}
	if !types.ValidEventKind(event.Kind) {
		return "", fmt.Errorf("%w: %q", types.ErrUnknownEventKind, event.Kind)
	}
	if event.ID == "" {
		event.ID = generateUUID()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = b.now()
	}
	event.CreatedAt = event.CreatedAt.UTC()

	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal event %s: %w", event.ID, err)
	}
	if _, err := b.db.Exec(insertEventSQL, eventArgs(event)...); err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	if err := appendJSONL(filepath.Join(b.dataDir, eventsJSONL), data); err != nil {
		return "", fmt.Errorf("persist event: %w", err)
	}
	return event.ID, nil
}

// Events returns events matching filter, newest first.
func (b *Backend) Events(filter Filter) ([]types.Event, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCatalogDetached
	}

	var (
		where []string
		args  []any
	)
	if filter.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, filter.Kind)
	}
	if filter.Path != "" {
		where = append(where, "path = ?")
		args = append(args, filter.Path)
	}

	query := selectEventsSQL
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, event_id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]types.Event, error) {
	var events []types.Event
	for rows.Next() {
		var (
			e         types.Event
			backupID  sql.NullString
			detail    sql.NullString
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Kind, &e.Path, &backupID, &detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.BackupID = backupID.String
		e.Detail = detail.String
		t, err := time.Parse(timeFormat, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at of %s: %w", e.ID, err)
		}
		e.CreatedAt = t
		events = append(events, e)
	}
	return events, rows.Err()
}

// eventArgs returns insert arguments in insertEventSQL column order.
func eventArgs(e types.Event) []any {
	return []any{
		e.ID,
		e.Kind,
		e.Path,
		nullable(e.BackupID),
		nullable(e.Detail),
		e.CreatedAt.UTC().Format(timeFormat),
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
