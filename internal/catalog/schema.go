package catalog

// Schema DDL for the events table. The database is rebuilt from events.jsonl
// on every Attach, so there are no migrations.
const (
	createEvents = `CREATE TABLE events (
    event_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    path TEXT NOT NULL,
    backup_id TEXT,
    detail TEXT,
    created_at TEXT NOT NULL
);`

	createEventsIndex = `CREATE INDEX idx_events_kind_path ON events (kind, path);`
)

// schemaStatements are executed in order on Attach.
var schemaStatements = []string{
	createEvents,
	createEventsIndex,
}

// timeFormat stores timestamps as fixed-width UTC text so lexical order
// matches chronological order.
const timeFormat = "2006-01-02T15:04:05.000000000Z"
