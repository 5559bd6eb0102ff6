package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

// loadEvents reads events.jsonl into the events table. Loading is
// transactional: all valid records load or the table stays empty. Records
// that fail to decode, lack an ID, name an unknown kind, or duplicate an ID
// are skipped. Unknown JSON fields are ignored.
func loadEvents(db *sql.DB, dataDir string) (int, error) {
	records, err := readJSONL(filepath.Join(dataDir, eventsJSONL))
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertEventSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	loaded := 0
	for _, rec := range records {
		var e types.Event
		if err := json.Unmarshal(rec, &e); err != nil {
			continue
		}
		if e.ID == "" || !types.ValidEventKind(e.Kind) {
			continue
		}
		if _, err := stmt.Exec(eventArgs(e)...); err != nil {
			continue
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}
