package types

import (
	"errors"
	"time"
)

// BackupRecord describes one backup copy of an artifact. Records are
// immutable once created.
type BackupRecord struct {
	ID         string    `json:"id"`
	SourcePath string    `json:"source_path,omitempty"`
	BackupPath string    `json:"backup_path"`
	CapturedAt time.Time `json:"captured_at"`
	Tag        string    `json:"tag,omitempty"`
	Size       int64     `json:"size"`

	// Sequence is the same-second collision counter embedded in the file
	// name. Zero when the name carries no counter.
	Sequence int `json:"sequence,omitempty"`
}

// Standard backup tags.
const (
	TagNone       = ""
	TagRegenerate = "regen"
)

// BackupSuffix is appended to every backup file name.
const BackupSuffix = ".backup"

// BackupTimeLayout formats CapturedAt in backup file names (YYYYMMDD_HHMMSS).
const BackupTimeLayout = "20060102_150405"

// ErrInvalidTag is returned when a backup tag contains characters other than
// lowercase letters, digits, and hyphens.
var ErrInvalidTag = errors.New("invalid backup tag")
