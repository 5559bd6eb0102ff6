// Package backup implements the append-only backup store: a flat directory of
// timestamped copies taken before an artifact is overwritten.
//
// Retention policy: the store keeps every backup it creates. Nothing in this
// package prunes, expires, or deduplicates backup files.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

// maxSequence bounds the same-second collision counter.
const maxSequence = 10000

var tagPattern = regexp.MustCompile(`^[a-z0-9-]*$`)

// namePattern parses <stem>_<YYYYMMDD_HHMMSS>[-<seq>][_<tag>]<suffix>.backup.
// The suffix is everything after the source's last dot and may contain
// underscores; it always starts with a dot, so it never reads as a tag.
var namePattern = regexp.MustCompile(`^(.+)_(\d{8}_\d{6})(?:-(\d+))?(?:_([a-z0-9-]+))?(\.[^.]*)?\.backup$`)

// Store creates and lists backups in a single directory.
type Store struct {
	dir string
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for backup timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a Store writing into dir. The directory is created on
// first backup.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the backup directory.
func (s *Store) Dir() string {
	return s.dir
}

// Backup copies sourcePath into the backup directory. When sourcePath does not
// exist it returns (nil, nil) and creates nothing. The copy is byte-identical
// and keeps the source's modification time and permission bits.
func (s *Store) Backup(sourcePath, tag string) (*types.BackupRecord, error) {
	if !tagPattern.MatchString(tag) {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidTag, tag)
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", sourcePath, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("backup %s: not a regular file", sourcePath)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	captured := s.now().Truncate(time.Second)
	stem, suffix := splitName(filepath.Base(sourcePath))

	dst, seq, err := s.createExclusive(stem, captured, tag, suffix, info.Mode().Perm())
	if err != nil {
		return nil, err
	}
	dstPath := dst.Name()

	size, err := copyInto(dst, sourcePath)
	if err != nil {
		os.Remove(dstPath)
		return nil, err
	}

	if err := preserveMetadata(dstPath, info); err != nil {
		os.Remove(dstPath)
		return nil, err
	}

	return &types.BackupRecord{
		ID:         generateUUID(),
		SourcePath: sourcePath,
		BackupPath: dstPath,
		CapturedAt: captured,
		Tag:        tag,
		Size:       size,
		Sequence:   seq,
	}, nil
}

// createExclusive opens a new backup file, bumping the sequence counter until
// a free name is found. Existing backups are never truncated.
func (s *Store) createExclusive(stem string, captured time.Time, tag, suffix string, perm os.FileMode) (*os.File, int, error) {
	for seq := 0; seq < maxSequence; seq++ {
		if seq == 1 {
			continue
		}
		path := filepath.Join(s.dir, FileName(stem, captured, seq, tag, suffix))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm|0o200)
		if err == nil {
			return f, seq, nil
		}
		if !os.IsExist(err) {
			return nil, 0, fmt.Errorf("create backup file: %w", err)
		}
	}
	return nil, 0, fmt.Errorf("create backup file: more than %d backups of %s at %s",
		maxSequence, stem, captured.Format(types.BackupTimeLayout))
}

// copyInto streams src into dst, syncs, and closes dst.
func copyInto(dst *os.File, src string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		dst.Close()
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	n, err := io.Copy(dst, in)
	if err != nil {
		dst.Close()
		return 0, fmt.Errorf("copy %s: %w", src, err)
	}
	if err := dst.Sync(); err != nil {
		dst.Close()
		return 0, fmt.Errorf("sync backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		return 0, fmt.Errorf("close backup: %w", err)
	}
	return n, nil
}

// preserveMetadata copies permission bits and modification time from info.
func preserveMetadata(path string, info os.FileInfo) error {
	if err := os.Chmod(path, info.Mode().Perm()); err != nil {
		return fmt.Errorf("preserve permissions: %w", err)
	}
	mtime := info.ModTime()
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		return fmt.Errorf("preserve modification time: %w", err)
	}
	return nil
}

// FileName builds a backup file name. seq is omitted when zero, tag when empty.
func FileName(stem string, captured time.Time, seq int, tag, suffix string) string {
	var b strings.Builder
	b.WriteString(stem)
	b.WriteByte('_')
	b.WriteString(captured.Format(types.BackupTimeLayout))
	if seq > 0 {
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(seq))
	}
	if tag != "" {
		b.WriteByte('_')
		b.WriteString(tag)
	}
	b.WriteString(suffix)
	b.WriteString(types.BackupSuffix)
	return b.String()
}

// ParseName extracts the record fields encoded in a backup file name.
// SourcePath is set to the original base name. ok is false when name does
// not follow the backup naming scheme.
func ParseName(name string) (rec types.BackupRecord, ok bool) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return types.BackupRecord{}, false
	}
	captured, err := time.ParseInLocation(types.BackupTimeLayout, m[2], time.Local)
	if err != nil {
		return types.BackupRecord{}, false
	}
	seq := 0
	if m[3] != "" {
		seq, err = strconv.Atoi(m[3])
		if err != nil {
			return types.BackupRecord{}, false
		}
	}
	return types.BackupRecord{
		SourcePath: m[1] + m[5],
		CapturedAt: captured,
		Tag:        m[4],
		Sequence:   seq,
	}, true
}

// List returns every *.backup file in the store, newest first. A missing
// directory yields an empty list. Files whose names do not parse are listed
// with a zero CapturedAt.
func (s *Store) List() ([]types.BackupRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var records []types.BackupRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), types.BackupSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat backup %s: %w", entry.Name(), err)
		}
		rec, _ := ParseName(entry.Name())
		rec.BackupPath = filepath.Join(s.dir, entry.Name())
		rec.Size = info.Size()
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.CapturedAt.Equal(b.CapturedAt) {
			return a.CapturedAt.After(b.CapturedAt)
		}
		if a.Sequence != b.Sequence {
			return a.Sequence > b.Sequence
		}
		return a.BackupPath > b.BackupPath
	})
	return records, nil
}

// splitName splits a base name into stem and final extension. Dotfiles with
// no further extension keep the whole name as stem.
func splitName(base string) (stem, suffix string) {
	suffix = filepath.Ext(base)
	stem = strings.TrimSuffix(base, suffix)
	if stem == "" {
		return base, ""
	}
	return stem, suffix
}

// generateUUID generates a new UUID v7 for backup records.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
