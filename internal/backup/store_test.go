package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

// fixedClock returns a clock frozen at the given local time.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBackup_MissingSourceIsNoOp(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "backups")
	s := NewStore(dir)

	rec, err := s.Backup(filepath.Join(root, "absent.tsx"), types.TagNone)
	require.NoError(t, err)
	assert.Nil(t, rec)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "backup directory must not be created for a missing source")
}

func TestBackup_CopiesContentAndNamesFile(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "components", "GlobalHeader.tsx")
	writeFile(t, src, "export function GlobalHeader() {}\n")

	at := time.Date(2026, 10, 19, 14, 30, 5, 700_000_000, time.Local)
	s := NewStore(filepath.Join(root, "backups"), WithClock(fixedClock(at)))

	rec, err := s.Backup(src, types.TagNone)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "GlobalHeader_20261019_143005.tsx.backup", filepath.Base(rec.BackupPath))
	assert.Equal(t, at.Truncate(time.Second), rec.CapturedAt)
	assert.Equal(t, src, rec.SourcePath)
	assert.Equal(t, int64(len("export function GlobalHeader() {}\n")), rec.Size)
	assert.NotEmpty(t, rec.ID)

	got, err := os.ReadFile(rec.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, "export function GlobalHeader() {}\n", string(got))
}

func TestBackup_TagInName(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "GlobalHeader.tsx")
	writeFile(t, src, "x")

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	s := NewStore(filepath.Join(root, "backups"), WithClock(fixedClock(at)))

	rec, err := s.Backup(src, types.TagRegenerate)
	require.NoError(t, err)
	assert.Equal(t, "GlobalHeader_20260102_030405_regen.tsx.backup", filepath.Base(rec.BackupPath))
	assert.Equal(t, types.TagRegenerate, rec.Tag)
}

func TestBackup_InvalidTag(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "a.txt")
	writeFile(t, src, "x")

	s := NewStore(filepath.Join(root, "backups"))
	_, err := s.Backup(src, "Bad Tag")
	assert.True(t, errors.Is(err, types.ErrInvalidTag))
}

func TestBackup_SameSecondCollisionGetsSequence(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "GlobalHeader.tsx")
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)
	s := NewStore(filepath.Join(root, "backups"), WithClock(fixedClock(at)))

	var names []string
	for i, content := range []string{"one", "two", "three"} {
		writeFile(t, src, content)
		rec, err := s.Backup(src, types.TagNone)
		require.NoError(t, err, "backup %d", i)
		names = append(names, filepath.Base(rec.BackupPath))

		got, err := os.ReadFile(rec.BackupPath)
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	}

	assert.Equal(t, []string{
		"GlobalHeader_20261019_090000.tsx.backup",
		"GlobalHeader_20261019_090000-2.tsx.backup",
		"GlobalHeader_20261019_090000-3.tsx.backup",
	}, names)
}

func TestBackup_PreservesModTime(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "GlobalHeader.tsx")
	writeFile(t, src, "content")

	old := time.Date(2020, 5, 6, 7, 8, 9, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, old, old))

	s := NewStore(filepath.Join(root, "backups"))
	rec, err := s.Backup(src, types.TagNone)
	require.NoError(t, err)

	info, err := os.Stat(rec.BackupPath)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "mtime %v, want %v", info.ModTime(), old)
}

func TestBackup_DirectoryIsRejected(t *testing.T) {
	root := t.TempDir()
	s := NewStore(filepath.Join(root, "backups"))

	_, err := s.Backup(root, types.TagNone)
	assert.Error(t, err)
}

func TestBackup_DotfileKeepsWholeName(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, ".env")
	writeFile(t, src, "A=1")

	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)
	s := NewStore(filepath.Join(root, "backups"), WithClock(fixedClock(at)))

	rec, err := s.Backup(src, types.TagNone)
	require.NoError(t, err)
	assert.Equal(t, ".env_20261019_090000.backup", filepath.Base(rec.BackupPath))
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		wantOK bool
		source string
		tag    string
		seq    int
	}{
		{name: "plain", file: "GlobalHeader_20261019_143005.tsx.backup", wantOK: true, source: "GlobalHeader.tsx"},
		{name: "tagged", file: "GlobalHeader_20261019_143005_force.tsx.backup", wantOK: true, source: "GlobalHeader.tsx", tag: "force"},
		{name: "sequence and tag", file: "GlobalHeader_20261019_143005-4_regen.tsx.backup", wantOK: true, source: "GlobalHeader.tsx", tag: "regen", seq: 4},
		{name: "no suffix", file: "notes_20261019_143005.backup", wantOK: true, source: "notes"},
		{name: "underscored stem", file: "global_header_20261019_143005.tsx.backup", wantOK: true, source: "global_header.tsx"},
		{name: "underscored suffix", file: "config_20261019_090000.local_dev.backup", wantOK: true, source: "config.local_dev"},
		{name: "underscored suffix with tag", file: "config_20261019_090000-2_regen.local_dev.backup", wantOK: true, source: "config.local_dev", tag: "regen", seq: 2},
		{name: "not a backup", file: "GlobalHeader.tsx", wantOK: false},
		{name: "bad timestamp", file: "GlobalHeader_2026-10-19.tsx.backup", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := ParseName(tt.file)
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.source, rec.SourcePath)
			assert.Equal(t, tt.tag, rec.Tag)
			assert.Equal(t, tt.seq, rec.Sequence)
			assert.Equal(t, 2026, rec.CapturedAt.Year())
		})
	}
}

func TestFileNameRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)
	name := FileName("Header", at, 2, "force", ".tsx")
	assert.Equal(t, "Header_20260304_050607-2_force.tsx.backup", name)

	rec, ok := ParseName(name)
	require.True(t, ok)
	assert.True(t, rec.CapturedAt.Equal(at))
	assert.Equal(t, "Header.tsx", rec.SourcePath)
}

func TestList_NewestFirst(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "GlobalHeader.tsx")
	writeFile(t, src, "v")

	dir := filepath.Join(root, "backups")
	times := []time.Time{
		time.Date(2026, 10, 19, 8, 0, 0, 0, time.Local),
		time.Date(2026, 10, 19, 10, 0, 0, 0, time.Local),
		time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local),
	}
	for _, at := range times {
		_, err := NewStore(dir, WithClock(fixedClock(at))).Backup(src, types.TagNone)
		require.NoError(t, err)
	}
	// Unrelated files are ignored.
	writeFile(t, filepath.Join(dir, "README.md"), "not a backup")

	records, err := NewStore(dir).List()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, 10, records[0].CapturedAt.Hour())
	assert.Equal(t, 9, records[1].CapturedAt.Hour())
	assert.Equal(t, 8, records[2].CapturedAt.Hour())
	for _, r := range records {
		assert.Equal(t, int64(1), r.Size)
		assert.Equal(t, "GlobalHeader.tsx", r.SourcePath)
	}
}

func TestList_MissingDirectory(t *testing.T) {
	records, err := NewStore(filepath.Join(t.TempDir(), "nope")).List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestList_SuffixWithUnderscore(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "config.local_dev")
	writeFile(t, src, "A=1")

	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)
	s := NewStore(filepath.Join(root, "backups"), WithClock(fixedClock(at)))
	rec, err := s.Backup(src, types.TagNone)
	require.NoError(t, err)
	assert.Equal(t, "config_20261019_090000.local_dev.backup", filepath.Base(rec.BackupPath))

	records, err := s.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "config.local_dev", records[0].SourcePath)
	assert.True(t, records[0].CapturedAt.Equal(at))
}
