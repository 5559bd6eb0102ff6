// Package manager orchestrates the regenerate, backup, and verify cycle for a
// single generated artifact.
//
// Operations are synchronous and assume one caller per artifact path. No
// locking is performed: concurrent regenerations of the same path race and
// the last writer wins.
package manager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/scribe/internal/atomicfile"
	"github.com/mesh-intelligence/scribe/internal/backup"
	"github.com/mesh-intelligence/scribe/internal/integrity"
	"github.com/mesh-intelligence/scribe/internal/render"
	"github.com/mesh-intelligence/scribe/pkg/types"
)

// artifactPerm is the mode of a newly created artifact.
const artifactPerm = 0o644

// Renderer produces artifact content and component scaffolds.
type Renderer interface {
	Render() string
	Scaffold(name, kind string) (string, error)
}

// Manager owns the managed artifact. Its configuration is fixed at
// construction.
type Manager struct {
	cfg       types.Config
	store     *backup.Store
	renderer  Renderer
	checklist types.Checklist
	journal   types.Journal
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithJournal records backup and regenerate events.
func WithJournal(j types.Journal) Option {
	return func(m *Manager) { m.journal = j }
}

// WithRenderer replaces the embedded template renderer.
func WithRenderer(r Renderer) Option {
	return func(m *Manager) { m.renderer = r }
}

// WithChecklist replaces integrity.DefaultChecklist.
func WithChecklist(c types.Checklist) Option {
	return func(m *Manager) { m.checklist = c }
}

// WithClock overrides the time source for backups and journal events.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// New validates cfg, creates the backup and template directories if absent,
// and returns a Manager.
func New(cfg types.Config, opts ...Option) (*Manager, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	cfg.Root = root

	m := &Manager{
		cfg:       cfg,
		checklist: integrity.DefaultChecklist,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.renderer == nil {
		r, err := render.New()
		if err != nil {
			return nil, err
		}
		m.renderer = r
	}
	m.store = backup.NewStore(cfg.BackupPath(), backup.WithClock(m.now))

	for _, dir := range []string{cfg.BackupPath(), cfg.TemplatePath()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return m, nil
}

// Config returns the manager's configuration with defaults applied and an
// absolute root.
func (m *Manager) Config() types.Config {
	return m.cfg
}

// Resolve maps path to the file the manager operates on. An empty path is the
// configured artifact; relative paths are taken below the root.
func (m *Manager) Resolve(path string) string {
	switch {
	case path == "":
		return m.cfg.ArtifactPath()
	case filepath.IsAbs(path):
		return filepath.Clean(path)
	default:
		return filepath.Join(m.cfg.Root, path)
	}
}

// Regenerate overwrites path with freshly rendered content and returns the
// written path. Existing content is backed up first; if that backup fails,
// nothing is written. The write goes through a temp file and rename, so an
// interruption leaves either the old or the new artifact.
func (m *Manager) Regenerate(path string) (string, error) {
	target := m.Resolve(path)
	log := m.logger.With(zap.String("path", target))

	rec, err := m.store.Backup(target, types.TagRegenerate)
	if err != nil {
		log.Error("backup before regenerate failed", zap.Error(err))
		return "", fmt.Errorf("backup before regenerate: %w", err)
	}
	if rec != nil {
		log.Info("backup created", zap.String("backup", rec.BackupPath), zap.Int64("size", rec.Size))
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create parent directory: %w", err)
	}
	content := m.renderer.Render()
	if err := atomicfile.WriteFile(target, []byte(content), m.permFor(rec)); err != nil {
		log.Error("write artifact failed", zap.Error(err))
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	log.Info("artifact regenerated", zap.Int("bytes", len(content)))

	if err := m.recordBackup(rec); err != nil {
		return target, err
	}
	event := types.Event{Kind: types.EventRegenerate, Path: target}
	if rec != nil {
		event.BackupID = rec.ID
	}
	if err := m.record(event); err != nil {
		return target, err
	}
	return target, nil
}

// CheckIntegrity reads path from disk and verifies it against the manager's
// checklist. A missing file yields an error wrapping types.ErrMissingArtifact.
func (m *Manager) CheckIntegrity(path string) (*types.VerificationResult, error) {
	return m.verifyFile(path, m.checklist)
}

// BackupOnly snapshots any file without regenerating it. A missing file
// returns (nil, nil).
func (m *Manager) BackupOnly(path string) (*types.BackupRecord, error) {
	target := m.Resolve(path)
	rec, err := m.store.Backup(target, types.TagNone)
	if err != nil {
		m.logger.Error("backup failed", zap.String("path", target), zap.Error(err))
		return nil, fmt.Errorf("backup %s: %w", target, err)
	}
	if rec == nil {
		m.logger.Info("nothing to back up", zap.String("path", target))
		return nil, nil
	}
	m.logger.Info("backup created", zap.String("path", target), zap.String("backup", rec.BackupPath))
	if err := m.recordBackup(rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// EnsureReport describes what Ensure found and did.
type EnsureReport struct {
	Path        string                    `json:"path"`
	Before      *types.VerificationResult `json:"before,omitempty"`
	After       *types.VerificationResult `json:"after"`
	Regenerated bool                      `json:"regenerated"`
}

// Ensure verifies path and regenerates it when it is missing or fails
// verification. After is the result of the final verification.
func (m *Manager) Ensure(path string) (*EnsureReport, error) {
	target := m.Resolve(path)
	report := &EnsureReport{Path: target}

	before, err := m.CheckIntegrity(target)
	switch {
	case errors.Is(err, types.ErrMissingArtifact):
		m.logger.Info("artifact missing, regenerating", zap.String("path", target))
	case err != nil:
		return nil, err
	case before.Passed:
		report.Before = before
		report.After = before
		return report, nil
	default:
		report.Before = before
		m.logger.Warn("artifact failed verification, regenerating",
			zap.String("path", target), zap.Strings("missing", before.Missing()))
	}

	if _, err := m.Regenerate(target); err != nil {
		return nil, err
	}
	report.Regenerated = true

	after, err := m.CheckIntegrity(target)
	if err != nil {
		return nil, err
	}
	report.After = after
	return report, nil
}

// Stats reads path and evaluates integrity.StyleChecklist. The style outcomes
// are informational; the result's Stats carries the content statistics.
func (m *Manager) Stats(path string) (*types.VerificationResult, error) {
	return m.verifyFile(path, integrity.StyleChecklist)
}

// Backups lists the backup directory, newest first.
func (m *Manager) Backups() ([]types.BackupRecord, error) {
	return m.store.List()
}

// Scaffold renders a component template. Nothing is written to disk.
func (m *Manager) Scaffold(name, kind string) (string, error) {
	return m.renderer.Scaffold(name, kind)
}

func (m *Manager) verifyFile(path string, checklist types.Checklist) (*types.VerificationResult, error) {
	target := m.Resolve(path)
	data, err := os.ReadFile(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", types.ErrMissingArtifact, target)
		}
		return nil, fmt.Errorf("read %s: %w", target, err)
	}

	result := integrity.Verify(string(data), checklist)
	m.logger.Debug("artifact verified",
		zap.String("path", target),
		zap.Bool("passed", result.Passed),
		zap.Strings("missing", result.Missing()))
	return &result, nil
}

// permFor keeps the mode of the file being replaced.
func (m *Manager) permFor(rec *types.BackupRecord) os.FileMode {
	if rec == nil {
		return artifactPerm
	}
	info, err := os.Stat(rec.BackupPath)
	if err != nil {
		return artifactPerm
	}
	return info.Mode().Perm()
}

func (m *Manager) recordBackup(rec *types.BackupRecord) error {
	if rec == nil {
		return nil
	}
	return m.record(types.Event{
		Kind:     types.EventBackup,
		Path:     rec.SourcePath,
		BackupID: rec.ID,
		Detail:   rec.BackupPath,
	})
}

func (m *Manager) record(event types.Event) error {
	if m.journal == nil {
		return nil
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = m.now().UTC()
	}
	if _, err := m.journal.Record(event); err != nil {
		m.logger.Error("journal record failed", zap.String("kind", event.Kind), zap.Error(err))
		return fmt.Errorf("record %s event: %w", event.Kind, err)
	}
	return nil
}
