package types

import (
	"errors"
	"path/filepath"
)

// Config holds the fixed layout of a managed project. It is passed to the
// artifact manager at construction and never mutated afterwards.
type Config struct {
	// Root is the project root directory. Relative directories below are
	// resolved against it.
	Root string `json:"root" yaml:"root"`

	// ComponentPath locates the managed artifact below Root.
	ComponentPath string `json:"component_path" yaml:"component_path"`

	// BackupDir holds backup copies. Default: "backups".
	BackupDir string `json:"backup_dir,omitempty" yaml:"backup_dir,omitempty"`

	// TemplateDir is reserved for presentation-layer template helpers.
	// Default: "templates".
	TemplateDir string `json:"template_dir,omitempty" yaml:"template_dir,omitempty"`
}

// Default layout values.
const (
	DefaultComponentPath = "components/layout/GlobalHeader.tsx"
	DefaultBackupDir     = "backups"
	DefaultTemplateDir   = "templates"
)

// Config validation errors.
var (
	ErrRootEmpty             = errors.New("root must not be empty")
	ErrComponentPathEmpty    = errors.New("component path must not be empty")
	ErrComponentPathAbsolute = errors.New("component path must be relative to root")
)

// WithDefaults returns a copy of c with empty optional fields filled in.
func (c Config) WithDefaults() Config {
	if c.ComponentPath == "" {
		c.ComponentPath = DefaultComponentPath
	}
	if c.BackupDir == "" {
		c.BackupDir = DefaultBackupDir
	}
	if c.TemplateDir == "" {
		c.TemplateDir = DefaultTemplateDir
	}
	return c
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Root == "" {
		return ErrRootEmpty
	}
	if c.ComponentPath == "" {
		return ErrComponentPathEmpty
	}
	if filepath.IsAbs(c.ComponentPath) {
		return ErrComponentPathAbsolute
	}
	return nil
}

// ArtifactPath returns the absolute-or-root-relative path of the managed artifact.
func (c Config) ArtifactPath() string {
	return filepath.Join(c.Root, c.ComponentPath)
}

// BackupPath returns the backup directory.
func (c Config) BackupPath() string {
	return c.underRoot(c.BackupDir)
}

// TemplatePath returns the reserved template directory.
func (c Config) TemplatePath() string {
	return c.underRoot(c.TemplateDir)
}

func (c Config) underRoot(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.Root, dir)
}
