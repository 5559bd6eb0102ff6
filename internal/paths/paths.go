// Package paths resolves the project root, configuration directory, and
// catalog data directory used by the scribe CLI.
package paths

import (
	"os"
	"path/filepath"
)

// Root-relative directory names.
const (
	DefaultConfigDirName = ".scribe"
	DefaultDataDirName   = ".scribe-db"
)

// Environment variable names for directory overrides.
const (
	EnvRoot      = "SCRIBE_ROOT"
	EnvConfigDir = "SCRIBE_CONFIG_DIR"
)

// getwd can be overridden in tests.
var getwd = os.Getwd

// ResolveRoot returns the project root following the precedence chain:
// flag > SCRIBE_ROOT env > current working directory.
func ResolveRoot(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvRoot); env != "" {
		return filepath.Abs(env)
	}
	return getwd()
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > SCRIBE_CONFIG_DIR env > <root>/.scribe.
func ResolveConfigDir(flag, root string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return filepath.Join(root, DefaultConfigDirName), nil
}

// ResolveDataDir returns the catalog data directory: the config.yaml value
// when set (relative values are taken below root), else <root>/.scribe-db.
func ResolveDataDir(configYAMLValue, root string) string {
	if configYAMLValue == "" {
		return filepath.Join(root, DefaultDataDirName)
	}
	if filepath.IsAbs(configYAMLValue) {
		return configYAMLValue
	}
	return filepath.Join(root, configYAMLValue)
}
