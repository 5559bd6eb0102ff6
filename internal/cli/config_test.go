package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

func TestLoadConfig_Defaults(t *testing.T) {
	v, err := loadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, types.DefaultComponentPath, v.GetString(cfgKeyComponentPath))
	assert.Equal(t, types.DefaultBackupDir, v.GetString(cfgKeyBackupDir))
	assert.True(t, v.GetBool(cfgKeyCatalog))
	assert.Equal(t, defaultLogLevel, v.GetString(cfgKeyLogLevel))
	assert.Empty(t, v.GetString(cfgKeyDataDir))
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	content := "component_path: src/Header.tsx\ncatalog: false\ndata_dir: /var/scribe\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	v, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "src/Header.tsx", v.GetString(cfgKeyComponentPath))
	assert.False(t, v.GetBool(cfgKeyCatalog))
	assert.Equal(t, "/var/scribe", v.GetString(cfgKeyDataDir))
	// Unset keys keep their defaults.
	assert.Equal(t, types.DefaultTemplateDir, v.GetString(cfgKeyTemplateDir))

	cfg := projectConfig("/proj", v)
	assert.Equal(t, "/proj/src/Header.tsx", cfg.ArtifactPath())
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("catalog: [unclosed\n"), 0o644))

	_, err := loadConfig(dir)
	assert.Error(t, err)
}

func TestEnsureDefaultConfigFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".scribe")

	created, err := ensureDefaultConfigFile(dir)
	require.NoError(t, err)
	assert.True(t, created)

	v, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultComponentPath, v.GetString(cfgKeyComponentPath))
	assert.True(t, v.GetBool(cfgKeyCatalog))

	created, err = ensureDefaultConfigFile(dir)
	require.NoError(t, err)
	assert.False(t, created)
}
