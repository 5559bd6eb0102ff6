package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoot(t *testing.T) {
	orig := getwd
	getwd = func() (string, error) { return "/work/cwd", nil }
	t.Cleanup(func() { getwd = orig })

	tests := []struct {
		name   string
		flag   string
		envVal string
		want   string
	}{
		{name: "flag wins over env", flag: "/explicit/root", envVal: "/env/root", want: "/explicit/root"},
		{name: "env wins when flag empty", envVal: "/env/root", want: "/env/root"},
		{name: "cwd when both empty", want: "/work/cwd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvRoot, tt.envVal)
			got, err := ResolveRoot(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveConfigDir(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		envVal string
		want   string
	}{
		{name: "flag wins over env", flag: "/explicit/config", envVal: "/env/config", want: "/explicit/config"},
		{name: "env wins when flag empty", envVal: "/env/config", want: "/env/config"},
		{name: "root default when both empty", want: filepath.Join("/proj", DefaultConfigDirName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag, "/proj")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/proj", DefaultDataDirName), ResolveDataDir("", "/proj"))
	assert.Equal(t, filepath.Join("/proj", "var", "db"), ResolveDataDir("var/db", "/proj"))
	assert.Equal(t, "/abs/db", ResolveDataDir("/abs/db", "/proj"))
}
