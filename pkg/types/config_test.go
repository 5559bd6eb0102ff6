package types

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty root returns ErrRootEmpty",
			config:  Config{Root: "", ComponentPath: DefaultComponentPath},
			wantErr: ErrRootEmpty,
		},
		{
			name:    "empty component path returns ErrComponentPathEmpty",
			config:  Config{Root: "/tmp/project"},
			wantErr: ErrComponentPathEmpty,
		},
		{
			name:    "absolute component path returns ErrComponentPathAbsolute",
			config:  Config{Root: "/tmp/project", ComponentPath: "/etc/header.tsx"},
			wantErr: ErrComponentPathAbsolute,
		},
		{
			name:    "valid config",
			config:  Config{Root: "/tmp/project", ComponentPath: DefaultComponentPath},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{Root: "/srv/app"}.WithDefaults()

	assert.Equal(t, DefaultComponentPath, cfg.ComponentPath)
	assert.Equal(t, filepath.Join("/srv/app", "backups"), cfg.BackupPath())
	assert.Equal(t, filepath.Join("/srv/app", "templates"), cfg.TemplatePath())
	assert.Equal(t, filepath.Join("/srv/app", "components", "layout", "GlobalHeader.tsx"), cfg.ArtifactPath())
}

func TestConfigAbsoluteBackupDir(t *testing.T) {
	cfg := Config{Root: "/srv/app", BackupDir: "/var/backups/app"}.WithDefaults()
	assert.Equal(t, "/var/backups/app", cfg.BackupPath())
}
