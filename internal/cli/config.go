package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyComponentPath = "component_path"
	cfgKeyBackupDir     = "backup_dir"
	cfgKeyTemplateDir   = "template_dir"
	cfgKeyDataDir       = "data_dir"
	cfgKeyCatalog       = "catalog"
	cfgKeyLogLevel      = "log_level"

	defaultLogLevel = "info"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	ComponentPath string `yaml:"component_path"`
	BackupDir     string `yaml:"backup_dir"`
	TemplateDir   string `yaml:"template_dir"`
	Catalog       bool   `yaml:"catalog"`
	LogLevel      string `yaml:"log_level"`
	DataDir       string `yaml:"data_dir,omitempty"`
}

const configHeader = `# scribe configuration
# Paths are relative to the project root unless absolute.
`

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyComponentPath, types.DefaultComponentPath)
	v.SetDefault(cfgKeyBackupDir, types.DefaultBackupDir)
	v.SetDefault(cfgKeyTemplateDir, types.DefaultTemplateDir)
	v.SetDefault(cfgKeyCatalog, true)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// projectConfig builds the manager configuration from loaded settings.
func projectConfig(root string, v *viper.Viper) types.Config {
	return types.Config{
		Root:          root,
		ComponentPath: v.GetString(cfgKeyComponentPath),
		BackupDir:     v.GetString(cfgKeyBackupDir),
		TemplateDir:   v.GetString(cfgKeyTemplateDir),
	}
}

// ensureDefaultConfigFile writes config.yaml with default values if it does
// not exist. An existing file is left untouched.
func ensureDefaultConfigFile(configDir string) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		ComponentPath: types.DefaultComponentPath,
		BackupDir:     types.DefaultBackupDir,
		TemplateDir:   types.DefaultTemplateDir,
		Catalog:       true,
		LogLevel:      defaultLogLevel,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
