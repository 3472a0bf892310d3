package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads and validates the configuration at path. If path names a
// directory the configuration file inside it is used.
func Load(fsys afero.Fs, path string) (*Configuration, error) {
	path = resolvePath(fsys, path)

	configContents, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}

	// Start from the defaults so omitted keys keep their built-in values.
	out := Default()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	out.configPath = path
	return out, nil
}

// LoadOrDefault is like Load but returns the built-in configuration if the
// file doesn't exist.
func LoadOrDefault(fsys afero.Fs, path string) (*Configuration, error) {
	cfg, err := Load(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Initialize writes the default configuration to path if nothing exists there
// yet. Progress is reported to logger.
func Initialize(fsys afero.Fs, path string, logger *log.Logger) error {
	path = resolvePath(fsys, path)

	switch exists, err := afero.Exists(fsys, path); {
	case err != nil:
		return err
	case exists:
		logger.Info("configuration already exists, leaving it untouched", "path", path)
		return nil
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	logger.Info("writing default configuration", "path", path)
	return afero.WriteFile(fsys, path, defaultConfigData, 0600)
}

// resolvePath maps a directory, existing or not, to the configuration file
// inside it. Paths ending in a YAML extension are used as-is.
func resolvePath(fsys afero.Fs, path string) string {
	if isDir, _ := afero.IsDir(fsys, path); isDir {
		return filepath.Join(path, ConfigurationName)
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return path
	}
	return filepath.Join(path, ConfigurationName)
}
