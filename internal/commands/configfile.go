package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m-daichendt/comp3110/internal/config"
	"github.com/m-daichendt/comp3110/internal/linemap"
)

// ErrConfigExists is returned by ConfigInit when the file is already there.
var ErrConfigExists = errors.New("config file already exists")

// LoadOptions returns the engine options from the config at path, or the
// defaults when there is no file.
func LoadOptions(path string) (linemap.Options, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return linemap.Options{}, err
	}
	return cfg.Options(), nil
}

// ConfigShow returns the effective config at path as YAML.
func ConfigShow(path string) ([]byte, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return config.Marshal(cfg)
}

// ConfigInit writes the default config to path. An existing file is only
// replaced when force is set.
func ConfigInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s: %w", path, ErrConfigExists)
	}
	data, err := config.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
