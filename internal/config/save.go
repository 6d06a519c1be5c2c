package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by Init when the file exists and force is false.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	return data, nil
}

// Save writes the config to ConfigPath, creating parent directories.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("no config path set")
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Init writes the default configuration to path (DefaultConfigPath when
// empty). It refuses to overwrite an existing file unless force is set.
func Init(path string, force bool) (*Config, error) {
	cfg := New()
	if path != "" {
		cfg.SetConfigPath(path)
	}

	if !force {
		_, err := os.Stat(cfg.ConfigPath())
		if err == nil {
			return nil, ErrConfigExists
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("cannot access config path %s: %w", cfg.ConfigPath(), err)
		}
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("failed to save configuration: %w", err)
	}
	return cfg, nil
}
