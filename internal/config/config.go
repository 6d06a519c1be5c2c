// Package config loads homeenergy configuration.
//
// Values are layered in this order, later layers winning:
//  1. built-in defaults (New)
//  2. an optional YAML file
//  3. HOMEENERGY_* environment variables, with "__" separating levels
//     (HOMEENERGY_BACKEND__BASE_URL sets backend.base_url)
//  4. CLI flags, applied by internal/cli
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rshade/homeenergy/internal/energy"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "HOMEENERGY_"

// Output formats.
const (
	OutputAuto  = "auto"
	OutputPlain = "plain"
	OutputJSON  = "json"
)

// Config is the full application configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`

	configPath string
}

// BackendConfig describes where the forecast and usage series live.
type BackendConfig struct {
	BaseURL      string        `yaml:"base_url"`
	ForecastPath string        `yaml:"forecast_path"`
	UsagePath    string        `yaml:"usage_path"`
	Timeout      time.Duration `yaml:"timeout"`
	FetchMode    string        `yaml:"fetch_mode"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	// Format is one of auto, plain or json. Auto picks the interactive
	// dashboard on a terminal and plain text otherwise.
	Format string `yaml:"format"`
	// ShowSummary appends totals to each section. Off by default so the
	// dashboard shows only the two day lists.
	ShowSummary bool `yaml:"show_summary"`
	NoColor     bool `yaml:"no_color"`
}

// LoggingConfig controls the zerolog setup.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File receives logs. Empty means stderr, except for the interactive
	// dashboard which always logs to a file.
	File string `yaml:"file"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:      energy.DefaultBaseURL,
			ForecastPath: energy.DefaultForecastPath,
			UsagePath:    energy.DefaultUsagePath,
			Timeout:      energy.DefaultTimeout,
			FetchMode:    string(energy.FetchSequential),
		},
		Output: OutputConfig{Format: OutputAuto},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		configPath: DefaultConfigPath(),
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/homeenergy/config.yaml, or the
// OS user config dir equivalent.
func DefaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "homeenergy", "config.yaml")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "homeenergy", "config.yaml")
	}
	return filepath.Join(".homeenergy", "config.yaml")
}

// ConfigPath returns the file this Config was loaded from or will be saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file used by Save.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Load builds a Config from defaults, the YAML file at path and the
// environment. An empty path means DefaultConfigPath, which may be absent.
// An explicit path that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := New()
	explicit := path != ""
	if !explicit {
		path = cfg.configPath
	}
	cfg.configPath = path

	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}

	if err := checkDurationUnits(k, "backend.timeout"); err != nil {
		return nil, err
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// checkDurationUnits rejects bare YAML numbers for duration keys. Without a
// unit, "timeout: 30" would decode as 30ns. Zero stays valid.
func checkDurationUnits(k *koanf.Koanf, keys ...string) error {
	for _, key := range keys {
		switch k.Get(key).(type) {
		case int, int64, uint64, float64:
			if k.Float64(key) != 0 {
				return fmt.Errorf("%s: %v has no unit, use a duration such as \"30s\"", key, k.Get(key))
			}
		}
	}
	return nil
}

// Normalize lowercases the enum-valued settings so matching on them is
// case-insensitive everywhere.
func (c *Config) Normalize() {
	c.Backend.FetchMode = strings.ToLower(strings.TrimSpace(c.Backend.FetchMode))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

// envKey maps HOMEENERGY_BACKEND__BASE_URL to backend.base_url.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks every section and joins the problems found.
func (c *Config) Validate() error {
	return errors.Join(
		c.Backend.Validate(),
		c.Output.Validate(),
		c.Logging.Validate(),
	)
}

// Validate checks the backend section.
func (b BackendConfig) Validate() error {
	var errs []error

	u, err := url.Parse(b.BaseURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("backend.base_url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("backend.base_url %q: scheme must be http or https", b.BaseURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("backend.base_url %q: missing host", b.BaseURL))
	}

	if !strings.HasPrefix(b.ForecastPath, "/") {
		errs = append(errs, fmt.Errorf("backend.forecast_path %q must start with /", b.ForecastPath))
	}
	if !strings.HasPrefix(b.UsagePath, "/") {
		errs = append(errs, fmt.Errorf("backend.usage_path %q must start with /", b.UsagePath))
	}
	if b.Timeout < 0 {
		errs = append(errs, fmt.Errorf("backend.timeout must be >= 0, got %s", b.Timeout))
	}
	if _, err := energy.ParseFetchMode(b.FetchMode); err != nil {
		errs = append(errs, fmt.Errorf("backend.fetch_mode: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks the output section.
func (o OutputConfig) Validate() error {
	switch strings.ToLower(o.Format) {
	case OutputAuto, OutputPlain, OutputJSON:
		return nil
	default:
		return fmt.Errorf("output.format %q: want %s, %s or %s", o.Format, OutputAuto, OutputPlain, OutputJSON)
	}
}

// Validate checks the logging section.
func (l LoggingConfig) Validate() error {
	var errs []error
	switch strings.ToLower(l.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not a valid level", l.Level))
	}
	switch strings.ToLower(l.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q: want json or console", l.Format))
	}
	return errors.Join(errs...)
}
