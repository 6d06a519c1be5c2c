package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/homeenergy/internal/logging"
)

// isolate points the default config path at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestNew_Defaults(t *testing.T) {
	dir := isolate(t)
	cfg := New()

	assert.Equal(t, "http://localhost:8080", cfg.Backend.BaseURL)
	assert.Equal(t, "/api/forecast", cfg.Backend.ForecastPath)
	assert.Equal(t, "/api/optimal-usage", cfg.Backend.UsagePath)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "sequential", cfg.Backend.FetchMode)
	assert.Equal(t, OutputAuto, cfg.Output.Format)
	assert.False(t, cfg.Output.ShowSummary, "summary lines are opt-in")
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(dir, "homeenergy", "config.yaml"), cfg.ConfigPath())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, New().Backend, cfg.Backend)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
backend:
  base_url: https://energy.example.com
  timeout: 5s
  fetch_mode: parallel
output:
  show_summary: true
logging:
  level: debug
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://energy.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "parallel", cfg.Backend.FetchMode)
	assert.Equal(t, "/api/forecast", cfg.Backend.ForecastPath, "unset keys keep defaults")
	assert.True(t, cfg.Output.ShowSummary)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, path, cfg.ConfigPath())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "backend:\n  base_url: https://file.example.com\n")
	t.Setenv("HOMEENERGY_BACKEND__BASE_URL", "https://env.example.com")
	t.Setenv("HOMEENERGY_BACKEND__TIMEOUT", "2s")
	t.Setenv("HOMEENERGY_OUTPUT__FORMAT", "json")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, OutputJSON, cfg.Output.Format)
}

func TestLoad_NormalizesCase(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
backend:
  fetch_mode: Parallel
logging:
  level: DEBUG
  format: Console
`)
	t.Setenv("HOMEENERGY_OUTPUT__FORMAT", "JSON")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, OutputJSON, cfg.Output.Format)
	assert.Equal(t, "parallel", cfg.Backend.FetchMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestConfig_Normalize(t *testing.T) {
	cfg := New()
	cfg.Output.Format = " Plain "
	cfg.Backend.FetchMode = "SEQUENTIAL"

	cfg.Normalize()

	assert.Equal(t, OutputPlain, cfg.Output.Format)
	assert.Equal(t, "sequential", cfg.Backend.FetchMode)
}

func TestLoad_DurationUnits(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Duration
		wantErr bool
	}{
		{name: "with unit", value: "45s", want: 45 * time.Second},
		{name: "compound", value: "1m30s", want: 90 * time.Second},
		{name: "zero disables", value: "0", want: 0},
		{name: "bare integer", value: "30", wantErr: true},
		{name: "bare float", value: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, "backend:\n  timeout: "+tt.value+"\n")

			cfg, err := Load(path)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "backend.timeout")
				assert.Contains(t, err.Error(), "has no unit")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Backend.Timeout)
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
backend:
  base_url: ftp://nowhere
  forecast_path: api/forecast
  fetch_mode: eager
output:
  format: xml
`)

	_, err := Load(path)

	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "scheme must be http or https")
	assert.Contains(t, msg, "backend.forecast_path")
	assert.Contains(t, msg, "backend.fetch_mode")
	assert.Contains(t, msg, "output.format")
}

func TestLoad_MalformedYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "backend: [unclosed\n")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config file")
}

func TestBackendConfig_Validate(t *testing.T) {
	valid := New().Backend

	tests := []struct {
		name    string
		mutate  func(*BackendConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*BackendConfig) {}},
		{name: "missing host", mutate: func(b *BackendConfig) { b.BaseURL = "http://" }, wantErr: "missing host"},
		{name: "usage path", mutate: func(b *BackendConfig) { b.UsagePath = "x" }, wantErr: "backend.usage_path"},
		{name: "negative timeout", mutate: func(b *BackendConfig) { b.Timeout = -time.Second }, wantErr: "backend.timeout"},
		{name: "zero timeout allowed", mutate: func(b *BackendConfig) { b.Timeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			err := b.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoggingConfig_Validate(t *testing.T) {
	assert.NoError(t, LoggingConfig{Level: "warn", Format: "console"}.Validate())
	assert.Error(t, LoggingConfig{Level: "loud", Format: "json"}.Validate())
	assert.Error(t, LoggingConfig{Level: "info", Format: "xml"}.Validate())
}

func TestLoggingConfig_ToLoggingConfig(t *testing.T) {
	stderr := LoggingConfig{Level: "info", Format: "json"}.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, stderr.Output)

	toFile := LoggingConfig{Level: "info", Format: "json", File: "/tmp/x.log"}.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, toFile.Output)
	assert.Equal(t, "/tmp/x.log", toFile.File)
}

func TestLoggingConfig_ForDashboard(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/state")

	out := LoggingConfig{Level: "debug", Format: "console"}.ForDashboard()

	assert.Equal(t, logging.OutputFile, out.Output)
	assert.Equal(t, logging.FormatJSON, out.Format)
	assert.Equal(t, logging.DefaultLogFile(), out.File)
	assert.Equal(t, "debug", out.Level)
}
