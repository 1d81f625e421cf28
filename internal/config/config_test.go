package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagetable/internal/logging"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, used, err := Load(LoadOptions{SearchPaths: []string{t.TempDir()}})
	require.NoError(t, err)

	assert.Empty(t, used)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.Empty(t, cfg.API.PageSizeParam)
	assert.Equal(t, 10, cfg.Table.Rows)
	assert.Equal(t, []int{10, 20, 50}, cfg.Table.RowsOptions)
	assert.True(t, cfg.Fetch.DiscardStale)
	assert.True(t, cfg.Fetch.CancelSuperseded)
	assert.Equal(t, DefaultConcurrency, cfg.Fetch.Concurrency)
	assert.Equal(t, DefaultToastDuration, cfg.UI.ToastDuration)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, DefaultFixtureCount, cfg.Fixtures.Count)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileFromSearchPath(t *testing.T) {
	dir := t.TempDir()
	content := `api:
  base_url: http://localhost:9000
  timeout: 5s
  page_size_param: limit
table:
  rows: 25
fetch:
  discard_stale: false
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	cfg, used, err := Load(LoadOptions{SearchPaths: []string{dir}})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.yaml"), used)
	assert.Equal(t, "http://localhost:9000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "limit", cfg.API.PageSizeParam)
	assert.Equal(t, 25, cfg.Table.Rows)
	assert.False(t, cfg.Fetch.DiscardStale)
	assert.True(t, cfg.Fetch.CancelSuperseded, "unset keys keep defaults")
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("table:\n  rows: 25\n"), 0o600))

	t.Setenv("PAGETABLE_TABLE_ROWS", "50")
	t.Setenv("PAGETABLE_API_BASE_URL", "http://127.0.0.1:8089")

	cfg, _, err := Load(LoadOptions{SearchPaths: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Table.Rows)
	assert.Equal(t, "http://127.0.0.1:8089", cfg.API.BaseURL)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, _, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("table:\n  rows: 0\n"), 0o600))

	_, _, err := Load(LoadOptions{ConfigFile: path})
	require.ErrorIs(t, err, ErrInvalidRows)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "relative url", mutate: func(c *Config) { c.API.BaseURL = "/api" }, wantErr: ErrInvalidBaseURL},
		{name: "ftp url", mutate: func(c *Config) { c.API.BaseURL = "ftp://x" }, wantErr: ErrInvalidBaseURL},
		{name: "negative timeout", mutate: func(c *Config) { c.API.Timeout = -time.Second }, wantErr: ErrNegativeDuration},
		{name: "zero rows", mutate: func(c *Config) { c.Table.Rows = 0 }, wantErr: ErrInvalidRows},
		{name: "bad rows option", mutate: func(c *Config) { c.Table.RowsOptions = []int{10, -1} }, wantErr: ErrInvalidRowsOptions},
		{name: "zero concurrency", mutate: func(c *Config) { c.Fetch.Concurrency = 0 }, wantErr: ErrInvalidConcurrency},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: ErrInvalidLogFormat},
		{name: "bad fixture page size", mutate: func(c *Config) { c.Fixtures.PageSize = 0 }, wantErr: ErrInvalidFixtures},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRowsOptions(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []int{10, 20, 50}, cfg.RowsOptions())

	cfg.Table.Rows = 15
	assert.Equal(t, []int{15, 10, 20, 50}, cfg.RowsOptions())
}

func TestConfigDir_HonorsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PAGETABLE_HOME", dir)
	assert.Equal(t, dir, ConfigDir())
	assert.Equal(t, filepath.Join(dir, "logs", "pagetable.log"), DefaultLogFile())
}

func TestLoggingConfig_ToLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Level: "debug", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, got.Output)
	assert.True(t, got.Caller)

	lc.File = "/tmp/x.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/x.log", got.File)
}

func TestLoggingConfig_ForTerminalUI(t *testing.T) {
	t.Setenv("PAGETABLE_HOME", t.TempDir())

	assert.Equal(t, DefaultLogFile(), LoggingConfig{}.ForTerminalUI().File)
	assert.Equal(t, "/var/log/x", LoggingConfig{File: "/var/log/x"}.ForTerminalUI().File)
}
