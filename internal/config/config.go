// Package config loads pagetable's configuration from defaults, an optional
// YAML file and PAGETABLE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Default values.
const (
	DefaultBaseURL       = "https://api-data-nlq6.onrender.com"
	DefaultRows          = 10
	DefaultToastDuration = 3 * time.Second
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultFixtureAddr   = "127.0.0.1:8089"
	DefaultFixtureCount  = 95
	DefaultConcurrency   = 4
	EnvPrefix            = "PAGETABLE"
	configDirName        = ".pagetable"
	configFileName       = "config"
	configFileType       = "yaml"
	outputTypeFile       = "file"
)

// Validation errors.
var (
	ErrInvalidBaseURL     = errors.New("api.base_url must be an absolute http(s) URL")
	ErrInvalidRows        = errors.New("table.rows must be > 0")
	ErrInvalidRowsOptions = errors.New("table.rows_options must be positive")
	ErrNegativeDuration   = errors.New("duration must not be negative")
	ErrInvalidLogFormat   = errors.New("logging.format must be 'console' or 'json'")
	ErrInvalidConcurrency = errors.New("fetch.concurrency must be > 0")
	ErrInvalidFixtures    = errors.New("fixtures.count must be >= 0 and fixtures.page_size > 0")
)

// Config is the full application configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api"      yaml:"api"`
	Table    TableConfig    `mapstructure:"table"    yaml:"table"`
	Fetch    FetchConfig    `mapstructure:"fetch"    yaml:"fetch"`
	UI       UIConfig       `mapstructure:"ui"       yaml:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
	Fixtures FixturesConfig `mapstructure:"fixtures" yaml:"fixtures"`
}

// APIConfig configures the data API client.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// Timeout of 0 means requests never time out.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// PageSizeParam, when set, names the query parameter carrying rows.
	// Empty means rows is never sent.
	PageSizeParam string `mapstructure:"page_size_param" yaml:"page_size_param"`
	UserAgent     string `mapstructure:"user_agent"      yaml:"user_agent"`
}

// TableConfig configures the interactive table.
type TableConfig struct {
	Rows        int   `mapstructure:"rows"         yaml:"rows"`
	RowsOptions []int `mapstructure:"rows_options" yaml:"rows_options"`
	Height      int   `mapstructure:"height"       yaml:"height"`
}

// FetchConfig controls how page fetches interact.
type FetchConfig struct {
	// DiscardStale drops responses of superseded requests. With false, the
	// last response to arrive wins regardless of request order.
	DiscardStale bool `mapstructure:"discard_stale"     yaml:"discard_stale"`
	// CancelSuperseded cancels the in-flight request when a new page is requested.
	CancelSuperseded bool `mapstructure:"cancel_superseded" yaml:"cancel_superseded"`
	// Concurrency bounds parallel fetches of the headless page command.
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// UIConfig configures terminal rendering.
type UIConfig struct {
	AltScreen     bool          `mapstructure:"alt_screen"     yaml:"alt_screen"`
	ToastDuration time.Duration `mapstructure:"toast_duration" yaml:"toast_duration"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file"   yaml:"file"`
}

// FixturesConfig configures the development fixture server.
type FixturesConfig struct {
	Addr     string        `mapstructure:"addr"      yaml:"addr"`
	File     string        `mapstructure:"file"      yaml:"file"`
	Count    int           `mapstructure:"count"     yaml:"count"`
	PageSize int           `mapstructure:"page_size" yaml:"page_size"`
	Latency  time.Duration `mapstructure:"latency"   yaml:"latency"`
}

// Validate checks the configuration for values the application cannot use.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout: %w", ErrNegativeDuration)
	}
	if c.Table.Rows <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRows, c.Table.Rows)
	}
	for _, n := range c.Table.RowsOptions {
		if n <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidRowsOptions, n)
		}
	}
	if c.Fetch.Concurrency <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidConcurrency, c.Fetch.Concurrency)
	}
	if c.UI.ToastDuration < 0 {
		return fmt.Errorf("ui.toast_duration: %w", ErrNegativeDuration)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	if c.Fixtures.Count < 0 || c.Fixtures.PageSize <= 0 {
		return fmt.Errorf("%w: count=%d page_size=%d", ErrInvalidFixtures, c.Fixtures.Count, c.Fixtures.PageSize)
	}
	if c.Fixtures.Latency < 0 {
		return fmt.Errorf("fixtures.latency: %w", ErrNegativeDuration)
	}
	return nil
}

// RowsOptions returns the rows-per-page choices, always including Table.Rows.
func (c *Config) RowsOptions() []int {
	for _, n := range c.Table.RowsOptions {
		if n == c.Table.Rows {
			return c.Table.RowsOptions
		}
	}
	return append([]int{c.Table.Rows}, c.Table.RowsOptions...)
}

// ConfigDir returns the pagetable home directory, honoring PAGETABLE_HOME.
func ConfigDir() string {
	if dir := os.Getenv(EnvPrefix + "_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), configDirName)
	}
	return filepath.Join(home, configDirName)
}

// DefaultLogFile is where the interactive table logs unless configured otherwise.
func DefaultLogFile() string {
	return filepath.Join(ConfigDir(), "logs", "pagetable.log")
}
