package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// ConfigFile is an explicit file path. Missing explicit files are an error.
	ConfigFile string
	// SearchPaths are directories searched for config.yaml when ConfigFile is
	// empty. Defaults to ConfigDir() and the working directory.
	SearchPaths []string
}

// Load reads configuration with precedence env > file > defaults.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		paths := opts.SearchPaths
		if paths == nil {
			paths = []string{ConfigDir(), "."}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, v.ConfigFileUsed(), nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("api.page_size_param", "")
	v.SetDefault("api.user_agent", "")

	v.SetDefault("table.rows", DefaultRows)
	v.SetDefault("table.rows_options", []int{10, 20, 50})
	v.SetDefault("table.height", 0)

	v.SetDefault("fetch.discard_stale", true)
	v.SetDefault("fetch.cancel_superseded", true)
	v.SetDefault("fetch.concurrency", DefaultConcurrency)

	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("ui.toast_duration", DefaultToastDuration.String())

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
	v.SetDefault("logging.file", "")

	v.SetDefault("fixtures.addr", DefaultFixtureAddr)
	v.SetDefault("fixtures.file", "")
	v.SetDefault("fixtures.count", DefaultFixtureCount)
	v.SetDefault("fixtures.page_size", DefaultRows)
	v.SetDefault("fixtures.latency", "0s")
}
