package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/pagetable/internal/config"
	"github.com/rshade/pagetable/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Cobra annotation telling setupLogging where a command's logs belong.
const (
	annotationLogTarget = "pagetable/log-target"
	logTargetFile       = "file"
)

// ErrNotTerminal is returned by browse when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("browse needs an interactive terminal; use 'pagetable page' for scripted output")

// RootOptions injects process dependencies for tests.
type RootOptions struct {
	// IsTerminal reports whether the interactive table can take over the
	// terminal. Defaults to checking stdin and stdout.
	IsTerminal func() bool
	// LookupEnv reads environment variables. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// session is the state shared by every command of one invocation.
type session struct {
	opts      RootOptions
	cfg       *config.Config
	cfgFile   string
	logResult *logging.LogPathResult
}

// NewRootCmd creates the root Cobra command for the pagetable CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithOptions(ver, RootOptions{})
}

// NewRootCmdWithOptions creates the root command with injected dependencies.
// Running the root command without a subcommand opens the interactive table.
func NewRootCmdWithOptions(ver string, opts RootOptions) *cobra.Command {
	if opts.IsTerminal == nil {
		opts.IsTerminal = func() bool { return isTerminal(os.Stdin) && isTerminal(os.Stdout) }
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}
	s := &session{opts: opts}

	cmd := &cobra.Command{
		Use:          "pagetable",
		Short:        "Browse, search and select records from a paginated API",
		Long:         "pagetable: a paginated, searchable, multi-select table over GET /api/data/page/{page}",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		Annotations:  map[string]string{annotationLogTarget: logTargetFile},
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd, s.cfg.Logging)
			s.logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, s.logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, s)
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default $HOME/.pagetable/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("base-url", "", "data API base URL (overrides api.base_url)")
	cmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")

	cmd.AddCommand(newBrowseCmd(s), newPageCmd(s), newServeFixturesCmd(s), newConfigCmd(s))

	return cmd
}

// loadConfig reads the configuration and applies flag overrides, which take
// precedence over the file and environment.
func (s *session) loadConfig(cmd *cobra.Command) error {
	file, _ := cmd.Flags().GetString("config")
	if file == "" {
		if env, ok := s.opts.LookupEnv(config.EnvPrefix + "_CONFIG"); ok {
			file = env
		}
	}

	cfg, used, err := config.Load(config.LoadOptions{ConfigFile: file})
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if cmd.Flags().Changed("base-url") {
		cfg.API.BaseURL, _ = cmd.Flags().GetString("base-url")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	s.cfg = cfg
	s.cfgFile = used
	return nil
}

const rootCmdExample = `  # Open the interactive table
  pagetable

  # Print page 3 as JSON
  pagetable page 3 --output json

  # Search pages 1-5 and print the matching records sorted by name
  pagetable page 1-5 --search smith --sort name

  # Serve fixture data locally and browse it
  pagetable serve-fixtures --latency 500ms &
  pagetable --base-url http://127.0.0.1:8089

  # Show the effective configuration
  pagetable config show`

// newConfigCmd creates the config command group.
func newConfigCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration commands"}
	cmd.AddCommand(newConfigShowCmd(s))
	return cmd
}
