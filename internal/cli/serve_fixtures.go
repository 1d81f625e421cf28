package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/pagetable/internal/config"
	"github.com/rshade/pagetable/internal/fixture"
	"github.com/rshade/pagetable/internal/records"
)

func newServeFixturesCmd(s *session) *cobra.Command {
	var fixtures config.FixturesConfig

	cmd := &cobra.Command{
		Use:   "serve-fixtures",
		Short: "Serve fixture records over the data API's wire format",
		Long: `Serves GET /api/data/page/{page} from generated records, or from a YAML or
JSON file, so the table can be exercised without the real API. --latency
slows every response, which makes out-of-order responses easy to provoke.`,
		Example: `  # 95 generated records, 10 per page
  pagetable serve-fixtures

  # Records from a file, half a second per response
  pagetable serve-fixtures --file testdata/people.yaml --latency 500ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeFixtures(cmd, mergeFixtureFlags(cmd, s.cfg.Fixtures, fixtures))
		},
	}

	cmd.Flags().StringVar(&fixtures.Addr, "addr", config.DefaultFixtureAddr, "listen address")
	cmd.Flags().StringVar(&fixtures.File, "file", "", "YAML or JSON file of records (default: generated)")
	cmd.Flags().IntVar(&fixtures.Count, "count", config.DefaultFixtureCount, "number of generated records")
	cmd.Flags().IntVar(&fixtures.PageSize, "page-size", config.DefaultRows, "records per page")
	cmd.Flags().DurationVar(&fixtures.Latency, "latency", 0, "delay before every response")

	return cmd
}

// mergeFixtureFlags overlays explicitly set flags on the configured values.
func mergeFixtureFlags(cmd *cobra.Command, cfg, flags config.FixturesConfig) config.FixturesConfig {
	if cmd.Flags().Changed("addr") {
		cfg.Addr = flags.Addr
	}
	if cmd.Flags().Changed("file") {
		cfg.File = flags.File
	}
	if cmd.Flags().Changed("count") {
		cfg.Count = flags.Count
	}
	if cmd.Flags().Changed("page-size") {
		cfg.PageSize = flags.PageSize
	}
	if cmd.Flags().Changed("latency") {
		cfg.Latency = flags.Latency
	}
	return cfg
}

func loadFixtureRecords(cfg config.FixturesConfig) ([]records.Record, error) {
	if cfg.File == "" {
		return fixture.Generate(cfg.Count), nil
	}
	items, err := fixture.LoadFile(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("loading fixtures: %w", err)
	}
	return items, nil
}

func runServeFixtures(cmd *cobra.Command, cfg config.FixturesConfig) error {
	if cfg.PageSize <= 0 {
		return fmt.Errorf("%w: page size %d", config.ErrInvalidFixtures, cfg.PageSize)
	}
	items, err := loadFixtureRecords(cfg)
	if err != nil {
		return err
	}

	srv := fixture.NewServer(items,
		fixture.WithPageSize(cfg.PageSize),
		fixture.WithLatency(cfg.Latency),
		fixture.WithLogger(logger),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, cfg.Addr, func(addr net.Addr) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving %d records at http://%s/api/data/page/{page}\n",
			len(items), addr)
	})
}
