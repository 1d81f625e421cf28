package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/pagetable/internal/browse"
	"github.com/rshade/pagetable/internal/client"
	"github.com/rshade/pagetable/internal/logging"
	"github.com/rshade/pagetable/internal/tui"
)

func newBrowseCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive record table",
		Long: `Opens a full-screen table of records fetched one page at a time.

Search filters the loaded page by name or email. Selections persist across
searches and page changes. Logs go to a file so they never draw over the table.`,
		Annotations: map[string]string{annotationLogTarget: logTargetFile},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, s)
		},
	}
}

func runBrowse(cmd *cobra.Command, s *session) error {
	if !s.opts.IsTerminal() {
		return ErrNotTerminal
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	log := *logging.FromContext(ctx)
	api := client.NewFromConfig(s.cfg.API, log)
	runner := browse.NewRunner(api, browse.NewTasks(s.cfg.Fetch.CancelSuperseded), log)

	model := tui.NewBrowserModel(ctx, runner, tui.BrowserOptions{
		Rows:          s.cfg.Table.Rows,
		RowsOptions:   s.cfg.RowsOptions(),
		Height:        s.cfg.Table.Height,
		DiscardStale:  s.cfg.Fetch.DiscardStale,
		SendsRows:     api.SendsRows(),
		ToastDuration: s.cfg.UI.ToastDuration,
	})

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if s.cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	logger.Info().Ctx(ctx).Str("base_url", s.cfg.API.BaseURL).Msg("starting interactive table")
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
