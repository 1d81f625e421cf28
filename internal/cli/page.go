package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rshade/pagetable/internal/browse"
	"github.com/rshade/pagetable/internal/client"
	"github.com/rshade/pagetable/internal/pagination"
	"github.com/rshade/pagetable/internal/records"
)

// Output formats of the page command.
const (
	OutputTable  = "table"
	OutputJSON   = "json"
	OutputNDJSON = "ndjson"
	OutputYAML   = "yaml"
)

// Page command errors.
var (
	ErrUnsupportedOutput = errors.New("unsupported output format")
	ErrPagesFailed       = errors.New("some pages could not be fetched")
)

// PageFlags holds the page command's flags.
type PageFlags struct {
	Search         string
	SelectMatching bool
	Sort           string
	Output         string
	Rows           int
}

// PageResult is one fetched page after search, selection and sort.
type PageResult struct {
	Pagination pagination.Meta  `json:"pagination"         yaml:"pagination"`
	Query      string           `json:"query,omitempty"    yaml:"query,omitempty"`
	Records    []records.Record `json:"records"            yaml:"records"`
	Selected   []records.ID     `json:"selected,omitempty" yaml:"selected,omitempty"`
	// Failed marks a page whose fetch failed; the failure is in the log.
	Failed bool `json:"failed,omitempty" yaml:"failed,omitempty"`
}

func newPageCmd(s *session) *cobra.Command {
	var flags PageFlags

	cmd := &cobra.Command{
		Use:   "page [PAGES...]",
		Short: "Fetch pages and print their records",
		Long: `Fetches one or more pages and prints their records without the interactive table.

PAGES accepts single pages, comma lists and ranges (1, 2,4, 3-5). Pages are
fetched concurrently. --search narrows each page by name or email, the same
way the interactive search does, and --select-matching marks those records
as selected.`,
		Example: `  # First page as a table
  pagetable page

  # Pages 1 to 3 as JSON, sorted by email descending
  pagetable page 1-3 --sort email:desc --output json

  # One line per matching record
  pagetable page 1,2 --search example.org --select-matching --output ndjson`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPage(cmd, s, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.Search, "search", "", "case-insensitive substring of name or email")
	cmd.Flags().BoolVar(&flags.SelectMatching, "select-matching", false, "select every record matching --search")
	cmd.Flags().StringVar(&flags.Sort, "sort", "", "sort by field[:asc|desc]; fields: id, name, email")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", OutputTable, "output format: table, json, ndjson, yaml")
	cmd.Flags().IntVar(&flags.Rows, "rows", 0, "rows per page (default table.rows)")

	return cmd
}

func runPage(cmd *cobra.Command, s *session, args []string, flags PageFlags) error {
	ctx := cmd.Context()

	params, err := pageParams(s, args, flags)
	if err != nil {
		return err
	}
	if !isValidOutputFormat(flags.Output) {
		return fmt.Errorf("%w: %q", ErrUnsupportedOutput, flags.Output)
	}

	api := client.NewFromConfig(s.cfg.API, logger)
	results := fetchPages(ctx, api, s.cfg.Fetch.Concurrency, params, flags)

	if err := renderPages(cmd.OutOrStdout(), flags.Output, s.opts.IsTerminal(), results); err != nil {
		return fmt.Errorf("rendering output: %w", err)
	}

	if failed := countFailed(results); failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPagesFailed, failed, len(results))
	}
	return nil
}

func pageParams(s *session, args []string, flags PageFlags) (pagination.Params, error) {
	params := *pagination.NewParams()
	params.Rows = s.cfg.Table.Rows
	if flags.Rows != 0 {
		params.Rows = flags.Rows
	}

	pages, err := pagination.ParsePages(args)
	if err != nil {
		return params, fmt.Errorf("invalid pages: %w", err)
	}
	params.Pages = pages

	field, order, err := pagination.ParseSort(flags.Sort)
	if err != nil {
		return params, fmt.Errorf("invalid --sort: %w", err)
	}
	if field != "" && !pagination.NewRecordSorter().IsValidField(field) {
		return params, fmt.Errorf("invalid --sort: %w: %q (valid: %s)", pagination.ErrInvalidSortField, field,
			strings.Join(pagination.NewRecordSorter().GetValidFields(), ", "))
	}
	params.SortField, params.SortOrder = field, order

	if err := params.Validate(); err != nil {
		return params, fmt.Errorf("invalid flags: %w", err)
	}
	return params, nil
}

// fetchPages drives one browse store per page, concurrently, and returns the
// results in the order the pages were requested. Fetch failures are logged by
// the store and reported through PageResult.Failed.
func fetchPages(
	ctx context.Context,
	api *client.Client,
	concurrency int,
	params pagination.Params,
	flags PageFlags,
) []PageResult {
	results := make([]PageResult, len(params.Pages))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, page := range params.Pages {
		i, page := i, page
		g.Go(func() error {
			results[i] = fetchPage(gCtx, api, page, params, flags)
			// A failed page must not cancel the others.
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func fetchPage(
	ctx context.Context,
	api *client.Client,
	page int,
	params pagination.Params,
	flags PageFlags,
) PageResult {
	// Each page gets its own task tracker so concurrent pages never cancel
	// one another.
	runner := browse.NewRunner(api, browse.NewTasks(false), logger)
	store := browse.NewStore(browse.NewState(browse.Options{
		Rows:         params.Rows,
		DiscardStale: true,
		SendsRows:    api.SendsRows(),
	}), runner)

	var open browse.Event = browse.ChangePage{Page: page}
	if page == pagination.DefaultPage {
		open = browse.Mounted{}
	}
	state := store.Send(ctx, open)
	failed := state.LoadedPage != page

	store.Send(ctx, browse.QueryChanged{Query: flags.Search})
	if flags.SelectMatching {
		store.Send(ctx, browse.SelectMatching{})
	}
	state = store.Send(ctx, browse.SortChanged{Field: params.SortField, Order: params.SortOrder})

	return PageResult{
		Pagination: state.Meta(),
		Query:      state.Query,
		Records:    state.VisibleRows(),
		Selected:   state.Selection.IDs(),
		Failed:     failed,
	}
}

func countFailed(results []PageResult) int {
	n := 0
	for _, r := range results {
		if r.Failed {
			n++
		}
	}
	return n
}

func isValidOutputFormat(format string) bool {
	switch format {
	case OutputTable, OutputJSON, OutputNDJSON, OutputYAML:
		return true
	default:
		return false
	}
}

// renderPages writes results in format. Tables are styled on a terminal and
// plain otherwise.
func renderPages(w io.Writer, format string, styled bool, results []PageResult) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case OutputNDJSON:
		return renderNDJSON(w, results)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	case OutputTable:
		if styled {
			return renderStyledPages(w, results)
		}
		return renderPlainPages(w, results)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedOutput, format)
	}
}

// ndjsonRecord is one line of NDJSON output.
type ndjsonRecord struct {
	Page     int        `json:"page"`
	ID       records.ID `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Selected bool       `json:"selected"`
}

func renderNDJSON(w io.Writer, results []PageResult) error {
	enc := json.NewEncoder(w)
	for _, res := range results {
		selected := make(map[records.ID]bool, len(res.Selected))
		for _, id := range res.Selected {
			selected[id] = true
		}
		for _, r := range res.Records {
			line := ndjsonRecord{
				Page:     res.Pagination.CurrentPage,
				ID:       r.ID,
				Name:     r.Name,
				Email:    r.Email,
				Selected: selected[r.ID],
			}
			if err := enc.Encode(line); err != nil {
				return err
			}
		}
	}
	return nil
}
