package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagetable/internal/cli"
	"github.com/rshade/pagetable/internal/config"
	"github.com/rshade/pagetable/internal/fixture"
	"github.com/rshade/pagetable/internal/pagination"
	"github.com/rshade/pagetable/internal/records"
)

// setupCLITest isolates the config home and pins the log level.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("PAGETABLE_HOME", home)
	t.Setenv("PAGETABLE_LOGGING_LEVEL", "info")
	t.Setenv("PAGETABLE_LOGGING_FORMAT", "console")
	return home
}

func newTestRoot(env map[string]string) *cobra.Command {
	return cli.NewRootCmdWithOptions("test", cli.RootOptions{
		IsTerminal: func() bool { return false },
		LookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	})
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newTestRoot(nil)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	// A nil slice would make cobra fall back to os.Args.
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// fixtureURL serves five generated records, two per page.
func fixtureURL(t *testing.T, opts ...fixture.Option) string {
	t.Helper()
	opts = append([]fixture.Option{fixture.WithPageSize(2)}, opts...)
	srv := httptest.NewServer(fixture.NewServer(fixture.Generate(5), opts...))
	t.Cleanup(srv.Close)
	return srv.URL
}

func recordNames(rs []records.Record) []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}
	return names
}

func TestPage_JSON(t *testing.T) {
	setupCLITest(t)
	url := fixtureURL(t)

	stdout, _, err := execute(t, "page", "1-2", "--rows", "2", "--output", "json", "--base-url", url)
	require.NoError(t, err)

	var results []cli.PageResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)

	assert.Equal(t, 1, results[0].Pagination.CurrentPage)
	assert.Equal(t, 3, results[0].Pagination.TotalPages)
	assert.Equal(t, 5, results[0].Pagination.TotalItems)
	assert.False(t, results[0].Pagination.HasPrevious)
	assert.Equal(t, []string{"Ann Adams", "Bob Adams"}, recordNames(results[0].Records))

	assert.Equal(t, 2, results[1].Pagination.CurrentPage)
	assert.Equal(t, []string{"Cara Adams", "Dmitri Adams"}, recordNames(results[1].Records))
	assert.Empty(t, results[1].Selected)
}

func TestPage_SearchSelectMatchingNDJSON(t *testing.T) {
	setupCLITest(t)
	url := fixtureURL(t)

	stdout, _, err := execute(t, "page", "--search", "ANN", "--select-matching", "-o", "ndjson", "--base-url", url)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 1)

	var line struct {
		Page     int    `json:"page"`
		ID       int    `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Selected bool   `json:"selected"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &line))
	assert.Equal(t, 1, line.Page)
	assert.Equal(t, 1, line.ID)
	assert.Equal(t, "Ann Adams", line.Name)
	assert.Equal(t, "ann.adams1@example.com", line.Email)
	assert.True(t, line.Selected)
}

func TestPage_SortDescending(t *testing.T) {
	setupCLITest(t)
	url := fixtureURL(t)

	stdout, _, err := execute(t, "page", "1", "--sort", "name:desc", "-o", "json", "--base-url", url)
	require.NoError(t, err)

	var results []cli.PageResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 1)
	assert.Equal(t, []string{"Bob Adams", "Ann Adams"}, recordNames(results[0].Records))
}

func TestPage_PlainTable(t *testing.T) {
	setupCLITest(t)
	url := fixtureURL(t)

	stdout, _, err := execute(t, "page", "2", "--rows", "2", "--base-url", url)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Page 2 of 3 · 5 records")
	assert.Contains(t, stdout, "SEL")
	assert.Contains(t, stdout, "Cara Adams")
	assert.Contains(t, stdout, "dmitri.adams4@example.com")
	assert.NotContains(t, stdout, "Ann Adams")
}

func TestPage_YAML(t *testing.T) {
	setupCLITest(t)
	url := fixtureURL(t)

	stdout, _, err := execute(t, "page", "3", "-o", "yaml", "--base-url", url)
	require.NoError(t, err)

	assert.Contains(t, stdout, "current_page: 3")
	assert.Contains(t, stdout, "Elena Adams")
}

func TestPage_FailedPageIsLoggedOnce(t *testing.T) {
	setupCLITest(t)
	url := fixtureURL(t, fixture.WithFailingPage(2, http.StatusInternalServerError))

	stdout, stderr, err := execute(t, "page", "1-3", "-o", "json", "--base-url", url)
	require.ErrorIs(t, err, cli.ErrPagesFailed)
	assert.Contains(t, err.Error(), "1 of 3")

	var results []cli.PageResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 3)
	assert.False(t, results[0].Failed)
	assert.True(t, results[1].Failed)
	assert.Empty(t, results[1].Records)
	assert.False(t, results[2].Failed)

	assert.Equal(t, 1, strings.Count(stderr, "failed to fetch page"))
}

func TestPage_InvalidFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "page zero",
			args:    []string{"page", "0"},
			wantErr: pagination.ErrInvalidPage,
		},
		{
			name:    "bad range",
			args:    []string{"page", "4-2"},
			wantErr: pagination.ErrInvalidPageRange,
		},
		{
			name:    "unknown sort field",
			args:    []string{"page", "--sort", "phone"},
			wantErr: pagination.ErrInvalidSortField,
		},
		{
			name:    "unsupported output",
			args:    []string{"page", "-o", "xml"},
			wantErr: cli.ErrUnsupportedOutput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			_, _, err := execute(t, tt.args...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigShow_Defaults(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := execute(t, "config", "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, "rows: 10")
	assert.Contains(t, stdout, "api-data-nlq6.onrender.com")
	assert.NotContains(t, stdout, "# loaded from")
}

func TestConfigShow_EnvOverride(t *testing.T) {
	setupCLITest(t)
	t.Setenv("PAGETABLE_TABLE_ROWS", "25")

	stdout, _, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "rows: 25")
}

func TestConfigShow_FlagOverrides(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := execute(t, "--base-url", "http://localhost:9999", "--log-level", "warn", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "localhost:9999")
	assert.Contains(t, stdout, "level: warn")
}

func TestConfigShow_ConfigFile(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "pagetable.yaml")
	require.NoError(t, os.WriteFile(path, []byte("table:\n  rows: 7\n"), 0o600))

	stdout, _, err := execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# loaded from "+path)
	assert.Contains(t, stdout, "rows: 7")
}

func TestConfigShow_ConfigFileFromEnvironment(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "pagetable.yaml")
	require.NoError(t, os.WriteFile(path, []byte("table:\n  rows: 12\n"), 0o600))

	cmd := newTestRoot(map[string]string{"PAGETABLE_CONFIG": path})
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "show"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "rows: 12")
}

func TestConfigShow_MissingConfigFile(t *testing.T) {
	setupCLITest(t)

	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading configuration")
}

func TestConfigShow_InvalidBaseURL(t *testing.T) {
	setupCLITest(t)

	_, _, err := execute(t, "--base-url", "ftp://example.com", "config", "show")
	require.ErrorIs(t, err, config.ErrInvalidBaseURL)
}

func TestBrowse_RequiresTerminal(t *testing.T) {
	for _, args := range [][]string{{"browse"}, {}} {
		t.Run(strings.Join(append([]string{"pagetable"}, args...), " "), func(t *testing.T) {
			home := setupCLITest(t)

			_, stderr, err := execute(t, args...)
			require.ErrorIs(t, err, cli.ErrNotTerminal)

			logFile := filepath.Join(home, "logs", "pagetable.log")
			assert.FileExists(t, logFile)
			assert.Contains(t, stderr, "Logging to "+logFile)
		})
	}
}

func TestRoot_RejectsArguments(t *testing.T) {
	setupCLITest(t)

	_, _, err := execute(t, "unexpected")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "test")
}

// syncBuffer is a bytes.Buffer safe for the server goroutine to write to.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

var servingRe = regexp.MustCompile(`Serving (\d+) records at (http://\S+)/api/data/page/\{page\}`)

func TestServeFixtures(t *testing.T) {
	setupCLITest(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := newTestRoot(nil)
	var stdout, stderr syncBuffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"serve-fixtures", "--addr", "127.0.0.1:0", "--count", "7", "--page-size", "3"})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return servingRe.MatchString(stdout.String())
	}, 5*time.Second, 10*time.Millisecond)

	m := servingRe.FindStringSubmatch(stdout.String())
	assert.Equal(t, "7", m[1])

	resp, err := http.Get(m[2] + "/api/data/page/3")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page records.Page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, records.ID("7"), page.Items[0].ID)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve-fixtures did not stop")
	}
}

func TestServeFixtures_InvalidPageSize(t *testing.T) {
	setupCLITest(t)

	_, _, err := execute(t, "serve-fixtures", "--addr", "127.0.0.1:0", "--page-size", "0")
	require.ErrorIs(t, err, config.ErrInvalidFixtures)
}
