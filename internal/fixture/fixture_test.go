package fixture

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagetable/internal/records"
)

func TestGenerate(t *testing.T) {
	items := Generate(25)
	require.Len(t, items, 25)
	assert.Equal(t, records.ID("1"), items[0].ID)
	assert.Equal(t, "Ann Adams", items[0].Name)
	assert.Equal(t, "ann.adams1@example.com", items[0].Email)
	assert.Equal(t, records.ID("25"), items[24].ID)
	assert.Equal(t, Generate(25), items, "generation is deterministic")
}

func TestServer_Page(t *testing.T) {
	s := NewServer(Generate(23), WithPageSize(10))

	p1 := s.Page(1)
	assert.Len(t, p1.Items, 10)
	assert.Equal(t, 23, p1.Total)
	assert.Equal(t, 3, p1.TotalPages)

	p3 := s.Page(3)
	require.Len(t, p3.Items, 3)
	assert.Equal(t, records.ID("21"), p3.Items[0].ID)

	p4 := s.Page(4)
	assert.Empty(t, p4.Items)
	assert.NotNil(t, p4.Items)
	assert.Equal(t, 3, p4.TotalPages)
}

func TestServer_HandlePage(t *testing.T) {
	s := NewServer(Generate(12), WithPageSize(5))
	srv := httptest.NewServer(s)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/data/page/2")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var page records.Page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Len(t, page.Items, 5)
	assert.Equal(t, records.ID("6"), page.Items[0].ID)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, s.Hits(2))
	assert.Equal(t, 1, s.TotalHits())
}

func TestServer_BadPages(t *testing.T) {
	srv := httptest.NewServer(NewServer(Generate(3)))
	defer srv.Close()

	for _, path := range []string{"/api/data/page/0", "/api/data/page/abc", "/api/data/page/-1"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestServer_FailingPage(t *testing.T) {
	srv := httptest.NewServer(NewServer(Generate(30), WithFailingPage(2, http.StatusInternalServerError)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/data/page/2")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/data/page/1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Healthz(t *testing.T) {
	srv := httptest.NewServer(NewServer(nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_PageLatency(t *testing.T) {
	s := NewServer(Generate(20), WithPageLatency(func(page int) time.Duration {
		if page == 1 {
			return 50 * time.Millisecond
		}
		return 0
	}))
	srv := httptest.NewServer(s)
	defer srv.Close()

	start := time.Now()
	resp, err := http.Get(srv.URL + "/api/data/page/1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "records.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
- id: 1
  name: Ann
  email: a@x.io
- id: b-2
  name: Bob
  email: b@y.io
`), 0o600))

	wrappedPath := filepath.Join(dir, "wrapped.yml")
	require.NoError(t, os.WriteFile(wrappedPath, []byte(`
items:
  - id: 7
    name: Gus
    email: g@z.io
`), 0o600))

	jsonPath := filepath.Join(dir, "records.json")
	require.NoError(t, os.WriteFile(jsonPath,
		[]byte(`{"items":[{"id":3,"name":"Cara","email":"c@x.io"}],"total":1,"totalPages":1}`), 0o600))

	items, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, []records.Record{
		{ID: "1", Name: "Ann", Email: "a@x.io"},
		{ID: "b-2", Name: "Bob", Email: "b@y.io"},
	}, items)

	items, err = LoadFile(wrappedPath)
	require.NoError(t, err)
	assert.Equal(t, []records.Record{{ID: "7", Name: "Gus", Email: "g@z.io"}}, items)

	items, err = LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []records.Record{{ID: "3", Name: "Cara", Email: "c@x.io"}}, items)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestLoadFile_MissingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: NoID\n  email: n@x.io\n"), 0o600))

	_, err := LoadFile(path)
	require.ErrorIs(t, err, records.ErrInvalidID)
}

func TestListenAndServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewServer(Generate(5))

	addrCh := make(chan net.Addr, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.ListenAndServe(ctx, "127.0.0.1:0", func(a net.Addr) { addrCh <- a })
	}()

	var addr net.Addr
	select {
	case addr = <-addrCh:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr.String() + "/api/data/page/1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
