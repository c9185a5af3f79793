package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/catalog/internal/catalog"
)

const sampleJSON = `[
  {"code": "A1", "name": "Widget", "colour": "Red", "type": "PP", "pdf": "a1.pdf"},
  {"code": "B2", "name": "Gadget", "colour": "Blue", "type": "Hybrid", "pdf": null},
  {"extra": true}
]`

func TestClient_LoadsRemoteCatalogue(t *testing.T) {
	t.Parallel()

	var gotUserAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		if r.URL.Path != "/data/products.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleJSON))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/data/products.json")
	require.NoError(t, err)

	records, err := c.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, catalog.Record{Code: "A1", Name: "Widget", Colour: "Red", Type: "PP", PDF: "a1.pdf"}, records[0])
	assert.Empty(t, records[1].PDF)
	assert.Equal(t, catalog.Record{}, records[2])

	assert.True(t, strings.HasPrefix(gotUserAgent, "catalog/"), "User-Agent = %q", gotUserAgent)
	assert.Equal(t, "application/json", gotAccept)
	assert.Empty(t, c.LocalPath())
}

func TestClient_NonSuccessStatusIsLoadError(t *testing.T) {
	t.Parallel()

	for _, code := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusNoContent + 100} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		c, err := NewClient(server.URL)
		require.NoError(t, err)

		_, err = c.Load(context.Background())
		server.Close()

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, OpStatus, loadErr.Op)
		assert.Contains(t, err.Error(), "returned status")
	}
}

func TestClient_UnreachableIsLoadError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := NewClient(addr)
	require.NoError(t, err)

	_, err = c.Load(context.Background())
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, OpFetch, loadErr.Op)
}

func TestClient_MalformedBodiesAreLoadErrors(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"not json":      "{not-json",
		"object":        `{"code": "A1"}`,
		"wrong type":    `[{"code": 12}]`,
		"trailing data": `[] []`,
		"scalar items":  `[1, 2]`,
	}
	for name, body := range bodies {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "products.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

			c, err := NewClient(path)
			require.NoError(t, err)

			records, err := c.Load(context.Background())
			assert.Nil(t, records)
			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, OpDecode, loadErr.Op)
			assert.Equal(t, path, loadErr.Source)
		})
	}
}

func TestClient_LoadsLocalFileAndFileURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o600))

	for _, loc := range []string{path, "file://" + filepath.ToSlash(path)} {
		c, err := NewClient(loc)
		require.NoError(t, err)
		assert.Equal(t, path, c.LocalPath())

		records, err := c.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 3)
	}
}

func TestClient_MissingFileIsLoadError(t *testing.T) {
	c, err := NewClient(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	_, err = c.Load(context.Background())
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, OpFetch, loadErr.Op)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestClient_CancelledContextIsLoadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o600))
	c, err := NewClient(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_DefaultsAndValidation(t *testing.T) {
	c, err := NewClient("   ")
	require.NoError(t, err)
	assert.Equal(t, DefaultLocation, c.Location())
	assert.True(t, filepath.IsAbs(c.LocalPath()))
	assert.Equal(t, DefaultLocation, filepath.Base(c.LocalPath()))

	_, err = NewClient("http://")
	require.Error(t, err)
}

func TestDecode_NullIsEmpty(t *testing.T) {
	records, err := Decode(strings.NewReader("null"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestResolveLink(t *testing.T) {
	remote, err := NewClient("https://example.com/certs/products.json")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/certs/pdf/a1.pdf", remote.ResolveLink("pdf/a1.pdf"))
	assert.Equal(t, "https://example.com/root.pdf", remote.ResolveLink("/root.pdf"))
	assert.Equal(t, "https://cdn.example.com/x.pdf", remote.ResolveLink("https://cdn.example.com/x.pdf"))
	assert.Empty(t, remote.ResolveLink("  "))

	dir := t.TempDir()
	local, err := NewClient(filepath.Join(dir, "products.json"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pdf", "a1.pdf"), local.ResolveLink("pdf/a1.pdf"))
}
