package source

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parsifal/htmlnode"
)

func quietLoader(t *testing.T) *Loader {
	t.Helper()
	return NewLoader(log.New(&bytes.Buffer{}), 5*time.Second)
}

func valueOf(t *testing.T, doc *Document, sel string) string {
	t.Helper()
	n := cascadia.MustCompile(sel).MatchFirst(doc.Root)
	require.NotNil(t, n)
	return htmlnode.GetAttr(n, "value")
}

func TestLoadEmptyTarget(t *testing.T) {
	_, err := quietLoader(t).Load(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyTarget)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.xhtml")
	require.NoError(t, os.WriteFile(path, []byte(`<input id="i" value="file">`), 0o644))

	doc, err := quietLoader(t).Load(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, doc.XML)
	assert.Equal(t, "file", valueOf(t, doc, "#i"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := quietLoader(t).Load(context.Background(), filepath.Join(t.TempDir(), "missing.html"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadStdin(t *testing.T) {
	l := quietLoader(t)
	l.Stdin = strings.NewReader(`<input id="i" value="stdin">`)
	doc, err := l.Load(context.Background(), "-")
	require.NoError(t, err)
	assert.False(t, doc.XML)
	assert.Equal(t, "stdin", valueOf(t, doc, "#i"))
}

func TestLoadHTTPDecodesGzipAndCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))
		assert.Contains(t, r.Header.Get("User-Agent"), "parsifal")
		w.Header().Set("Content-Type", "text/html; charset=windows-1251")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		// "Да" in windows-1251
		gz.Write([]byte("<input id=\"i\" value=\"\xc4\xe0\">"))
		gz.Close()
	}))
	defer srv.Close()

	doc, err := quietLoader(t).Load(context.Background(), srv.URL+"/form")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/form", doc.URL)
	assert.Equal(t, "Да", valueOf(t, doc, "#i"))
	assert.False(t, doc.XML)
}

func TestLoadHTTPXHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xhtml+xml; charset=utf-8")
		w.Write([]byte(`<html xmlns="http://www.w3.org/1999/xhtml"><body><input id="i" value="x"/></body></html>`))
	}))
	defer srv.Close()

	doc, err := quietLoader(t).Load(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, doc.XML)
	assert.Equal(t, "x", valueOf(t, doc, "#i"))
}

func TestLoadHTTPCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := quietLoader(t).Load(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}
