package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/contentlens/core/fetch"
)

func TestFetcher_HTTP(t *testing.T) {
	t.Parallel()

	t.Run("returns the body and sends headers", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte("<html><body>ok</body></html>"))
		}))
		defer srv.Close()

		res, err := fetch.New(fetch.WithUserAgent("test-agent")).Fetch(context.Background(), srv.URL+"/page")
		require.NoError(t, err)

		assert.Equal(t, "test-agent", gotUA)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, srv.URL+"/page", res.URL)
		assert.Equal(t, "<html><body>ok</body></html>", res.HTML)
	})

	t.Run("reports the final URL after redirects", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
		})
		mux.HandleFunc("/new", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("moved"))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		res, err := fetch.New().Fetch(context.Background(), srv.URL+"/old")
		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/new", res.URL)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := fetch.New().Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 404")
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("late"))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := fetch.New().Fetch(ctx, srv.URL)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFetcher_Local(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>local</p>"), 0o644))

	t.Run("plain path", func(t *testing.T) {
		t.Parallel()

		res, err := fetch.New().Fetch(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, "<p>local</p>", res.HTML)
		assert.True(t, strings.HasPrefix(res.URL, "file://"), res.URL)
		assert.True(t, strings.HasSuffix(res.URL, "/page.html"), res.URL)
	})

	t.Run("file URL", func(t *testing.T) {
		t.Parallel()

		src := "file://" + filepath.ToSlash(path)
		res, err := fetch.New().Fetch(context.Background(), src)
		require.NoError(t, err)

		assert.Equal(t, "<p>local</p>", res.HTML)
		assert.Equal(t, src, res.URL)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fetch.New().Fetch(context.Background(), filepath.Join(dir, "absent.html"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestFetcher_UnsupportedScheme(t *testing.T) {
	t.Parallel()

	_, err := fetch.New().Fetch(context.Background(), "ftp://example.com/page.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported scheme "ftp"`)
}
