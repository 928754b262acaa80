package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><table><tr><td>1</td></tr></table></body></html>"))
	}))
	defer srv.Close()

	f := New(Options{UserAgent: "worldometer-test"})
	before := time.Now().UTC()
	res, err := f.Fetch(context.Background(), srv.URL+"/country-codes/")
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/country-codes/", res.URL)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.HTML, "<td>1</td>")
	assert.False(t, res.FetchedAt.Before(before))
	assert.Equal(t, "worldometer-test", gotUA)
}

func TestFetchUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := New(Options{}).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{}).Fetch(ctx, srv.URL)
	require.Error(t, err)
}

func TestMakeURL(t *testing.T) {
	const base = "https://www.example.com"

	assert.Equal(t, base, MakeURL(base, ""))

	for _, path := range []string{"/", "/a", "/a/b", "/a/b/", "/a1", "/a2/", "/a?arg=1"} {
		t.Run("valid "+path, func(t *testing.T) {
			assert.Equal(t, base+path, MakeURL(base, path))
		})
	}

	for _, path := range []string{"a", "a/", "a/b/", "a?arg=1"} {
		t.Run("invalid "+path, func(t *testing.T) {
			assert.Equal(t, base, MakeURL(base, path))
		})
	}

	assert.Equal(t, base+"/a", MakeURL(base+"/", "/a"))
}
