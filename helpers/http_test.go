package helpers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/Melvillian/after-market/pkg/errors"
)

func TestFetchWithBrowserHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Browser-like headers must be present
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, "<html><body>ok</body></html>")
	}))
	defer server.Close()

	body, err := FetchWithBrowserHeaders(context.Background(), server.URL)
	require.NoError(t, err)

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ok")
}

func TestFetchWithBrowserHeadersRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := FetchWithBrowserHeaders(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, apperr.IsType(err, apperr.ErrorTypeFetch))
	assert.True(t, IsRateLimited(err))
}

func TestFetchWithBrowserHeadersBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := FetchWithBrowserHeaders(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, apperr.IsType(err, apperr.ErrorTypeFetch))
	assert.False(t, IsRateLimited(err))
}

func TestFetchWithBrowserHeadersConvertsCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "café" in Latin-1
		w.Write([]byte{'c', 'a', 'f', 0xE9})
	}))
	defer server.Close()

	body, err := FetchWithBrowserHeaders(context.Background(), server.URL)
	require.NoError(t, err)

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "café", string(data))
}

func TestIsRateLimitedNonFetchError(t *testing.T) {
	assert.False(t, IsRateLimited(nil))
	assert.False(t, IsRateLimited(apperr.NewParse("rate limited", nil)))
}
