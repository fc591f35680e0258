package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"name":"aurora"}`))
	}))
	defer srv.Close()

	var out struct {
		Name string `json:"name"`
	}
	c := NewWithHTTPClient(srv.Client())
	require.NoError(t, c.JSON(context.Background(), srv.URL, &out))
	require.Equal(t, "aurora", out.Name)
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewWithHTTPClient(srv.Client())
	_, err := c.Get(context.Background(), srv.URL)
	require.Error(t, err)
	require.EqualValues(t, 1, calls.Load())
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewWithHTTPClient(srv.Client())
	body, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
	require.EqualValues(t, 3, calls.Load())
}

func TestPostJSONSendsBodyAndHeaders(t *testing.T) {
	var gotBody []byte
	var gotAuth, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		w.Write([]byte("ack"))
	}))
	defer srv.Close()

	c := NewWithHTTPClient(srv.Client())
	body, err := c.PostJSON(context.Background(), srv.URL,
		map[string]string{"q": "hello"},
		map[string]string{"Authorization": "token abc"})
	require.NoError(t, err)
	require.Equal(t, "ack", string(body))
	require.JSONEq(t, `{"q":"hello"}`, string(gotBody))
	require.Equal(t, "token abc", gotAuth)
	require.Equal(t, "application/json", gotType)
}

func TestPostJSONDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewWithHTTPClient(srv.Client())
	_, err := c.PostJSON(context.Background(), srv.URL, map[string]string{}, nil)
	require.Error(t, err)
	require.EqualValues(t, 1, calls.Load())
}

func TestDownloadWritesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "out.bin")
	c := NewWithHTTPClient(srv.Client())
	require.NoError(t, c.Download(context.Background(), srv.URL, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "payload", string(raw))
}

func TestDownloadRemovesPartialOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "out.bin")
	c := NewWithHTTPClient(srv.Client())
	require.Error(t, c.Download(context.Background(), srv.URL, path))

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestHeadReportsTypeAndSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", "42")
	}))
	defer srv.Close()

	c := NewWithHTTPClient(srv.Client())
	contentType, size, err := c.Head(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "image/png", contentType)
	require.EqualValues(t, 42, size)
}
