package manifest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listing = `{
  "message": "Welcome to the Mini Data Query Simulation Engine API",
  "endpoints": {
    "/auth/login": "Get authentication token (POST)",
    "/query": "Process natural language queries (POST)",
    "/explain": "Get explanation of a query (POST)",
    "/health": "Check API health (GET)"
  },
  "version": "1.0.0"
}`

func TestDiscoverCachesPerBaseURL(t *testing.T) {
	ClearCache()
	defer ClearCache()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/api", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listing))
	}))
	defer srv.Close()

	m, err := Discover(context.Background(), srv.Client(), srv.URL, "")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", m.Version)
	assert.True(t, m.Supports("/query"))
	assert.Equal(t, []string{"/validate"}, m.Missing(Default()))
	assert.Equal(t, []string{"/auth/login", "/explain", "/health", "/query"}, m.Paths())

	_, err = Discover(context.Background(), srv.Client(), srv.URL, "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestDiscoverRejectsBadResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"error":"nope"}`},
		{name: "not json", status: http.StatusOK, body: `<html>`},
		{name: "no endpoints", status: http.StatusOK, body: `{"version":"1.0.0"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ClearCache()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := Discover(context.Background(), srv.Client(), srv.URL, "")
			assert.Error(t, err)
			assert.Nil(t, GetCached(srv.URL+"/api"))
		})
	}
}

func TestDiscoverUsesConfiguredPath(t *testing.T) {
	ClearCache()
	defer ClearCache()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/listing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listing))
	}))
	defer srv.Close()

	m, err := Discover(context.Background(), srv.Client(), srv.URL, "/v2/listing")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", m.Version)
	assert.Same(t, m, GetCached(srv.URL+"/v2/listing"))

	_, err = Discover(context.Background(), srv.Client(), srv.URL, "")
	assert.Error(t, err)
}

func TestNilManifest(t *testing.T) {
	var m *Manifest
	assert.False(t, m.Supports("/query"))
	assert.Nil(t, m.Paths())
}
