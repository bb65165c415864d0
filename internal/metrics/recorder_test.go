package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncCacheHit("projects")
	r.IncCacheMiss("projects")
	r.ObserveRemoteCall("projects", "get_all", time.Millisecond, ResultSuccess)
	r.SetCollectionSize("projects", 3)
	r.ObserveHTTPRequest("GET", "/projects", 200, time.Millisecond)
}

func TestResultOf(t *testing.T) {
	assert.Equal(t, ResultSuccess, ResultOf(nil))
	assert.Equal(t, ResultFailure, ResultOf(errors.New("boom")))
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncCacheHit("projects")
	pr.IncCacheHit("projects")
	pr.IncCacheMiss("tasks")
	pr.ObserveRemoteCall("tasks", "get_all", 150*time.Millisecond, ResultFailure)
	pr.SetCollectionSize("workers", 4)
	pr.ObserveHTTPRequest("POST", "/projects", 201, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(pr.cacheHits.WithLabelValues("projects")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.cacheMisses.WithLabelValues("tasks")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.remoteResults.WithLabelValues("tasks", "get_all", "failure")))
	assert.Equal(t, 4.0, testutil.ToFloat64(pr.collectionSize.WithLabelValues("workers")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.httpRequests.WithLabelValues("POST", "/projects", "201")))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncCacheHit("projects")
		pr.SetCollectionSize("projects", 1)
	})
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncCacheMiss("workers")

	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `taskdeck_cache_misses_total{entity="workers"} 1`))
}
