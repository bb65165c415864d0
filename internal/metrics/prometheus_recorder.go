package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "taskdeck"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	cacheHits      *prom.CounterVec
	cacheMisses    *prom.CounterVec
	remoteDuration *prom.HistogramVec
	remoteResults  *prom.CounterVec
	collectionSize *prom.GaugeVec
	httpDuration   *prom.HistogramVec
	httpRequests   *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		cacheHits: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Fetches served from the local cache",
		}, []string{"entity"}),
		cacheMisses: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Fetches that fell through to the remote API",
		}, []string{"entity"}),
		remoteDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_call_duration_seconds",
			Help:      "Duration of remote API calls made by stores",
			Buckets:   prom.DefBuckets,
		}, []string{"entity", "op"}),
		remoteResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "remote_calls_total",
			Help:      "Remote API calls by outcome",
		}, []string{"entity", "op", "result"}),
		collectionSize: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "collection_size",
			Help:      "Number of entities held in each store",
		}, []string{"entity"}),
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Dev API server request duration",
			Buckets:   prom.DefBuckets,
		}, []string{"method", "route"}),
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Dev API server requests by status code",
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(pr.cacheHits, pr.cacheMisses, pr.remoteDuration, pr.remoteResults,
		pr.collectionSize, pr.httpDuration, pr.httpRequests)
	return pr
}

func (p *PrometheusRecorder) IncCacheHit(entity string) {
	if p == nil {
		return
	}
	p.cacheHits.WithLabelValues(entity).Inc()
}

func (p *PrometheusRecorder) IncCacheMiss(entity string) {
	if p == nil {
		return
	}
	p.cacheMisses.WithLabelValues(entity).Inc()
}

func (p *PrometheusRecorder) ObserveRemoteCall(entity, op string, d time.Duration, result ResultLabel) {
	if p == nil {
		return
	}
	p.remoteDuration.WithLabelValues(entity, op).Observe(d.Seconds())
	p.remoteResults.WithLabelValues(entity, op, string(result)).Inc()
}

func (p *PrometheusRecorder) SetCollectionSize(entity string, n int) {
	if p == nil {
		return
	}
	p.collectionSize.WithLabelValues(entity).Set(float64(n))
}

func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if p == nil {
		return
	}
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
