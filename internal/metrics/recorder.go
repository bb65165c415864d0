// Package metrics provides observability hooks for stores and the dev API server.
package metrics

import "time"

// ResultLabel enumerates operation outcomes for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailure ResultLabel = "failure"
)

// ResultOf maps an error to its result label
func ResultOf(err error) ResultLabel {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

// Recorder defines the hooks called by stores and the server. Implementations
// may forward to Prometheus; NoopRecorder is the default when metrics are off.
type Recorder interface {
	IncCacheHit(entity string)
	IncCacheMiss(entity string)
	ObserveRemoteCall(entity, op string, d time.Duration, result ResultLabel)
	SetCollectionSize(entity string, n int)
	ObserveHTTPRequest(method, route string, status int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncCacheHit(string) {}
func (NoopRecorder) IncCacheMiss(string) {}
func (NoopRecorder) ObserveRemoteCall(string, string, time.Duration, ResultLabel) {}
func (NoopRecorder) SetCollectionSize(string, int) {}
func (NoopRecorder) ObserveHTTPRequest(string, string, int, time.Duration) {}
