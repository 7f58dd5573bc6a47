package leaderboard

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// FallbackKind names what was served in place of a fresh fetch
type FallbackKind string

const (
	FallbackStale   FallbackKind = "stale"
	FallbackDefault FallbackKind = "default"
)

const (
	metricFetchTotal   = "leaderboard_fetch_total"
	metricFetchSeconds = "leaderboard_fetch_seconds_total"
	metricCacheHits    = "leaderboard_cache_hits_total"
	metricFallbacks    = "leaderboard_fallback_total"

	resultSuccess = "success"
	resultFailure = "failure"
)

// MetricsCollector defines the interface for collecting leaderboard sync metrics
type MetricsCollector interface {
	RecordFetch(success bool, duration time.Duration)
	RecordCacheHit()
	RecordFallback(kind FallbackKind)
}

// NoOpMetricsCollector is a no-op implementation for when metrics aren't needed
type NoOpMetricsCollector struct{}

func (n *NoOpMetricsCollector) RecordFetch(success bool, duration time.Duration) {}
func (n *NoOpMetricsCollector) RecordCacheHit()                                  {}
func (n *NoOpMetricsCollector) RecordFallback(kind FallbackKind)                 {}

// CounterMetrics keeps process-local Prometheus counters on a private registry,
// so several instances never collide on the default one.
type CounterMetrics struct {
	registry     *prometheus.Registry
	fetches      *prometheus.CounterVec
	fetchSeconds prometheus.Counter
	cacheHits    prometheus.Counter
	fallbacks    *prometheus.CounterVec
}

func NewCounterMetrics() *CounterMetrics {
	m := &CounterMetrics{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricFetchTotal,
			Help: "Upstream leaderboard fetches by result",
		}, []string{"result"}),
		fetchSeconds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricFetchSeconds,
			Help: "Time spent in upstream fetches",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricCacheHits,
			Help: "Requests served from the cache window",
		}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricFallbacks,
			Help: "Failed refreshes served from stale or default data",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.fetches, m.fetchSeconds, m.cacheHits, m.fallbacks)

	// zero-valued series are exported from the start
	m.fetches.WithLabelValues(resultSuccess)
	m.fetches.WithLabelValues(resultFailure)
	m.fallbacks.WithLabelValues(string(FallbackStale))
	m.fallbacks.WithLabelValues(string(FallbackDefault))

	return m
}

func (m *CounterMetrics) RecordFetch(success bool, duration time.Duration) {
	result := resultFailure
	if success {
		result = resultSuccess
	}
	m.fetches.WithLabelValues(result).Inc()
	m.fetchSeconds.Add(duration.Seconds())
}

func (m *CounterMetrics) RecordCacheHit() {
	m.cacheHits.Inc()
}

func (m *CounterMetrics) RecordFallback(kind FallbackKind) {
	switch kind {
	case FallbackStale, FallbackDefault:
		m.fallbacks.WithLabelValues(string(kind)).Inc()
	}
}

// MetricsSnapshot is a point-in-time copy of the counters
type MetricsSnapshot struct {
	FetchSuccess     uint64        `json:"fetch_success"`
	FetchFailure     uint64        `json:"fetch_failure"`
	FetchTime        time.Duration `json:"fetch_time_ns"`
	CacheHits        uint64        `json:"cache_hits"`
	StaleFallbacks   uint64        `json:"stale_fallbacks"`
	DefaultFallbacks uint64        `json:"default_fallbacks"`
}

// Snapshot reads the current counter values back from the registry
func (m *CounterMetrics) Snapshot() MetricsSnapshot {
	var s MetricsSnapshot

	families, err := m.registry.Gather()
	if err != nil {
		return s
	}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			v := metric.GetCounter().GetValue()
			switch mf.GetName() {
			case metricFetchTotal:
				if labelValue(metric, "result") == resultSuccess {
					s.FetchSuccess = uint64(v)
				} else {
					s.FetchFailure = uint64(v)
				}
			case metricFetchSeconds:
				s.FetchTime = time.Duration(v * float64(time.Second))
			case metricCacheHits:
				s.CacheHits = uint64(v)
			case metricFallbacks:
				if labelValue(metric, "kind") == string(FallbackStale) {
					s.StaleFallbacks = uint64(v)
				} else {
					s.DefaultFallbacks = uint64(v)
				}
			}
		}
	}
	return s
}

// Export writes the counters to w in Prometheus text exposition format
func (m *CounterMetrics) Export(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func labelValue(metric *dto.Metric, name string) string {
	for _, lp := range metric.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
