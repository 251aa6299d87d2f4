package monitoring

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds application counters. The clamp, unknown-target and fallback
// counters implement prediction.Recorder: those events never surface as
// errors, but they are the observability signal the model's operators watch.
type Metrics struct {
	RequestCount    int64
	ErrorCount      int64
	PredictionCount int64
	CacheHits       int64
	CacheMisses     int64

	UnknownTargetCount int64
	FallbackCount      int64

	StartTime time.Time

	clampsByEstimator map[string]int64
	fallbacksByField  map[string]int64
	mu                sync.RWMutex

	responseTimes []time.Duration
	responseMu    sync.Mutex
}

// NewMetrics creates a metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:         time.Now(),
		clampsByEstimator: make(map[string]int64),
		fallbacksByField:  make(map[string]int64),
		responseTimes:     make([]time.Duration, 0, 1000),
	}
}

// IncrementRequest increments the HTTP request count.
func (m *Metrics) IncrementRequest() { atomic.AddInt64(&m.RequestCount, 1) }

// IncrementError increments the error count.
func (m *Metrics) IncrementError() { atomic.AddInt64(&m.ErrorCount, 1) }

// IncrementPrediction increments the served-prediction count.
func (m *Metrics) IncrementPrediction() { atomic.AddInt64(&m.PredictionCount, 1) }

// IncrementCacheHit increments the cache hit count.
func (m *Metrics) IncrementCacheHit() { atomic.AddInt64(&m.CacheHits, 1) }

// IncrementCacheMiss increments the cache miss count.
func (m *Metrics) IncrementCacheMiss() { atomic.AddInt64(&m.CacheMisses, 1) }

// RecordClamp counts an out-of-range coefficient pulled back into band.
func (m *Metrics) RecordClamp(estimator string) {
	m.mu.Lock()
	m.clampsByEstimator[estimator]++
	m.mu.Unlock()
}

// RecordUnknownTarget counts a lookup that fell back to the neutral multiplier.
func (m *Metrics) RecordUnknownTarget(string) {
	atomic.AddInt64(&m.UnknownTargetCount, 1)
}

// RecordFallback counts a scenario field substituted from defaults.
func (m *Metrics) RecordFallback(field string) {
	atomic.AddInt64(&m.FallbackCount, 1)
	m.mu.Lock()
	m.fallbacksByField[field]++
	m.mu.Unlock()
}

// RecordResponseTime records an HTTP response duration. Only the most recent
// thousand samples are kept.
func (m *Metrics) RecordResponseTime(d time.Duration) {
	m.responseMu.Lock()
	defer m.responseMu.Unlock()
	if len(m.responseTimes) >= 1000 {
		m.responseTimes = m.responseTimes[1:]
	}
	m.responseTimes = append(m.responseTimes, d)
}

// Snapshot returns a point-in-time view suitable for the metrics endpoint.
func (m *Metrics) Snapshot() map[string]interface{} {
	m.mu.RLock()
	clamps := make(map[string]int64, len(m.clampsByEstimator))
	for k, v := range m.clampsByEstimator {
		clamps[k] = v
	}
	fallbacks := make(map[string]int64, len(m.fallbacksByField))
	for k, v := range m.fallbacksByField {
		fallbacks[k] = v
	}
	m.mu.RUnlock()

	m.responseMu.Lock()
	var total time.Duration
	for _, d := range m.responseTimes {
		total += d
	}
	avgMs := 0.0
	if len(m.responseTimes) > 0 {
		avgMs = float64(total.Milliseconds()) / float64(len(m.responseTimes))
	}
	m.responseMu.Unlock()

	return map[string]interface{}{
		"uptime_seconds":       time.Since(m.StartTime).Seconds(),
		"request_count":        atomic.LoadInt64(&m.RequestCount),
		"error_count":          atomic.LoadInt64(&m.ErrorCount),
		"prediction_count":     atomic.LoadInt64(&m.PredictionCount),
		"cache_hits":           atomic.LoadInt64(&m.CacheHits),
		"cache_misses":         atomic.LoadInt64(&m.CacheMisses),
		"unknown_target_count": atomic.LoadInt64(&m.UnknownTargetCount),
		"fallback_count":       atomic.LoadInt64(&m.FallbackCount),
		"clamps_by_estimator":  clamps,
		"fallbacks_by_field":   fallbacks,
		"avg_response_ms":      avgMs,
	}
}
