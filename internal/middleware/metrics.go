package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics stores application metrics
type Metrics struct {
	RequestsTotal      uint64
	RequestsInProgress uint64
	RequestsSuccess    uint64
	RequestsFailed     uint64
	AnalysesTotal      uint64
	AnalysesCacheHits  uint64
	AnalysesFailed     uint64
	ReportsModel       uint64
	ReportsFallback    uint64
	CachePurged        uint64
	StartTime          time.Time
}

var globalMetrics = &Metrics{
	StartTime: time.Now(),
}

// IncrementRequests increments total request counter
func IncrementRequests() {
	atomic.AddUint64(&globalMetrics.RequestsTotal, 1)
}

func IncrementInProgress() {
	atomic.AddUint64(&globalMetrics.RequestsInProgress, 1)
}

func DecrementInProgress() {
	atomic.AddUint64(&globalMetrics.RequestsInProgress, ^uint64(0))
}

func IncrementSuccess() {
	atomic.AddUint64(&globalMetrics.RequestsSuccess, 1)
}

func IncrementFailed() {
	atomic.AddUint64(&globalMetrics.RequestsFailed, 1)
}

// RecordAnalysis counts one pipeline run.
func RecordAnalysis(fromCache bool, err error) {
	atomic.AddUint64(&globalMetrics.AnalysesTotal, 1)
	if fromCache {
		atomic.AddUint64(&globalMetrics.AnalysesCacheHits, 1)
	}
	if err != nil {
		atomic.AddUint64(&globalMetrics.AnalysesFailed, 1)
	}
}

// RecordReport counts reports by the path that produced them ("model" or "fallback").
func RecordReport(source string) {
	if source == "fallback" {
		atomic.AddUint64(&globalMetrics.ReportsFallback, 1)
		return
	}
	atomic.AddUint64(&globalMetrics.ReportsModel, 1)
}

func AddCachePurged(n int64) {
	if n > 0 {
		atomic.AddUint64(&globalMetrics.CachePurged, uint64(n))
	}
}

// GetMetrics returns current metrics
func GetMetrics() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return map[string]interface{}{
		"requests_total":       atomic.LoadUint64(&globalMetrics.RequestsTotal),
		"requests_in_progress": atomic.LoadUint64(&globalMetrics.RequestsInProgress),
		"requests_success":     atomic.LoadUint64(&globalMetrics.RequestsSuccess),
		"requests_failed":      atomic.LoadUint64(&globalMetrics.RequestsFailed),
		"analyses_total":       atomic.LoadUint64(&globalMetrics.AnalysesTotal),
		"analyses_cache_hits":  atomic.LoadUint64(&globalMetrics.AnalysesCacheHits),
		"analyses_failed":      atomic.LoadUint64(&globalMetrics.AnalysesFailed),
		"reports_model":        atomic.LoadUint64(&globalMetrics.ReportsModel),
		"reports_fallback":     atomic.LoadUint64(&globalMetrics.ReportsFallback),
		"cache_purged":         atomic.LoadUint64(&globalMetrics.CachePurged),
		"uptime_seconds":       time.Since(globalMetrics.StartTime).Seconds(),
		"memory": map[string]interface{}{
			"alloc_bytes":       m.Alloc,
			"total_alloc_bytes": m.TotalAlloc,
			"sys_bytes":         m.Sys,
			"num_gc":            m.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}
}

// MetricsMiddleware tracks request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		IncrementRequests()
		IncrementInProgress()
		defer DecrementInProgress()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode >= 200 && wrapped.statusCode < 400 {
			IncrementSuccess()
		} else {
			IncrementFailed()
		}
	})
}

// MetricsHandler returns metrics as JSON
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(GetMetrics())
}
