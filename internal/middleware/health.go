package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// HealthChecker is anything the probes can ping: the SQL store, redis.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// CheckFunc adapts a ping function, e.g. the redis cache Ping.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Check(ctx context.Context) error { return f(ctx) }

// DatabaseHealthChecker pings the SQL pool.
type DatabaseHealthChecker struct {
	DB *sql.DB
}

func (d *DatabaseHealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.DB.PingContext(ctx)
}

type probeReport struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks,omitempty"`
}

// CheckStatus is the outcome of one dependency check.
type CheckStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	LatencyMS int64  `json:"latencyMs"`
}

// runChecks pings every dependency concurrently and reports whether all passed.
func runChecks(ctx context.Context, checkers map[string]HealthChecker) (map[string]CheckStatus, bool) {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string]CheckStatus, len(checkers))
		ok  = true
	)
	for name, c := range checkers {
		wg.Add(1)
		go func(name string, c HealthChecker) {
			defer wg.Done()
			start := time.Now()
			err := c.Check(ctx)
			st := CheckStatus{Status: "healthy", LatencyMS: time.Since(start).Milliseconds()}
			if err != nil {
				st.Status = "unhealthy"
				st.Message = err.Error()
			}
			mu.Lock()
			out[name] = st
			if err != nil {
				ok = false
			}
			mu.Unlock()
		}(name, c)
	}
	wg.Wait()
	return out, ok
}

func probe(checkers map[string]HealthChecker, up, down string, detail bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks, ok := runChecks(ctx, checkers)
		rep := probeReport{Status: up, Timestamp: time.Now().UTC()}
		if detail {
			rep.Checks = checks
		}
		code := http.StatusOK
		if !ok {
			rep.Status = down
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(rep)
	}
}

// HealthHandler reports every dependency with its latency.
func HealthHandler(checkers map[string]HealthChecker) http.HandlerFunc {
	return probe(checkers, "healthy", "unhealthy", true)
}

// ReadinessHandler answers 503 until the stores answer pings; no detail.
func ReadinessHandler(checkers map[string]HealthChecker) http.HandlerFunc {
	return probe(checkers, "ready", "not_ready", false)
}

// LivenessHandler only proves the process serves HTTP.
func LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
