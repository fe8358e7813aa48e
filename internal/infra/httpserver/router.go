package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/bryanwahyu/leadscope/internal/application/analysis"
	"github.com/bryanwahyu/leadscope/internal/domain/history"
	"github.com/bryanwahyu/leadscope/internal/middleware"
)

// Analyzer is the part of analysis.Service the handlers need.
type Analyzer interface {
	Analyze(ctx context.Context, cmd analysis.AnalyzeCommand) (*analysis.AnalyzeResult, error)
	AnalyzeBatch(ctx context.Context, cmd analysis.BatchCommand) (*analysis.BatchResult, error)
	History(ctx context.Context, limit int) ([]*history.Record, error)
	HistoryByID(ctx context.Context, id history.RecordID) (*history.Record, error)
}

type Options struct {
	Logger      *zap.Logger
	APIKeys     map[string]string
	CORSOrigins []string
	RateLimit   struct{ Capacity, RefillRate int }
	Checks      map[string]middleware.HealthChecker
}

type Router struct {
	svc Analyzer
	log *zap.Logger
}

// maxBody caps request payloads; a full batch of usernames fits easily.
const maxBody = 1 << 20

// NewRouter mounts the API. ctx bounds background helpers such as the rate limiter janitor.
func NewRouter(ctx context.Context, svc Analyzer, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	r := &Router{svc: svc, log: log}
	mux := chi.NewRouter()

	mux.Use(chimw.RequestID)
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.AccessLog(log))
	mux.Use(middleware.MetricsMiddleware)
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-API-Key"},
		MaxAge:         300,
	}))

	mux.Get("/health", middleware.HealthHandler(opts.Checks))
	mux.Get("/ready", middleware.ReadinessHandler(opts.Checks))
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Use(middleware.APIKeyAuth(opts.APIKeys))
		if opts.RateLimit.Capacity > 0 {
			rt.Use(middleware.RateLimitMiddleware(ctx, opts.RateLimit.Capacity, opts.RateLimit.RefillRate))
		}
		rt.Post("/analyze-profile", r.wrap(r.handleAnalyze))
		rt.Post("/analyze-batch", r.wrap(r.handleBatch))
		rt.Get("/history", r.wrap(r.handleHistory))
		rt.Get("/history/{id}", r.wrap(r.handleHistoryByID))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequest marks errors caused by a malformed payload.
type badRequest struct{ error }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var br badRequest
		switch {
		case errors.As(err, &br), analysis.IsValidation(err):
			writeJSON(w, http.StatusBadRequest, errorBody(err))
		case errors.Is(err, history.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody(err))
		default:
			r.log.Error("request failed", zap.String("path", req.URL.Path), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorBody(err))
		}
	}
}

// POST /api/analyze-profile
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body analyzeRequest
	if err := decode(req, &body); err != nil {
		return err
	}
	res, err := r.svc.Analyze(req.Context(), body.command())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, analyzeResponse{
		Success:   true,
		Data:      profileAndReport{Profile: res.Profile, Report: res.Report},
		FromCache: res.FromCache,
	})
	return nil
}

// POST /api/analyze-batch
func (r *Router) handleBatch(w http.ResponseWriter, req *http.Request) error {
	var body batchRequest
	if err := decode(req, &body); err != nil {
		return err
	}
	res, err := r.svc.AnalyzeBatch(req.Context(), body.command())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, batchResponse{Success: true, BatchResult: res})
	return nil
}

// GET /api/history?limit=10
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	limit := 0
	if raw := req.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest{fmt.Errorf("limit must be a number")}
		}
		limit = n
	}
	list, err := r.svc.History(req.Context(), middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": list})
	return nil
}

// GET /api/history/{id}
func (r *Router) handleHistoryByID(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateRecordID(id); err != nil {
		return badRequest{err}
	}
	rec, err := r.svc.HistoryByID(req.Context(), history.RecordID(id))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    profileAndReport{Profile: rec.Profile, Report: &rec.Report},
	})
	return nil
}

func decode(req *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(req.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		return badRequest{fmt.Errorf("invalid JSON body: %w", err)}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func errorBody(err error) map[string]any {
	return map[string]any{"success": false, "error": err.Error()}
}
