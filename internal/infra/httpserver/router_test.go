package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/leadscope/internal/application/analysis"
	"github.com/bryanwahyu/leadscope/internal/application/report"
	"github.com/bryanwahyu/leadscope/internal/domain/history"
	"github.com/bryanwahyu/leadscope/internal/domain/profile"
	domainreport "github.com/bryanwahyu/leadscope/internal/domain/report"
	"github.com/bryanwahyu/leadscope/internal/infra/httpserver"
)

const recID = "3f2b8c1e-8d4a-4c2e-9a7b-1c2d3e4f5a6b"

type fakeAnalyzer struct {
	lastAnalyze analysis.AnalyzeCommand
	lastBatch   analysis.BatchCommand
	lastLimit   int
	analyzeErr  error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, cmd analysis.AnalyzeCommand) (*analysis.AnalyzeResult, error) {
	f.lastAnalyze = cmd
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return &analysis.AnalyzeResult{
		Profile:   profile.Profile{Username: cmd.Username},
		Report:    &domainreport.Report{Summary: "ok", KeyInsights: []string{}, ContentThemes: []string{}},
		FromCache: true,
	}, nil
}

func (f *fakeAnalyzer) AnalyzeBatch(_ context.Context, cmd analysis.BatchCommand) (*analysis.BatchResult, error) {
	f.lastBatch = cmd
	if len(cmd.Usernames) == 0 {
		return nil, &analysis.ValidationError{Err: analysis.ErrBatchSize}
	}
	return &analysis.BatchResult{
		Total: 2, Completed: 1, Failed: 1,
		Results: []analysis.BatchItem{
			{Username: "a", Success: true, Data: &analysis.BatchItemData{Profile: profile.Profile{Username: "a"}}},
			{Username: "b", Error: "profile not found"},
		},
	}, nil
}

func (f *fakeAnalyzer) History(_ context.Context, limit int) ([]*history.Record, error) {
	f.lastLimit = limit
	return []*history.Record{{ID: recID, Username: "ana"}}, nil
}

func (f *fakeAnalyzer) HistoryByID(_ context.Context, id history.RecordID) (*history.Record, error) {
	if id != recID {
		return nil, history.ErrNotFound
	}
	return &history.Record{ID: id, Username: "ana", Profile: profile.Profile{Username: "ana"}, Report: domainreport.Report{Summary: "kept"}}, nil
}

func serve(t *testing.T, f *fakeAnalyzer, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := httpserver.NewRouter(ctx, f, httpserver.Options{})

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestAnalyzeProfile(t *testing.T) {
	f := &fakeAnalyzer{}
	rec, out := serve(t, f, http.MethodPost, "/api/analyze-profile",
		`{"username":"ana","personaAlvo":"prospect","briefing":"coffee shop in Lisbon","filters":{"dateRange":"week","minEngagement":5}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, true, out["fromCache"])
	data := out["data"].(map[string]any)
	assert.Equal(t, "ok", data["analysis"].(map[string]any)["summary"])

	assert.Equal(t, "prospect", f.lastAnalyze.TargetPersona)
	require.NotNil(t, f.lastAnalyze.Filters)
	assert.Equal(t, profile.DateRangeWeek, f.lastAnalyze.Filters.DateRange)
	assert.Equal(t, 5, f.lastAnalyze.Filters.MinEngagement)
}

func TestAnalyzeProfileTargetPersonaWins(t *testing.T) {
	f := &fakeAnalyzer{}
	serve(t, f, http.MethodPost, "/api/analyze-profile",
		`{"username":"ana","personaAlvo":"prospect","targetPersona":"customer","briefing":"coffee shop in Lisbon"}`)
	assert.Equal(t, "customer", f.lastAnalyze.TargetPersona)
	assert.Nil(t, f.lastAnalyze.Filters)
}

func TestAnalyzeProfileLegacyPersonaValues(t *testing.T) {
	cases := map[string]string{
		"curioso":       "curious",
		"prospecto":     "prospect",
		"cliente":       "customer",
		"influenciador": "influencer",
		"nenhuma":       "none",
	}
	for legacy, want := range cases {
		t.Run(legacy, func(t *testing.T) {
			f := &fakeAnalyzer{}
			rec, _ := serve(t, f, http.MethodPost, "/api/analyze-profile",
				`{"username":"ana","personaAlvo":"`+legacy+`","briefing":"coffee shop in Lisbon"}`)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, want, f.lastAnalyze.TargetPersona)
		})
	}
}

func TestAnalyzeBatchLegacyPersona(t *testing.T) {
	f := &fakeAnalyzer{}
	rec, _ := serve(t, f, http.MethodPost, "/api/analyze-batch",
		`{"usernames":["a","b"],"personaAlvo":"cliente","briefing":"coffee shop in Lisbon"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "customer", f.lastBatch.TargetPersona)
}

func TestAnalyzeProfileErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		body string
		code int
		msg  string
	}{
		{"validation", &analysis.ValidationError{Err: report.ErrBriefingTooShort}, `{"username":"ana","briefing":"short"}`, http.StatusBadRequest, report.ErrBriefingTooShort.Error()},
		{"bad json", nil, `{"username":`, http.StatusBadRequest, "invalid JSON body"},
		{"scrape failure", profile.ErrRateLimited, `{"username":"ana","briefing":"long enough brief"}`, http.StatusInternalServerError, "scraper rate limited"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, out := serve(t, &fakeAnalyzer{analyzeErr: tc.err}, http.MethodPost, "/api/analyze-profile", tc.body)
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, false, out["success"])
			assert.Contains(t, out["error"], tc.msg)
		})
	}
}

func TestAnalyzeBatch(t *testing.T) {
	f := &fakeAnalyzer{}
	rec, out := serve(t, f, http.MethodPost, "/api/analyze-batch",
		`{"usernames":["a","b"],"targetPersona":"curious","briefing":"long enough brief"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])
	assert.EqualValues(t, 2, out["total"])
	assert.EqualValues(t, 1, out["completed"])
	assert.EqualValues(t, 1, out["failed"])
	results := out["results"].([]any)
	require.Len(t, results, 2)
	assert.Equal(t, "profile not found", results[1].(map[string]any)["error"])
	assert.Equal(t, []string{"a", "b"}, f.lastBatch.Usernames)

	rec, out = serve(t, f, http.MethodPost, "/api/analyze-batch", `{"usernames":[],"briefing":"long enough brief"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, out["success"])
}

func TestHistory(t *testing.T) {
	f := &fakeAnalyzer{}
	rec, out := serve(t, f, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, f.lastLimit)
	assert.Len(t, out["data"], 1)

	serve(t, f, http.MethodGet, "/api/history?limit=500", "")
	assert.Equal(t, 100, f.lastLimit)

	rec, _ = serve(t, f, http.MethodGet, "/api/history?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryByID(t *testing.T) {
	f := &fakeAnalyzer{}
	rec, out := serve(t, f, http.MethodGet, "/api/history/"+recID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := out["data"].(map[string]any)
	assert.Equal(t, "kept", data["analysis"].(map[string]any)["summary"])
	assert.Equal(t, "ana", data["profile"].(map[string]any)["username"])

	rec, _ = serve(t, f, http.MethodGet, "/api/history/00000000-0000-0000-0000-000000000000", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = serve(t, f, http.MethodGet, "/api/history/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProbes(t *testing.T) {
	for _, path := range []string{"/health", "/ready", "/live", "/metrics"} {
		rec, _ := serve(t, &fakeAnalyzer{}, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestAuthRequiredWhenKeysConfigured(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := httpserver.NewRouter(ctx, &fakeAnalyzer{}, httpserver.Options{APIKeys: map[string]string{"ops": "k"}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	req.Header.Set("Authorization", "Bearer k")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

}
