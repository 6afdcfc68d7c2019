package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/jobmatch"
	"resumescore/internal/observability"
	"resumescore/internal/resume"
	"resumescore/internal/session"
)

const sampleResume = `Jane Doe
Senior Software Engineer

Experience
Led a team of five engineers and built a payments platform in Go.
Reduced latency by 40 percent across the checkout service.

Skills
Go, Kubernetes, PostgreSQL, Docker`

type fakeScorer struct {
	err     error
	calls   int
	lastJob string
}

func (f *fakeScorer) Analyze(ctx context.Context, resumeText, jobText string) (*resume.Result, error) {
	f.calls++
	f.lastJob = jobText
	if f.err != nil {
		return nil, f.err
	}
	return &resume.Result{
		FinalScore:       72.5,
		FoundSkills:      []string{"go", "kubernetes"},
		MissingSkills:    []string{"terraform"},
		StrongVerbs:      []string{"led", "built"},
		ReadabilityScore: 61,
		Suggestions:      []string{"Add a summary section"},
	}, nil
}

type fakeMatcher struct {
	err error
}

func (f *fakeMatcher) Analyze(ctx context.Context, resumeText, jobText string, prefs jobmatch.Preferences) (*jobmatch.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &jobmatch.Result{
		OverallScore:    64,
		SkillsMatch:     70,
		ExperienceMatch: 80,
		SemanticMatch:   40,
		KeywordMatch:    55,
		MatchingSkills:  []string{"go"},
		MissingSkills:   []string{"rust"},
		Recommendations: []string{"Learn rust"},
		Preferences:     prefs,
		AnalysisID:      "3f1c6a2e-0000-4000-8000-000000000001",
		Timestamp:       "2026-01-02T03:04:05Z",
	}, nil
}

func (f *fakeMatcher) FindSimilarJobs(ctx context.Context, profile jobmatch.UserProfile, listings []jobmatch.Listing, limit int) ([]jobmatch.SimilarJob, error) {
	if limit <= 0 || limit > len(listings) {
		limit = len(listings)
	}
	jobs := make([]jobmatch.SimilarJob, 0, limit)
	for _, l := range listings[:limit] {
		jobs = append(jobs, jobmatch.SimilarJob{Listing: l, MatchScore: 50})
	}
	return jobs, nil
}

func (f *fakeMatcher) SkillRecommendations(userSkills []string, targetRole string) []string {
	return []string{"kubernetes", "terraform"}
}

type testServer struct {
	*Server
	handler http.Handler
	scorer  *fakeScorer
	matcher *fakeMatcher
	store   session.Store
}

func newTestServer(t *testing.T, cfg ServerConfig) *testServer {
	t.Helper()

	store, err := session.NewFileStore(t.TempDir())
	require.NoError(t, err)

	scorer := &fakeScorer{}
	matcher := &fakeMatcher{}
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = 1 << 20
	}
	cfg.Version = "test"

	s := NewServer(nil, cfg, Deps{Scorer: scorer, Matcher: matcher, Store: store}, errors.NewNopLogger())
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	if s.RateLimiter != nil {
		t.Cleanup(s.RateLimiter.Close)
	}

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, nil)
	require.NoError(t, err)

	return &testServer{Server: s, handler: s.Handler(om), scorer: scorer, matcher: matcher, store: store}
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) postJSON(path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return ts.do(req)
}

type upload struct {
	field, filename, content string
}

func multipartRequest(t *testing.T, path string, files []upload, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestHealthHandler(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var health struct {
		Status   string          `json:"status"`
		Version  string          `json:"version"`
		Services map[string]bool `json:"services"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)
	assert.Equal(t, map[string]bool{
		"resume_analyzer": true,
		"job_matcher":     true,
		"file_processor":  true,
		"session_store":   true,
	}, health.Services)
}

func TestHealthHandlerDegradedWithoutStore(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})
	ts.deps.Store = nil

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"degraded"`)
}

func TestResumeAnalyzeJSON(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.postJSON("/api/resume/analyze", map[string]string{
		"resume_text":     sampleResume,
		"job_description": "Go engineer",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Resume analysis completed", env.Message)
	assert.Equal(t, "2026-01-02T03:04:05Z", env.Timestamp)

	var result resume.Result
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.InDelta(t, 72.5, result.FinalScore, 0.001)
	assert.True(t, session.ValidID(result.SessionID))
	assert.Equal(t, "2026-01-02T03:04:05Z", result.Timestamp)
	assert.Equal(t, "Go engineer", ts.scorer.lastJob)

	var stored resume.Result
	require.NoError(t, ts.store.Load(context.Background(), result.SessionID, session.KindAnalysis, &stored))
	assert.Equal(t, result.SessionID, stored.SessionID)
}

func TestResumeAnalyzeRejectsBadRequests(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	tests := []struct {
		name        string
		contentType string
		body        string
		wantCode    string
		wantMessage string
	}{
		{"missing resume text", "application/json", `{"job_description":"x"}`, errors.ErrCodeMissingField, "resume_text is required"},
		{"empty body", "application/json", ``, errors.ErrCodeInvalidRequest, "No data provided"},
		{"malformed json", "application/json", `{"resume_text":`, errors.ErrCodeInvalidRequest, ""},
		{"wrong content type", "text/plain", `hello`, errors.ErrCodeInvalidRequest, "Content-Type must be application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/resume/analyze", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := ts.do(req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantCode, env.ErrorCode)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, env.Message)
			}
		})
	}
	assert.Zero(t, ts.scorer.calls)
}

func TestResumeAnalyzeMultipart(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	t.Run("resume with job description text", func(t *testing.T) {
		req := multipartRequest(t, "/api/resume/analyze",
			[]upload{{"resume", "resume.txt", sampleResume}},
			map[string]string{"job_description_text": "Looking for a Go engineer"})
		rec := ts.do(req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "Looking for a Go engineer", ts.scorer.lastJob)
	})

	t.Run("job description file wins over text", func(t *testing.T) {
		req := multipartRequest(t, "/api/resume/analyze",
			[]upload{
				{"resume", "resume.txt", sampleResume},
				{"job_description", "job.txt", "Platform engineer with Kubernetes"},
			},
			map[string]string{"job_description_text": "ignored"})
		rec := ts.do(req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "Platform engineer with Kubernetes", ts.scorer.lastJob)
	})

	t.Run("missing resume file", func(t *testing.T) {
		req := multipartRequest(t, "/api/resume/analyze", nil, map[string]string{"job_description_text": "x"})
		rec := ts.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, errors.ErrCodeMissingField, env.ErrorCode)
		assert.Equal(t, "No resume file provided", env.Message)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		req := multipartRequest(t, "/api/resume/analyze",
			[]upload{{"resume", "resume.exe", sampleResume}}, nil)
		rec := ts.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, errors.ErrCodeUnsupportedFile, decodeEnvelope(t, rec).ErrorCode)
	})
}

func TestResumeAnalyzeServerError(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})
	ts.scorer.err = errors.NewComputationError(errors.ErrCodeAnalysisFailed, "scoring blew up", nil)

	rec := ts.postJSON("/api/resume/analyze", map[string]string{"resume_text": sampleResume})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, errors.ErrCodeAnalysisFailed, env.ErrorCode)
	assert.Equal(t, "Resume analysis failed: scoring blew up", env.Message)
}

func TestRequestTooLarge(t *testing.T) {
	ts := newTestServer(t, ServerConfig{MaxRequestSize: 256})

	rec := ts.postJSON("/api/resume/analyze", map[string]string{"resume_text": strings.Repeat("a", 1024)})

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, errors.ErrCodeFileTooLarge, decodeEnvelope(t, rec).ErrorCode)
}

func TestReportDownload(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.postJSON("/api/resume/analyze", map[string]string{"resume_text": sampleResume})
	require.Equal(t, http.StatusOK, rec.Code)
	var result resume.Result
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
	id := result.SessionID

	tests := []struct {
		name        string
		query       string
		contentType string
		ext         string
		prefix      string
	}{
		{"default pdf", "", "application/pdf", "pdf", "%PDF"},
		{"markdown", "?format=markdown", "text/markdown", "md", "#"},
		{"text", "?format=text", "text/plain", "txt", ""},
		{"json", "?format=json", "application/json", "json", "{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/resume/report/"+id+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), tt.contentType))
			assert.Equal(t,
				fmt.Sprintf(`attachment; filename="Resume_Analysis_Report_%s.%s"`, id[:8], tt.ext),
				rec.Header().Get("Content-Disposition"))
			assert.NotEmpty(t, rec.Body.Bytes())
			assert.True(t, strings.HasPrefix(rec.Body.String(), tt.prefix))
		})
	}
}

func TestReportErrors(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.postJSON("/api/resume/analyze", map[string]string{"resume_text": sampleResume})
	require.Equal(t, http.StatusOK, rec.Code)
	var result resume.Result
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"invalid id", "/api/resume/report/not-a-uuid", http.StatusBadRequest, errors.ErrCodeInvalidSession},
		{"unknown session", "/api/resume/report/" + session.NewID(), http.StatusNotFound, errors.ErrCodeSessionNotFound},
		{"unsupported format", "/api/resume/report/" + result.SessionID + "?format=docx", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"analysis id on match endpoint", "/api/job-match/report/" + result.SessionID, http.StatusNotFound, errors.ErrCodeSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeEnvelope(t, rec).ErrorCode)
		})
	}
}

func TestJobMatch(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.postJSON("/api/job-match/analyze", map[string]any{
		"resume_text":      sampleResume,
		"job_description":  "Go engineer",
		"user_preferences": map[string]any{"remote": true},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result jobmatch.Result
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
	assert.InDelta(t, 64, result.OverallScore, 0.001)
	assert.Equal(t, true, result.Preferences["remote"])
	assert.Empty(t, result.SessionID)

	rec = ts.postJSON("/api/job-match/analyze", map[string]string{"resume_text": sampleResume})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "job_description is required", decodeEnvelope(t, rec).Message)
}

func TestJobMatchFiles(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	t.Run("stores the match for reports", func(t *testing.T) {
		req := multipartRequest(t, "/api/job-match/analyze-files",
			[]upload{
				{"resume", "resume.txt", sampleResume},
				{"job_description", "job.html", "<html><body><p>Senior Go engineer</p></body></html>"},
			}, nil)
		rec := ts.do(req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var result jobmatch.Result
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
		require.True(t, session.ValidID(result.SessionID))

		rec = ts.do(httptest.NewRequest(http.MethodGet, "/api/job-match/report/"+result.SessionID+"?format=markdown", nil))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "Job_Match_Report_"+result.SessionID[:8]+".md")
	})

	t.Run("requires a job description", func(t *testing.T) {
		req := multipartRequest(t, "/api/job-match/analyze-files",
			[]upload{{"resume", "resume.txt", sampleResume}}, map[string]string{"job_description_text": "   "})
		rec := ts.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Job description is required", decodeEnvelope(t, rec).Message)
	})

	t.Run("requires multipart", func(t *testing.T) {
		rec := ts.postJSON("/api/job-match/analyze-files", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFindSimilar(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	listings := []map[string]any{
		{"id": "1", "title": "Go Developer", "description": "Build services"},
		{"id": "2", "title": "Platform Engineer", "description": "Run Kubernetes"},
		{"id": "3", "title": "Data Engineer", "description": "Pipelines"},
	}

	rec := ts.postJSON("/api/job-match/find-similar", map[string]any{
		"user_profile": map[string]any{"title": "Backend Engineer", "skills": []string{"go"}},
		"job_listings": listings,
		"limit":        2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		SimilarJobs   []jobmatch.SimilarJob `json:"similar_jobs"`
		TotalAnalyzed int                   `json:"total_analyzed"`
		ReturnedCount int                   `json:"returned_count"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &out))
	assert.Len(t, out.SimilarJobs, 2)
	assert.Equal(t, 3, out.TotalAnalyzed)
	assert.Equal(t, 2, out.ReturnedCount)

	tests := []struct {
		name        string
		body        map[string]any
		wantMessage string
	}{
		{"empty profile", map[string]any{"user_profile": map[string]any{}, "job_listings": listings}, "User profile is required"},
		{"no listings", map[string]any{"user_profile": map[string]any{"title": "x"}, "job_listings": []any{}}, "job_listings is required"},
		{"limit out of range", map[string]any{"user_profile": map[string]any{"title": "x"}, "job_listings": listings, "limit": 500}, "limit is out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.postJSON("/api/job-match/find-similar", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMessage, decodeEnvelope(t, rec).Message)
		})
	}
}

func TestSkillRecommendations(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.postJSON("/api/job-match/skill-recommendations", map[string]any{"target_role": "devops engineer"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		TargetRole        string   `json:"target_role"`
		CurrentSkills     []string `json:"current_skills"`
		RecommendedSkills []string `json:"recommended_skills"`
		SkillsToAdd       int      `json:"skills_to_add"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &out))
	assert.Equal(t, "devops engineer", out.TargetRole)
	assert.NotNil(t, out.CurrentSkills)
	assert.Empty(t, out.CurrentSkills)
	assert.Equal(t, []string{"kubernetes", "terraform"}, out.RecommendedSkills)
	assert.Equal(t, 2, out.SkillsToAdd)

	rec = ts.postJSON("/api/job-match/skill-recommendations", map[string]any{"user_skills": []string{"go"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "target_role is required", decodeEnvelope(t, rec).Message)
}

func TestJobInsights(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.postJSON("/api/job-match/job-insights", map[string]any{
		"job_listings": []map[string]any{
			{"title": "Go Developer", "skills": []string{"go", "docker"}, "location": "Berlin", "company": "Acme"},
			{"title": "SRE", "skills": []string{"go", "kubernetes"}, "location": "Berlin", "company": "Initech"},
		},
		"target_skills": []string{"go"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Insights     jobmatch.Insights `json:"insights"`
		AnalyzedJobs int               `json:"analyzed_jobs"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &out))
	assert.Equal(t, 2, out.AnalyzedJobs)
	assert.Equal(t, 2, out.Insights.TotalJobs)
	require.NotEmpty(t, out.Insights.TopSkills)
	assert.Equal(t, jobmatch.Count{Name: "go", Count: 2}, out.Insights.TopSkills[0])
	require.NotEmpty(t, out.Insights.TopLocations)
	assert.Equal(t, "Berlin", out.Insights.TopLocations[0].Name)
}

func TestDeleteSession(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.postJSON("/api/resume/analyze", map[string]string{"resume_text": sampleResume})
	require.Equal(t, http.StatusOK, rec.Code)
	var result resume.Result
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))

	rec = ts.do(httptest.NewRequest(http.MethodDelete, "/api/sessions/"+result.SessionID, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/api/resume/report/"+result.SessionID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodDelete, "/api/sessions/../../etc", nil))
	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	ts := newTestServer(t, ServerConfig{APIKeys: []string{"secret-key-123456"}})

	tests := []struct {
		name        string
		setAuth     func(r *http.Request)
		wantStatus  int
		wantMessage string
	}{
		{"missing key", func(r *http.Request) {}, http.StatusUnauthorized, "X-API-Key header or Authorization Bearer token required"},
		{"wrong key", func(r *http.Request) { r.Header.Set("X-API-Key", "nope") }, http.StatusUnauthorized, "Invalid API key"},
		{"header key", func(r *http.Request) { r.Header.Set("X-API-Key", "secret-key-123456") }, http.StatusOK, ""},
		{"bearer token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer secret-key-123456") }, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/job-match/skill-recommendations",
				strings.NewReader(`{"target_role":"backend developer"}`))
			req.Header.Set("Content-Type", "application/json")
			tt.setAuth(req)
			rec := ts.do(req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMessage != "" {
				env := decodeEnvelope(t, rec)
				assert.Equal(t, errors.ErrCodeUnauthorized, env.ErrorCode)
				assert.Equal(t, tt.wantMessage, env.Message)
			}
		})
	}

	t.Run("health stays public", func(t *testing.T) {
		rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	ts := newTestServer(t, ServerConfig{RateLimit: &config.RateLimitConfig{
		Enabled:        true,
		RequestsPerMin: 1,
		BurstCapacity:  2,
		ByIP:           true,
	}})

	send := func() *httptest.ResponseRecorder {
		return ts.postJSON("/api/job-match/skill-recommendations", map[string]string{"target_role": "sre"})
	}

	assert.Equal(t, http.StatusOK, send().Code)
	assert.Equal(t, http.StatusOK, send().Code)

	rec := send()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, errors.ErrCodeRateLimited, decodeEnvelope(t, rec).ErrorCode)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatsHandler(t *testing.T) {
	ts := newTestServer(t, ServerConfig{
		APIKeys:        []string{"k1", "k2"},
		MaxRequestSize: 4096,
		RateLimit:      &config.RateLimitConfig{Enabled: true, RequestsPerMin: 60, BurstCapacity: 5, ByIP: true},
	})

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &stats))
	assert.Equal(t, "resumescore", stats["service"])
	assert.Equal(t, map[string]any{"enabled": true, "keys_count": float64(2)}, stats["authentication"])
	assert.Contains(t, stats, "rate_limiting")
	assert.Contains(t, stats, "rate_limit_config")
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", errors.NewInvalidInputError(errors.ErrCodeMissingField, "x", nil), http.StatusBadRequest},
		{"too large", errors.NewInvalidInputError(errors.ErrCodeFileTooLarge, "x", nil), http.StatusRequestEntityTooLarge},
		{"not found", errors.NewNotFoundError(errors.ErrCodeSessionNotFound, "x", nil), http.StatusNotFound},
		{"breaker open", errors.NewIOError(errors.ErrCodeStorageOpen, "x", nil), http.StatusServiceUnavailable},
		{"io failure", errors.NewIOError(errors.ErrCodeStorageFailed, "x", nil), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("outer: %w", errors.NewNotFoundError(errors.ErrCodeSessionNotFound, "x", nil)), http.StatusNotFound},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestRequestAPIKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, requestAPIKey(req))

	req.Header.Set("Authorization", "Bearer token-1")
	assert.Equal(t, "token-1", requestAPIKey(req))

	req.Header.Set("X-API-Key", "header-key")
	assert.Equal(t, "header-key", requestAPIKey(req))
}
