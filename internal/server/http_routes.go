package server

import (
	"net/http"
	"strings"

	"resumescore/internal/errors"
	"resumescore/internal/observability"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	rateLimit := s.rateLimitMiddleware(om)
	requestLimit := s.requestSizeLimitMiddleware()
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return rateLimit(s.authMiddleware(requestLimit(h)))
	}

	mux.HandleFunc("GET /api/health", s.healthHandler)
	mux.HandleFunc("GET /api/stats", s.statsHandler)

	mux.HandleFunc("POST /api/resume/analyze", protected(s.createResumeAnalyzeHandler(om)))
	mux.HandleFunc("GET /api/resume/report/{id}", protected(s.createReportHandler(om, reportResume)))

	mux.HandleFunc("POST /api/job-match/analyze", protected(s.createJobMatchHandler(om)))
	mux.HandleFunc("POST /api/job-match/analyze-files", protected(s.createJobMatchFilesHandler(om)))
	mux.HandleFunc("POST /api/job-match/find-similar", protected(s.createFindSimilarHandler(om)))
	mux.HandleFunc("POST /api/job-match/skill-recommendations", protected(s.createSkillRecommendationsHandler(om)))
	mux.HandleFunc("POST /api/job-match/job-insights", protected(s.createJobInsightsHandler(om)))
	mux.HandleFunc("GET /api/job-match/report/{id}", protected(s.createReportHandler(om, reportMatch)))

	mux.HandleFunc("DELETE /api/sessions/{id}", protected(s.createDeleteSessionHandler(om)))

	return mux
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler(om *observability.ObservabilityManager) http.Handler {
	return om.HTTPMiddleware()(s.setupRoutes(om))
}

// requestAPIKey reads the X-API-Key header, falling back to a Bearer token
func requestAPIKey(r *http.Request) string {
	if apiKey := r.Header.Get("X-API-Key"); apiKey != "" {
		return apiKey
	}
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return after
	}
	return ""
}

// authMiddleware provides API key authentication
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Skip authentication if no API keys are configured
		if s.APIKeys.Len() == 0 {
			next(w, r)
			return
		}

		apiKey := requestAPIKey(r)
		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", getClientIP(r))
			s.writeError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized,
				"X-API-Key header or Authorization Bearer token required")
			return
		}

		if !s.APIKeys.Valid(apiKey) {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", getClientIP(r),
				"api_key_prefix", maskAPIKey(apiKey))
			s.writeError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Invalid API key")
			return
		}

		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"api_key_prefix", maskAPIKey(apiKey))

		next(w, r)
	}
}

// requestSizeLimitMiddleware limits the size of incoming requests
func (s *Server) requestSizeLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxRequestSize > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
			}
			next(w, r)
		}
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
