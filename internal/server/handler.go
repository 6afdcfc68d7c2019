package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"resumescore/internal/errors"
	"resumescore/internal/formatters"
	"resumescore/internal/jobmatch"
	"resumescore/internal/observability"
	"resumescore/internal/resume"
	"resumescore/internal/session"
	"resumescore/internal/types"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "resumescore.api"

// fail records err on span and writes the error response
func (s *Server) fail(w http.ResponseWriter, span trace.Span, err error, failure string) {
	span.RecordError(err)
	span.SetAttributes(attribute.String("error.type", string(errors.TypeOf(err))))
	s.writeAppError(w, err, failure)
}

// saveSession persists v under id and counts the operation
func (s *Server) saveSession(ctx context.Context, om *observability.ObservabilityManager, id string, kind session.Kind, v any) error {
	err := s.deps.Store.Save(ctx, id, kind, v)
	om.GetMetrics().RecordSessionOperation(ctx, "save", string(kind), err)
	return err
}

// resumeAnalyzeInput reads the resume and optional job description from a
// multipart upload or a JSON body
func (s *Server) resumeAnalyzeInput(ctx context.Context, om *observability.ObservabilityManager, r *http.Request) (resumeText, jobText string, err error) {
	if !isMultipart(r) {
		var req types.AnalyzeResumeRequest
		if err := s.decodeRequest(r, &req); err != nil {
			return "", "", err
		}
		return req.ResumeText, req.JobDescription, nil
	}

	if err := parseMultipart(r); err != nil {
		return "", "", err
	}
	if resumeText, err = s.requiredUpload(ctx, om, r, "resume", "resume"); err != nil {
		return "", "", err
	}
	if jobText, err = s.jobDescriptionFromForm(ctx, om, r); err != nil {
		return "", "", err
	}
	return resumeText, jobText, nil
}

// createResumeAnalyzeHandler scores a resume and stores the result under a
// new session
func (s *Server) createResumeAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.resume.analyze")
		defer span.End()

		resumeText, jobText, err := s.resumeAnalyzeInput(ctx, om, r)
		if err != nil {
			s.fail(w, span, err, "Resume analysis failed")
			return
		}
		span.SetAttributes(
			attribute.Int("request.resume_length", len(resumeText)),
			attribute.Bool("request.has_job_description", strings.TrimSpace(jobText) != ""),
			attribute.String("operation", "resume_analyze"),
		)

		start := time.Now()
		result, err := s.deps.Scorer.Analyze(ctx, resumeText, jobText)
		var score float64
		if result != nil {
			score = result.FinalScore
		}
		om.GetMetrics().RecordAnalysis(ctx, observability.KindResume, time.Since(start), score, err)
		if err != nil {
			s.fail(w, span, err, "Resume analysis failed")
			return
		}

		result.SessionID = session.NewID()
		result.Timestamp = s.timestamp()
		if err := s.saveSession(ctx, om, result.SessionID, session.KindAnalysis, result); err != nil {
			s.fail(w, span, err, "Failed to store analysis")
			return
		}

		s.Logger.Info("Resume analysis completed",
			"session_id", result.SessionID,
			"final_score", result.FinalScore,
			"duration_ms", time.Since(start).Milliseconds())
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("resume.final_score", result.FinalScore),
		)
		writeJSON(w, http.StatusOK, s.success("Resume analysis completed", result))
	}
}

// runMatch runs one job match and records its metrics
func (s *Server) runMatch(ctx context.Context, om *observability.ObservabilityManager, resumeText, jobText string, prefs jobmatch.Preferences) (*jobmatch.Result, error) {
	start := time.Now()
	result, err := s.deps.Matcher.Analyze(ctx, resumeText, jobText, prefs)
	var score float64
	if result != nil {
		score = result.OverallScore
	}
	om.GetMetrics().RecordAnalysis(ctx, observability.KindMatch, time.Since(start), score, err)
	if err == nil {
		s.Logger.Info("Job match analysis completed",
			"analysis_id", result.AnalysisID,
			"overall_score", result.OverallScore,
			"duration_ms", time.Since(start).Milliseconds())
	}
	return result, err
}

// createJobMatchHandler matches resume text against a job description
func (s *Server) createJobMatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.job_match.analyze")
		defer span.End()

		var req types.JobMatchRequest
		if err := s.decodeRequest(r, &req); err != nil {
			s.fail(w, span, err, "Job match analysis failed")
			return
		}
		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "job_match"),
		)

		result, err := s.runMatch(ctx, om, req.ResumeText, req.JobDescription, req.UserPreferences)
		if err != nil {
			s.fail(w, span, err, "Job match analysis failed")
			return
		}

		span.SetAttributes(attribute.Float64("match.overall_score", result.OverallScore))
		writeJSON(w, http.StatusOK, s.success("Job match analysis completed", result))
	}
}

// createJobMatchFilesHandler matches uploaded documents and stores the
// result under a new session
func (s *Server) createJobMatchFilesHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.job_match.analyze_files")
		defer span.End()

		if !isMultipart(r) {
			s.fail(w, span, errors.NewInvalidInputError(errors.ErrCodeInvalidRequest,
				"Content-Type must be multipart/form-data", nil), "Analysis failed")
			return
		}
		if err := parseMultipart(r); err != nil {
			s.fail(w, span, err, "Analysis failed")
			return
		}

		resumeText, err := s.requiredUpload(ctx, om, r, "resume", "resume")
		if err != nil {
			s.fail(w, span, err, "File processing failed")
			return
		}
		jobText, err := s.jobDescriptionFromForm(ctx, om, r)
		if err != nil {
			s.fail(w, span, err, "File processing failed")
			return
		}
		if strings.TrimSpace(jobText) == "" {
			s.fail(w, span, errors.NewInvalidInputError(errors.ErrCodeMissingField,
				"Job description is required", nil), "Analysis failed")
			return
		}

		result, err := s.runMatch(ctx, om, resumeText, jobText, nil)
		if err != nil {
			s.fail(w, span, err, "Job match analysis failed")
			return
		}

		result.SessionID = session.NewID()
		if err := s.saveSession(ctx, om, result.SessionID, session.KindMatch, result); err != nil {
			s.fail(w, span, err, "Failed to store job match")
			return
		}

		span.SetAttributes(attribute.Float64("match.overall_score", result.OverallScore))
		writeJSON(w, http.StatusOK, s.success("Job match analysis completed", result))
	}
}

// createFindSimilarHandler ranks listings against a candidate profile
func (s *Server) createFindSimilarHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.job_match.find_similar")
		defer span.End()

		var req types.FindSimilarRequest
		if err := s.decodeRequest(r, &req); err != nil {
			s.fail(w, span, err, "Similar job search failed")
			return
		}
		if strings.TrimSpace(req.UserProfile.Text()) == "" {
			s.fail(w, span, errors.NewInvalidInputError(errors.ErrCodeMissingField,
				"User profile is required", nil), "Similar job search failed")
			return
		}
		span.SetAttributes(
			attribute.Int("request.listings", len(req.JobListings)),
			attribute.Int("request.limit", req.Limit),
		)

		jobs, err := s.deps.Matcher.FindSimilarJobs(ctx, req.UserProfile, req.JobListings, req.Limit)
		if err != nil {
			s.fail(w, span, err, "Similar job search failed")
			return
		}

		s.Logger.Info("Found similar jobs", "returned", len(jobs), "analyzed", len(req.JobListings))
		writeJSON(w, http.StatusOK, s.success("Similar jobs found", &types.SimilarJobsOutput{
			SimilarJobs:   jobs,
			TotalAnalyzed: len(req.JobListings),
			ReturnedCount: len(jobs),
			Timestamp:     s.timestamp(),
		}))
	}
}

// createSkillRecommendationsHandler lists the skills a target role expects
func (s *Server) createSkillRecommendationsHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := om.Tracer(tracerName).Start(r.Context(), "api.job_match.skill_recommendations")
		defer span.End()

		var req types.SkillRecommendationsRequest
		if err := s.decodeRequest(r, &req); err != nil {
			s.fail(w, span, err, "Skill recommendation failed")
			return
		}

		recommended := s.deps.Matcher.SkillRecommendations(req.UserSkills, req.TargetRole)
		current := req.UserSkills
		if current == nil {
			current = []string{}
		}
		span.SetAttributes(
			attribute.String("request.target_role", req.TargetRole),
			attribute.Int("response.skills_to_add", len(recommended)),
		)

		s.Logger.Info("Generated skill recommendations", "target_role", req.TargetRole, "count", len(recommended))
		writeJSON(w, http.StatusOK, s.success("Skill recommendations generated", &types.SkillRecommendationsOutput{
			TargetRole:        req.TargetRole,
			CurrentSkills:     current,
			RecommendedSkills: recommended,
			SkillsToAdd:       len(recommended),
			Timestamp:         s.timestamp(),
		}))
	}
}

// createJobInsightsHandler summarizes a batch of listings
func (s *Server) createJobInsightsHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := om.Tracer(tracerName).Start(r.Context(), "api.job_match.job_insights")
		defer span.End()

		var req types.JobInsightsRequest
		if err := s.decodeRequest(r, &req); err != nil {
			s.fail(w, span, err, "Job insights analysis failed")
			return
		}
		span.SetAttributes(attribute.Int("request.listings", len(req.JobListings)))

		writeJSON(w, http.StatusOK, s.success("Job market insights generated", &types.JobInsightsOutput{
			Insights:     jobmatch.MarketInsights(req.JobListings, req.TargetSkills),
			AnalyzedJobs: len(req.JobListings),
			Timestamp:    s.timestamp(),
		}))
	}
}

// reportKind ties a stored result kind to its download name
type reportKind struct {
	kind       session.Kind
	filePrefix string
	newResult  func() any
}

var (
	reportResume = reportKind{
		kind:       session.KindAnalysis,
		filePrefix: "Resume_Analysis_Report",
		newResult:  func() any { return &resume.Result{} },
	}
	reportMatch = reportKind{
		kind:       session.KindMatch,
		filePrefix: "Job_Match_Report",
		newResult:  func() any { return &jobmatch.Result{} },
	}
)

var reportExtensions = map[string]string{
	"pdf":      "pdf",
	"markdown": "md",
	"text":     "txt",
	"json":     "json",
}

// createReportHandler renders a stored result as a downloadable report.
// The format query parameter defaults to pdf.
func (s *Server) createReportHandler(om *observability.ObservabilityManager, rk reportKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.report."+string(rk.kind))
		defer span.End()

		id := r.PathValue("id")
		format := r.URL.Query().Get("format")
		if format == "" {
			format = "pdf"
		}
		span.SetAttributes(
			attribute.String("session.id", id),
			attribute.String("report.format", format),
		)

		if !session.ValidID(id) {
			s.fail(w, span, errors.NewInvalidInputError(errors.ErrCodeInvalidSession, "Invalid session ID", nil),
				"Report generation failed")
			return
		}

		result := rk.newResult()
		err := s.deps.Store.Load(ctx, id, rk.kind, result)
		om.GetMetrics().RecordSessionOperation(ctx, "load", string(rk.kind), err)
		if err != nil {
			s.fail(w, span, err, "Report generation failed")
			return
		}

		ext, known := reportExtensions[format]
		if !known || !s.deps.Formatters.Supports(result, format) {
			s.fail(w, span, errors.NewInvalidInputError(errors.ErrCodeInvalidFormat,
				fmt.Sprintf("Unsupported report format '%s'", format), nil), "Report generation failed")
			return
		}

		body, err := s.deps.Formatters.Format(result, format)
		if err != nil {
			s.fail(w, span, errors.NewInternalError(errors.ErrCodeRenderFailed, "failed to render report", err),
				"Report generation failed")
			return
		}

		filename := fmt.Sprintf("%s_%s.%s", rk.filePrefix, id[:8], ext)
		w.Header().Set("Content-Type", formatters.ContentType(format))
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			s.Logger.LogError(err, "Failed to write report", "session_id", id)
		}
	}
}

// createDeleteSessionHandler removes every stored result of a session
func (s *Server) createDeleteSessionHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.session.delete")
		defer span.End()

		id := r.PathValue("id")
		err := s.deps.Store.Delete(ctx, id)
		om.GetMetrics().RecordSessionOperation(ctx, "delete", "", err)
		if err != nil {
			s.fail(w, span, err, "Failed to delete session")
			return
		}

		s.Logger.Info("Session deleted", "session_id", id)
		writeJSON(w, http.StatusOK, s.success("Session deleted", map[string]string{"session_id": id}))
	}
}
