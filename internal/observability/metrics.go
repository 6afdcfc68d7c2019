package observability

import (
	"context"
	"fmt"
	"time"

	"resumescore/internal/config"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Analysis kinds recorded on the analysis instruments
const (
	KindResume = "resume"
	KindMatch  = "match"
)

var allCustomMetrics = config.CustomMetricsConfig{
	Analyses: config.AnalysisMetricsConfig{Enabled: true, TrackDuration: true, TrackScores: true},
	Infrastructure: config.InfrastructureMetricsConfig{
		Enabled: true, TrackRateLimits: true, TrackStorage: true, TrackExtractions: true,
	},
}

// Metrics holds all custom instruments. A nil *Metrics records nothing.
type Metrics struct {
	cfg config.CustomMetricsConfig

	AnalysesTotal    metric.Int64Counter
	AnalysisDuration metric.Float64Histogram
	FinalScore       metric.Float64Histogram
	MatchScore       metric.Float64Histogram

	ExtractionsTotal  metric.Int64Counter
	SessionOperations metric.Int64Counter
	RateLimitHits     metric.Int64Counter
}

var scoreBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// NewMetrics creates the instruments on meter
func NewMetrics(meter metric.Meter, cfg config.CustomMetricsConfig) (*Metrics, error) {
	m := &Metrics{cfg: cfg}
	var err error

	if m.AnalysesTotal, err = meter.Int64Counter(
		"resumescore_analyses_total",
		metric.WithDescription("Total number of resume analyses and job matches"),
	); err != nil {
		return nil, fmt.Errorf("failed to create analyses counter: %w", err)
	}

	if m.AnalysisDuration, err = meter.Float64Histogram(
		"resumescore_analysis_duration_seconds",
		metric.WithDescription("Time spent scoring a resume or matching it to a job"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create analysis duration metric: %w", err)
	}

	if m.FinalScore, err = meter.Float64Histogram(
		"resumescore_final_score",
		metric.WithDescription("Distribution of final resume scores"),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	); err != nil {
		return nil, fmt.Errorf("failed to create final score metric: %w", err)
	}

	if m.MatchScore, err = meter.Float64Histogram(
		"resumescore_match_score",
		metric.WithDescription("Distribution of overall job match scores"),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	); err != nil {
		return nil, fmt.Errorf("failed to create match score metric: %w", err)
	}

	if m.ExtractionsTotal, err = meter.Int64Counter(
		"resumescore_extractions_total",
		metric.WithDescription("Total number of uploaded documents converted to text"),
	); err != nil {
		return nil, fmt.Errorf("failed to create extractions counter: %w", err)
	}

	if m.SessionOperations, err = meter.Int64Counter(
		"resumescore_session_operations_total",
		metric.WithDescription("Total number of session store operations"),
	); err != nil {
		return nil, fmt.Errorf("failed to create session operations counter: %w", err)
	}

	if m.RateLimitHits, err = meter.Int64Counter(
		"resumescore_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limited requests"),
	); err != nil {
		return nil, fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return m, nil
}

// RecordAnalysis records one resume analysis or job match. score is only
// recorded on success.
func (m *Metrics) RecordAnalysis(ctx context.Context, kind string, duration time.Duration, score float64, err error) {
	if m == nil || !m.cfg.Analyses.Enabled {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Bool("success", err == nil),
	)
	m.AnalysesTotal.Add(ctx, 1, attrs)
	if m.cfg.Analyses.TrackDuration {
		m.AnalysisDuration.Record(ctx, duration.Seconds(), attrs)
	}
	if err != nil || !m.cfg.Analyses.TrackScores {
		return
	}
	switch kind {
	case KindResume:
		m.FinalScore.Record(ctx, score)
	case KindMatch:
		m.MatchScore.Record(ctx, score)
	}
}

// RecordExtraction records an upload converted to text, by file extension
func (m *Metrics) RecordExtraction(ctx context.Context, ext string, err error) {
	if m == nil || !m.infra(m.cfg.Infrastructure.TrackExtractions) {
		return
	}
	m.ExtractionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("extension", ext),
		attribute.Bool("success", err == nil),
	))
}

// RecordSessionOperation records a save or load against the session store
func (m *Metrics) RecordSessionOperation(ctx context.Context, operation, kind string, err error) {
	if m == nil || !m.infra(m.cfg.Infrastructure.TrackStorage) {
		return
	}
	m.SessionOperations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("kind", kind),
		attribute.Bool("success", err == nil),
	))
}

// RecordRateLimitHit records a request rejected by the rate limiter
func (m *Metrics) RecordRateLimitHit(ctx context.Context, endpoint, method string) {
	if m == nil || !m.infra(m.cfg.Infrastructure.TrackRateLimits) {
		return
	}
	m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.String("method", method),
	))
}

func (m *Metrics) infra(track bool) bool {
	return m.cfg.Infrastructure.Enabled && track
}
