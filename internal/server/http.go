package server

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"resumescore/internal/config"
	appErrors "resumescore/internal/errors"
	"resumescore/internal/extract"
	"resumescore/internal/formatters"
	"resumescore/internal/jobmatch"
	"resumescore/internal/resume"
	"resumescore/internal/session"
)

// ResumeAnalyzer scores a resume, optionally against a job description
type ResumeAnalyzer interface {
	Analyze(ctx context.Context, resumeText, jobText string) (*resume.Result, error)
}

// JobMatcher runs the deep job match operations
type JobMatcher interface {
	Analyze(ctx context.Context, resumeText, jobText string, prefs jobmatch.Preferences) (*jobmatch.Result, error)
	FindSimilarJobs(ctx context.Context, profile jobmatch.UserProfile, listings []jobmatch.Listing, limit int) ([]jobmatch.SimilarJob, error)
	SkillRecommendations(userSkills []string, targetRole string) []string
}

// Deps are the analysis services the handlers call into
type Deps struct {
	Scorer     ResumeAnalyzer
	Matcher    JobMatcher
	Store      session.Store
	Extractor  *extract.Extractor
	Formatters *formatters.FormatterRegistry
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys    *KeySet
	KeyWatcher *APIKeyWatcher

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request and upload size limits
	MaxRequestSize int64
	MaxFileSize    int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *appErrors.Logger

	deps     Deps
	validate *validator.Validate
	now      func() time.Time
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	MaxFileSize    int64
	RateLimit      *config.RateLimitConfig

	// KeySource, when set, is polled every KeyRefresh for a new API key set
	KeySource  APIKeySource
	KeyRefresh time.Duration
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, deps Deps, logger *appErrors.Logger) *Server {
	if logger == nil {
		logger = appErrors.NewNopLogger()
	}
	if deps.Formatters == nil {
		deps.Formatters = formatters.GlobalRegistry
	}
	if deps.Extractor == nil {
		deps.Extractor = extract.New(logger, cfg.MaxFileSize)
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	keys := NewKeySet(cfg.APIKeys)
	var keyWatcher *APIKeyWatcher
	if cfg.KeySource != nil && cfg.KeyRefresh > 0 {
		keyWatcher = NewAPIKeyWatcher(cfg.KeySource, keys, cfg.KeyRefresh, logger)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        keys,
		KeyWatcher:     keyWatcher,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		MaxFileSize:    deps.Extractor.MaxSize(),
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
		deps:           deps,
		validate:       newValidator(),
		now:            time.Now,
	}
}

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func (s *Server) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
