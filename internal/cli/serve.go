package cli

import (
	"fmt"

	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/extract"
	"resumescore/internal/lexicon"
	"resumescore/internal/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for resume scoring and job matching",
	Long: `Start an HTTP server that provides REST API endpoints for resume scoring
and job matching.

Available endpoints:
- POST /api/resume/analyze: Score a resume (multipart upload or JSON)
- GET /api/resume/report/{id}: Download a stored resume analysis
- POST /api/job-match/analyze: Match resume text against a job description
- POST /api/job-match/analyze-files: Match uploaded documents
- POST /api/job-match/find-similar: Rank job listings for a profile
- POST /api/job-match/skill-recommendations: Skills to learn for a role
- POST /api/job-match/job-insights: Market insights for listings
- GET /api/job-match/report/{id}: Download a stored job match
- DELETE /api/sessions/{id}: Delete stored results
- GET /api/health: Health check endpoint
- GET /api/stats: Server statistics and rate limiting info

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	serveCmd.Flags().String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")
}

// applyServeFlags copies the flags the user set over the loaded config
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	overrides := []struct {
		flag   string
		target *string
	}{
		{"port", &cfg.Server.Port},
		{"host", &cfg.Server.Host},
		{"tls-mode", &cfg.Server.TLS.Mode},
		{"cert-file", &cfg.Server.TLS.CertFile},
		{"key-file", &cfg.Server.TLS.KeyFile},
		{"ca-file", &cfg.Server.TLS.CAFile},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.flag) {
			*o.target, _ = cmd.Flags().GetString(o.flag)
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	applyServeFlags(cmd, cfg)

	vaultClient, err := config.ApplyVaultSecrets(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to apply vault secrets: %w", err)
	}

	// Validate TLS configuration after applying overrides
	if err := cfg.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	lex, err := openLexicon(cfg, logger)
	if err != nil {
		return err
	}
	if cfg.App.WatchLexicon && lex.Path() != "" {
		stop, err := watchLexicon(lex, cfg, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	scorer, err := newScorer(lex, logger)
	if err != nil {
		return err
	}

	store, err := openSessionStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.LogError(err, "Failed to close session store")
		}
	}()

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.Server.MaxRequestSize,
		MaxFileSize:    cfg.App.MaxFileSize,
		RateLimit:      &cfg.Server.RateLimit,
	}
	// A nil *VaultClient must not reach the interface field
	if vaultClient != nil && cfg.Vault.Secrets.APIKeys != "" {
		serverCfg.KeySource = vaultClient
		serverCfg.KeyRefresh = cfg.Vault.RefreshInterval
	}

	deps := server.Deps{
		Scorer:    scorer,
		Matcher:   newMatcher(cfg, lex, logger),
		Store:     store,
		Extractor: extract.New(logger, cfg.App.MaxFileSize),
	}
	return server.NewServer(cfg, serverCfg, deps, logger).Start(cmd.Context())
}

// watchLexicon reloads the lexicon override file while serving
func watchLexicon(lex *lexicon.Store, cfg *config.Config, logger *errors.Logger) (func(), error) {
	onSwap := func(l *lexicon.Lexicon) {
		logger.Info("Lexicon reloaded", "file", lex.Path(), "technical_skills", len(l.TechnicalSkills))
	}
	watcher, err := lexicon.NewWatcher(lex, cfg.App.WatchDebounce, onSwap, logger)
	if err != nil {
		return nil, err
	}
	if err := watcher.Start(); err != nil {
		return nil, fmt.Errorf("failed to watch lexicon file: %w", err)
	}
	return func() {
		if err := watcher.Stop(); err != nil {
			logger.LogError(err, "Failed to stop lexicon watcher")
		}
	}, nil
}
