package cli

import (
	"context"
	"fmt"

	"resumescore/internal/common"
	"resumescore/internal/jobmatch"
	"resumescore/internal/session"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [resume-file] [job-description-file]",
	Short: "Match a resume against a job description",
	Long: `Run a deep match of a resume against a job description. The overall score
weighs skills (40%), semantic similarity (25%), experience level (20%) and
keyword overlap (15%). The result lists matching and missing skills, missing
keywords and recommendations.`,
	Args:    cobra.ExactArgs(2),
	PreRunE: resolveOutput(&matchConfig),
	RunE:    runMatch,
}

var (
	matchConfig  common.CommandConfig
	matchSession bool
)

type matchInput struct {
	Resume string
	Job    string
}

func init() {
	addOutputFlags(matchCmd, &matchConfig)
	matchCmd.Flags().BoolVar(&matchSession, "session", false, "Store the result as a session for later reports")
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	lex, err := openLexicon(cfg, logger)
	if err != nil {
		return err
	}
	matcher := newMatcher(cfg, lex, logger)

	var store session.Store
	if matchSession {
		if store, err = openSessionStore(cfg, logger); err != nil {
			return err
		}
		defer store.Close()
	}

	createInput := func(contents []string) (matchInput, error) {
		if len(contents) != 2 {
			return matchInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return matchInput{Resume: contents[0], Job: contents[1]}, nil
	}

	logDetails := func(input matchInput, cc common.CommandConfig) {
		logger.Info("Starting job match analysis",
			"resume_chars", len(input.Resume),
			"job_chars", len(input.Job),
			"output_format", cc.OutputFormat)
	}

	operation := func(ctx context.Context, input matchInput) (*jobmatch.Result, error) {
		result, err := matcher.Analyze(ctx, input.Resume, input.Job, nil)
		if err != nil {
			return nil, err
		}
		if store != nil {
			err := saveSession(cmd, store, session.KindMatch, result, func(id string) { result.SessionID = id })
			if err != nil {
				return nil, err
			}
		}
		return result, nil
	}

	if err := common.RunCommand(cmd.Context(), logger, matchConfig, args, createInput, operation, logDetails); err != nil {
		return fmt.Errorf("failed to match resume: %w", err)
	}
	logger.Info("Job match analysis completed successfully")
	return nil
}
