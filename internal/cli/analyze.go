package cli

import (
	"context"
	"fmt"
	"time"

	"resumescore/internal/common"
	"resumescore/internal/resume"
	"resumescore/internal/session"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Score a resume, optionally against a job description",
	Long: `Analyze a resume and report its final score together with the five
sub-scores behind it:

- Skills found against the skill lexicon
- Section completeness
- Writing quality and readability
- Action verb strength
- Formatting and ATS friendliness

With --job the resume is also checked against the job description for a quick
match score and the job keywords it is missing. PDF, DOCX, HTML and text files
are accepted. With --session the result is stored so a report can be rendered
later with the report command.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: resolveOutput(&analyzeConfig),
	RunE:    runAnalyze,
}

var (
	analyzeConfig  common.CommandConfig
	analyzeJobFile string
	analyzeSession bool
)

type analyzeInput struct {
	Resume string
	Job    string
}

func init() {
	addOutputFlags(analyzeCmd, &analyzeConfig)
	analyzeCmd.Flags().StringVar(&analyzeJobFile, "job", "", "Job description file to match against")
	analyzeCmd.Flags().BoolVar(&analyzeSession, "session", false, "Store the result as a session for later reports")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	lex, err := openLexicon(cfg, logger)
	if err != nil {
		return err
	}
	scorer, err := newScorer(lex, logger)
	if err != nil {
		return err
	}

	var store session.Store
	if analyzeSession {
		if store, err = openSessionStore(cfg, logger); err != nil {
			return err
		}
		defer store.Close()
	}

	files := append([]string{}, args...)
	if analyzeJobFile != "" {
		files = append(files, analyzeJobFile)
	}

	createInput := func(contents []string) (analyzeInput, error) {
		switch len(contents) {
		case 1:
			return analyzeInput{Resume: contents[0]}, nil
		case 2:
			return analyzeInput{Resume: contents[0], Job: contents[1]}, nil
		default:
			return analyzeInput{}, fmt.Errorf("expected 1 or 2 files, got %d", len(contents))
		}
	}

	logDetails := func(input analyzeInput, cc common.CommandConfig) {
		logger.Info("Starting resume analysis",
			"resume_chars", len(input.Resume),
			"job_chars", len(input.Job),
			"output_format", cc.OutputFormat)
	}

	operation := func(ctx context.Context, input analyzeInput) (*resume.Result, error) {
		result, err := scorer.Analyze(ctx, input.Resume, input.Job)
		if err != nil {
			return nil, err
		}
		result.Timestamp = time.Now().UTC().Format(time.RFC3339)
		if store != nil {
			err := saveSession(cmd, store, session.KindAnalysis, result, func(id string) { result.SessionID = id })
			if err != nil {
				return nil, err
			}
		}
		return result, nil
	}

	if err := common.RunCommand(cmd.Context(), logger, analyzeConfig, files, createInput, operation, logDetails); err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	logger.Info("Resume analysis completed successfully")
	return nil
}
