package cli

import (
	"fmt"

	"resumescore/internal/common"
	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/jobmatch"
	"resumescore/internal/lexicon"
	"resumescore/internal/nlp"
	"resumescore/internal/resume"
	"resumescore/internal/session"

	"github.com/spf13/cobra"
)

// openLexicon loads the configured override file, or the built-in lexicon
func openLexicon(cfg *config.Config, logger *errors.Logger) (*lexicon.Store, error) {
	store, err := lexicon.OpenStore(cfg.App.LexiconFile)
	if err != nil {
		return nil, err
	}
	if store.Path() != "" {
		logger.Info("Loaded lexicon override", "file", store.Path())
	}
	return store, nil
}

// newScorer builds a resume scorer. The language model runs its self-check
// here, so a broken model fails the command before any input is read.
func newScorer(lex lexicon.Source, logger *errors.Logger) (*resume.Scorer, error) {
	model, err := nlp.NewProseModel()
	if err != nil {
		return nil, fmt.Errorf("language model self-check failed: %w", err)
	}
	return resume.NewScorer(lex, model, logger), nil
}

func newMatcher(cfg *config.Config, lex lexicon.Source, logger *errors.Logger) *jobmatch.Matcher {
	return jobmatch.NewMatcher(lex, logger, jobmatch.WithWorkers(cfg.Server.MaxSimilarWorkers))
}

func openSessionStore(cfg *config.Config, logger *errors.Logger) (session.Store, error) {
	store, err := session.Open(cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return store, nil
}

// addOutputFlags registers --output and --format on cmd
func addOutputFlags(cmd *cobra.Command, cc *common.CommandConfig) {
	cmd.Flags().StringVarP(&cc.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&cc.OutputFormat, "format", "", "Output format: json, text, markdown or pdf (default: from output file extension, then config)")

	// Add completion for format flag
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return cfg.App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

// resolveOutput returns a PreRunE that settles the output format and the
// input size limit of cc from the flags and the config
func resolveOutput(cc *common.CommandConfig) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		format, err := common.ResolveOutputFormat(cc.OutputFormat, cc.OutputFile,
			cfg.App.DefaultFormat, cfg.App.SupportedFormats)
		if err != nil {
			return err
		}
		cc.OutputFormat = format
		cc.MaxFileSize = cfg.App.MaxFileSize
		return nil
	}
}

// writeOutput renders data with the shared output handler
func writeOutput(cmd *cobra.Command, logger *errors.Logger, cc common.CommandConfig, data any) error {
	return common.NewOutputHandlerTo(logger, cmd.OutOrStdout()).HandleOutput(data, cc)
}

// saveSession stores v under a new session id and prints the id on stderr
func saveSession(cmd *cobra.Command, store session.Store, kind session.Kind, v any, setID func(string)) error {
	id := session.NewID()
	setID(id)
	if err := store.Save(cmd.Context(), id, kind, v); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Session: %s\n", id)
	return nil
}
