package cli

import (
	"fmt"

	"resumescore/internal/common"
	"resumescore/internal/errors"
	"resumescore/internal/jobmatch"
	"resumescore/internal/resume"
	"resumescore/internal/session"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report [session-id]",
	Short: "Render a stored result as a report",
	Long: `Load a result stored by analyze --session, match --session or the HTTP
server and render it. Use --kind match for job match sessions.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: resolveOutput(&reportConfig),
	RunE:    runReport,
}

var (
	reportConfig common.CommandConfig
	reportKind   string
)

func init() {
	addOutputFlags(reportCmd, &reportConfig)
	reportCmd.Flags().StringVar(&reportKind, "kind", string(session.KindAnalysis), "Result kind: analysis or match")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	var result any
	switch session.Kind(reportKind) {
	case session.KindAnalysis:
		result = &resume.Result{}
	case session.KindMatch:
		result = &jobmatch.Result{}
	default:
		return errors.NewInvalidInputError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown result kind %q (must be 'analysis' or 'match')", reportKind), nil)
	}

	store, err := openSessionStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Load(cmd.Context(), args[0], session.Kind(reportKind), result); err != nil {
		return err
	}
	return writeOutput(cmd, logger, reportConfig, result)
}
