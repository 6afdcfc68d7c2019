package cli

import (
	"fmt"
	"time"

	"resumescore/internal/common"
	"resumescore/internal/jobmatch"
	"resumescore/internal/types"

	"github.com/spf13/cobra"
)

var similarCmd = &cobra.Command{
	Use:   "similar [profile.json] [listings.json]",
	Short: "Rank job listings for a candidate profile",
	Long: `Score every job listing against a candidate profile and print the best
matches, highest score first.

The profile file holds {"title", "skills", "experience", "education"}. The
listings file holds an array of {"id", "title", "description", "skills",
"company", "location", "salary"} objects.`,
	Args:    cobra.ExactArgs(2),
	PreRunE: resolveOutput(&similarConfig),
	RunE:    runSimilar,
}

var (
	similarConfig common.CommandConfig
	similarLimit  int
)

func init() {
	addOutputFlags(similarCmd, &similarConfig)
	similarCmd.Flags().IntVar(&similarLimit, "limit", jobmatch.DefaultSimilarLimit, "Number of listings to return")
}

func runSimilar(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fp := common.NewFileProcessor(logger, similarConfig.MaxFileSize)
	var profile jobmatch.UserProfile
	if err := fp.ReadJSON(args[0], &profile); err != nil {
		return err
	}
	var listings []jobmatch.Listing
	if err := fp.ReadJSON(args[1], &listings); err != nil {
		return err
	}

	lex, err := openLexicon(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("Searching similar jobs", "listings", len(listings), "limit", similarLimit)
	jobs, err := newMatcher(cfg, lex, logger).FindSimilarJobs(cmd.Context(), profile, listings, similarLimit)
	if err != nil {
		return fmt.Errorf("failed to rank job listings: %w", err)
	}

	return writeOutput(cmd, logger, similarConfig, &types.SimilarJobsOutput{
		SimilarJobs:   jobs,
		TotalAnalyzed: len(listings),
		ReturnedCount: len(jobs),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}
