package cli

import (
	"time"

	"resumescore/internal/common"
	"resumescore/internal/jobmatch"
	"resumescore/internal/types"

	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights [listings.json]",
	Short: "Summarize the job market for a batch of listings",
	Long: `Tally the skills, locations and companies across a batch of job listings
and estimate a salary range. With --target the report also shows how many of
your skills the market asks for.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: resolveOutput(&insightsConfig),
	RunE:    runInsights,
}

var (
	insightsConfig common.CommandConfig
	insightsTarget []string
)

func init() {
	addOutputFlags(insightsCmd, &insightsConfig)
	insightsCmd.Flags().StringSliceVar(&insightsTarget, "target", nil, "Skills to compare with the market, comma-separated")
}

func runInsights(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	var listings []jobmatch.Listing
	if err := common.NewFileProcessor(logger, insightsConfig.MaxFileSize).ReadJSON(args[0], &listings); err != nil {
		return err
	}
	logger.Info("Generating job market insights", "listings", len(listings))

	return writeOutput(cmd, logger, insightsConfig, &types.JobInsightsOutput{
		Insights:     jobmatch.MarketInsights(listings, insightsTarget),
		AnalyzedJobs: len(listings),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}
