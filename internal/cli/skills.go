package cli

import (
	"time"

	"resumescore/internal/common"
	"resumescore/internal/types"

	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the skills a target role expects that you do not have yet",
	Long: `Look up the skills the lexicon associates with a target role and print
the ones missing from --have, in lexicon order.`,
	Args:    cobra.NoArgs,
	PreRunE: resolveOutput(&skillsConfig),
	RunE:    runSkills,
}

var (
	skillsConfig common.CommandConfig
	skillsRole   string
	skillsHave   []string
)

func init() {
	addOutputFlags(skillsCmd, &skillsConfig)
	skillsCmd.Flags().StringVar(&skillsRole, "role", "", "Target role, e.g. \"devops engineer\"")
	skillsCmd.Flags().StringSliceVar(&skillsHave, "have", nil, "Skills you already have, comma-separated")
	_ = skillsCmd.MarkFlagRequired("role")
}

func runSkills(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	lex, err := openLexicon(cfg, logger)
	if err != nil {
		return err
	}

	recommended := newMatcher(cfg, lex, logger).SkillRecommendations(skillsHave, skillsRole)
	current := skillsHave
	if current == nil {
		current = []string{}
	}

	return writeOutput(cmd, logger, skillsConfig, &types.SkillRecommendationsOutput{
		TargetRole:        skillsRole,
		CurrentSkills:     current,
		RecommendedSkills: recommended,
		SkillsToAdd:       len(recommended),
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	})
}
