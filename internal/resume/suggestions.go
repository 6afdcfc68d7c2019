package resume

import (
	"fmt"
	"strings"

	"resumescore/internal/formatting"
	"resumescore/internal/scoring"
	"resumescore/internal/sections"
	"resumescore/internal/skills"
	"resumescore/internal/verbs"
	"resumescore/internal/writing"
)

// MaxSuggestions caps the suggestions attached to a result.
const MaxSuggestions = 8

const (
	minSkills          = 8
	passingScore       = 70
	minReadability     = 50
	maxSentenceLength  = 25
	minDistinctVerbs   = 5
	formattingIssueCap = 2
	listedItems        = 3
)

const fallbackSuggestion = "Great resume! Consider adding quantified achievements to make it even stronger"

type suggestionInput struct {
	skills     skills.Analysis
	sections   sections.Analysis
	writing    writing.Analysis
	verbs      verbs.Analysis
	formatting formatting.Analysis
	job        *JobMatch
}

func list(items []string) string {
	return strings.Join(scoring.First(items, listedItems), ", ")
}

var suggestionRules = scoring.Cascade[suggestionInput]{
	Limit:    MaxSuggestions,
	Fallback: fallbackSuggestion,
	Rules: []scoring.Rule[suggestionInput]{
		scoring.When("more-skills",
			func(in suggestionInput) bool { return len(in.skills.FoundSkills) < minSkills },
			func(in suggestionInput) string {
				return "Add more technical skills. Consider including: " + list(in.skills.RecommendedSkills)
			}),
		scoring.When("missing-sections",
			func(in suggestionInput) bool { return len(in.sections.MissingSections) > 0 },
			func(in suggestionInput) string {
				return "Add missing sections to strengthen your resume: " + list(in.sections.MissingSections)
			}),
		scoring.When("readability",
			func(in suggestionInput) bool {
				return in.writing.Score < passingScore && in.writing.Readability < minReadability
			},
			func(suggestionInput) string {
				return "Improve readability by using shorter sentences and simpler words"
			}),
		scoring.When("long-sentences",
			func(in suggestionInput) bool {
				return in.writing.Score < passingScore && in.writing.AvgSentenceLength > maxSentenceLength
			},
			func(suggestionInput) string { return "Break down long sentences for better readability" }),
		scoring.When("weak-verbs",
			func(in suggestionInput) bool { return in.verbs.Score < passingScore },
			func(in suggestionInput) string {
				return "Use stronger action verbs. Replace weak verbs like: " + list(in.verbs.WeakVerbsToReplace)
			}),
		scoring.When("verb-variety",
			func(in suggestionInput) bool {
				return in.verbs.Score < passingScore && len(in.verbs.FoundVerbs) < minDistinctVerbs
			},
			func(suggestionInput) string {
				return "Include more diverse action verbs to showcase your achievements"
			}),
		{
			Name: "formatting",
			Emit: func(in suggestionInput) []string {
				if in.formatting.Score >= passingScore {
					return nil
				}
				var out []string
				for _, issue := range scoring.First(in.formatting.FormattingIssues, formattingIssueCap) {
					out = append(out, fmt.Sprintf("Formatting improvement: %s", issue))
				}
				return out
			},
		},
		scoring.When("job-keywords",
			func(in suggestionInput) bool {
				return in.job != nil && in.job.MatchScore < passingScore && len(in.job.MissingKeywords) > 0
			},
			func(in suggestionInput) string {
				return "Include job-relevant keywords: " + list(in.job.MissingKeywords)
			}),
	},
}

func suggest(in suggestionInput) []string {
	return suggestionRules.Apply(in)
}
