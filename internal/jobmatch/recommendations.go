package jobmatch

import (
	"strings"

	"resumescore/internal/lexicon"
	"resumescore/internal/scoring"
)

// MaxRecommendations caps the recommendations attached to a match.
const MaxRecommendations = 5

const (
	skillsPassingScore  = 70
	listedMissingSkills = 5
)

const fallbackRecommendation = "Your profile shows strong alignment with this role. " +
	"Consider customizing your resume to highlight the most relevant experiences."

type recommendationInput struct {
	resume *FeatureProfile
	job    *FeatureProfile
	skills SkillsMatch
}

var recommendationRules = scoring.Cascade[recommendationInput]{
	Limit:    MaxRecommendations,
	Fallback: fallbackRecommendation,
	Rules: []scoring.Rule[recommendationInput]{
		scoring.When("learn-skills",
			func(in recommendationInput) bool {
				return in.skills.Score < skillsPassingScore && len(in.skills.Missing) > 0
			},
			func(in recommendationInput) string {
				return "Consider learning these in-demand skills: " +
					strings.Join(scoring.First(in.skills.Missing, listedMissingSkills), ", ")
			}),
		scoring.When("show-experience",
			func(in recommendationInput) bool {
				return in.resume.ExperienceLevel == lexicon.LevelEntry &&
					(in.job.ExperienceLevel == lexicon.LevelMid || in.job.ExperienceLevel == lexicon.LevelSenior)
			},
			func(recommendationInput) string {
				return "Highlight any relevant projects, internships, or coursework to demonstrate practical experience"
			}),
		scoring.When("education",
			func(in recommendationInput) bool {
				return len(in.resume.Education) == 0 && len(in.job.Education) > 0
			},
			func(recommendationInput) string {
				return "Consider highlighting relevant educational background or certifications"
			}),
		scoring.When("certifications",
			func(in recommendationInput) bool {
				return len(in.resume.Certifications) == 0 && len(in.job.Certifications) > 0
			},
			func(recommendationInput) string {
				return "Industry certifications could strengthen your profile for this role"
			}),
	},
}

func recommend(in recommendationInput) []string {
	return recommendationRules.Apply(in)
}
