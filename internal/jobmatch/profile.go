package jobmatch

import (
	"slices"
	"strings"

	"resumescore/internal/lexicon"
	"resumescore/internal/skills"
)

// FeatureProfile is what the matcher extracts from one side of a match.
type FeatureProfile struct {
	Skills          map[string][]string `json:"skills"`
	ExperienceLevel string              `json:"experience_level"`
	Education       []string            `json:"education"`
	Certifications  []string            `json:"certifications"`
	JobTitles       []string            `json:"job_titles"`
	JobTypes        []string            `json:"job_types"`
	TotalSkills     int                 `json:"total_skills"`

	// SalaryRange is the typical band for ExperienceLevel. Only job
	// requirements carry it.
	SalaryRange *lexicon.SalaryRange `json:"salary_range,omitempty"`
}

// SkillSet returns the profile's skills as one lower-cased set.
func (p *FeatureProfile) SkillSet() map[string]bool {
	return skills.Flatten(p.Skills)
}

// ExtractProfile builds a profile from lower-cased, normalized text.
func ExtractProfile(text string, lex *lexicon.Lexicon) *FeatureProfile {
	buckets := skills.Match(text, lex.JobSkillCategories)
	total := 0
	for _, found := range buckets {
		total += len(found)
	}
	return &FeatureProfile{
		Skills:          buckets,
		ExperienceLevel: ExperienceLevel(text, lex.ExperienceLevels),
		Education:       sortedUnique(keywordsIn(text, lex.Education)),
		Certifications:  keywordsIn(text, lex.Certifications),
		JobTitles:       sortedUnique(keywordsIn(text, lex.JobTitles)),
		JobTypes:        keywordsIn(text, lex.JobTypes),
		TotalSkills:     total,
	}
}

// ExperienceLevel returns the first level, in table order, with a keyword
// contained in text; otherwise lexicon.LevelUnknown.
func ExperienceLevel(text string, levels []lexicon.Level) string {
	for _, l := range levels {
		for _, kw := range l.Keywords {
			if strings.Contains(text, kw) {
				return l.Name
			}
		}
	}
	return lexicon.LevelUnknown
}

func keywordsIn(text string, keywords []string) []string {
	found := []string{}
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}
	return found
}

func sortedUnique(s []string) []string {
	s = slices.Clone(s)
	slices.Sort(s)
	return slices.Compact(s)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
