// Package lexicon holds the static vocabulary the analyzers match against:
// skills, action verbs, section names, experience buckets and role maps.
//
// A *Lexicon is built once (Default or Load) and must not be modified after
// construction. Components receive it as a dependency; a reload produces a new
// value instead of changing an existing one.
package lexicon

import (
	"fmt"
	"strings"
)

// Category is a named, ordered vocabulary list.
type Category struct {
	Name  string   `yaml:"name" json:"name"`
	Terms []string `yaml:"terms" json:"terms"`
}

// Level is an experience bucket and the keywords that select it.
type Level struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// SalaryRange is an annual compensation band in USD.
type SalaryRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Lexicon is the complete set of lookup tables.
type Lexicon struct {
	// TechnicalSkills is the resume self-analysis vocabulary.
	TechnicalSkills []string `yaml:"technical_skills"`
	// SkillRelationships maps a skill to related skills worth suggesting.
	SkillRelationships []Category `yaml:"skill_relationships"`
	// DisplayCategories groups found resume skills for presentation. Skills
	// outside every group land in FallbackCategory.
	DisplayCategories []Category `yaml:"display_categories"`
	FallbackCategory  string     `yaml:"fallback_category"`

	// JobSkillCategories is the job matcher vocabulary, by category.
	JobSkillCategories []Category `yaml:"job_skill_categories"`

	StrongVerbs      []string `yaml:"strong_verbs"`
	WeakVerbs        []string `yaml:"weak_verbs"`
	ExpectedSections []string `yaml:"expected_sections"`

	// ExperienceLevels is ordered; the first level with a matching keyword wins.
	ExperienceLevels []Level                `yaml:"experience_levels"`
	Education        []string               `yaml:"education"`
	Certifications   []string               `yaml:"certifications"`
	JobTitles        []string               `yaml:"job_titles"`
	JobTypes         []string               `yaml:"job_types"`
	SalaryRanges     map[string]SalaryRange `yaml:"salary_ranges"`

	// RoleSkills maps a lower-cased target role to the skills it calls for.
	RoleSkills []Category `yaml:"role_skills"`

	// QuickMatchStopwords are dropped from the resume's embedded job check.
	QuickMatchStopwords []string `yaml:"quick_match_stopwords"`
	// KeywordStopwords are dropped from the job matcher's keyword overlap.
	KeywordStopwords []string `yaml:"keyword_stopwords"`
	// MissingKeywordStopwords are never reported as missing keywords.
	MissingKeywordStopwords []string `yaml:"missing_keyword_stopwords"`
}

// Validate checks the tables the analyzers cannot work without.
func (l *Lexicon) Validate() error {
	switch {
	case len(l.TechnicalSkills) == 0:
		return fmt.Errorf("technical_skills must not be empty")
	case len(l.JobSkillCategories) == 0:
		return fmt.Errorf("job_skill_categories must not be empty")
	case len(l.StrongVerbs) == 0:
		return fmt.Errorf("strong_verbs must not be empty")
	case len(l.ExpectedSections) == 0:
		return fmt.Errorf("expected_sections must not be empty")
	case len(l.ExperienceLevels) == 0:
		return fmt.Errorf("experience_levels must not be empty")
	}

	seen := make(map[string]bool, len(l.JobSkillCategories))
	for _, c := range l.JobSkillCategories {
		if c.Name == "" {
			return fmt.Errorf("job skill category without a name")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate job skill category %q", c.Name)
		}
		seen[c.Name] = true
	}
	for _, lvl := range l.ExperienceLevels {
		if _, ok := levelRank[lvl.Name]; !ok {
			return fmt.Errorf("unknown experience level %q", lvl.Name)
		}
	}
	return nil
}

// normalize lower-cases the tables that are matched against lower-cased text.
// Skill terms keep their case for display; skill matching folds case itself.
func (l *Lexicon) normalize() {
	for _, list := range []*[]string{
		&l.StrongVerbs, &l.WeakVerbs, &l.Education, &l.Certifications,
		&l.JobTitles, &l.JobTypes, &l.QuickMatchStopwords, &l.KeywordStopwords,
		&l.MissingKeywordStopwords,
	} {
		*list = lowerAll(*list)
	}
	for i := range l.ExperienceLevels {
		l.ExperienceLevels[i].Name = strings.ToLower(strings.TrimSpace(l.ExperienceLevels[i].Name))
		l.ExperienceLevels[i].Keywords = lowerAll(l.ExperienceLevels[i].Keywords)
	}
	for i := range l.RoleSkills {
		l.RoleSkills[i].Name = strings.ToLower(strings.TrimSpace(l.RoleSkills[i].Name))
	}
	if len(l.SalaryRanges) > 0 {
		// an override merges into the lower-case defaults; its own key wins
		ranges := make(map[string]SalaryRange, len(l.SalaryRanges))
		for level, r := range l.SalaryRanges {
			if level == strings.ToLower(level) {
				ranges[level] = r
			}
		}
		for level, r := range l.SalaryRanges {
			if level != strings.ToLower(level) {
				ranges[strings.ToLower(level)] = r
			}
		}
		l.SalaryRanges = ranges
	}
}

func lowerAll(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = strings.ToLower(v)
	}
	return out
}

// Related returns the related skills for skill, or nil.
func (l *Lexicon) Related(skill string) []string {
	for _, c := range l.SkillRelationships {
		if c.Name == skill {
			return c.Terms
		}
	}
	return nil
}

// SkillsForRole returns the skills listed for role (case-insensitive), or nil.
func (l *Lexicon) SkillsForRole(role string) []string {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, c := range l.RoleSkills {
		if c.Name == role {
			return c.Terms
		}
	}
	return nil
}

// Salary returns the salary band for an experience level.
func (l *Lexicon) Salary(level string) (SalaryRange, bool) {
	r, ok := l.SalaryRanges[level]
	return r, ok
}

// Experience levels and their rank in the seniority hierarchy.
const (
	LevelEntry     = "entry"
	LevelMid       = "mid"
	LevelSenior    = "senior"
	LevelPrincipal = "principal"
	LevelUnknown   = "unknown"
)

var levelRank = map[string]int{
	LevelUnknown:   0,
	LevelEntry:     1,
	LevelMid:       2,
	LevelSenior:    3,
	LevelPrincipal: 4,
}

// LevelRank returns the seniority rank of level; unknown and unrecognized
// levels rank 0.
func LevelRank(level string) int {
	return levelRank[level]
}
