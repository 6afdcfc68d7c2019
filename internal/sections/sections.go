// Package sections checks a resume for the expected section names.
package sections

import (
	"strings"

	"resumescore/internal/scoring"
)

// Analysis reports which expected sections were found.
type Analysis struct {
	FoundSections     []string `json:"found_sections"`
	MissingSections   []string `json:"missing_sections"`
	CompletenessScore float64  `json:"completeness_score"`
}

// Check looks for each expected section name in text (case-insensitive
// substring). Synonyms do not count.
func Check(text string, expected []string) Analysis {
	lower := strings.ToLower(text)
	a := Analysis{
		FoundSections:   []string{},
		MissingSections: []string{},
	}
	for _, s := range expected {
		if strings.Contains(lower, strings.ToLower(s)) {
			a.FoundSections = append(a.FoundSections, s)
		} else {
			a.MissingSections = append(a.MissingSections, s)
		}
	}
	a.CompletenessScore = scoring.Percent(len(a.FoundSections), len(expected))
	return a
}
