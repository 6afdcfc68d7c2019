// Package skills detects vocabulary terms in text.
//
// Matching is case-insensitive literal substring containment with no word
// boundaries, so "Java" is found inside "JavaScript" and "R" inside almost
// anything. Every caller in this module uses the same policy.
package skills

import (
	"slices"
	"strings"

	"resumescore/internal/lexicon"
)

// MaxRelated caps related-skill suggestions.
const MaxRelated = 10

// MaxRoleRecommendations caps role-based skill recommendations.
const MaxRoleRecommendations = 8

// Contains reports whether term occurs in lowerText. lowerText must already
// be lower-cased.
func Contains(lowerText, term string) bool {
	return strings.Contains(lowerText, strings.ToLower(term))
}

// MatchTerms returns the terms found in text, in vocabulary order.
func MatchTerms(text string, terms []string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for _, term := range terms {
		if Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

// Match returns, for each category, the terms found in text in vocabulary order.
func Match(text string, categories []lexicon.Category) map[string][]string {
	lower := strings.ToLower(text)
	out := make(map[string][]string, len(categories))
	for _, c := range categories {
		found := []string{}
		for _, term := range c.Terms {
			if Contains(lower, term) {
				found = append(found, term)
			}
		}
		out[c.Name] = found
	}
	return out
}

// Find returns the de-duplicated, alphabetically sorted terms found in text.
func Find(text string, vocabulary []string) []string {
	found := MatchTerms(text, vocabulary)
	slices.Sort(found)
	return slices.Compact(found)
}

// Related suggests skills adjacent to the found ones. Found skills are visited
// in the order given; each contributes its related skills that are neither
// found (case-insensitive) nor already suggested.
func Related(found []string, lex *lexicon.Lexicon) []string {
	have := make(map[string]bool, len(found))
	for _, s := range found {
		have[strings.ToLower(s)] = true
	}

	suggested := []string{}
	for _, s := range found {
		for _, rel := range lex.Related(s) {
			if have[strings.ToLower(rel)] || slices.Contains(suggested, rel) {
				continue
			}
			suggested = append(suggested, rel)
		}
	}
	if len(suggested) > MaxRelated {
		suggested = suggested[:MaxRelated]
	}
	return suggested
}

// Categorize groups found skills under the lexicon's display categories.
// Empty categories are omitted.
func Categorize(found []string, lex *lexicon.Lexicon) map[string][]string {
	out := make(map[string][]string)
	for _, s := range found {
		category := lex.FallbackCategory
		for _, c := range lex.DisplayCategories {
			if slices.Contains(c.Terms, s) {
				category = c.Name
				break
			}
		}
		out[category] = append(out[category], s)
	}
	return out
}

// Analysis is the resume skill summary.
type Analysis struct {
	FoundSkills       []string            `json:"found_skills"`
	RecommendedSkills []string            `json:"recommended_skills"`
	SkillCount        int                 `json:"skill_count"`
	SkillCategories   map[string][]string `json:"skill_categories"`
}

// Analyze finds the lexicon's technical skills in text and suggests related ones.
func Analyze(text string, lex *lexicon.Lexicon) Analysis {
	found := Find(text, lex.TechnicalSkills)
	return Analysis{
		FoundSkills:       found,
		RecommendedSkills: Related(found, lex),
		SkillCount:        len(found),
		SkillCategories:   Categorize(found, lex),
	}
}

// RecommendForRole lists the role's skills the user does not have yet, in
// table order. Unknown roles yield an empty list.
func RecommendForRole(userSkills []string, role string, lex *lexicon.Lexicon) []string {
	have := make(map[string]bool, len(userSkills))
	for _, s := range userSkills {
		have[strings.ToLower(strings.TrimSpace(s))] = true
	}

	out := []string{}
	for _, s := range lex.SkillsForRole(role) {
		if !have[strings.ToLower(s)] {
			out = append(out, s)
		}
	}
	if len(out) > MaxRoleRecommendations {
		out = out[:MaxRoleRecommendations]
	}
	return out
}

// Flatten merges category buckets into one lower-cased set.
func Flatten(buckets map[string][]string) map[string]bool {
	set := make(map[string]bool)
	for _, terms := range buckets {
		for _, t := range terms {
			set[strings.ToLower(t)] = true
		}
	}
	return set
}
