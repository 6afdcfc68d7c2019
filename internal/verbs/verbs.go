// Package verbs scores the use of strong action verbs.
package verbs

import (
	"math"
	"slices"
	"strings"

	"resumescore/internal/lexicon"
	"resumescore/internal/nlp"
	"resumescore/internal/scoring"
)

// MaxWeakVerbs caps the weak verbs reported for replacement.
const MaxWeakVerbs = 5

// Analysis is the verb-strength breakdown.
type Analysis struct {
	Score              float64  `json:"score"`
	FoundVerbs         []string `json:"found_verbs"`
	TotalStrongVerbs   int      `json:"total_strong_verbs"`
	UniqueStrongVerbs  int      `json:"unique_strong_verbs"`
	VarietyScore       float64  `json:"verb_variety_score"`
	FrequencyScore     float64  `json:"verb_frequency_score"`
	WeakVerbsToReplace []string `json:"weak_verbs_to_replace"`
}

// Analyzer matches verb lemmas against the lexicon's strong and weak lists.
// Lexicon entries are lemmatized the same way as tokens, so any inflection
// of "developed" counts as that entry.
type Analyzer struct {
	strong map[string]string
	weak   map[string]bool
}

// NewAnalyzer indexes the verb lists of lex.
func NewAnalyzer(lex *lexicon.Lexicon) *Analyzer {
	a := &Analyzer{
		strong: make(map[string]string, len(lex.StrongVerbs)),
		weak:   make(map[string]bool, len(lex.WeakVerbs)),
	}
	for _, v := range lex.StrongVerbs {
		key := nlp.Lemmatize(v)
		if _, dup := a.strong[key]; !dup {
			a.strong[key] = v
		}
	}
	for _, v := range lex.WeakVerbs {
		a.weak[nlp.Lemmatize(v)] = true
	}
	return a
}

// Analyze scores the verb tokens among tokens.
func (a *Analyzer) Analyze(tokens []nlp.Token) Analysis {
	total := 0
	unique := make(map[string]bool)
	weak := make(map[string]bool)

	for _, t := range tokens {
		lemma := t.Lemma
		if lemma == "" {
			lemma = nlp.Lemmatize(t.Text)
		}
		if !t.IsVerb() && !(t.Initial && a.known(lemma)) {
			continue
		}
		if entry, ok := a.strong[lemma]; ok {
			total++
			unique[entry] = true
		}
		if a.weak[lemma] {
			weak[strings.ToLower(t.Text)] = true
		}
	}

	found := sortedKeys(unique)
	variety := math.Min(float64(10*len(found)), 100)
	frequency := math.Min(float64(5*total), 100)

	weakVerbs := sortedKeys(weak)
	if len(weakVerbs) > MaxWeakVerbs {
		weakVerbs = weakVerbs[:MaxWeakVerbs]
	}

	return Analysis{
		Score:              scoring.Composite(0, variety, frequency),
		FoundVerbs:         found,
		TotalStrongVerbs:   total,
		UniqueStrongVerbs:  len(found),
		VarietyScore:       variety,
		FrequencyScore:     frequency,
		WeakVerbsToReplace: weakVerbs,
	}
}

// known reports whether lemma is in either verb table.
func (a *Analyzer) known(lemma string) bool {
	_, strong := a.strong[lemma]
	return strong || a.weak[lemma]
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
