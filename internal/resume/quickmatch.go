package resume

import (
	"slices"
	"strings"

	"resumescore/internal/scoring"
)

const (
	minQuickWordLen    = 3
	maxOverlapping     = 15
	maxMissingKeywords = 10
	topJobWords        = 20
	minMissingFreq     = 3
)

// JobMatch is the quick keyword check embedded in a resume analysis. It is a
// plain word-set comparison, independent of the job matcher.
type JobMatch struct {
	MatchScore          float64  `json:"match_score"`
	OverlappingKeywords []string `json:"overlapping_keywords"`
	MissingKeywords     []string `json:"missing_keywords"`
	TotalJobKeywords    int      `json:"total_job_keywords"`
	MatchedKeywords     int      `json:"matched_keywords"`
}

// QuickMatch compares the word sets of a resume and a job description. Words
// are lower-cased whitespace tokens longer than two characters.
func QuickMatch(resumeText, jobText string, stopwords []string) JobMatch {
	resumeWords := wordSet(resumeText)
	jobCounts, jobOrder := wordCounts(jobText)

	var overlap []string
	for _, w := range jobOrder {
		if resumeWords[w] {
			overlap = append(overlap, w)
		}
	}
	slices.Sort(overlap)

	skip := make(map[string]bool, len(stopwords))
	for _, w := range stopwords {
		skip[w] = true
	}
	missing := []string{}
	for _, w := range scoring.First(mostCommon(jobCounts, jobOrder), topJobWords) {
		if jobCounts[w] >= minMissingFreq && !resumeWords[w] && !skip[w] {
			missing = append(missing, w)
		}
	}

	matched := len(overlap)
	if overlap == nil {
		overlap = []string{}
	}
	return JobMatch{
		MatchScore:          scoring.Round(scoring.Percent(matched, len(jobOrder)), 1),
		OverlappingKeywords: scoring.First(overlap, maxOverlapping),
		MissingKeywords:     scoring.First(missing, maxMissingKeywords),
		TotalJobKeywords:    len(jobOrder),
		MatchedKeywords:     matched,
	}
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		if len([]rune(w)) >= minQuickWordLen {
			set[strings.ToLower(w)] = true
		}
	}
	return set
}

// wordCounts returns word frequencies and the words in first-seen order.
func wordCounts(text string) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string
	for _, w := range strings.Fields(text) {
		if len([]rune(w)) < minQuickWordLen {
			continue
		}
		w = strings.ToLower(w)
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	return counts, order
}

// mostCommon orders words by frequency, highest first; ties keep first-seen
// order.
func mostCommon(counts map[string]int, order []string) []string {
	ranked := slices.Clone(order)
	slices.SortStableFunc(ranked, func(a, b string) int {
		return counts[b] - counts[a]
	})
	return ranked
}
