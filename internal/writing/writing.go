// Package writing scores readability and sentence/word length.
package writing

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"resumescore/internal/nlp"
	"resumescore/internal/scoring"
)

// Ideal ranges; outside them the sub-score decays linearly.
const (
	minSentenceWords = 15
	maxSentenceWords = 25
	targetSentence   = 20
	sentencePenalty  = 3

	minWordChars = 4
	maxWordChars = 6
	targetWord   = 5
	wordPenalty  = 10
)

// ErrNoSentences is returned for text without any sentence or word.
var ErrNoSentences = errors.New("writing analysis needs at least one sentence")

// Analysis is the writing-quality breakdown.
type Analysis struct {
	Score             float64 `json:"score"`
	Readability       float64 `json:"readability"`
	GradeLevel        float64 `json:"grade_level"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	AvgWordLength     float64 `json:"avg_word_length"`
	TotalSentences    int     `json:"total_sentences"`
	TotalWords        int     `json:"total_words"`

	ReadabilityScore float64 `json:"readability_score"`
	SentenceScore    float64 `json:"sentence_score"`
	WordScore        float64 `json:"word_score"`
}

// Analyze scores text given its sentence segmentation.
func Analyze(text string, sentences []string) (Analysis, error) {
	words := strings.Fields(text)
	if len(sentences) == 0 || len(words) == 0 {
		return Analysis{}, ErrNoSentences
	}

	sentenceWords := 0
	for _, s := range sentences {
		sentenceWords += len(strings.Fields(s))
	}
	avgSentence := float64(sentenceWords) / float64(len(sentences))

	chars := 0
	for _, w := range words {
		chars += len([]rune(w))
	}
	avgWord := float64(chars) / float64(len(words))

	flesch, grade := readability(words, len(sentences))

	readabilityScore := scoring.Clamp(flesch, 0, 100)
	sentenceScore := lengthScore(avgSentence, minSentenceWords, maxSentenceWords, targetSentence, sentencePenalty)
	wordScore := lengthScore(avgWord, minWordChars, maxWordChars, targetWord, wordPenalty)

	return Analysis{
		Score:             scoring.Composite(0, readabilityScore, sentenceScore, wordScore),
		Readability:       scoring.Round(flesch, 1),
		GradeLevel:        scoring.Round(grade, 1),
		AvgSentenceLength: scoring.Round(avgSentence, 1),
		AvgWordLength:     scoring.Round(avgWord, 1),
		TotalSentences:    len(sentences),
		TotalWords:        len(words),
		ReadabilityScore:  readabilityScore,
		SentenceScore:     sentenceScore,
		WordScore:         wordScore,
	}, nil
}

// readability returns the Flesch reading ease and Flesch-Kincaid grade.
func readability(words []string, sentences int) (float64, float64) {
	syllables := 0
	for _, w := range words {
		syllables += nlp.Syllables(w)
	}
	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))

	ease := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	grade := 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59
	return ease, grade
}

func lengthScore(avg, lo, hi, target, penalty float64) float64 {
	if avg >= lo && avg <= hi {
		return 100
	}
	return math.Max(0, 100-math.Abs(target-avg)*penalty)
}
