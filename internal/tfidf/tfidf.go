// Package tfidf computes TF-IDF vectors over a small ad-hoc corpus and the
// cosine similarity between them. Nothing is retained between calls.
package tfidf

import (
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// DefaultMaxFeatures bounds the vocabulary built for a corpus.
const DefaultMaxFeatures = 1000

// ErrEmptyVocabulary is returned when every document reduces to stop words
// or tokens shorter than two characters.
var ErrEmptyVocabulary = errors.New("empty vocabulary; documents contain only stop words")

// Vectorizer turns documents into L2-normalized TF-IDF vectors.
type Vectorizer struct {
	MaxFeatures int
	MinN, MaxN  int
	StopWords   map[string]bool
}

// NewVectorizer returns a vectorizer for English unigrams and bigrams.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{
		MaxFeatures: DefaultMaxFeatures,
		MinN:        1,
		MaxN:        2,
		StopWords:   englishStopWords,
	}
}

// Tokenize lower-cases doc and returns its runs of two or more word
// characters (letters, marks, digits, underscore).
func Tokenize(doc string) []string {
	var tokens []string
	start := -1
	runes := 0
	flush := func(end int) {
		if start >= 0 && runes >= 2 {
			tokens = append(tokens, strings.ToLower(doc[start:end]))
		}
		start, runes = -1, 0
	}
	for i, r := range doc {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(doc))
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// Terms returns the n-gram terms of doc, built after stop-word removal.
func (v *Vectorizer) Terms(doc string) []string {
	var words []string
	for _, t := range Tokenize(doc) {
		if !v.StopWords[t] {
			words = append(words, t)
		}
	}
	var terms []string
	for n := v.MinN; n <= v.MaxN; n++ {
		for i := 0; i+n <= len(words); i++ {
			terms = append(terms, strings.Join(words[i:i+n], " "))
		}
	}
	return terms
}

// Model is a fitted corpus: its vocabulary and one vector per document.
type Model struct {
	Vocabulary []string
	Vectors    [][]float64
}

// FitTransform builds the vocabulary of docs and their vectors. Vocabulary
// terms are kept by corpus frequency, highest first, ties alphabetical, then
// stored alphabetically.
func (v *Vectorizer) FitTransform(docs []string) (*Model, error) {
	counts := make([]map[string]int, len(docs))
	corpus := make(map[string]int)
	docFreq := make(map[string]int)
	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, term := range v.Terms(doc) {
			counts[i][term]++
			corpus[term]++
		}
		for term := range counts[i] {
			docFreq[term]++
		}
	}
	if len(corpus) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vocab := make([]string, 0, len(corpus))
	for term := range corpus {
		vocab = append(vocab, term)
	}
	if v.MaxFeatures > 0 && len(vocab) > v.MaxFeatures {
		slices.SortFunc(vocab, func(a, b string) int {
			if corpus[a] != corpus[b] {
				return corpus[b] - corpus[a]
			}
			return strings.Compare(a, b)
		})
		vocab = vocab[:v.MaxFeatures]
	}
	slices.Sort(vocab)

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for j, term := range vocab {
		idf[j] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	m := &Model{Vocabulary: vocab, Vectors: make([][]float64, len(docs))}
	for i := range docs {
		vec := make([]float64, len(vocab))
		for j, term := range vocab {
			vec[j] = float64(counts[i][term]) * idf[j]
		}
		normalize(vec)
		m.Vectors[i] = vec
	}
	return m, nil
}

func normalize(vec []float64) {
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

// Cosine returns the cosine similarity of a and b, 0 if either is a zero
// vector.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Similarity fits a fresh two-document corpus and returns the cosine
// similarity of a and b in [0, 1]. With an empty vocabulary it returns 0 and
// ErrEmptyVocabulary.
func Similarity(a, b string) (float64, error) {
	m, err := NewVectorizer().FitTransform([]string{a, b})
	if err != nil {
		return 0, err
	}
	return math.Min(1, Cosine(m.Vectors[0], m.Vectors[1])), nil
}
