// Package nlp wraps the language model used by the analyzers: sentence
// segmentation, part-of-speech tagging, lemmas and syllable counts.
package nlp

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
	"resumescore/internal/errors"
)

// Token is a tagged word. Tag is a Penn Treebank tag.
type Token struct {
	Text  string `json:"text"`
	Tag   string `json:"tag"`
	Lemma string `json:"lemma"`
	// Initial marks the first word of a sentence, line, clause or bullet, and
	// capitalized words, which is where flattened bullets start. The tagger
	// often misreads a past-tense verb there as a noun.
	Initial bool `json:"initial,omitempty"`
}

// IsVerb reports whether the token is tagged as any verb form.
func (t Token) IsVerb() bool {
	return strings.HasPrefix(t.Tag, "VB")
}

// Document is the model's view of one text.
type Document struct {
	Sentences []string
	Tokens    []Token
}

// Verbs returns the verb tokens in order.
func (d *Document) Verbs() []Token {
	var verbs []Token
	for _, t := range d.Tokens {
		if t.IsVerb() {
			verbs = append(verbs, t)
		}
	}
	return verbs
}

// Model turns text into a Document. Implementations must be safe for
// concurrent use.
type Model interface {
	Process(text string) (*Document, error)
}

// ProseModel is a Model backed by the prose tokenizer, segmenter and
// averaged-perceptron tagger.
type ProseModel struct{}

const selfCheckText = "Developed a billing service. Led a team of four engineers."

// NewProseModel loads the model and verifies it can segment and tag a known
// sentence. A failure here means the service cannot score anything.
func NewProseModel() (*ProseModel, error) {
	m := &ProseModel{}
	doc, err := m.Process(selfCheckText)
	if err != nil {
		return nil, err
	}
	if len(doc.Sentences) == 0 || len(doc.Tokens) == 0 {
		return nil, errors.NewUpstreamModelError(errors.ErrCodeModelUnavailable,
			"language model returned no sentences or tokens during self-check", nil)
	}
	return m, nil
}

// Process segments and tags text.
func (m *ProseModel) Process(text string) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = errors.NewUpstreamModelError(errors.ErrCodeTaggingFailed, "language model panicked",
				fmt.Errorf("%v", r))
		}
	}()

	pd, perr := prose.NewDocument(text, prose.WithExtraction(false))
	if perr != nil {
		return nil, errors.NewUpstreamModelError(errors.ErrCodeTaggingFailed, "failed to tag text", perr)
	}

	doc = &Document{}
	for _, s := range pd.Sentences() {
		if strings.TrimSpace(s.Text) != "" {
			doc.Sentences = append(doc.Sentences, s.Text)
		}
	}
	cursor := 0
	boundary := true
	for _, t := range pd.Tokens() {
		initial := boundary || capitalized(t.Text)
		if i := strings.Index(text[cursor:], t.Text); i >= 0 {
			if strings.ContainsRune(text[cursor:cursor+i], '\n') {
				initial = true
			}
			cursor += i + len(t.Text)
		}
		doc.Tokens = append(doc.Tokens, Token{
			Text:    t.Text,
			Tag:     t.Tag,
			Lemma:   Lemmatize(t.Text),
			Initial: initial,
		})
		boundary = !hasWordChar(t.Text)
	}
	return doc, nil
}

func capitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// hasWordChar reports whether s holds a letter or digit. Tokens without one
// are punctuation or bullet marks and open a new clause.
func hasWordChar(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}
