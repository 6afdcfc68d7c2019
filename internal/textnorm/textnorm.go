// Package textnorm cleans extracted document text before analysis.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"resumescore/internal/errors"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// Letters, marks, digits, underscore, whitespace and - . , ; : ( ) [ ] / @ + #
	disallowed = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\-.,;:()\[\]/@+#]`)
)

// Thresholds below which text is refused as unscorable.
const (
	MinTextLength  = 50
	MinLetterRatio = 0.3
)

// Normalize collapses whitespace, trims, and strips characters outside the
// allow-list. Case is preserved.
func Normalize(text string) string {
	text = norm.NFC.String(text)
	text = whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
	return disallowed.ReplaceAllString(text, "")
}

// NormalizeLower is Normalize followed by lower-casing.
func NormalizeLower(text string) string {
	return strings.ToLower(Normalize(text))
}

// Validate refuses text that is empty, shorter than MinTextLength characters
// once trimmed, or mostly non-alphabetic.
func Validate(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return errors.NewInvalidInputError(errors.ErrCodeEmptyText, "text is empty", nil)
	}

	length := len([]rune(trimmed))
	if length < MinTextLength {
		return errors.NewInvalidInputError(errors.ErrCodeTextTooShort, "text content too short", nil).
			WithContext("length", length).
			WithContext("minimum", MinTextLength)
	}

	total, letters := 0, 0
	for _, r := range text {
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if float64(letters) < float64(total)*MinLetterRatio {
		return errors.NewInvalidInputError(errors.ErrCodeNotEnoughLetters, "text content appears to be mostly non-alphabetic", nil).
			WithContext("letters", letters).
			WithContext("characters", total)
	}
	return nil
}

// Words splits text on whitespace.
func Words(text string) []string {
	return strings.Fields(text)
}
