package nlp

import (
	"strings"
	"unicode"
)

// Syllables estimates the syllable count of an English word from its vowel
// groups. Words with no letters count zero.
func Syllables(word string) int {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	w := b.String()
	if w == "" {
		return 0
	}
	if len(w) <= 3 {
		return 1
	}

	// Silent endings: "made", "used", "boxes" (but not "table").
	switch {
	case strings.HasSuffix(w, "es") || strings.HasSuffix(w, "ed"):
		w = w[:len(w)-2]
	case strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le"):
		w = w[:len(w)-1]
	}

	count := 0
	inVowel := false
	for _, r := range w {
		v := isVowel(r)
		if v && !inVowel {
			count++
		}
		inVowel = v
	}
	if count == 0 {
		return 1
	}
	return count
}

// TextSyllables sums Syllables over whitespace-separated words.
func TextSyllables(text string) int {
	total := 0
	for _, w := range strings.Fields(text) {
		total += Syllables(w)
	}
	return total
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
