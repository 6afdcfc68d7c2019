package nlp

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// irregular maps inflected forms the stemmer cannot relate to their base.
var irregular = map[string]string{
	"am": "be", "is": "be", "are": "be", "was": "be", "were": "be", "been": "be", "being": "be",
	"has": "have", "had": "have", "having": "have",
	"did": "do", "does": "do", "done": "do", "doing": "do",
	"made": "make", "got": "get", "gotten": "get",
	"led": "lead", "built": "build", "ran": "run", "run": "run",
	"wrote": "write", "written": "write", "drove": "drive", "driven": "drive",
	"began": "begin", "begun": "begin", "grew": "grow", "grown": "grow",
	"took": "take", "taken": "take", "gave": "give", "given": "give",
	"brought": "bring", "taught": "teach", "thought": "think", "sold": "sell",
	"spent": "spend", "won": "win", "chose": "choose", "chosen": "choose",
	"oversaw": "oversee", "overseen": "oversee", "sought": "seek", "held": "hold",
	"met": "meet", "kept": "keep", "found": "find", "set": "set", "put": "put",
}

// Lemmatize reduces a word to a comparison key: irregular forms map to their
// base, everything else goes through the Snowball English stemmer. Two
// inflections of the same verb yield the same key.
func Lemmatize(word string) string {
	w := strings.ToLower(strings.TrimFunc(word, func(r rune) bool { return !unicode.IsLetter(r) }))
	if w == "" {
		return ""
	}
	if base, ok := irregular[w]; ok {
		w = base
	}
	return english.Stem(w, false)
}
