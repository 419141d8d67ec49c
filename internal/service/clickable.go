package service

import (
	"strings"

	"wordlens/internal/domain"
)

// minClickableLen is the length a cleaned word must exceed to become clickable
const minClickableLen = 2

// functionWords pass the length rule but are never linked
var functionWords = map[string]struct{}{
	"and": {},
}

// MarkClickable splits text on word boundaries and marks tokens worth
// searching for. Other tokens pass through unchanged, so the plain text of
// the result always equals the input.
func MarkClickable(text string) domain.AnnotatedText {
	if text == "" {
		return nil
	}

	parts := splitWordBoundaries(text)
	out := make(domain.AnnotatedText, 0, len(parts))
	for _, p := range parts {
		out = append(out, domain.Token{Text: p, Word: clickableWord(p)})
	}
	return out
}

// PlainAnnotation wraps text as a single non-clickable token
func PlainAnnotation(text string) domain.AnnotatedText {
	if text == "" {
		return nil
	}
	return domain.AnnotatedText{{Text: text}}
}

// CleanClickTarget reduces a clicked token to its letters, lower-cased
func CleanClickTarget(s string) string {
	return strings.ToLower(lettersOnly(s))
}

func clickableWord(token string) string {
	clean := lettersOnly(token)
	if len(clean) <= minClickableLen {
		return ""
	}
	word := strings.ToLower(clean)
	if _, skip := functionWords[word]; skip {
		return ""
	}
	return word
}

func lettersOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if isASCIILetter(r) {
			return r
		}
		return -1
	}, s)
}

// splitWordBoundaries cuts s into alternating runs of word and non-word
// characters, where word characters are ASCII letters, digits and '_'.
func splitWordBoundaries(s string) []string {
	var parts []string
	start := 0
	var inWord bool
	for i, r := range s {
		w := isWordChar(r)
		if i == 0 {
			inWord = w
			continue
		}
		if w != inWord {
			parts = append(parts, s[start:i])
			start = i
			inWord = w
		}
	}
	return append(parts, s[start:])
}

func isWordChar(r rune) bool {
	return isASCIILetter(r) || (r >= '0' && r <= '9') || r == '_'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
