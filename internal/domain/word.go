package domain

import "strings"

// NormalizeWord turns raw user input into a WordQuery: trimmed and lower-cased.
// An empty result means there is nothing to look up.
func NormalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MissReason explains why a lookup has no definition
type MissReason int

const (
	MissNone MissReason = iota
	MissNotFound
	MissInvalidShape
)

// LookupResult is the assembled outcome of one word's four lookups
type LookupResult struct {
	Word       string
	Definition *DefinitionRecord
	Miss       MissReason
	Related    RelatedWords
	Images     []string
}

// Found reports whether the dictionary returned a usable entry
func (r *LookupResult) Found() bool {
	return r != nil && r.Definition != nil && r.Miss == MissNone
}

// RelatedWords holds thesaurus results in source order
type RelatedWords struct {
	Synonyms []string
	Antonyms []string
}

// DefinitionRecord is the first matching dictionary entry
type DefinitionRecord struct {
	Phonetic string
	Meanings []Meaning
}

// Meaning groups definitions sharing a part of speech
type Meaning struct {
	PartOfSpeech string
	Definitions  []Definition
}

// Definition is a single sense with an optional example
type Definition struct {
	Text    string
	Example string
}
