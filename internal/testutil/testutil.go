package testutil

import (
	"time"

	"wordlens/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestDefinition creates a one-meaning definition record
func NewTestDefinition(partOfSpeech, text, example string) *domain.DefinitionRecord {
	return &domain.DefinitionRecord{
		Phonetic: "/test/",
		Meanings: []domain.Meaning{
			{
				PartOfSpeech: partOfSpeech,
				Definitions:  []domain.Definition{{Text: text, Example: example}},
			},
		},
	}
}

// NewTestResult creates a found lookup result for word
func NewTestResult(word string, images ...string) *domain.LookupResult {
	if images == nil {
		images = []string{}
	}
	return &domain.LookupResult{
		Word:       word,
		Definition: NewTestDefinition("noun", "A test definition of "+word+".", "A "+word+" in a sentence."),
		Related: domain.RelatedWords{
			Synonyms: []string{word + "-syn"},
			Antonyms: []string{word + "-ant"},
		},
		Images: images,
	}
}

// NewTestMiss creates a not-found lookup result for word
func NewTestMiss(word string) *domain.LookupResult {
	return &domain.LookupResult{
		Word:   word,
		Miss:   domain.MissNotFound,
		Images: []string{},
	}
}

// NewTestImageSearch creates a cached image search
func NewTestImageSearch(word string, fetchedAt time.Time) *domain.ImageSearch {
	return &domain.ImageSearch{
		Word:      word,
		Payload:   []byte(`{"total":0,"totalHits":0,"hits":[]}`),
		FetchedAt: fetchedAt,
	}
}
