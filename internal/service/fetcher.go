package service

import (
	"context"
	"time"

	"wordlens/internal/domain"
	"wordlens/internal/provider/datamuse"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DictionaryProvider looks up a word's definition
type DictionaryProvider interface {
	Lookup(ctx context.Context, word string) (*domain.DefinitionRecord, domain.MissReason, error)
}

// ThesaurusProvider looks up related words
type ThesaurusProvider interface {
	Related(ctx context.Context, word string, rel datamuse.Relation) ([]string, error)
}

// ImageProvider looks up image URLs for a word
type ImageProvider interface {
	Images(ctx context.Context, word string) ([]string, error)
}

// Fetcher assembles a LookupResult from the four lookups
type Fetcher struct {
	dictionary DictionaryProvider
	thesaurus  ThesaurusProvider
	images     ImageProvider
	timeout    time.Duration
	logger     *zap.Logger
}

// NewFetcher creates a result fetcher. A zero timeout leaves the fetch unbounded.
func NewFetcher(
	dictionary DictionaryProvider,
	thesaurus ThesaurusProvider,
	images ImageProvider,
	timeout time.Duration,
	logger *zap.Logger,
) *Fetcher {
	return &Fetcher{
		dictionary: dictionary,
		thesaurus:  thesaurus,
		images:     images,
		timeout:    timeout,
		logger:     logger,
	}
}

// Fetch runs the dictionary, synonym, antonym and image lookups concurrently.
// It returns only when all four have settled; any failure fails the whole
// lookup with a *domain.FetchError. A word missing from the dictionary is a
// successful result with Miss set.
func (f *Fetcher) Fetch(ctx context.Context, word string) (*domain.LookupResult, error) {
	word = domain.NormalizeWord(word)
	if word == "" {
		return nil, domain.NewFetchError("input", domain.ErrEmptyWord)
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	result := &domain.LookupResult{Word: word}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rec, miss, err := f.dictionary.Lookup(gctx, word)
		if err != nil {
			return domain.NewFetchError("dictionary", err)
		}
		result.Definition = rec
		result.Miss = miss
		return nil
	})

	g.Go(func() error {
		words, err := f.thesaurus.Related(gctx, word, datamuse.Synonyms)
		if err != nil {
			return domain.NewFetchError("synonyms", err)
		}
		result.Related.Synonyms = words
		return nil
	})

	g.Go(func() error {
		words, err := f.thesaurus.Related(gctx, word, datamuse.Antonyms)
		if err != nil {
			return domain.NewFetchError("antonyms", err)
		}
		result.Related.Antonyms = words
		return nil
	})

	g.Go(func() error {
		urls, err := f.images.Images(gctx, word)
		if err != nil {
			return domain.NewFetchError("images", err)
		}
		result.Images = urls
		return nil
	})

	if err := g.Wait(); err != nil {
		f.logger.Warn("Lookup failed", zap.String("word", word), zap.Error(err))
		return nil, err
	}

	if result.Definition == nil && result.Miss == domain.MissNone {
		result.Miss = domain.MissInvalidShape
	}
	if result.Images == nil {
		result.Images = []string{}
	}

	f.logger.Debug("Lookup completed",
		zap.String("word", word),
		zap.Bool("found", result.Found()),
		zap.Int("synonyms", len(result.Related.Synonyms)),
		zap.Int("antonyms", len(result.Related.Antonyms)),
		zap.Int("images", len(result.Images)),
	)
	return result, nil
}
