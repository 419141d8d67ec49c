package testutil

import (
	"context"
	"time"

	"wordlens/internal/domain"
	"wordlens/internal/provider/datamuse"
	"wordlens/internal/provider/pixabay"

	"github.com/stretchr/testify/mock"
)

// MockImageCacheRepository is a mock for ImageCacheRepository
type MockImageCacheRepository struct {
	mock.Mock
}

func (m *MockImageCacheRepository) GetFresh(ctx context.Context, word string, maxAge time.Duration) (*domain.ImageSearch, error) {
	args := m.Called(ctx, word, maxAge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImageSearch), args.Error(1)
}

func (m *MockImageCacheRepository) Save(ctx context.Context, search *domain.ImageSearch) error {
	args := m.Called(ctx, search)
	return args.Error(0)
}

func (m *MockImageCacheRepository) CleanStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	args := m.Called(ctx, maxAge)
	return args.Get(0).(int64), args.Error(1)
}

// MockImageSearcher is a mock for the upstream image search
type MockImageSearcher struct {
	mock.Mock
}

func (m *MockImageSearcher) Search(ctx context.Context, word string) (*pixabay.Response, error) {
	args := m.Called(ctx, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pixabay.Response), args.Error(1)
}

// MockImageLoader is a mock for ImageLoader
type MockImageLoader struct {
	mock.Mock
}

func (m *MockImageLoader) Load(ctx context.Context, url string, priority domain.ImagePriority) error {
	args := m.Called(ctx, url, priority)
	return args.Error(0)
}

// MockDictionary is a mock for DictionaryProvider
type MockDictionary struct {
	mock.Mock
}

func (m *MockDictionary) Lookup(ctx context.Context, word string) (*domain.DefinitionRecord, domain.MissReason, error) {
	args := m.Called(ctx, word)
	var rec *domain.DefinitionRecord
	if v := args.Get(0); v != nil {
		rec = v.(*domain.DefinitionRecord)
	}
	return rec, args.Get(1).(domain.MissReason), args.Error(2)
}

// MockThesaurus is a mock for ThesaurusProvider
type MockThesaurus struct {
	mock.Mock
}

func (m *MockThesaurus) Related(ctx context.Context, word string, rel datamuse.Relation) ([]string, error) {
	args := m.Called(ctx, word, rel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockImageProvider is a mock for ImageProvider
type MockImageProvider struct {
	mock.Mock
}

func (m *MockImageProvider) Images(ctx context.Context, word string) ([]string, error) {
	args := m.Called(ctx, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
