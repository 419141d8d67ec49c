package postgres

import (
	"context"
	"database/sql"
	"time"

	"wordlens/internal/domain"
)

// ImageCacheRepo implements repository.ImageCacheRepository
type ImageCacheRepo struct {
	db *sql.DB
}

// NewImageCacheRepo creates a new image cache repository
func NewImageCacheRepo(db *sql.DB) *ImageCacheRepo {
	return &ImageCacheRepo{db: db}
}

// GetFresh returns the cached payload if it is younger than maxAge
func (r *ImageCacheRepo) GetFresh(ctx context.Context, word string, maxAge time.Duration) (*domain.ImageSearch, error) {
	query := `
		SELECT word, payload, fetched_at
		FROM image_searches
		WHERE word = $1
			AND fetched_at > NOW() - INTERVAL '1 second' * $2
	`

	var s domain.ImageSearch
	err := r.db.QueryRowContext(ctx, query, word, int64(maxAge.Seconds())).Scan(&s.Word, &s.Payload, &s.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save inserts or refreshes the payload for a word
func (r *ImageCacheRepo) Save(ctx context.Context, search *domain.ImageSearch) error {
	query := `
		INSERT INTO image_searches (word, payload, fetched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (word)
		DO UPDATE SET payload = EXCLUDED.payload, fetched_at = EXCLUDED.fetched_at
	`
	_, err := r.db.ExecContext(ctx, query, search.Word, search.Payload, search.FetchedAt)
	return err
}

// CleanStale deletes payloads older than maxAge
func (r *ImageCacheRepo) CleanStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	query := `
		DELETE FROM image_searches
		WHERE fetched_at < NOW() - INTERVAL '1 second' * $1
	`
	res, err := r.db.ExecContext(ctx, query, int64(maxAge.Seconds()))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
