package reviewcache

import (
	"context"
	"log/slog"

	"moviematch/internal/logging"
	"moviematch/internal/services/imdb"
)

// Source fetches reviews for a catalog id.
type Source interface {
	FetchReviews(ctx context.Context, catalogID string) ([]imdb.Review, error)
}

// CachedSource wraps a Source with the review cache: hits skip the
// network, misses are fetched and stored.
type CachedSource struct {
	source Source
	store  *Store
	logger *slog.Logger
}

// NewCachedSource wraps source with the given store.
func NewCachedSource(source Source, store *Store, logger *slog.Logger) *CachedSource {
	return &CachedSource{
		source: source,
		store:  store,
		logger: logging.NewComponentLogger(logger, "reviewcache"),
	}
}

// FetchReviews returns cached reviews when available, fetching and
// caching them otherwise. Cache failures are logged, not fatal.
func (c *CachedSource) FetchReviews(ctx context.Context, catalogID string) ([]imdb.Review, error) {
	cached, found, err := c.store.Lookup(ctx, catalogID)
	if err != nil {
		c.logger.Warn("review cache lookup failed", logging.String("catalog_id", catalogID), logging.Error(err))
	} else if found {
		c.logger.Debug("review cache hit", logging.String("catalog_id", catalogID), logging.Int("reviews", len(cached)))
		return cached, nil
	}

	reviews, err := c.source.FetchReviews(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	if err := c.store.Save(ctx, catalogID, reviews); err != nil {
		c.logger.Warn("review cache save failed", logging.String("catalog_id", catalogID), logging.Error(err))
	}
	return reviews, nil
}
