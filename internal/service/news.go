package service

import (
	"context"
	"fmt"

	"github.com/timmy/newsdeck/internal/domain"
	"github.com/timmy/newsdeck/internal/logger"
)

// NewsStore is the read side of the news repository.
type NewsStore interface {
	List(ctx context.Context, limit, offset int) ([]domain.NewsItem, error)
	GetByID(ctx context.Context, id string) (*domain.NewsItem, error)
}

// NewsConfig bounds page sizes.
type NewsConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// NewsService serves pages of the news collection.
type NewsService struct {
	store        NewsStore
	defaultLimit int
	maxLimit     int
}

// NewNewsService creates a news service.
// Parameters:
//   - store: repository the pages are read from.
//   - cfg: page size bounds; zero values fall back to 10 and 100.
// Returns:
//   - *NewsService: initialized service.
func NewNewsService(store NewsStore, cfg *NewsConfig) *NewsService {
	s := &NewsService{store: store, defaultLimit: 10, maxLimit: 100}
	if cfg != nil {
		if cfg.DefaultLimit > 0 {
			s.defaultLimit = cfg.DefaultLimit
		}
		if cfg.MaxLimit > 0 {
			s.maxLimit = cfg.MaxLimit
		}
	}
	return s
}

// NormalizePage applies the default limit when limit is zero and clamps it
// to the maximum. Negative values are rejected with domain.ErrInvalidPage.
func (s *NewsService) NormalizePage(limit, offset int) (int, int, error) {
	if offset < 0 || limit < 0 {
		return 0, 0, fmt.Errorf("%w: offset=%d limit=%d", domain.ErrInvalidPage, offset, limit)
	}
	if limit == 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	return limit, offset, nil
}

// ListNews returns the items in the window [offset, offset+limit).
func (s *NewsService) ListNews(ctx context.Context, limit, offset int) ([]domain.NewsItem, error) {
	limit, offset, err := s.NormalizePage(limit, offset)
	if err != nil {
		return nil, err
	}

	items, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	logger.With(logger.Fields{
		logger.FieldOffset: offset,
		logger.FieldLimit:  limit,
	}).WithCount(len(items)).Debug(ctx, "Listed news page")
	return items, nil
}

// GetNews returns a single item or domain.ErrNotFound.
func (s *NewsService) GetNews(ctx context.Context, id string) (*domain.NewsItem, error) {
	return s.store.GetByID(ctx, id)
}
