package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/timmy/newsdeck/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewsRepository handles news item persistence.
type NewsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new NewsRepository.
func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// List returns one page of items, newest first. Ties on published_at are
// broken by id so that a given offset/limit pair always yields the same items.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum number of records to return.
//   - offset: number of records to skip.
// Returns:
//   - []domain.NewsItem: page of items, empty past the end.
//   - error: non-nil if the query fails.
func (r *NewsRepository) List(ctx context.Context, limit, offset int) ([]domain.NewsItem, error) {
	items := []domain.NewsItem{}
	if err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "published_at"}, Desc: true}).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list news items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a news item by its ID.
func (r *NewsRepository) GetByID(ctx context.Context, id string) (*domain.NewsItem, error) {
	var item domain.NewsItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Upsert creates or updates items keyed by (source_type, source_id).
func (r *NewsRepository) Upsert(ctx context.Context, items []domain.NewsItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_type"}, {Name: "source_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "summary", "url", "image_url", "category", "published_at", "updated_at"}),
	}).Create(&items).Error
}

// Count returns the number of stored items.
func (r *NewsRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.NewsItem{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
