package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/timmy/newsdeck/internal/domain"
	"github.com/timmy/newsdeck/internal/logger"
	"github.com/timmy/newsdeck/internal/source"
)

// NewsWriter is the write side of the news repository.
type NewsWriter interface {
	Upsert(ctx context.Context, items []domain.NewsItem) error
}

// IngestService copies items from a Source into the news store.
type IngestService struct {
	writer    NewsWriter
	validate  *validator.Validate
	batchSize int
}

// IngestStats holds statistics for an ingestion run.
type IngestStats struct {
	TotalItems   int
	StoredItems  int
	InvalidItems int
	StartTime    time.Time
	EndTime      time.Time
}

// NewIngestService creates a new ingest service.
func NewIngestService(writer NewsWriter, batchSize int) *IngestService {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &IngestService{
		writer:    writer,
		validate:  validator.New(),
		batchSize: batchSize,
	}
}

// ItemID derives a stable item ID from the source identity, so re-ingesting
// the same manifest keeps IDs unchanged.
func ItemID(sourceType, sourceID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(sourceType+":"+sourceID)).String()
}

// IngestFromSource reads up to limit items (0 means all) from src and upserts
// the valid ones. Invalid items are logged and counted, not fatal.
func (s *IngestService) IngestFromSource(ctx context.Context, src source.Source, limit int) (*IngestStats, error) {
	stats := &IngestStats{StartTime: time.Now()}
	ctx = logger.SetComponent(ctx, "ingest")
	ctx = logger.WithField(ctx, logger.FieldSource, src.GetSourceID())
	logger.CtxInfo(ctx, "Starting ingestion: limit=%d", limit)

	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		batchLimit := s.batchSize
		if limit > 0 {
			remaining := limit - stats.TotalItems
			if remaining <= 0 {
				break
			}
			if batchLimit > remaining {
				batchLimit = remaining
			}
		}

		items, nextCursor, err := src.FetchBatch(ctx, cursor, batchLimit)
		if err != nil {
			return stats, fmt.Errorf("failed to fetch batch at cursor %q: %w", cursor, err)
		}
		if len(items) == 0 {
			break
		}
		stats.TotalItems += len(items)

		batch := make([]domain.NewsItem, 0, len(items))
		for _, it := range items {
			record := domain.NewsItem{
				ID:          ItemID(src.GetSourceID(), it.SourceID),
				SourceType:  src.GetSourceID(),
				SourceID:    it.SourceID,
				Title:       it.Title,
				Summary:     it.Summary,
				URL:         it.URL,
				ImageURL:    it.ImageURL,
				Category:    it.Category,
				PublishedAt: it.PublishedAt,
			}
			if err := s.validate.Struct(&record); err != nil {
				stats.InvalidItems++
				logger.FromContext(ctx).WithField("source_id", it.SourceID).WithError(err).Warn("Skipping invalid item")
				continue
			}
			batch = append(batch, record)
		}

		if err := s.writer.Upsert(ctx, batch); err != nil {
			return stats, fmt.Errorf("failed to store batch: %w", err)
		}
		stats.StoredItems += len(batch)

		if nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	stats.EndTime = time.Now()
	logger.With(logger.Fields{
		"total":   stats.TotalItems,
		"stored":  stats.StoredItems,
		"invalid": stats.InvalidItems,
	}).WithDuration(stats.EndTime.Sub(stats.StartTime).Milliseconds()).Info(ctx, "Ingestion completed")

	return stats, nil
}
