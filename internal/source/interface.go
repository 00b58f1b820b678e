package source

import (
	"context"
	"time"
)

// NewsEntry is a news item as a source describes it, before it is given a
// stable ID and stored.
type NewsEntry struct {
	SourceID    string // Unique ID within the source
	Title       string
	Summary     string
	URL         string
	ImageURL    string
	Category    string
	PublishedAt *time.Time
}

// Source defines the interface for news data sources.
type Source interface {
	// GetSourceID returns the unique identifier for this source.
	GetSourceID() string

	// GetDisplayName returns a human-readable name for this source.
	GetDisplayName() string

	// FetchBatch fetches a batch of entries starting from the given cursor.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	//   - cursor: pagination cursor or empty for first page.
	//   - limit: maximum number of entries to fetch.
	// Returns:
	//   - items: batch of entries.
	//   - nextCursor: cursor for the next batch or empty if done.
	//   - err: non-nil if fetching fails.
	FetchBatch(ctx context.Context, cursor string, limit int) (items []NewsEntry, nextCursor string, err error)
}
