package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/newsdeck/internal/config"
	"github.com/timmy/newsdeck/internal/domain"
)

func newTestRepo(t *testing.T) *NewsRepository {
	t.Helper()
	db, err := InitDB(&config.DatabaseConfig{
		Driver:      "sqlite",
		Path:        fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewNewsRepository(db)
}

func seed(t *testing.T, r *NewsRepository, n int) {
	t.Helper()
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	items := make([]domain.NewsItem, n)
	for i := range items {
		published := base.Add(time.Duration(i) * time.Hour)
		items[i] = domain.NewsItem{
			ID:          fmt.Sprintf("id-%03d", i),
			SourceType:  "test",
			SourceID:    fmt.Sprintf("src-%03d", i),
			Title:       fmt.Sprintf("news %d", i),
			PublishedAt: &published,
		}
	}
	require.NoError(t, r.Upsert(context.Background(), items))
}

func TestListPagesNewestFirst(t *testing.T) {
	r := newTestRepo(t)
	seed(t, r, 25)
	ctx := context.Background()

	first, err := r.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, "news 24", first[0].Title)
	assert.Equal(t, "news 15", first[9].Title)

	second, err := r.List(ctx, 10, 10)
	require.NoError(t, err)
	require.Len(t, second, 10)
	assert.Equal(t, "news 14", second[0].Title)

	last, err := r.List(ctx, 10, 20)
	require.NoError(t, err)
	assert.Len(t, last, 5)

	past, err := r.List(ctx, 10, 30)
	require.NoError(t, err)
	assert.NotNil(t, past)
	assert.Empty(t, past)
}

func TestListIsStableForSameWindow(t *testing.T) {
	r := newTestRepo(t)
	seed(t, r, 12)
	ctx := context.Background()

	a, err := r.List(ctx, 5, 5)
	require.NoError(t, err)
	b, err := r.List(ctx, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestUpsertUpdatesExisting(t *testing.T) {
	r := newTestRepo(t)
	seed(t, r, 3)
	ctx := context.Background()

	updated := domain.NewsItem{ID: "id-001", SourceType: "test", SourceID: "src-001", Title: "renamed"}
	require.NoError(t, r.Upsert(ctx, []domain.NewsItem{updated}))

	count, err := r.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	item, err := r.GetByID(ctx, "id-001")
	require.NoError(t, err)
	assert.Equal(t, "renamed", item.Title)
}

func TestGetByIDNotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
