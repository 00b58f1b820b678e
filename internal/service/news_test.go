package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/newsdeck/internal/domain"
)

type fakeStore struct {
	limit, offset int
	calls         int
}

func (f *fakeStore) List(_ context.Context, limit, offset int) ([]domain.NewsItem, error) {
	f.calls++
	f.limit, f.offset = limit, offset
	return []domain.NewsItem{}, nil
}

func (f *fakeStore) GetByID(context.Context, string) (*domain.NewsItem, error) {
	return nil, domain.ErrNotFound
}

func TestNormalizePage(t *testing.T) {
	s := NewNewsService(&fakeStore{}, &NewsConfig{DefaultLimit: 10, MaxLimit: 50})

	testCases := []struct {
		name                  string
		limit, offset         int
		wantLimit, wantOffset int
		wantErr               bool
	}{
		{name: "defaults", limit: 0, offset: 0, wantLimit: 10},
		{name: "passthrough", limit: 20, offset: 40, wantLimit: 20, wantOffset: 40},
		{name: "clamped", limit: 500, offset: 5, wantLimit: 50, wantOffset: 5},
		{name: "negative offset", limit: 10, offset: -1, wantErr: true},
		{name: "negative limit", limit: -1, offset: 0, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset, err := s.NormalizePage(tc.limit, tc.offset)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidPage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}

func TestNewNewsServiceFallbacks(t *testing.T) {
	s := NewNewsService(&fakeStore{}, nil)
	limit, _, err := s.NormalizePage(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, limit)
	limit, _, _ = s.NormalizePage(1000, 0)
	assert.Equal(t, 100, limit)
}

func TestListNewsPassesNormalizedWindow(t *testing.T) {
	store := &fakeStore{}
	s := NewNewsService(store, nil)

	items, err := s.ListNews(context.Background(), 0, 30)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 10, store.limit)
	assert.Equal(t, 30, store.offset)

	_, err = s.ListNews(context.Background(), 5, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidPage)
	assert.Equal(t, 1, store.calls)
}

func TestGetNewsNotFound(t *testing.T) {
	s := NewNewsService(&fakeStore{}, nil)
	_, err := s.GetNews(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
