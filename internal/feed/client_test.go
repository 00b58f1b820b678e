package feed

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/newsdeck/internal/domain"
	"github.com/timmy/newsdeck/internal/logger"
	"github.com/timmy/newsdeck/internal/pager"
)

var quietLogger = logger.New(&logger.Config{Level: "error", Output: io.Discard})

func newServer(t *testing.T, status int, body string) (*httptest.Server, *[]string) {
	t.Helper()
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &queries
}

func TestFetchPageSuccess(t *testing.T) {
	srv, queries := newServer(t, http.StatusOK,
		`[{"title":"first","url":"https://example.com/1"},{"title":"second","published_at":"2026-10-01T08:00:00Z"}]`)
	c := NewClient(srv.URL+"/api/v1/news", WithLogger(quietLogger))

	items, err := c.FetchPage(context.Background(), pager.Cursor{Offset: 20, Limit: 10})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Title)
	assert.Equal(t, "second", items[1].Title)
	require.NotNil(t, items[1].PublishedAt)
	assert.Equal(t, 2026, items[1].PublishedAt.Year())
	assert.Equal(t, []string{"limit=10&offset=20"}, *queries)
}

func TestFetchPageEmptyArray(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `[]`)
	c := NewClient(srv.URL, WithLogger(quietLogger))

	items, err := c.FetchPage(context.Background(), pager.Cursor{Offset: 0, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestFetchPageHTTPError(t *testing.T) {
	srv, _ := newServer(t, http.StatusServiceUnavailable, `{"error":"down"}`)
	c := NewClient(srv.URL, WithLogger(quietLogger))

	items, err := c.FetchPage(context.Background(), pager.Cursor{Offset: 0, Limit: 10})
	assert.Nil(t, items)
	require.Error(t, err)
	assert.ErrorIs(t, err, pager.ErrTransport)
	assert.NotErrorIs(t, err, pager.ErrDecode)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusServiceUnavailable, te.StatusCode)
	assert.Contains(t, te.Body, "down")
}

func TestFetchPageConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, WithLogger(quietLogger), WithTimeout(time.Second))
	_, err := c.FetchPage(context.Background(), pager.Cursor{Offset: 0, Limit: 10})

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Zero(t, te.StatusCode)
	assert.ErrorIs(t, err, pager.ErrTransport)
}

func TestFetchPageDecodeErrors(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"object instead of array", `{"items":[{"title":"x"}]}`},
		{"null body", `null`},
		{"empty body", ``},
		{"missing title", `[{"title":"ok"},{"summary":"no title"}]`},
		{"wrong title type", `[{"title":42}]`},
		{"empty title", `[{"title":""}]`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusOK, tc.body)
			c := NewClient(srv.URL, WithLogger(quietLogger))

			items, err := c.FetchPage(context.Background(), pager.Cursor{Offset: 0, Limit: 10})
			assert.Nil(t, items)
			assert.ErrorIs(t, err, pager.ErrDecode)

			var de *DecodeError
			assert.True(t, errors.As(err, &de))
		})
	}
}

// Only the title is required on the wire. Relative links, long titles and
// long ids are passed through so one odd item cannot stall the reader.
func TestFetchPageAcceptsLooseOptionalFields(t *testing.T) {
	longTitle := strings.Repeat("x", 600)
	testCases := []struct {
		name string
		body string
		want int
	}{
		{"relative url", `[{"title":"a"},{"title":"b","url":"/news/2"}]`, 2},
		{"long title", `[{"title":"` + longTitle + `"}]`, 1},
		{"scheme-less image url", `[{"title":"a","image_url":"cdn.example.com/x.png"}]`, 1},
		{"long id", `[{"id":"` + strings.Repeat("i", 100) + `","title":"a"}]`, 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusOK, tc.body)
			c := NewClient(srv.URL, WithLogger(quietLogger))

			items, err := c.FetchPage(context.Background(), pager.Cursor{Offset: 0, Limit: 10})
			require.NoError(t, err)
			assert.Len(t, items, tc.want)
		})
	}
}

func TestFetchPageRejectsInvalidCursor(t *testing.T) {
	srv, queries := newServer(t, http.StatusOK, `[]`)
	c := NewClient(srv.URL, WithLogger(quietLogger))

	_, err := c.FetchPage(context.Background(), pager.Cursor{Offset: -1, Limit: 10})
	assert.ErrorIs(t, err, pager.ErrInvalidCursor)
	_, err = c.FetchPage(context.Background(), pager.Cursor{Offset: 0, Limit: 0})
	assert.ErrorIs(t, err, pager.ErrInvalidCursor)
	assert.Empty(t, *queries)
}

func TestFetchPageSendsUserAgent(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithLogger(quietLogger), WithUserAgent("newsdeck-test"), WithHTTPClient(srv.Client()))
	_, err := c.FetchPage(context.Background(), pager.Cursor{Offset: 0, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, "newsdeck-test", ua)
}

// Scenario: the pager driven by the real client against a failing server.
func TestPagerWithClientKeepsCursorOnHTTPError(t *testing.T) {
	srv, _ := newServer(t, http.StatusInternalServerError, `boom`)
	c := NewClient(srv.URL, WithLogger(quietLogger))

	surface := &countingSurface{}
	p, err := pager.New(c, surface, 10, pager.WithLogger(quietLogger))
	require.NoError(t, err)
	defer p.Close()

	_, err = p.FetchNext(context.Background())
	assert.ErrorIs(t, err, pager.ErrTransport)
	assert.Equal(t, pager.Cursor{Offset: 0, Limit: 10}, p.Cursor())
	assert.Zero(t, surface.n)
}

type countingSurface struct{ n int }

func (s *countingSurface) AppendItem(domain.NewsItem) { s.n++ }
