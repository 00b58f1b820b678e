package deck

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/newsdeck/internal/domain"
	"github.com/timmy/newsdeck/internal/logger"
	"github.com/timmy/newsdeck/internal/pager"
)

func fill(d *Deck, n int) {
	for i := 0; i < n; i++ {
		d.AppendItem(domain.NewsItem{Title: fmt.Sprintf("news %d", i)})
	}
}

type positions struct {
	mu  sync.Mutex
	got [][2]int
}

func (p *positions) record(index, total int) {
	p.mu.Lock()
	p.got = append(p.got, [2]int{index, total})
	p.mu.Unlock()
}

func (p *positions) last() [2]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.got[len(p.got)-1]
}

func TestNavigationWithoutLoop(t *testing.T) {
	d := New(DefaultOptions())
	fill(d, 3)

	assert.False(t, d.Prev())
	assert.True(t, d.Next())
	assert.True(t, d.Next())
	assert.False(t, d.Next())

	index, slide, ok := d.Active()
	require.True(t, ok)
	assert.Equal(t, 2, index)
	assert.Equal(t, "news 2", slide.Content())
}

func TestNavigationWithLoop(t *testing.T) {
	opts := DefaultOptions()
	opts.Loop = true
	d := New(opts)
	fill(d, 3)

	assert.True(t, d.Prev())
	index, _, _ := d.Active()
	assert.Equal(t, 2, index)

	assert.True(t, d.Next())
	index, _, _ = d.Active()
	assert.Equal(t, 0, index)
}

func TestSubscribingDisablesLoop(t *testing.T) {
	opts := DefaultOptions()
	opts.Loop = true
	d := New(opts)

	unsubscribe := d.OnPositionChanged(func(int, int) {})
	defer unsubscribe()

	assert.False(t, d.Options().Loop)
}

func TestPositionEvents(t *testing.T) {
	d := New(DefaultOptions())
	var p positions
	unsubscribe := d.OnPositionChanged(p.record)

	fill(d, 2)
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}}, p.got)

	d.Next()
	assert.Equal(t, [2]int{1, 2}, p.last())

	assert.True(t, d.GoTo(0))
	assert.False(t, d.GoTo(0))
	assert.False(t, d.GoTo(5))
	assert.Equal(t, [2]int{0, 2}, p.last())

	unsubscribe()
	unsubscribe()
	d.Next()
	assert.Len(t, p.got, 4)
}

func TestLoadingSlide(t *testing.T) {
	d := New(DefaultOptions())

	d.ShowLoading()
	_, slide, ok := d.Active()
	assert.False(t, ok)
	assert.True(t, slide.Loading)
	assert.Equal(t, "Loading...", slide.Content())

	fill(d, 1)
	slides := d.Slides()
	require.Len(t, slides, 2)
	assert.Equal(t, "news 0", slides[0].Content())
	assert.True(t, slides[1].Loading)
	assert.Equal(t, 1, d.Len())

	d.HideLoading()
	assert.False(t, d.Loading())
	assert.Len(t, d.Slides(), 1)
}

func TestAutoplayAdvances(t *testing.T) {
	opts := DefaultOptions()
	opts.AutoplayDelay = 5 * time.Millisecond
	d := New(opts)
	fill(d, 3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Autoplay(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		index, _, _ := d.Active()
		return index == 2
	}, time.Second, time.Millisecond)

	cancel()
	<-done
}

func TestAutoplayStopsOnInteraction(t *testing.T) {
	opts := DefaultOptions()
	opts.AutoplayDelay = 5 * time.Millisecond
	opts.DisableOnInteraction = true
	d := New(opts)
	fill(d, 10)
	d.Next()

	done := make(chan struct{})
	go func() {
		d.Autoplay(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("autoplay kept running after interaction")
	}
	index, _, _ := d.Active()
	assert.Equal(t, 1, index)
}

// The deck as the pager's surface: swiping towards the end loads the next page.
func TestDeckDrivesPager(t *testing.T) {
	quiet := logger.New(&logger.Config{Level: "error", Output: io.Discard})
	f := &seqFetcher{total: 30}
	d := New(DefaultOptions())

	p, err := pager.New(f, d, 10, pager.WithLogger(quiet))
	require.NoError(t, err)
	defer p.Close()
	p.Bind(context.Background(), d)

	_, err = p.FetchNext(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, d.Len())
	assert.False(t, d.Loading())

	// index 1 is below 10-8, index 2 reaches the threshold
	d.Next()
	assert.Equal(t, 10, d.Len())
	d.Next()
	require.Eventually(t, func() bool { return d.Len() == 20 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return p.State() == pager.Idle }, time.Second, time.Millisecond)

	slides := d.Slides()
	for i, s := range slides {
		assert.Equal(t, fmt.Sprintf("news %d", i), s.Content())
	}
	assert.Equal(t, pager.Cursor{Offset: 20, Limit: 10}, p.Cursor())
}

type seqFetcher struct {
	total int
}

func (f *seqFetcher) FetchPage(_ context.Context, c pager.Cursor) ([]domain.NewsItem, error) {
	var items []domain.NewsItem
	for i := c.Offset; i < c.Offset+c.Limit && i < f.total; i++ {
		items = append(items, domain.NewsItem{Title: fmt.Sprintf("news %d", i)})
	}
	return items, nil
}
