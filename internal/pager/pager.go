// Package pager loads a paginated news collection into a presentation
// surface, one page at a time, as the viewer approaches the end of what is
// already loaded.
package pager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/timmy/newsdeck/internal/domain"
	"github.com/timmy/newsdeck/internal/logger"
)

// Fetcher retrieves one page of items in server order.
type Fetcher interface {
	FetchPage(ctx context.Context, cursor Cursor) ([]domain.NewsItem, error)
}

// Surface receives fetched items. The pager only appends to it.
type Surface interface {
	AppendItem(item domain.NewsItem)
}

// LoadingIndicator is implemented by surfaces that can show a placeholder
// while a page is being fetched.
type LoadingIndicator interface {
	ShowLoading()
	HideLoading()
}

// PositionNotifier emits position-changed events with the current index and
// the number of loaded slides. The returned func stops the subscription.
type PositionNotifier interface {
	OnPositionChanged(fn func(index, total int)) (unsubscribe func())
}

// State is the pager's fetch state.
type State int

const (
	Idle State = iota
	Fetching
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Option customizes a Pager at construction time.
type Option func(*Pager)

// WithThreshold sets how many slides before the end a prefetch is triggered.
// It must be at least 1: the active index never reaches the slide count.
func WithThreshold(n int) Option { return func(p *Pager) { p.threshold = n } }

// WithOffset sets the offset of the first page.
func WithOffset(offset int) Option { return func(p *Pager) { p.cursor.Offset = offset } }

// WithTimeout bounds each fetch. Zero means no timeout beyond the caller's context.
func WithTimeout(d time.Duration) Option { return func(p *Pager) { p.timeout = d } }

// WithErrorHandler receives errors from fetches started by position events.
func WithErrorHandler(fn func(error)) Option { return func(p *Pager) { p.onError = fn } }

// WithLogger sets the logger used for fetch reporting.
func WithLogger(l *logger.Logger) Option { return func(p *Pager) { p.log = l } }

// Pager owns the cursor and the fetch gate for one hosting view.
type Pager struct {
	fetcher   Fetcher
	surface   Surface
	threshold int
	timeout   time.Duration
	onError   func(error)
	log       *logger.Logger

	mu          sync.Mutex
	cursor      Cursor
	state       State
	exhausted   bool
	closed      bool
	cancel      context.CancelFunc
	unsubscribe func()
	wg          sync.WaitGroup
}

// New creates an Idle pager that reads pages of limit items from fetcher
// and appends them to surface.
func New(fetcher Fetcher, surface Surface, limit int, opts ...Option) (*Pager, error) {
	if fetcher == nil || surface == nil {
		return nil, errors.New("pager: fetcher and surface are required")
	}
	p := &Pager{
		fetcher:   fetcher,
		surface:   surface,
		threshold: DefaultThreshold,
		cursor:    Cursor{Limit: limit},
	}
	for _, opt := range opts {
		opt(p)
	}
	if !p.cursor.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCursor, p.cursor)
	}
	if p.threshold < 1 {
		return nil, fmt.Errorf("pager: threshold %d, want at least 1", p.threshold)
	}
	if p.log == nil {
		p.log = logger.GetDefault()
	}
	p.log = p.log.WithField(logger.FieldComponent, "pager")
	return p, nil
}

// Cursor returns the cursor of the next page to fetch.
func (p *Pager) Cursor() Cursor {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// State returns Idle or Fetching.
func (p *Pager) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Exhausted reports whether the last successful fetch returned no items.
// While exhausted, position events do not trigger fetches.
func (p *Pager) Exhausted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exhausted
}

// Resume clears the exhausted flag so position events fetch again.
func (p *Pager) Resume() {
	p.mu.Lock()
	p.exhausted = false
	p.mu.Unlock()
}

// FetchNext fetches the page at the current cursor, appends its items and
// advances the cursor. It blocks until the fetch completes and returns the
// number of items appended. It returns ErrBusy if a fetch is in flight.
func (p *Pager) FetchNext(ctx context.Context) (int, error) {
	cur, fctx, err := p.begin(ctx, false)
	if err != nil {
		return 0, err
	}
	defer p.wg.Done()
	return p.run(fctx, cur)
}

// OnNearEndOfContent handles a position-changed event. When the position is
// within the threshold of the end and no fetch is in flight, it starts one
// fetch in the background and returns true. Events arriving while Fetching
// are ignored.
func (p *Pager) OnNearEndOfContent(ctx context.Context, currentIndex, totalCount int) bool {
	if !NearEnd(currentIndex, totalCount, p.threshold) {
		return false
	}
	cur, fctx, err := p.begin(ctx, true)
	if err != nil {
		if !errors.Is(err, errExhausted) {
			p.log.WithError(err).Debugf("near end at %d/%d, not fetching", currentIndex, totalCount)
		}
		return false
	}
	go func() {
		defer p.wg.Done()
		if _, err := p.run(fctx, cur); err != nil && p.onError != nil {
			p.onError(err)
		}
	}()
	return true
}

// Bind subscribes the pager to n's position events. Fetches started by those
// events derive from ctx. Close ends the subscription. Bind on a closed pager
// does nothing.
func (p *Pager) Bind(ctx context.Context, n PositionNotifier) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return
	}

	unsubscribe := n.OnPositionChanged(func(index, total int) {
		p.OnNearEndOfContent(ctx, index, total)
	})

	p.mu.Lock()
	if p.closed {
		// closed while subscribing
		p.mu.Unlock()
		unsubscribe()
		return
	}
	prev := p.unsubscribe
	p.unsubscribe = unsubscribe
	p.mu.Unlock()

	if prev != nil {
		prev()
	}
}

// Close stops listening to position events, cancels the in-flight fetch and
// waits for it to finish. Later fetches fail with ErrClosed.
func (p *Pager) Close() {
	p.mu.Lock()
	p.closed = true
	if p.cancel != nil {
		p.cancel()
	}
	unsubscribe := p.unsubscribe
	p.unsubscribe = nil
	p.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	p.wg.Wait()
}

var errExhausted = errors.New("pager: collection exhausted")

// begin takes the fetch gate. On success the caller owns one wg slot and
// must call run.
func (p *Pager) begin(ctx context.Context, triggered bool) (Cursor, context.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case p.closed:
		return Cursor{}, nil, ErrClosed
	case p.state == Fetching:
		return Cursor{}, nil, ErrBusy
	case triggered && p.exhausted:
		return Cursor{}, nil, errExhausted
	}

	var fctx context.Context
	var cancel context.CancelFunc
	if p.timeout > 0 {
		fctx, cancel = context.WithTimeout(ctx, p.timeout)
	} else {
		fctx, cancel = context.WithCancel(ctx)
	}
	p.state = Fetching
	p.cancel = cancel
	p.wg.Add(1)
	return p.cursor, fctx, nil
}

func (p *Pager) run(ctx context.Context, cur Cursor) (int, error) {
	log := p.log.WithFields(logger.Fields{
		logger.FieldOffset: cur.Offset,
		logger.FieldLimit:  cur.Limit,
	})

	indicator, hasIndicator := p.surface.(LoadingIndicator)
	if hasIndicator {
		indicator.ShowLoading()
	}

	start := time.Now()
	items, err := p.fetcher.FetchPage(ctx, cur)
	if hasIndicator {
		indicator.HideLoading()
	}
	if err != nil {
		p.finish(false, 0)
		log.WithError(err).Errorf("failed to fetch news items")
		return 0, fmt.Errorf("fetch page %s: %w", cur, err)
	}

	for _, item := range items {
		p.surface.AppendItem(item)
	}
	p.finish(true, len(items))

	log.WithFields(logger.Fields{
		logger.FieldCount:      len(items),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Debugf("appended page")
	return len(items), nil
}

// finish releases the gate; the cursor advances only after a successful fetch.
func (p *Pager) finish(ok bool, n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.state = Idle
	if ok {
		p.cursor = Advance(p.cursor)
		p.exhausted = n == 0
	}
}
