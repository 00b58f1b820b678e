// Package deck is a headless slide deck: an ordered list of news slides with
// an active index and position-changed notifications. Rendering is left to
// whoever hosts it.
package deck

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/timmy/newsdeck/internal/domain"
)

const (
	Horizontal = "horizontal"
	Vertical   = "vertical"
)

// Options mirror the carousel widget settings the deck honours.
type Options struct {
	Direction            string
	Loop                 bool
	AutoplayDelay        time.Duration
	DisableOnInteraction bool
	Keyboard             bool
}

// DefaultOptions returns the settings used by the reader when none are configured.
func DefaultOptions() Options {
	return Options{
		Direction:     Horizontal,
		AutoplayDelay: 3 * time.Second,
		Keyboard:      true,
	}
}

// Slide is one entry of the deck.
type Slide struct {
	Item    domain.NewsItem
	Loading bool
}

// Content is the text shown for the slide.
func (s Slide) Content() string {
	if s.Loading {
		return "Loading..."
	}
	return s.Item.Content()
}

// Deck is safe for concurrent use. Listeners run outside the lock.
type Deck struct {
	mu         sync.Mutex
	opts       Options
	slides     []Slide // content slides only
	loading    bool
	active     int
	interacted bool
	listeners  map[int]func(index, total int)
	nextID     int
}

// New creates an empty deck.
func New(opts Options) *Deck {
	if opts.Direction == "" {
		opts.Direction = Horizontal
	}
	return &Deck{
		opts:      opts,
		listeners: make(map[int]func(int, int)),
	}
}

// Options returns the deck's effective options.
func (d *Deck) Options() Options {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opts
}

// OnPositionChanged registers fn to be called with the active index and the
// number of content slides after every navigation and every append.
// Subscribing turns looping off: content is loaded dynamically and
// wrapping around would skip past the end of it.
func (d *Deck) OnPositionChanged(fn func(index, total int)) (unsubscribe func()) {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	d.opts.Loop = false
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.listeners, id)
			d.mu.Unlock()
		})
	}
}

// AppendItem adds a slide for item after the existing content slides.
func (d *Deck) AppendItem(item domain.NewsItem) {
	d.mu.Lock()
	d.slides = append(d.slides, Slide{Item: item})
	d.emitLocked()
}

// ShowLoading adds a trailing loading slide if none is shown.
func (d *Deck) ShowLoading() {
	d.mu.Lock()
	d.loading = true
	d.mu.Unlock()
}

// HideLoading removes the loading slide.
func (d *Deck) HideLoading() {
	d.mu.Lock()
	d.loading = false
	d.mu.Unlock()
}

// Loading reports whether the loading slide is shown.
func (d *Deck) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Len returns the number of content slides.
func (d *Deck) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.slides)
}

// Slides returns the visible slides, including the loading slide if shown.
func (d *Deck) Slides() []Slide {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Slide, len(d.slides), len(d.slides)+1)
	copy(out, d.slides)
	if d.loading {
		out = append(out, Slide{Loading: true})
	}
	return out
}

// Active returns the active index and slide. ok is false on an empty deck.
func (d *Deck) Active() (index int, slide Slide, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.slides) == 0 {
		if d.loading {
			return 0, Slide{Loading: true}, false
		}
		return 0, Slide{}, false
	}
	return d.active, d.slides[d.active], true
}

// Next moves to the following slide, wrapping when looping. It reports
// whether the active index changed.
func (d *Deck) Next() bool { return d.step(1, true) }

// Prev moves to the preceding slide, wrapping when looping.
func (d *Deck) Prev() bool { return d.step(-1, true) }

// GoTo activates slide i.
func (d *Deck) GoTo(i int) bool {
	d.mu.Lock()
	if i < 0 || i >= len(d.slides) || i == d.active {
		d.mu.Unlock()
		return false
	}
	d.active = i
	d.interacted = true
	d.emitLocked()
	return true
}

// Autoplay advances one slide every AutoplayDelay until ctx is done, or
// until the user navigates when DisableOnInteraction is set.
func (d *Deck) Autoplay(ctx context.Context) {
	delay := d.Options().AutoplayDelay
	if delay <= 0 {
		return
	}
	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.mu.Lock()
			stop := d.opts.DisableOnInteraction && d.interacted
			d.mu.Unlock()
			if stop {
				return
			}
			d.step(1, false)
		}
	}
}

func (d *Deck) step(delta int, user bool) bool {
	d.mu.Lock()
	n := len(d.slides)
	if n == 0 {
		d.mu.Unlock()
		return false
	}
	next := d.active + delta
	switch {
	case next >= n && d.opts.Loop:
		next = 0
	case next < 0 && d.opts.Loop:
		next = n - 1
	case next >= n || next < 0:
		d.mu.Unlock()
		return false
	}
	if next == d.active {
		d.mu.Unlock()
		return false
	}
	d.active = next
	if user {
		d.interacted = true
	}
	d.emitLocked()
	return true
}

// emitLocked snapshots the position and listeners, releases d.mu and
// notifies in subscription order.
func (d *Deck) emitLocked() {
	index, total := d.active, len(d.slides)
	ids := make([]int, 0, len(d.listeners))
	for id := range d.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(int, int), len(ids))
	for i, id := range ids {
		fns[i] = d.listeners[id]
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn(index, total)
	}
}
