// Package tui hosts a deck in the terminal with Bubble Tea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/timmy/newsdeck/internal/deck"
	"github.com/timmy/newsdeck/internal/pager"
)

// Loader is the part of the pager the reader drives directly.
type Loader interface {
	FetchNext(ctx context.Context) (int, error)
	Resume()
	Exhausted() bool
}

const defaultWidth = 72

// Model is the reader's Bubble Tea model. It renders the deck's active slide
// and forwards navigation keys to the deck; the pager bound to the deck
// loads more slides on its own.
type Model struct {
	ctx      context.Context
	deck     *deck.Deck
	loader   Loader
	events   *Events
	keys     KeyMap
	keyboard bool
	spinner  spinner.Model

	width  int
	height int

	status    string
	statusErr bool
}

// NewModel creates the reader model. events must be the sink the deck
// listener and the pager error handler send to.
func NewModel(ctx context.Context, d *deck.Deck, loader Loader, events *Events) Model {
	opts := d.Options()
	return Model{
		ctx:      ctx,
		deck:     d,
		loader:   loader,
		events:   events,
		keys:     DefaultKeyMap(opts.Direction),
		keyboard: opts.Keyboard,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
		width:    defaultWidth,
	}
}

// Init loads the first page and starts listening for deck events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.events.wait(), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case PositionMsg:
		if m.statusErr {
			m.status, m.statusErr = "", false
		}
		return m, m.events.wait()

	case FetchErrMsg:
		m.setError(msg.Err)
		return m, m.events.wait()

	case fetchDoneMsg:
		switch {
		case errors.Is(msg.err, pager.ErrBusy):
			m.status, m.statusErr = "Already loading", false
		case msg.err != nil:
			m.setError(msg.err)
		case msg.n == 0:
			m.status, m.statusErr = "No more news", false
		default:
			m.status, m.statusErr = fmt.Sprintf("Loaded %d more", msg.n), false
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if !m.keyboard {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.deck.Next()
	case key.Matches(msg, m.keys.Prev):
		m.deck.Prev()
	case key.Matches(msg, m.keys.First):
		m.deck.GoTo(0)
	case key.Matches(msg, m.keys.Last):
		m.deck.GoTo(m.deck.Len() - 1)
	case key.Matches(msg, m.keys.Reload):
		m.loader.Resume()
		m.status, m.statusErr = "Loading...", false
		return m, m.fetch()
	}
	return m, nil
}

func (m *Model) setError(err error) {
	switch {
	case errors.Is(err, pager.ErrTransport):
		m.status = "Could not reach the news server: " + err.Error()
	case errors.Is(err, pager.ErrDecode):
		m.status = "The news server sent something unexpected: " + err.Error()
	default:
		m.status = err.Error()
	}
	m.statusErr = true
}

func (m Model) fetch() tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		n, err := loader.FetchNext(ctx)
		return fetchDoneMsg{n: n, err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	index, slide, ok := m.deck.Active()
	total := m.deck.Len()

	header := accentStyle.Bold(true).Render("newsdeck")
	if ok {
		header += dimStyle.Render(fmt.Sprintf("  %d/%d", index+1, total))
	}
	if m.deck.Loading() {
		header += "  " + m.spinner.View()
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	switch {
	case ok:
		b.WriteString(slideStyle.Width(width).Render(renderSlide(slide, width-6)))
	case slide.Loading:
		b.WriteString(loadingSlideStyle.Width(width).Render(m.spinner.View() + " " + slide.Content()))
	default:
		b.WriteString(loadingSlideStyle.Width(width).Render(dimStyle.Render("No news yet")))
	}
	b.WriteString("\n")

	if ok && index == total-1 && m.loader.Exhausted() {
		b.WriteString(dimStyle.Render("End of the feed. Press r to check for more."))
		b.WriteString("\n")
	}
	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(subtitleStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.helpLine())
	return b.String()
}

func (m Model) helpLine() string {
	var parts []string
	for _, binding := range m.keys.help() {
		if !m.keyboard && binding.Help().Key != m.keys.Quit.Help().Key {
			continue
		}
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return dimStyle.Render(strings.Join(parts, " • "))
}

func renderSlide(s deck.Slide, width int) string {
	item := s.Item
	lines := []string{titleStyle.Render(s.Content())}

	var meta []string
	if item.Category != "" {
		meta = append(meta, item.Category)
	}
	if item.PublishedAt != nil {
		meta = append(meta, item.PublishedAt.Local().Format("2006-01-02 15:04"))
	}
	if len(meta) > 0 {
		lines = append(lines, subtitleStyle.Render(strings.Join(meta, " · ")))
	}
	if item.Summary != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(width).Render(item.Summary))
	}
	if item.URL != "" {
		lines = append(lines, "", accentStyle.Render(item.URL))
	}
	return strings.Join(lines, "\n")
}
