package tui

import tea "github.com/charmbracelet/bubbletea"

// PositionMsg signals that the deck's active slide or slide count changed.
type PositionMsg struct {
	Index int
	Total int
}

// FetchErrMsg carries an error from a fetch the pager started on its own.
type FetchErrMsg struct {
	Err error
}

// fetchDoneMsg reports the result of a fetch the user asked for.
type fetchDoneMsg struct {
	n   int
	err error
}

// Events adapts deck and pager callbacks to a channel for Bubble Tea.
type Events struct {
	ch chan tea.Msg
}

// NewEvents creates an event channel with the given buffer.
func NewEvents(buffer int) *Events {
	return &Events{ch: make(chan tea.Msg, buffer)}
}

// Position is a deck position listener.
func (e *Events) Position(index, total int) {
	e.send(PositionMsg{Index: index, Total: total})
}

// FetchFailed is a pager error handler.
func (e *Events) FetchFailed(err error) {
	e.send(FetchErrMsg{Err: err})
}

// send never blocks; the view reads deck state directly, so a dropped
// position event only delays a redraw.
func (e *Events) send(msg tea.Msg) {
	select {
	case e.ch <- msg:
	default:
	}
}

func (e *Events) wait() tea.Cmd {
	return func() tea.Msg {
		return <-e.ch
	}
}
