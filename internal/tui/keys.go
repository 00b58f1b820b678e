package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/timmy/newsdeck/internal/deck"
)

// KeyMap defines the reader's key bindings.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	First  key.Binding
	Last   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns bindings that follow the deck direction: left/right
// for a horizontal deck, up/down for a vertical one.
func DefaultKeyMap(direction string) KeyMap {
	next := key.NewBinding(key.WithKeys("right", "l", " "), key.WithHelp("→/l", "next"))
	prev := key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev"))
	if direction == deck.Vertical {
		next = key.NewBinding(key.WithKeys("down", "j", " "), key.WithHelp("↓/j", "next"))
		prev = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev"))
	}
	return KeyMap{
		Next: next,
		Prev: prev,
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "load more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) help() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.First, k.Last, k.Reload, k.Quit}
}
