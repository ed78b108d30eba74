// Package keys turns terminal key presses into commands for the UI loop.
package keys

import (
	"strings"

	"livefeed/internal/command"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// KeyMap holds the bindings for every command.
type KeyMap struct {
	Quit       key.Binding
	Redraw     key.Binding
	Delete     key.Binding
	Grow       key.Binding
	Shrink     key.Binding
	Timestamps key.Binding
	Links      key.Binding
	Messages   key.Binding
	Cycle      key.Binding
	Copy       key.Binding
	Help       key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^c", "quit")),
		Redraw:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^r", "redraw")),
		Delete:     key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("^d", "delete")),
		Grow:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "wider names")),
		Shrink:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrower names")),
		Timestamps: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timestamps")),
		Links:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "links")),
		Messages:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "messages")),
		Cycle:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "layout")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Links, k.Messages, k.Timestamps, k.Cycle, k.Grow, k.Shrink,
		k.Delete, k.Copy, k.Redraw, k.Quit,
	}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Links, k.Messages, k.Timestamps, k.Cycle},
		{k.Grow, k.Shrink, k.Delete, k.Copy},
		{k.Redraw, k.Help, k.Quit},
	}
}

// HelpText renders the short help as plain text for the status row.
func (k KeyMap) HelpText() string {
	h := help.New()
	h.ShortSeparator = "  "
	return strings.TrimSpace(ansi.Strip(h.ShortHelpView(k.ShortHelp())))
}

// Translate maps one key press to a command. Printable keys always carry
// their rune, bound or not; other unbound keys report false.
func (k KeyMap) Translate(msg tea.KeyMsg) (command.Command, bool) {
	var ch rune
	switch {
	case msg.Alt:
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		ch = msg.Runes[0]
	case msg.Type == tea.KeySpace:
		ch = ' '
	}

	bindings := []struct {
		b    key.Binding
		kind command.Kind
	}{
		{k.Quit, command.Quit},
		{k.Redraw, command.Redraw},
		{k.Delete, command.ToggleDelete},
		{k.Grow, command.GrowColumn},
		{k.Shrink, command.ShrinkColumn},
		{k.Timestamps, command.ToggleTimestamps},
		{k.Links, command.LinksView},
		{k.Messages, command.MessagesView},
		{k.Cycle, command.CycleMode},
		{k.Copy, command.CopyLink},
		{k.Help, command.Help},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.b) {
			return command.Key(b.kind, ch), true
		}
	}
	if ch != 0 {
		return command.Key(command.Char, ch), true
	}
	return command.Command{}, false
}
