package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Start    key.Binding
	Stop     key.Binding
	Rotate   key.Binding
	Reset    key.Binding
	Interval key.Binding
	ClearLog key.Binding
	Theme    key.Binding
	Enter    key.Binding
	Escape   key.Binding
	Quit     key.Binding
	Help     key.Binding
}

// DefaultKeyMap provides the default set of key bindings.
var DefaultKeyMap = KeyMap{
	Start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
	Stop:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
	Rotate:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rotate now")),
	Reset:    key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "reset")),
	Interval: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "interval")),
	ClearLog: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear log")),
	Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "next theme")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}
