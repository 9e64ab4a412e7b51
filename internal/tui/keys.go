package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Submit key.Binding
	Back   key.Binding
}

var keys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous option")),
	Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "generate")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to form")),
}
