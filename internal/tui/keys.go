package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	send     key.Binding
	quit     key.Binding
	pageUp   key.Binding
	pageDown key.Binding
}

var keys = keyMap{
	send:     key.NewBinding(key.WithKeys("enter")),
	quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc")),
	pageUp:   key.NewBinding(key.WithKeys("pgup")),
	pageDown: key.NewBinding(key.WithKeys("pgdown")),
}
