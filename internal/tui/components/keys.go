package components

import "github.com/charmbracelet/bubbles/key"

// ListKeyMap defines cursor bindings shared by the result and favorites lists
type ListKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Home key.Binding
	End  key.Binding
}

// DefaultListKeyMap returns the default list bindings
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
	}
}

// FilterKeyMap defines bindings active while a filter input has focus
type FilterKeyMap struct {
	Accept key.Binding
	Cancel key.Binding
}

// DefaultFilterKeyMap returns the default filter bindings
func DefaultFilterKeyMap() FilterKeyMap {
	return FilterKeyMap{
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply filter"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
	}
}
