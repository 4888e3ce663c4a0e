package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the live view's bindings. It satisfies help.KeyMap.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Raise     key.Binding
	Lower     key.Binding
	Activate  key.Binding
	Cycle     key.Binding
	Toggle    key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Grow      key.Binding
	Shrink    key.Binding
	Update    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "select up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "select down")),
		Raise:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "raise")),
		Lower:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "lower")),
		Activate:  key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("enter", "activate")),
		Cycle:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "cycle")),
		Toggle:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle compositing")),
		MoveLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "drag left")),
		MoveRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "drag right")),
		MoveUp:    key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("K", "drag up")),
		MoveDown:  key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("J", "drag down")),
		Grow:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "grow")),
		Shrink:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "shrink")),
		Update:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "request update")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Raise, k.Lower, k.Cycle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Activate},
		{k.Raise, k.Lower, k.Cycle, k.Toggle},
		{k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown},
		{k.Grow, k.Shrink, k.Update},
		{k.Help, k.Quit},
	}
}
