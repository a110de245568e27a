package review

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	NextFile key.Binding
	PrevFile key.Binding
	Accept   key.Binding
	Reject   key.Binding
	Clear    key.Binding
	Pane     key.Binding
	Errors   key.Binding
	Warnings key.Binding
	Open     key.Binding
	All      key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next finding")),
		Prev:     key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "previous finding")),
		NextFile: key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next file")),
		PrevFile: key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous file")),
		Accept:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accept")),
		Reject:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reject")),
		Clear:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo decision")),
		Pane:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Errors:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "errors only")),
		Warnings: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warnings+")),
		Open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "unreviewed")),
		All:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "all findings")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "save and quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Accept, k.Reject, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.NextFile, k.PrevFile},
		{k.Accept, k.Reject, k.Clear, k.Pane},
		{k.Errors, k.Warnings, k.Open, k.All},
		{k.Help, k.Quit},
	}
}
