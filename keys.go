package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Back       key.Binding
	Enter      key.Binding
	Delete     key.Binding
	Rename     key.Binding
	Mkdir      key.Binding
	Copy       key.Binding
	Paste      key.Binding
	Move       key.Binding
	Find       key.Binding
	GoTo       key.Binding
	Info       key.Binding
	Compress   key.Binding
	Decompress key.Binding
	Preview    key.Binding
	Open       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Back:       key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "parent directory")),
		Enter:      key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "enter directory")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Rename:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Mkdir:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new directory")),
		Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Paste:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "paste")),
		Move:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move copied entry")),
		Find:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "find")),
		GoTo:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to path")),
		Info:       key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "file info")),
		Compress:   key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "compress")),
		Decompress: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "decompress")),
		Preview:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open with default app")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Preview, k.Copy, k.Paste, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Back, k.Enter, k.GoTo, k.Find},
		{k.Copy, k.Paste, k.Move, k.Rename, k.Mkdir, k.Delete},
		{k.Compress, k.Decompress, k.Preview, k.Info, k.Open, k.Help, k.Quit},
	}
}
