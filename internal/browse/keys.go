package browse

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding
	Parent      key.Binding
	Reload      key.Binding
	Layout      key.Binding
	Sort        key.Binding
	Thumbs      key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	GalleryUp   key.Binding
	GalleryDown key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		Open:        key.NewBinding(key.WithKeys("enter", "l"), key.WithHelp("enter", "open")),
		Parent:      key.NewBinding(key.WithKeys("backspace", "h"), key.WithHelp("bksp", "parent")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Layout:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "layout")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Thumbs:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "thumbs")),
		PageUp:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "page size")),
		PageDown:    key.NewBinding(key.WithKeys("-")),
		GalleryUp:   key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "gallery width")),
		GalleryDown: key.NewBinding(key.WithKeys("[")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Open, k.Parent, k.Layout, k.Sort, k.Thumbs, k.PageUp, k.GalleryUp, k.Reload, k.Quit}
}
