package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// Views
	ViewAll    key.Binding
	ViewUnsold key.Binding
	ViewSold   key.Binding
	CycleView  key.Binding

	// Actions
	Fetch       key.Binding
	Edit        key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Search      key.Binding
	Period      key.Binding
	PageSize    key.Binding
	ToggleTheme key.Binding

	// Application
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "next page"),
		),

		ViewAll: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "transaksi"),
		),
		ViewUnsold: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "belum laku"),
		),
		ViewSold: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "sudah laku"),
		),
		CycleView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "cycle views"),
		),

		Fetch: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "load data"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e/Enter", "edit sale price"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Period: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "change period"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "page size"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dark/light"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fetch, k.Edit, k.Search, k.Period, k.CycleView, k.Quit}
}
