package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the list view key bindings.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Actions
	Edit         key.Binding
	New          key.Binding
	Filter       key.Binding
	NextFilter   key.Binding
	ResetFilters key.Binding
	Help         key.Binding
	Quit         key.Binding

	// Sorting
	SortGroup    key.Binding
	SortDate     key.Binding
	SortDuration key.Binding
}

// DefaultKeyMap returns the default list view key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new session"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next filter"),
		),
		ResetFilters: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset filters"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		SortGroup: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "sort group"),
		),
		SortDate: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "sort date"),
		),
		SortDuration: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "sort duration"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.New, k.Filter, k.SortDate, k.Help, k.Quit}
}

// FullHelp returns every list binding, grouped into columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Edit, k.New},
		{k.Filter, k.NextFilter, k.ResetFilters},
		{k.SortGroup, k.SortDate, k.SortDuration},
		{k.Help, k.Quit},
	}
}

// EditKeyMap defines the edit view key bindings.
type EditKeyMap struct {
	Save      key.Binding
	Delete    key.Binding
	Back      key.Binding
	NextField key.Binding
	PrevField key.Binding
}

// DefaultEditKeyMap returns the default edit view key bindings.
func DefaultEditKeyMap() EditKeyMap {
	return EditKeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
	}
}

// ShortHelp returns the bindings shown under the form.
func (k EditKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Delete, k.Back, k.NextField}
}

// FullHelp returns every edit binding.
func (k EditKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Save, k.Delete, k.Back}, {k.NextField, k.PrevField}}
}

// ConfirmKeyMap defines the confirmation dialog bindings.
type ConfirmKeyMap struct {
	Yes key.Binding
	No  key.Binding
}

// DefaultConfirmKeyMap returns the default confirmation bindings.
func DefaultConfirmKeyMap() ConfirmKeyMap {
	return ConfirmKeyMap{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "no"),
		),
	}
}

// ShortHelp returns the dialog bindings.
func (k ConfirmKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No}
}

// FullHelp returns the dialog bindings.
func (k ConfirmKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
