package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Text input configuration constants
const (
	inputGroupCharLimit        = 80
	inputDateCharLimit         = 25
	inputDurationCharLimit     = 8
	inputParticipantsCharLimit = 512
	filterInputWidth           = 20
	formInputWidth             = 40
)

// newInput creates a text input with the shared prompt styling.
func newInput(placeholder string, limit, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = width
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	ti.TextStyle = lipgloss.NewStyle()
	return ti
}

// initGroupFilterInput creates the group prefix filter. Known group names are
// offered as suggestions and accepted with tab.
func initGroupFilterInput(groups []string) textinput.Model {
	ti := newInput("Group name", inputGroupCharLimit, filterInputWidth)
	ti.ShowSuggestions = true
	ti.SetSuggestions(groups)
	return ti
}

// initDateFilterInput creates a start or end date filter.
func initDateFilterInput(placeholder string) textinput.Model {
	return newInput(placeholder, inputDateCharLimit, filterInputWidth)
}

// acceptSuggestion forwards a tab press to a suggestion-enabled input. It
// reports whether the input used it to complete a suggestion, in which case
// focus stays where it is.
func acceptSuggestion(ti textinput.Model, msg tea.KeyMsg) (textinput.Model, bool) {
	if !ti.ShowSuggestions {
		return ti, false
	}
	before := ti.Value()
	ti, _ = ti.Update(msg)
	return ti, ti.Value() != before
}
