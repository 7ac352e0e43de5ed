package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stwalsh4118/grouplog/internal/search"
)

// Dialog width constant
const dialogWidth = 48

// confirmedStatus returns the footer message shown after state's action
// completes.
func confirmedStatus(state search.ConfirmState) string {
	switch state {
	case search.ConfirmSave:
		return "Session saved"
	case search.ConfirmDelete:
		return "Session deleted"
	case search.ConfirmBack:
		return "Changes discarded"
	default:
		return ""
	}
}

// renderDialog renders the confirmation prompt, or the error from the last
// confirmed action. It returns "" when neither is showing.
func (m Model) renderDialog() string {
	state := m.ctrl.ConfirmState()
	if state == search.ConfirmNone && m.dialogError == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(dialogTitleStyle.Render(search.ConfirmTitle))
	b.WriteString("\n\n")

	if state != search.ConfirmNone {
		b.WriteString(m.ctrl.Prompt())
		b.WriteString("\n\n")
		b.WriteString(m.help.ShortHelpView(m.confirmKeys.ShortHelp()))
	}

	if m.dialogError != "" {
		b.WriteString(dialogErrorStyle.Render(m.dialogError))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Press any key to continue"))
	}

	dialog := dialogBoxStyle.Width(dialogWidth).Render(b.String())

	// Center the dialog horizontally using lipgloss.Place for proper multi-line handling
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, dialog)
}
