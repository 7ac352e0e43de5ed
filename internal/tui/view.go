package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/stwalsh4118/grouplog/internal/metrics"
	"github.com/stwalsh4118/grouplog/internal/search"
	"github.com/stwalsh4118/grouplog/internal/session"
)

// Selection marker constants
const (
	selectedMarker   = "▸ "
	unselectedMarker = "  "
)

// Column widths in the session list
const (
	groupColumnWidth    = 30
	dateColumnWidth     = 22
	durationColumnWidth = 18
)

// Header and empty state text
const (
	headerTitle         = "Group Sessions"
	noSessionsMessage   = "  No Saved Sessions"
	noMatchesMessage    = "  No sessions match the current filters"
	noParticipantsLabel = "No participants recorded"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	// Filtered and sorted once per frame
	list := m.ctrl.ListView()

	b.WriteString(m.renderHeader(list))
	b.WriteString("\n")

	if m.isEditing() {
		b.WriteString(m.renderEditView())
	} else {
		b.WriteString(m.renderFilterBar())
		b.WriteString("\n")
		b.WriteString(m.renderSessionList(list))
		if rec, ok := selectedIn(list, m.cursor); ok {
			b.WriteString("\n")
			b.WriteString(m.renderDetail(rec))
		}
	}
	b.WriteString("\n")

	if dialog := m.renderDialog(); dialog != "" {
		b.WriteString(dialog)
		b.WriteString("\n\n")
	}

	if !m.isEditing() {
		b.WriteString(m.renderFooter())
	}

	return b.String()
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	r := []rune(s)
	if len(r) > maxLen-3 {
		r = r[:maxLen-3]
	}
	return string(r) + "..."
}

func pad(s string, width int) string {
	s = truncate(s, width)
	if gap := width - lipgloss.Width(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

// renderHeader renders the header box with the title, totals of the visible
// sessions and record counts.
func (m Model) renderHeader(list []session.Info) string {
	total := m.ctrl.Len()
	shown := len(list)

	countStr := fmt.Sprintf("%d saved", total)
	if shown != total {
		countStr = fmt.Sprintf("%d/%d shown", shown, total)
	}

	// Totals of the visible sessions
	aggregateStr := ""
	if sum := metrics.Aggregate(list); sum.Sessions > 0 {
		aggregateStr = fmt.Sprintf("  ⏱ %s", metrics.FormatHours(sum.Hours))
		if sum.Participants > 0 {
			aggregateStr += fmt.Sprintf("  👥 %d", sum.Participants)
		}
	}

	contentWidth := m.width - 4
	leftPart := boldStyle.Render(headerTitle) + aggregateStr
	padding := contentWidth - lipgloss.Width(leftPart) - lipgloss.Width(countStr)
	if padding < 1 {
		padding = 1
	}

	content := leftPart + strings.Repeat(" ", padding) + countStr
	return boxStyle.Width(m.width - 2).Render(content)
}

// renderFilterBar renders the group and date range inputs.
func (m Model) renderFilterBar() string {
	labels := [filterCount]string{"Group", "From", "To"}
	parts := make([]string, 0, filterCount)
	for i, in := range m.filterInputs {
		label := labels[i]
		if m.filtering && i == m.filterFocus {
			label = highlightStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		parts = append(parts, label+" "+in.View())
	}
	content := strings.Join(parts, "  ")

	f := m.ctrl.Filter()
	if f.Start != "" || f.End != "" {
		_, startOK := session.ParseDate(f.Start)
		_, endOK := session.ParseDate(f.End)
		if startOK && endOK {
			content += "\n" + filterActiveStyle.Render(fmt.Sprintf("Dates %s to %s", f.Start, f.End))
		} else {
			content += "\n" + dimStyle.Render("Enter both dates to filter by range")
		}
	}

	style := boxStyle
	if m.filtering {
		style = filterBarStyle
	}
	return style.Width(m.width - 2).Render(content)
}

// renderColumnHeader renders one column title with its sort direction.
func (m Model) renderColumnHeader(col search.Column, width int) string {
	state := m.ctrl.SortStates().Get(col)
	title := fmt.Sprintf("%s %s", search.ColumnLabel(col), state.Glyph())
	title = pad(title, width)
	if state != search.Neutral {
		return activeSortStyle.Render(title)
	}
	return columnHeaderStyle.Render(title)
}

// renderSessionList renders the column headers and one row per record in
// list.
func (m Model) renderSessionList(list []session.Info) string {
	var b strings.Builder

	b.WriteString(unselectedMarker)
	b.WriteString(m.renderColumnHeader(search.ColumnGroup, groupColumnWidth))
	b.WriteString(" ")
	b.WriteString(m.renderColumnHeader(search.ColumnDate, dateColumnWidth))
	b.WriteString(" ")
	b.WriteString(m.renderColumnHeader(search.ColumnDuration, durationColumnWidth))
	b.WriteString("\n")

	if len(list) == 0 {
		message := noMatchesMessage
		if m.ctrl.Len() == 0 {
			message = noSessionsMessage
		}
		b.WriteString(dimStyle.Render(message))
		b.WriteString("\n")
		return b.String()
	}

	for i, rec := range list {
		b.WriteString(m.renderRow(rec, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

// renderRow renders a single session line.
func (m Model) renderRow(rec session.Info, selected bool) string {
	marker := unselectedMarker
	if selected {
		marker = selectedMarker
	}

	line := marker +
		pad(rec.GroupName, groupColumnWidth) + " " +
		pad(rec.Date, dateColumnWidth) + " " +
		pad(formatDuration(rec.Duration), durationColumnWidth)

	if selected {
		return selectedStyle.Render(line)
	}
	return line
}

// renderDetail renders the participants of rec, wrapped to the terminal.
func (m Model) renderDetail(rec session.Info) string {
	var b strings.Builder
	b.WriteString(detailHeaderStyle.Render(fmt.Sprintf("Participants (%d)", len(rec.Participants))))
	b.WriteString("\n")

	if len(rec.Participants) == 0 {
		b.WriteString(detailEmptyStyle.Render(noParticipantsLabel))
	} else {
		wrapWidth := m.width - 6
		if wrapWidth < 20 {
			wrapWidth = 20
		}
		b.WriteString(wordwrap.String(session.JoinParticipants(rec.Participants), wrapWidth))
	}
	return detailBoxStyle.Width(m.width - 2).Render(b.String())
}

// renderEditView renders the edit form in a box.
func (m Model) renderEditView() string {
	title := "Edit Session"
	if rec, _ := m.ctrl.Editing(); rec.IsNew() {
		title = "New Session"
	}
	content := dialogTitleStyle.Render(title) + "\n\n" + m.form.View()
	return boxStyle.Width(m.width - 2).Render(content)
}

// renderFooter renders the key help and the active filter summary.
func (m Model) renderFooter() string {
	footer := m.help.View(m.keys)

	var statusParts []string
	if m.status != "" {
		statusParts = append(statusParts, greenStyle.Render(m.status))
	}
	if f := m.ctrl.Filter(); f.Group != "" {
		statusParts = append(statusParts, filterActiveStyle.Render("Group: "+f.Group+"*"))
	}
	var sorts []string
	st := m.ctrl.SortStates()
	for _, col := range []search.Column{search.ColumnDate, search.ColumnGroup, search.ColumnDuration} {
		if s := st.Get(col); s != search.Neutral {
			sorts = append(sorts, fmt.Sprintf("%s %s", search.ColumnLabel(col), s.Glyph()))
		}
	}
	if len(sorts) > 0 {
		statusParts = append(statusParts, dimStyle.Render("Sort: "+strings.Join(sorts, ", ")))
	}
	if len(statusParts) > 0 {
		footer += "\n" + strings.Join(statusParts, "  ")
	}

	return boxStyle.Width(m.width - 2).Render(footer)
}
