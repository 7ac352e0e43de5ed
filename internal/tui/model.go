package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stwalsh4118/grouplog/internal/debug"
	"github.com/stwalsh4118/grouplog/internal/search"
	"github.com/stwalsh4118/grouplog/internal/session"
)

// Filter input indexes
const (
	filterGroup = iota
	filterStart
	filterEnd
	filterCount
)

// Model is the Bubble Tea application state for grouplog.
type Model struct {
	ctrl   *search.Controller
	cursor int
	width  int
	height int

	keys        KeyMap
	confirmKeys ConfirmKeyMap
	help        help.Model

	// Filter bar state
	filtering    bool                         // Whether keyboard focus is in the filter bar
	filterFocus  int                          // Which filter input is focused
	filterInputs [filterCount]textinput.Model // Group prefix, start date, end date

	// Edit view state, valid while the controller has a record open
	form Form

	dialogError string // Store error from the last confirmed action
	status      string // Result of the last confirmed action
}

// New creates the Model for ctrl.
func New(ctrl *search.Controller) Model {
	m := Model{
		ctrl:        ctrl,
		width:       80,
		height:      24,
		keys:        DefaultKeyMap(),
		confirmKeys: DefaultConfirmKeyMap(),
		help:        help.New(),
	}
	m.filterInputs[filterGroup] = initGroupFilterInput(ctrl.GroupNames())
	m.filterInputs[filterStart] = initDateFilterInput("From YYYY-MM-DD")
	m.filterInputs[filterEnd] = initDateFilterInput("To YYYY-MM-DD")
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.status = ""

		// An error from the last confirmed action stays up until dismissed
		if m.dialogError != "" {
			m.dialogError = ""
			return m, nil
		}

		if m.ctrl.ConfirmState() != search.ConfirmNone {
			return m.updateConfirm(msg)
		}
		if m.isEditing() {
			return m.updateForm(msg)
		}
		if m.filtering {
			return m.updateFilters(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) isEditing() bool {
	_, ok := m.ctrl.Editing()
	return ok
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if n := len(m.ctrl.ListView()); n > 0 {
			if m.cursor > 0 {
				m.cursor--
			} else {
				m.cursor = n - 1 // wrap to bottom
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if n := len(m.ctrl.ListView()); n > 0 {
			if m.cursor < n-1 {
				m.cursor++
			} else {
				m.cursor = 0 // wrap to top
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if rec, ok := m.selected(); ok {
			m.ctrl.SelectForEdit(rec)
			m.openForm()
			return m, textinput.Blink
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.ctrl.NewSession()
		m.openForm()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInputs[m.filterFocus].Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.ResetFilters):
		m.resetFilters()
		return m, nil

	case key.Matches(msg, m.keys.SortGroup):
		m.ctrl.ToggleSort(search.ColumnGroup)
		return m, nil

	case key.Matches(msg, m.keys.SortDate):
		m.ctrl.ToggleSort(search.ColumnDate)
		return m, nil

	case key.Matches(msg, m.keys.SortDuration):
		m.ctrl.ToggleSort(search.ColumnDuration)
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

// updateFilters handles keys while the filter bar has focus. Filters apply
// as they are typed.
func (m Model) updateFilters(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc, msg.Type == tea.KeyEnter:
		m.filtering = false
		m.filterInputs[m.filterFocus].Blur()
		return m, nil

	case key.Matches(msg, m.keys.ResetFilters):
		m.resetFilters()
		return m, nil

	case key.Matches(msg, m.keys.NextFilter):
		var accepted bool
		m.filterInputs[m.filterFocus], accepted = acceptSuggestion(m.filterInputs[m.filterFocus], msg)
		if !accepted {
			m.filterInputs[m.filterFocus].Blur()
			m.filterFocus = (m.filterFocus + 1) % filterCount
			m.filterInputs[m.filterFocus].Focus()
		}
		m.applyFilters()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInputs[m.filterFocus], cmd = m.filterInputs[m.filterFocus].Update(msg)
	m.applyFilters()
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	if !m.isEditing() {
		m.clampCursor()
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.confirmKeys.Yes):
		state := m.ctrl.ConfirmState()
		if err := m.ctrl.Confirm(); err != nil {
			debug.Log("confirm %d failed: %v", state, err)
			m.dialogError = err.Error()
			return m, nil
		}
		m.status = confirmedStatus(state)
		m.filterInputs[filterGroup].SetSuggestions(m.ctrl.GroupNames())
		m.clampCursor()

	case key.Matches(msg, m.confirmKeys.No):
		m.ctrl.Cancel()
	}
	return m, nil
}

// openForm builds the edit form for the record the controller has open.
// The form actions go straight to the controller, which decides whether to
// prompt.
func (m *Model) openForm() {
	rec, _ := m.ctrl.Editing()
	ctrl := m.ctrl
	m.form = NewForm(rec, ctrl.GroupNames(),
		func(s session.Info) bool { ctrl.RequestSave(s); return true },
		func(s session.Info) bool { ctrl.RequestDelete(s); return true },
		func(s session.Info) bool { ctrl.RequestBack(s); return true },
	)
}

func (m *Model) applyFilters() {
	m.ctrl.SetGroupFilter(m.filterInputs[filterGroup].Value())
	m.ctrl.SetDateRange(m.filterInputs[filterStart].Value(), m.filterInputs[filterEnd].Value())
	m.clampCursor()
}

func (m *Model) resetFilters() {
	m.ctrl.ResetFilters()
	for i := range m.filterInputs {
		m.filterInputs[i].SetValue("")
	}
	m.cursor = 0
}

// selected returns the record under the cursor.
func (m Model) selected() (session.Info, bool) {
	return selectedIn(m.ctrl.ListView(), m.cursor)
}

func selectedIn(list []session.Info, cursor int) (session.Info, bool) {
	if cursor < 0 || cursor >= len(list) {
		return session.Info{}, false
	}
	return list[cursor], true
}

// clampCursor keeps the cursor inside the visible list.
func (m *Model) clampCursor() {
	n := len(m.ctrl.ListView())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
