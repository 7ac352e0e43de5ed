package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stwalsh4118/grouplog/internal/session"
)

// Form field indexes
const (
	fieldGroup = iota
	fieldDate
	fieldDuration
	fieldParticipants
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Group:       ",
	"Date:        ",
	"Duration:    ",
	"Participants:",
}

// Action is a form callback for save, delete and back. The form passes the
// record as currently entered. The result is not used by the form.
type Action func(session.Info) bool

// Form is the edit view for a single session record.
type Form struct {
	original session.Info
	initial  [fieldCount]string // Input text as first shown
	inputs   [fieldCount]textinput.Model
	focus  int
	err    string
	keys   EditKeyMap
	help   help.Model

	save   Action
	remove Action
	back   Action
}

// NewForm builds a form showing info. groups are offered as suggestions for
// the group field.
func NewForm(info session.Info, groups []string, save, del, back Action) Form {
	f := Form{
		original: info.Clone(),
		keys:     DefaultEditKeyMap(),
		help:     help.New(),
		save:     save,
		remove:   del,
		back:     back,
	}

	f.inputs[fieldGroup] = newInput("Group name", inputGroupCharLimit, formInputWidth)
	f.inputs[fieldGroup].ShowSuggestions = true
	f.inputs[fieldGroup].SetSuggestions(groups)
	f.inputs[fieldDate] = newInput("YYYY-MM-DD", inputDateCharLimit, formInputWidth)
	f.inputs[fieldDuration] = newInput("Hours, e.g. 1.5", inputDurationCharLimit, formInputWidth)
	f.inputs[fieldParticipants] = newInput("Comma separated names", inputParticipantsCharLimit, formInputWidth)

	f.inputs[fieldGroup].SetValue(info.GroupName)
	f.inputs[fieldDate].SetValue(info.Date)
	if !info.IsNew() || info.Duration != 0 {
		f.inputs[fieldDuration].SetValue(formatDuration(info.Duration))
	}
	f.inputs[fieldParticipants].SetValue(session.JoinParticipants(info.Participants))
	for i := range f.inputs {
		f.initial[i] = f.inputs[i].Value()
	}

	f.inputs[fieldGroup].Focus()
	return f
}

// formatDuration renders hours without trailing zeros.
func formatDuration(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

// parseDuration reads the duration field. Blank is zero; anything that is
// not a number is NaN so the record never compares equal to a saved one.
func parseDuration(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return d
}

// Candidate returns the record as currently entered. A field whose text is
// unchanged keeps the loaded value, so an untouched form is never dirty.
func (f Form) Candidate() session.Info {
	c := f.original.Clone()
	if f.changed(fieldGroup) {
		c.GroupName = f.inputs[fieldGroup].Value()
	}
	if f.changed(fieldDate) {
		c.Date = f.inputs[fieldDate].Value()
	}
	if f.changed(fieldDuration) {
		c.Duration = parseDuration(f.inputs[fieldDuration].Value())
	}
	if f.changed(fieldParticipants) {
		c.Participants = session.SplitParticipants(f.inputs[fieldParticipants].Value())
	}
	return c
}

func (f Form) changed(field int) bool {
	return f.inputs[field].Value() != f.initial[field]
}

// Err returns the validation message from the last save attempt.
func (f Form) Err() string {
	return f.err
}

// Focused returns the index of the focused field.
func (f Form) Focused() int {
	return f.focus
}

func (f *Form) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// Update handles a key press in the edit view.
func (f Form) Update(msg tea.KeyMsg) (Form, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Save):
		candidate := session.Normalize(f.Candidate())
		if err := session.Validate(candidate); err != nil {
			f.err = err.Error()
			return f, nil
		}
		f.err = ""
		if f.save != nil {
			f.save(candidate)
		}
		return f, nil

	case key.Matches(msg, f.keys.Delete):
		if f.remove != nil {
			f.remove(f.Candidate())
		}
		return f, nil

	case key.Matches(msg, f.keys.Back):
		if f.back != nil {
			f.back(f.Candidate())
		}
		return f, nil

	case key.Matches(msg, f.keys.NextField):
		var accepted bool
		f.inputs[f.focus], accepted = acceptSuggestion(f.inputs[f.focus], msg)
		if !accepted {
			f.setFocus(f.focus + 1)
		}
		return f, nil

	case key.Matches(msg, f.keys.PrevField):
		f.setFocus(f.focus - 1)
		return f, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// View renders the form fields, any validation error and the key help.
func (f Form) View() string {
	var b strings.Builder
	for i, in := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			label = highlightStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(dialogErrorStyle.Render(f.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(f.help.View(f.keys))
	return b.String()
}
