package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stwalsh4118/grouplog/internal/search"
	"github.com/stwalsh4118/grouplog/internal/session"
	"github.com/stwalsh4118/grouplog/internal/store"
)

func testSessions() []session.Info {
	return []session.Info{
		{ID: "1", GroupName: "Chess Club", Date: "2024-01-01", Duration: 2, Participants: []string{"Ann", "Bob"}},
		{ID: "2", GroupName: "Go Meetup", Date: "2024-02-01", Duration: 1.5},
	}
}

func newTestModel(t *testing.T, st search.SessionStore) Model {
	t.Helper()
	n := 0
	ctrl, err := search.NewController(st, search.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}))
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	m := New(ctrl)
	m.width = 120
	return m
}

// keyPress builds the message bubbletea sends for k. Anything that is not a
// named key is sent as typed runes.
func keyPress(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		updated, _ := m.Update(keyPress(k))
		m = updated.(Model)
	}
	return m
}

type failingStore struct {
	*store.MemoryStore
	err error
}

func (f failingStore) SaveSession(session.Info) error { return f.err }
func (f failingStore) DeleteSession(string) error     { return f.err }

func TestView(t *testing.T) {
	t.Run("view with sessions", func(t *testing.T) {
		m := newTestModel(t, store.NewMemoryStore(testSessions()...))
		result := m.View()

		if !strings.Contains(result, headerTitle) {
			t.Error("view should contain header title")
		}
		for _, want := range []string{"Chess Club", "Go Meetup", "2 saved", "Date ▼", "Group Name -"} {
			if !strings.Contains(result, want) {
				t.Errorf("view should contain %q", want)
			}
		}
		// Newest first by default
		if strings.Index(result, "Go Meetup") > strings.Index(result, "Chess Club") {
			t.Error("Go Meetup should be listed before Chess Club")
		}
	})

	t.Run("view with no sessions", func(t *testing.T) {
		m := newTestModel(t, store.NewMemoryStore())
		if !strings.Contains(m.View(), "No Saved Sessions") {
			t.Error("view should show 'No Saved Sessions' when empty")
		}
	})

	t.Run("filter with no matches", func(t *testing.T) {
		m := newTestModel(t, store.NewMemoryStore(testSessions()...))
		m = press(m, "/", "Zzz")
		result := m.View()
		if !strings.Contains(result, noMatchesMessage) {
			t.Error("view should explain that nothing matches")
		}
		if !strings.Contains(result, "0/2 shown") {
			t.Error("header should show filtered count")
		}
	})

	t.Run("participants of selected row", func(t *testing.T) {
		m := newTestModel(t, store.NewMemoryStore(testSessions()...))
		m = press(m, "down")
		result := m.View()
		if !strings.Contains(result, "Participants (2)") || !strings.Contains(result, "Ann, Bob") {
			t.Error("detail pane should list participants of the selected session")
		}
	})
}

func TestNavigationWraps(t *testing.T) {
	m := newTestModel(t, store.NewMemoryStore(testSessions()...))

	m = press(m, "down")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	m = press(m, "down")
	if m.cursor != 0 {
		t.Errorf("cursor should wrap to top, got %d", m.cursor)
	}
	m = press(m, "up")
	if m.cursor != 1 {
		t.Errorf("cursor should wrap to bottom, got %d", m.cursor)
	}
}

func TestSortKeys(t *testing.T) {
	tests := []struct {
		key  string
		col  search.Column
		want search.SortState
	}{
		{"1", search.ColumnGroup, search.Increasing},
		{"2", search.ColumnDate, search.Neutral},
		{"3", search.ColumnDuration, search.Increasing},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := newTestModel(t, store.NewMemoryStore(testSessions()...))
			m = press(m, tt.key)
			if got := m.ctrl.SortStates().Get(tt.col); got != tt.want {
				t.Errorf("%s sort = %s, want %s", search.ColumnLabel(tt.col), got, tt.want)
			}
		})
	}

	t.Run("date increasing reorders rows", func(t *testing.T) {
		m := newTestModel(t, store.NewMemoryStore(testSessions()...))
		m = press(m, "2", "2")
		result := m.View()
		if !strings.Contains(result, "Date ▲") {
			t.Error("date header should show increasing glyph")
		}
		if strings.Index(result, "Chess Club") > strings.Index(result, "Go Meetup") {
			t.Error("Chess Club should be listed first when sorted oldest first")
		}
	})
}

func TestFilterBar(t *testing.T) {
	t.Run("typing filters the list", func(t *testing.T) {
		m := newTestModel(t, store.NewMemoryStore(testSessions()...))
		m = press(m, "/", "Go")

		if !m.filtering {
			t.Fatal("expected filter mode")
		}
		if got := m.ctrl.Filter().Group; got != "Go" {
			t.Errorf("group filter = %q, want Go", got)
		}
		if n := len(m.ctrl.ListView()); n != 1 {
			t.Errorf("got %d visible sessions, want 1", n)
		}
	})

	t.Run("esc leaves filter mode and keeps the filter", func(t *testing.T) {
		m := newTestModel(t, store.NewMemoryStore(testSessions()...))
		m = press(m, "/", "Go", "esc")

		if m.filtering {
			t.Error("esc should leave filter mode")
		}
		if n := len(m.ctrl.ListView()); n != 1 {
			t.Errorf("got %d visible sessions, want 1", n)
		}
	})

	t.Run("tab moves between inputs", func(t *testing.T) {
		m := newTestModel(t, store.NewMemoryStore(testSessions()...))
		m = press(m, "/", "tab")
		if m.filterFocus != filterStart {
			t.Fatalf("filterFocus = %d, want start", m.filterFocus)
		}
		m = press(m, "tab", "tab")
		if m.filterFocus != filterGroup {
			t.Errorf("filterFocus = %d, want wrap to group", m.filterFocus)
		}
	})

	t.Run("date range needs both bounds", func(t *testing.T) {
		m := newTestModel(t, store.NewMemoryStore(testSessions()...))
		m = press(m, "/", "tab", "2024-01-15")
		if n := len(m.ctrl.ListView()); n != 2 {
			t.Errorf("start alone: got %d sessions, want 2", n)
		}
		m = press(m, "tab", "2024-03-01")
		list := m.ctrl.ListView()
		if len(list) != 1 || list[0].ID != "2" {
			t.Errorf("range: got %+v, want only session 2", list)
		}
	})

	t.Run("ctrl+r clears filters and keeps sort", func(t *testing.T) {
		m := newTestModel(t, store.NewMemoryStore(testSessions()...))
		m = press(m, "1", "/", "Go", "esc", "ctrl+r")

		if m.ctrl.Filter() != (search.Filter{}) {
			t.Errorf("filter = %+v, want zero", m.ctrl.Filter())
		}
		if m.filterInputs[filterGroup].Value() != "" {
			t.Error("group input should be cleared")
		}
		if m.ctrl.SortStates().Group != search.Increasing {
			t.Error("reset should not touch sort state")
		}
	})
}

func TestEditSave(t *testing.T) {
	st := store.NewMemoryStore(testSessions()...)
	m := newTestModel(t, st)

	// First row is Go Meetup (newest first)
	m = press(m, "enter")
	if !m.isEditing() {
		t.Fatal("enter should open the edit view")
	}
	if !strings.Contains(m.View(), "Edit Session") {
		t.Error("edit view should have a title")
	}

	m = press(m, " Berlin", "ctrl+s")
	if got := m.ctrl.ConfirmState(); got != search.ConfirmSave {
		t.Fatalf("ConfirmState = %d, want ConfirmSave", got)
	}
	result := m.View()
	if !strings.Contains(result, search.ConfirmTitle) || !strings.Contains(result, "Overwrite this session?") {
		t.Error("confirmation dialog should be showing")
	}

	m = press(m, "y")
	if m.isEditing() {
		t.Error("confirmed save should return to the list")
	}
	if m.status != "Session saved" {
		t.Errorf("status = %q", m.status)
	}

	saved, _ := st.GetAllSessions()
	var found bool
	for _, s := range saved {
		if s.ID == "2" && s.GroupName == "Go Meetup Berlin" {
			found = true
		}
	}
	if !found {
		t.Errorf("store should hold the edited session, got %+v", saved)
	}
	if !strings.Contains(m.View(), "Go Meetup Berlin") {
		t.Error("list should show the edited group name")
	}
}

func TestNewSession(t *testing.T) {
	st := store.NewMemoryStore(testSessions()...)
	m := newTestModel(t, st)

	m = press(m, "n")
	if !strings.Contains(m.View(), "New Session") {
		t.Error("new session view should have a title")
	}

	m = press(m,
		"Book Club", "tab",
		"2024-03-01", "tab",
		"1.25", "tab",
		"Ann, Cy", "ctrl+s", "y",
	)
	if m.isEditing() {
		t.Fatal("confirmed save should return to the list")
	}
	if m.ctrl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.ctrl.Len())
	}

	list := m.ctrl.ListView()
	want := session.Info{ID: "new-1", GroupName: "Book Club", Date: "2024-03-01", Duration: 1.25, Participants: []string{"Ann", "Cy"}}
	if session.IsDirty(want, list[0]) || list[0].ID != want.ID {
		t.Errorf("newest session = %+v, want %+v", list[0], want)
	}

	names := m.ctrl.GroupNames()
	if len(names) != 3 || names[0] != "Book Club" {
		t.Errorf("GroupNames() = %v", names)
	}
}

func TestEditValidation(t *testing.T) {
	m := newTestModel(t, store.NewMemoryStore(testSessions()...))
	m = press(m, "n", "ctrl+s")

	if m.ctrl.ConfirmState() != search.ConfirmNone {
		t.Error("invalid record should not reach the confirmation prompt")
	}
	if m.form.Err() != session.ErrBlankGroup.Error() {
		t.Errorf("form error = %q", m.form.Err())
	}
	if !strings.Contains(m.View(), session.ErrBlankGroup.Error()) {
		t.Error("validation error should be shown")
	}
}

func TestEditBack(t *testing.T) {
	t.Run("clean edit closes immediately", func(t *testing.T) {
		m := newTestModel(t, store.NewMemoryStore(testSessions()...))
		m = press(m, "enter", "esc")
		if m.isEditing() {
			t.Error("esc on an unchanged record should return to the list")
		}
		if m.ctrl.ConfirmState() != search.ConfirmNone {
			t.Error("no prompt expected")
		}
	})

	t.Run("dirty edit asks first", func(t *testing.T) {
		m := newTestModel(t, store.NewMemoryStore(testSessions()...))
		m = press(m, "enter", "x", "esc")
		if m.ctrl.ConfirmState() != search.ConfirmBack {
			t.Fatalf("ConfirmState = %d, want ConfirmBack", m.ctrl.ConfirmState())
		}
		if !strings.Contains(m.View(), "Disregard current changes?") {
			t.Error("discard prompt should be showing")
		}

		m = press(m, "n")
		if !m.isEditing() || m.ctrl.ConfirmState() != search.ConfirmNone {
			t.Error("answering no should stay in the edit view")
		}

		m = press(m, "esc", "y")
		if m.isEditing() {
			t.Error("answering yes should return to the list")
		}
		if m.ctrl.ListView()[0].GroupName != "Go Meetup" {
			t.Error("discarded changes should not be saved")
		}
	})

	t.Run("bad duration counts as a change", func(t *testing.T) {
		m := newTestModel(t, store.NewMemoryStore(testSessions()...))
		m = press(m, "enter", "tab", "tab", "abc", "esc")
		if m.ctrl.ConfirmState() != search.ConfirmBack {
			t.Errorf("ConfirmState = %d, want ConfirmBack", m.ctrl.ConfirmState())
		}
	})
}

func TestBackOnUnchangedStoredRecord(t *testing.T) {
	tests := []struct {
		name string
		info session.Info
	}{
		{"trailing space group", session.Info{ID: "1", GroupName: "Chess Club ", Date: "2024-01-01", Duration: 2}},
		{"padded date", session.Info{ID: "1", GroupName: "Chess Club", Date: " 2024-01-01 "}},
		{"comma participant", session.Info{ID: "1", GroupName: "Chess Club", Date: "2024-01-01", Participants: []string{"Smith, Ann"}}},
		{"empty participants", session.Info{ID: "1", GroupName: "Chess Club", Date: "2024-01-01", Participants: []string{}}},
		{"unparseable date", session.Info{ID: "1", GroupName: "Chess Club", Date: "someday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, store.NewMemoryStore(tt.info))
			m = press(m, "enter")
			if !m.isEditing() {
				t.Fatal("enter should open the record")
			}
			m = press(m, "esc")
			if m.ctrl.ConfirmState() != search.ConfirmNone {
				t.Errorf("ConfirmState = %d, want no prompt", m.ctrl.ConfirmState())
			}
			if m.isEditing() {
				t.Error("esc on an unchanged record should return to the list")
			}
		})
	}
}

func TestDelete(t *testing.T) {
	st := store.NewMemoryStore(testSessions()...)
	m := newTestModel(t, st)

	m = press(m, "enter", "ctrl+d")
	if m.ctrl.ConfirmState() != search.ConfirmDelete {
		t.Fatalf("ConfirmState = %d, want ConfirmDelete", m.ctrl.ConfirmState())
	}
	if !strings.Contains(m.View(), "Delete this session?") {
		t.Error("delete prompt should be showing")
	}

	m = press(m, "y")
	if m.isEditing() {
		t.Error("confirmed delete should return to the list")
	}
	if m.ctrl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.ctrl.Len())
	}
	remaining, _ := st.GetAllSessions()
	if len(remaining) != 1 || remaining[0].ID != "1" {
		t.Errorf("store = %+v, want only session 1", remaining)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestStoreErrorShownInDialog(t *testing.T) {
	st := failingStore{MemoryStore: store.NewMemoryStore(testSessions()...), err: errors.New("disk full")}
	m := newTestModel(t, st)

	m = press(m, "enter", "x", "ctrl+s", "y")
	if !strings.Contains(m.dialogError, "disk full") {
		t.Fatalf("dialogError = %q", m.dialogError)
	}
	if !strings.Contains(m.View(), "disk full") {
		t.Error("store error should be rendered in the dialog")
	}
	if !m.isEditing() {
		t.Error("failed save should keep the edit open")
	}

	m = press(m, "z")
	if m.dialogError != "" {
		t.Error("any key should dismiss the error")
	}
	if m.form.Candidate().GroupName != "Go Meetupx" {
		t.Errorf("dismissing key should not reach the form, group = %q", m.form.Candidate().GroupName)
	}
}

func TestSelectedIn(t *testing.T) {
	list := testSessions()
	if rec, ok := selectedIn(list, 1); !ok || rec.ID != "2" {
		t.Errorf("selectedIn(list, 1) = %+v, %v", rec, ok)
	}
	for _, cursor := range []int{-1, 2} {
		if _, ok := selectedIn(list, cursor); ok {
			t.Errorf("selectedIn(list, %d) should report no selection", cursor)
		}
	}
	if _, ok := selectedIn(nil, 0); ok {
		t.Error("empty list has no selection")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, store.NewMemoryStore(testSessions()...))

	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(keyPress(k))
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}

	t.Run("q is typed in the filter bar", func(t *testing.T) {
		m := press(m, "/", "q")
		if m.filterInputs[filterGroup].Value() != "q" {
			t.Errorf("group input = %q, want q", m.filterInputs[filterGroup].Value())
		}
	})
}

func TestWindowSize(t *testing.T) {
	m := newTestModel(t, store.NewMemoryStore())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)
	if m.width != 100 || m.height != 40 {
		t.Errorf("size = %dx%d, want 100x40", m.width, m.height)
	}
}
