package search

import (
	"testing"

	"github.com/stwalsh4118/grouplog/internal/session"
)

func assertIDOrder(t *testing.T, got []session.Info, want []string) {
	t.Helper()
	if len(got) != len(want) {
		ids := make([]string, len(got))
		for i, s := range got {
			ids[i] = s.ID
		}
		t.Fatalf("got %d sessions %v, want %v", len(got), ids, want)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestFilterMatch(t *testing.T) {
	rec := session.Info{ID: "1", GroupName: "Chess Club", Date: "2024-02-15"}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"zero filter matches", Filter{}, true},
		{"prefix matches", Filter{Group: "Chess"}, true},
		{"full name matches", Filter{Group: "Chess Club"}, true},
		{"prefix is case-sensitive", Filter{Group: "chess"}, false},
		{"substring is not a prefix", Filter{Group: "Club"}, false},
		{"inside range", Filter{Start: "2024-02-01", End: "2024-02-28"}, true},
		{"start boundary inclusive", Filter{Start: "2024-02-15", End: "2024-03-01"}, true},
		{"end boundary inclusive", Filter{Start: "2024-01-01", End: "2024-02-15"}, true},
		{"before range", Filter{Start: "2024-02-16", End: "2024-03-01"}, false},
		{"after range", Filter{Start: "2024-01-01", End: "2024-02-14"}, false},
		{"only start disables range", Filter{Start: "2024-03-01"}, true},
		{"only end disables range", Filter{End: "2024-01-01"}, true},
		{"unparseable bound disables range", Filter{Start: "2024-0", End: "2024-01-01"}, true},
		{"group and range both required", Filter{Group: "Go", Start: "2024-02-01", End: "2024-02-28"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(rec); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterEmptyGroupMatchesAnyRecord(t *testing.T) {
	records := []session.Info{
		{},
		{GroupName: "A", Date: "bad date"},
		{GroupName: "", Date: "2024-01-01", Duration: -3},
		{GroupName: "zzz", Participants: []string{"x"}},
	}
	for _, r := range records {
		if !(Filter{}).Match(r) {
			t.Errorf("empty filter should match %+v", r)
		}
	}
}

func TestFilterExcludesUnparseableDatesWhenRangeActive(t *testing.T) {
	f := Filter{Start: "0001-01-01", End: "9999-12-31"}
	if f.Match(session.Info{Date: "whenever"}) {
		t.Error("record with unparseable date should not satisfy an active range")
	}
}

func TestFilterActive(t *testing.T) {
	if (Filter{}).Active() {
		t.Error("zero filter should not be active")
	}
	if (Filter{Start: "2024-01-01"}).Active() {
		t.Error("single date bound should not be active")
	}
	if !(Filter{Group: "A"}).Active() {
		t.Error("group filter should be active")
	}
	if !(Filter{Start: "2024-01-01", End: "2024-01-02"}).Active() {
		t.Error("full date range should be active")
	}
}

func TestNextSortState(t *testing.T) {
	tests := []struct {
		current SortState
		want    SortState
	}{
		{Neutral, Increasing},
		{Increasing, Decreasing},
		{Decreasing, Neutral},
		{SortState(42), Neutral},
		{SortState(-1), Neutral},
	}
	for _, tt := range tests {
		if got := Next(tt.current); got != tt.want {
			t.Errorf("Next(%d) = %s, want %s", tt.current, got, tt.want)
		}
	}
}

func TestToggleThreeTimesReturnsToNeutral(t *testing.T) {
	for _, col := range []Column{ColumnGroup, ColumnDate, ColumnDuration} {
		st := SortStates{}
		for i := 0; i < 3; i++ {
			st = st.Toggle(col)
		}
		if st.Get(col) != Neutral {
			t.Errorf("%s: three toggles gave %s, want neutral", ColumnLabel(col), st.Get(col))
		}
	}
}

func TestSortStateStrings(t *testing.T) {
	for _, s := range []SortState{Neutral, Increasing, Decreasing} {
		parsed, err := ParseSortState(s.String())
		if err != nil || parsed != s {
			t.Errorf("ParseSortState(%q) = %v, %v", s.String(), parsed, err)
		}
	}
	if _, err := ParseSortState("sideways"); err == nil {
		t.Error("expected error for unknown direction")
	}
	if Increasing.Glyph() != "▲" || Decreasing.Glyph() != "▼" || Neutral.Glyph() != "-" {
		t.Error("unexpected glyphs")
	}
}

func TestSortByDate(t *testing.T) {
	sessions := []session.Info{
		{ID: "1", GroupName: "A", Date: "2024-01-01", Duration: 2},
		{ID: "2", GroupName: "B", Date: "2024-02-01", Duration: 1},
	}

	t.Run("decreasing puts newest first", func(t *testing.T) {
		got := DefaultSortStates().Sort(sessions)
		assertIDOrder(t, got, []string{"2", "1"})
	})

	t.Run("increasing puts oldest first", func(t *testing.T) {
		got := SortStates{Date: Increasing}.Sort(sessions)
		assertIDOrder(t, got, []string{"1", "2"})
	})

	t.Run("compares instants not strings", func(t *testing.T) {
		mixed := []session.Info{
			{ID: "late", Date: "2024-01-01T08:00:00-05:00"},
			{ID: "early", Date: "2024-01-01T10:00:00Z"},
		}
		got := SortStates{Date: Increasing}.Sort(mixed)
		assertIDOrder(t, got, []string{"early", "late"})
	})

	t.Run("unparseable date sorts before everything", func(t *testing.T) {
		withBad := []session.Info{sessions[0], sessions[1], {ID: "bad", Date: "???"}}
		got := SortStates{Date: Increasing}.Sort(withBad)
		assertIDOrder(t, got, []string{"bad", "1", "2"})
	})

	t.Run("input is not modified", func(t *testing.T) {
		_ = DefaultSortStates().Sort(sessions)
		assertIDOrder(t, sessions, []string{"1", "2"})
	})
}

func TestSortMultiKey(t *testing.T) {
	sessions := []session.Info{
		{ID: "a", GroupName: "Beta", Date: "2024-01-01", Duration: 1},
		{ID: "b", GroupName: "Alpha", Date: "2024-01-01", Duration: 3},
		{ID: "c", GroupName: "Alpha", Date: "2024-01-01", Duration: 2},
		{ID: "d", GroupName: "Alpha", Date: "2024-03-01", Duration: 9},
	}

	t.Run("date ties fall through to group then duration", func(t *testing.T) {
		st := SortStates{Date: Increasing, Group: Increasing, Duration: Increasing}
		assertIDOrder(t, st.Sort(sessions), []string{"c", "b", "a", "d"})
	})

	t.Run("group decreasing flips only its key", func(t *testing.T) {
		st := SortStates{Date: Increasing, Group: Decreasing, Duration: Increasing}
		assertIDOrder(t, st.Sort(sessions), []string{"a", "c", "b", "d"})
	})

	t.Run("duration never overrides date", func(t *testing.T) {
		st := SortStates{Date: Decreasing}
		st = st.Toggle(ColumnDuration) // increasing, toggled after date
		assertIDOrder(t, st.Sort(sessions), []string{"d", "a", "c", "b"})
	})

	t.Run("duration alone", func(t *testing.T) {
		st := SortStates{Duration: Decreasing}
		assertIDOrder(t, st.Sort(sessions), []string{"d", "b", "c", "a"})
	})

	t.Run("fractional durations", func(t *testing.T) {
		frac := []session.Info{{ID: "x", Duration: 1.75}, {ID: "y", Duration: 1.25}}
		assertIDOrder(t, SortStates{Duration: Increasing}.Sort(frac), []string{"y", "x"})
	})
}

func TestSortIsStable(t *testing.T) {
	sessions := []session.Info{
		{ID: "1", GroupName: "Same", Date: "2024-01-01", Duration: 1},
		{ID: "2", GroupName: "Same", Date: "2024-01-01", Duration: 1},
		{ID: "3", GroupName: "Other", Date: "2023-01-01", Duration: 1},
		{ID: "4", GroupName: "Same", Date: "2024-01-01", Duration: 1},
	}

	t.Run("all neutral keeps input order", func(t *testing.T) {
		assertIDOrder(t, SortStates{}.Sort(sessions), []string{"1", "2", "3", "4"})
	})

	t.Run("ties keep input order", func(t *testing.T) {
		st := SortStates{Date: Decreasing, Group: Increasing, Duration: Decreasing}
		assertIDOrder(t, st.Sort(sessions), []string{"1", "2", "4", "3"})
	})
}
