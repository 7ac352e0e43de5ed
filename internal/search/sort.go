package search

import (
	"cmp"
	"fmt"
	"sort"
	"strings"

	"github.com/stwalsh4118/grouplog/internal/session"
)

// SortState is the direction of a single sortable column.
type SortState int

// Sort state constants
const (
	Neutral    SortState = iota // Column does not take part in ordering
	Increasing                  // Smallest first
	Decreasing                  // Largest first
)

// Next returns the state after one toggle: Neutral -> Increasing ->
// Decreasing -> Neutral. Unknown values normalize to Neutral.
func Next(s SortState) SortState {
	switch s {
	case Neutral:
		return Increasing
	case Increasing:
		return Decreasing
	case Decreasing:
		return Neutral
	default:
		return Neutral
	}
}

// String returns the config name of the state.
func (s SortState) String() string {
	switch s {
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	default:
		return "neutral"
	}
}

// Glyph returns the column header marker for the state.
func (s SortState) Glyph() string {
	switch s {
	case Increasing:
		return "▲"
	case Decreasing:
		return "▼"
	default:
		return "-"
	}
}

// ParseSortState parses a config or flag value. Accepts the String() names
// and the short forms asc/desc/none.
func ParseSortState(v string) (SortState, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "neutral", "none":
		return Neutral, nil
	case "increasing", "asc":
		return Increasing, nil
	case "decreasing", "desc":
		return Decreasing, nil
	default:
		return Neutral, fmt.Errorf("unknown sort direction %q", v)
	}
}

// sign is the multiplier applied to an ascending comparison.
func (s SortState) sign() int {
	if s == Decreasing {
		return -1
	}
	return 1
}

// Column identifies a sortable list column.
type Column int

// Column constants
const (
	ColumnGroup Column = iota
	ColumnDate
	ColumnDuration
)

// ColumnLabel returns the header label for a column.
func ColumnLabel(c Column) string {
	switch c {
	case ColumnGroup:
		return "Group Name"
	case ColumnDate:
		return "Date"
	case ColumnDuration:
		return "Duration (hours)"
	default:
		return ""
	}
}

// ParseColumn parses a column name used by the CLI --sort flag.
func ParseColumn(v string) (Column, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "group":
		return ColumnGroup, nil
	case "date":
		return ColumnDate, nil
	case "duration":
		return ColumnDuration, nil
	default:
		return 0, fmt.Errorf("unknown sort column %q", v)
	}
}

// SortStates holds the direction of every column. Priority is fixed:
// date, then group name, then duration, whatever order they were toggled in.
type SortStates struct {
	Date     SortState
	Group    SortState
	Duration SortState
}

// DefaultSortStates opens the list newest first.
func DefaultSortStates() SortStates {
	return SortStates{Date: Decreasing, Group: Neutral, Duration: Neutral}
}

// Get returns the state of column c.
func (st SortStates) Get(c Column) SortState {
	switch c {
	case ColumnDate:
		return st.Date
	case ColumnGroup:
		return st.Group
	case ColumnDuration:
		return st.Duration
	default:
		return Neutral
	}
}

// Toggle returns st with column c advanced by Next.
func (st SortStates) Toggle(c Column) SortStates {
	return st.With(c, Next(st.Get(c)))
}

// With returns st with column c set to s.
func (st SortStates) With(c Column, s SortState) SortStates {
	switch c {
	case ColumnDate:
		st.Date = s
	case ColumnGroup:
		st.Group = s
	case ColumnDuration:
		st.Duration = s
	}
	return st
}

// Compare orders a before b (negative), after b (positive) or as a tie (0).
// Each non-neutral key is compared in priority order and a tie falls through
// to the next key.
func (st SortStates) Compare(a, b session.Info) int {
	if st.Date != Neutral {
		if c := a.Instant().Compare(b.Instant()); c != 0 {
			return st.Date.sign() * c
		}
	}
	if st.Group != Neutral {
		if c := strings.Compare(a.GroupName, b.GroupName); c != 0 {
			return st.Group.sign() * c
		}
	}
	if st.Duration != Neutral {
		if c := cmp.Compare(a.Duration, b.Duration); c != 0 {
			return st.Duration.sign() * c
		}
	}
	return 0
}

// Sort returns a sorted copy of sessions. The sort is stable, so records
// that tie on every active key keep their input order.
// The original slice is not modified.
func (st SortStates) Sort(sessions []session.Info) []session.Info {
	sorted := make([]session.Info, len(sessions))
	copy(sorted, sessions)

	sort.SliceStable(sorted, func(i, j int) bool {
		return st.Compare(sorted[i], sorted[j]) < 0
	})
	return sorted
}
