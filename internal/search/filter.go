package search

import (
	"strings"

	"github.com/stwalsh4118/grouplog/internal/session"
)

// Filter narrows the session list by group name prefix and date range.
// The zero value matches everything.
type Filter struct {
	Group string // case-sensitive prefix; empty matches all
	Start string // inclusive lower bound date
	End   string // inclusive upper bound date
}

// Active reports whether any field would exclude records.
func (f Filter) Active() bool {
	return f.Group != "" || f.dateRangeActive()
}

// dateRangeActive is true only when both bounds are present and parse.
// A single bound disables date filtering entirely.
func (f Filter) dateRangeActive() bool {
	_, startOK := session.ParseDate(f.Start)
	_, endOK := session.ParseDate(f.End)
	return startOK && endOK
}

// Match reports whether s passes the filter.
func (f Filter) Match(s session.Info) bool {
	if !strings.HasPrefix(s.GroupName, f.Group) {
		return false
	}
	if !f.dateRangeActive() {
		return true
	}

	at, ok := session.ParseDate(s.Date)
	if !ok {
		return false
	}
	start, _ := session.ParseDate(f.Start)
	end, _ := session.ParseDate(f.End)
	return !at.Before(start) && !at.After(end)
}

// Apply returns the sessions that pass the filter, preserving order.
func (f Filter) Apply(sessions []session.Info) []session.Info {
	filtered := make([]session.Info, 0, len(sessions))
	for _, s := range sessions {
		if f.Match(s) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
