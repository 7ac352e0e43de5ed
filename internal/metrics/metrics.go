// Package metrics aggregates session records into totals for display.
package metrics

import (
	"fmt"
	"math"
	"sort"

	"github.com/stwalsh4118/grouplog/internal/session"
)

// Summary totals a set of sessions.
type Summary struct {
	Sessions     int
	Hours        float64
	Participants int // distinct names
}

// GroupSummary is the Summary of one group.
type GroupSummary struct {
	Group string
	Summary
}

// Aggregate totals sessions. Durations that are not valid hours are skipped.
func Aggregate(sessions []session.Info) Summary {
	var sum Summary
	seen := make(map[string]bool)
	for _, s := range sessions {
		sum.Sessions++
		if validHours(s.Duration) {
			sum.Hours += s.Duration
		}
		for _, p := range s.Participants {
			if !seen[p] {
				seen[p] = true
				sum.Participants++
			}
		}
	}
	return sum
}

// ByGroup returns one Summary per group name, sorted by name.
func ByGroup(sessions []session.Info) []GroupSummary {
	groups := make(map[string][]session.Info)
	for _, s := range sessions {
		groups[s.GroupName] = append(groups[s.GroupName], s)
	}

	out := make([]GroupSummary, 0, len(groups))
	for name, members := range groups {
		out = append(out, GroupSummary{Group: name, Summary: Aggregate(members)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out
}

func validHours(h float64) bool {
	return h >= 0 && !math.IsNaN(h) && !math.IsInf(h, 0)
}

// FormatHours returns an abbreviated duration string for a number of hours.
// Examples: "0m", "45m", "1h 30m", "2h"
func FormatHours(hours float64) string {
	if !validHours(hours) {
		return "-"
	}
	minutes := int64(math.Round(hours * 60))
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}
