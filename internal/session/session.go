package session

import (
	"errors"
	"math"
	"strings"
	"time"
)

// Validation errors returned by Validate.
var (
	ErrBlankGroup       = errors.New("group name is required")
	ErrBadDate          = errors.New("date is not a recognized date")
	ErrBadDuration      = errors.New("duration must be a non-negative number of hours")
	ErrBlankParticipant = errors.New("participant names cannot be blank")
)

// Info is a single group session record.
type Info struct {
	ID           string   `json:"session_id"`
	GroupName    string   `json:"group_name"`
	Date         string   `json:"date"`
	Duration     float64  `json:"duration"`
	Participants []string `json:"participants"`
}

// dateLayouts are tried in order by ParseDate. Date-only values come from the
// date input and are interpreted as midnight UTC.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// unparsedDate is the ordering value for dates that fail to parse. It sorts
// before every real instant.
var unparsedDate = time.Time{}

// ParseDate parses a session date string.
// The bool is false when s matches none of the accepted layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return unparsedDate, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return unparsedDate, false
}

// DateKey returns the instant used to order and filter by s.
// Unparseable dates yield the zero time instead of an error.
func DateKey(s string) time.Time {
	t, _ := ParseDate(s)
	return t
}

// Instant returns the parsed date of the session, or the zero time.
func (s Info) Instant() time.Time {
	return DateKey(s.Date)
}

// IsNew reports whether the record has never been saved.
func (s Info) IsNew() bool {
	return s.ID == ""
}

// Clone returns a copy that does not share the participants slice.
func (s Info) Clone() Info {
	c := s
	if s.Participants != nil {
		c.Participants = append([]string(nil), s.Participants...)
	}
	return c
}

// Validate checks a candidate record before it is saved.
func Validate(s Info) error {
	if strings.TrimSpace(s.GroupName) == "" {
		return ErrBlankGroup
	}
	if _, ok := ParseDate(s.Date); !ok {
		return ErrBadDate
	}
	if math.IsNaN(s.Duration) || math.IsInf(s.Duration, 0) || s.Duration < 0 {
		return ErrBadDuration
	}
	for _, p := range s.Participants {
		if strings.TrimSpace(p) == "" {
			return ErrBlankParticipant
		}
	}
	return nil
}

// Normalize returns the form of s that is written to a store: group name,
// date and participant names trimmed, blank participants dropped.
func Normalize(s Info) Info {
	n := s.Clone()
	n.GroupName = strings.TrimSpace(s.GroupName)
	n.Date = strings.TrimSpace(s.Date)
	if s.Participants != nil {
		n.Participants = make([]string, 0, len(s.Participants))
		for _, p := range s.Participants {
			if p = strings.TrimSpace(p); p != "" {
				n.Participants = append(n.Participants, p)
			}
		}
	}
	return n
}

// SplitParticipants turns a comma separated list into participant names.
// Empty entries are dropped and surrounding whitespace is trimmed.
func SplitParticipants(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// JoinParticipants is the inverse of SplitParticipants.
func JoinParticipants(participants []string) string {
	return strings.Join(participants, ", ")
}
