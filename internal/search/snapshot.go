package search

import (
	"sort"

	"github.com/stwalsh4118/grouplog/internal/session"
)

// snapshot is the in-memory copy of the store, keyed by session ID.
// Records keep the order they were inserted in; replacing a record moves it
// to the end, like a remove followed by an append.
type snapshot struct {
	byID    map[string]session.Info
	seq     map[string]uint64
	nextSeq uint64
}

func newSnapshot(sessions []session.Info) *snapshot {
	s := &snapshot{
		byID: make(map[string]session.Info, len(sessions)),
		seq:  make(map[string]uint64, len(sessions)),
	}
	for _, info := range sessions {
		s.upsert(info)
	}
	return s
}

// upsert inserts info or replaces the record with the same ID.
func (s *snapshot) upsert(info session.Info) {
	s.byID[info.ID] = info
	s.seq[info.ID] = s.nextSeq
	s.nextSeq++
}

// remove deletes the record with id if present.
func (s *snapshot) remove(id string) {
	delete(s.byID, id)
	delete(s.seq, id)
}

func (s *snapshot) len() int {
	return len(s.byID)
}

// records returns every record in insertion order.
func (s *snapshot) records() []session.Info {
	out := make([]session.Info, 0, len(s.byID))
	for _, info := range s.byID {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		return s.seq[out[i].ID] < s.seq[out[j].ID]
	})
	return out
}
