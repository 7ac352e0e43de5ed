package store

import (
	"sync"

	"github.com/stwalsh4118/grouplog/internal/session"
)

// MemoryStore keeps sessions in process memory in insertion order.
type MemoryStore struct {
	mu    sync.Mutex
	order []string
	byID  map[string]session.Info
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore(initial ...session.Info) *MemoryStore {
	m := &MemoryStore{byID: make(map[string]session.Info)}
	for _, s := range initial {
		_ = m.SaveSession(s)
	}
	return m
}

// GetAllSessions returns copies of all sessions.
func (m *MemoryStore) GetAllSessions() ([]session.Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]session.Info, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id].Clone())
	}
	return out, nil
}

// GetAllGroupNames returns the distinct group names.
func (m *MemoryStore) GetAllGroupNames() ([]string, error) {
	sessions, _ := m.GetAllSessions()
	return groupNames(sessions), nil
}

// SaveSession creates or overwrites the session with s.ID.
func (m *MemoryStore) SaveSession(s session.Info) error {
	if s.ID == "" {
		return ErrMissingID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[s.ID]; !ok {
		m.order = append(m.order, s.ID)
	}
	m.byID[s.ID] = s.Clone()
	return nil
}

// DeleteSession removes the session with id if present.
func (m *MemoryStore) DeleteSession(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return nil
	}
	delete(m.byID, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }
