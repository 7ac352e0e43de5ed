// Package store persists group session records.
//
// Every backend implements Store and treats the session ID as the only key:
// SaveSession creates or overwrites, DeleteSession of an unknown ID is a no-op.
// Calls are synchronous and there is no retry; errors go back to the caller.
package store

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/stwalsh4118/grouplog/internal/config"
	"github.com/stwalsh4118/grouplog/internal/session"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown store backend")

// ErrMissingID is returned when saving a record that has no ID.
var ErrMissingID = errors.New("session has no id")

// Store is the session persistence contract.
type Store interface {
	GetAllSessions() ([]session.Info, error)
	GetAllGroupNames() ([]string, error)
	SaveSession(s session.Info) error
	DeleteSession(id string) error
	io.Closer
}

// Open returns the backend named in cfg.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendFile:
		return NewFileStore(cfg.Path)
	case config.BackendSQLite:
		return OpenSQLite(cfg.Path)
	case config.BackendBadger:
		return OpenBadger(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// groupNames returns the distinct group names of sessions in sorted order.
func groupNames(sessions []session.Info) []string {
	seen := make(map[string]bool, len(sessions))
	names := make([]string, 0, len(sessions))
	for _, s := range sessions {
		if s.GroupName == "" || seen[s.GroupName] {
			continue
		}
		seen[s.GroupName] = true
		names = append(names, s.GroupName)
	}
	sort.Strings(names)
	return names
}
