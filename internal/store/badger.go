package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/stwalsh4118/grouplog/internal/session"
)

// sessionKeyPrefix namespaces session records in the key space.
const sessionKeyPrefix = "session/"

// BadgerStore persists sessions as JSON values in a BadgerDB directory.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the BadgerDB at dirPath.
func OpenBadger(dirPath string) (*BadgerStore, error) {
	if dirPath == "" {
		return nil, fmt.Errorf("badger store: empty path")
	}
	opts := badger.DefaultOptions(dirPath).
		WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func sessionKey(id string) []byte {
	return []byte(sessionKeyPrefix + id)
}

// GetAllSessions returns every stored session, ordered by key.
func (b *BadgerStore) GetAllSessions() ([]session.Info, error) {
	var sessions []session.Info

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sessionKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			var info session.Info
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &info)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", item.Key(), err)
			}
			sessions = append(sessions, info)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetAllGroupNames returns the distinct group names.
func (b *BadgerStore) GetAllGroupNames() ([]string, error) {
	sessions, err := b.GetAllSessions()
	if err != nil {
		return nil, err
	}
	return groupNames(sessions), nil
}

// SaveSession creates or overwrites the record for s.ID.
func (b *BadgerStore) SaveSession(s session.Info) error {
	if s.ID == "" {
		return ErrMissingID
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(s.ID), data)
	})
}

// DeleteSession removes the record for id. Unknown ids are ignored.
func (b *BadgerStore) DeleteSession(id string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(sessionKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Close closes the BadgerDB instance.
func (b *BadgerStore) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
