package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stwalsh4118/grouplog/internal/session"
)

// FileStore keeps one JSON file per session in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a FileStore rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// GetAllSessions reads all JSON session files from the store directory.
// Returns an empty slice if the directory doesn't exist.
// Malformed JSON files are skipped silently.
func (f *FileStore) GetAllSessions() ([]session.Info, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var sessions []session.Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(f.dir, entry.Name()))
		if err != nil {
			continue
		}

		var s session.Info
		if err := json.Unmarshal(data, &s); err != nil || s.ID == "" {
			continue
		}

		sessions = append(sessions, s)
	}

	return sessions, nil
}

// GetAllGroupNames returns the distinct group names.
func (f *FileStore) GetAllGroupNames() ([]string, error) {
	sessions, err := f.GetAllSessions()
	if err != nil {
		return nil, err
	}
	return groupNames(sessions), nil
}

// SaveSession writes s to <id>.json, replacing any previous file.
// The write goes through a temp file and rename so readers never see a
// partial record.
func (f *FileStore) SaveSession(s session.Info) error {
	if s.ID == "" {
		return ErrMissingID
	}
	path, err := f.pathFor(s.ID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// DeleteSession removes <id>.json. A missing file is not an error.
func (f *FileStore) DeleteSession(id string) error {
	path, err := f.pathFor(id)
	if err != nil {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close is a no-op.
func (f *FileStore) Close() error { return nil }

// pathFor maps an id to its file, rejecting ids that would escape the directory.
func (f *FileStore) pathFor(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid session id %q", id)
	}
	return filepath.Join(f.dir, id+".json"), nil
}
