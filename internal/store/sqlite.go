package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/stwalsh4118/grouplog/internal/session"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id           TEXT PRIMARY KEY,
	group_name   TEXT NOT NULL,
	date         TEXT NOT NULL,
	duration     REAL NOT NULL DEFAULT 0,
	participants TEXT NOT NULL DEFAULT '[]',
	seq          INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_group_name ON sessions(group_name);
`

// SQLiteStore persists sessions in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens the SQLite database at the given path and
// initializes the schema.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite store: empty path")
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite handles one writer at a time

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// GetAllSessions returns every session in save order.
func (s *SQLiteStore) GetAllSessions() ([]session.Info, error) {
	rows, err := s.db.Query(`
		SELECT id, group_name, date, duration, participants
		FROM sessions ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []session.Info
	for rows.Next() {
		var info session.Info
		var participants string
		if err := rows.Scan(&info.ID, &info.GroupName, &info.Date, &info.Duration, &participants); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if err := json.Unmarshal([]byte(participants), &info.Participants); err != nil {
			return nil, fmt.Errorf("decode participants for %s: %w", info.ID, err)
		}
		sessions = append(sessions, info)
	}
	return sessions, rows.Err()
}

// GetAllGroupNames returns the distinct group names.
func (s *SQLiteStore) GetAllGroupNames() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT group_name FROM sessions
		WHERE group_name != '' ORDER BY group_name
	`)
	if err != nil {
		return nil, fmt.Errorf("query group names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan group name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// SaveSession inserts s or overwrites the row with the same id.
func (s *SQLiteStore) SaveSession(info session.Info) error {
	if info.ID == "" {
		return ErrMissingID
	}
	participants := info.Participants
	if participants == nil {
		participants = []string{}
	}
	encoded, err := json.Marshal(participants)
	if err != nil {
		return fmt.Errorf("encode participants: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO sessions (id, group_name, date, duration, participants, seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM sessions))
		ON CONFLICT(id) DO UPDATE SET
			group_name = excluded.group_name,
			date = excluded.date,
			duration = excluded.duration,
			participants = excluded.participants
	`, info.ID, info.GroupName, info.Date, info.Duration, string(encoded))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// DeleteSession removes the row with id if present.
func (s *SQLiteStore) DeleteSession(id string) error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
