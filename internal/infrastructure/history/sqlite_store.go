package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/goterm/internal/domain"
	"github.com/doeshing/goterm/internal/pkg/filesystem"
	"github.com/doeshing/goterm/internal/ports"
)

// SQLiteStore persists history in a SQLite database with per-entry metadata
// (timestamp, session, working directory, exit code). When the database
// cannot be opened it degrades to the plain file store.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	fallback *FileStore
	mu       sync.Mutex
}

// NewSQLiteStore creates (or opens) the ~/.goterm/history.db database.
func NewSQLiteStore() *SQLiteStore {
	path := filepath.Join(filesystem.UserHomeDir(), ".goterm", "history.db")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path, fallback: NewFileStore("")}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path, fallback: NewFileStore("")}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		session_id TEXT,
		line TEXT,
		dir TEXT,
		exit_code INTEGER
	);`)
	return err
}

// Append inserts a new entry.
func (s *SQLiteStore) Append(entry domain.HistoryEntry) error {
	if s.db == nil {
		return s.fallback.Append(entry)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO entries (timestamp, session_id, line, dir, exit_code)
		VALUES (?, ?, ?, ?, ?)`,
		entry.Timestamp.Format(time.RFC3339),
		entry.SessionID,
		entry.Line,
		entry.Dir,
		entry.ExitCode,
	)
	return err
}

// Entries returns history oldest first, optionally limited to the newest n.
func (s *SQLiteStore) Entries(limit int) ([]domain.HistoryEntry, error) {
	return s.Search("", limit)
}

// Search returns entries whose line contains the keyword, oldest first.
func (s *SQLiteStore) Search(keyword string, limit int) ([]domain.HistoryEntry, error) {
	if s.db == nil {
		return s.fallback.Entries(limit)
	}
	query := "SELECT timestamp, session_id, line, dir, exit_code FROM entries"
	var args []interface{}
	if keyword != "" {
		query += " WHERE line LIKE ?"
		args = append(args, "%"+keyword+"%")
	}
	query += " ORDER BY id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var ts string
		if err := rows.Scan(&ts, &entry.SessionID, &entry.Line, &entry.Dir, &entry.ExitCode); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			entry.Timestamp = t
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// reverse to oldest-first
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback.Clear()
	}
	_, err := s.db.Exec("DELETE FROM entries")
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

var _ ports.HistoryStore = (*SQLiteStore)(nil)
