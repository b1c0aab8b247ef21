package history

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/goterm/internal/domain"
	"github.com/doeshing/goterm/internal/pkg/filesystem"
	"github.com/doeshing/goterm/internal/ports"
)

// DefaultFileName is the history log created in the user's home directory.
const DefaultFileName = ".goterm_history"

// FileStore appends entered lines to a plain text file, one per line.
// Consecutive duplicates are kept; the log is never rotated or capped.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by path, or ~/.goterm_history when
// path is empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = filepath.Join(filesystem.UserHomeDir(), DefaultFileName)
	}
	return &FileStore{path: path}
}

// Append implements ports.HistoryStore.
func (f *FileStore) Append(entry domain.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = file.WriteString(entry.Line + "\n")
	return err
}

// Entries loads prior lines, oldest first. A missing file means no history.
func (f *FileStore) Entries(limit int) ([]domain.HistoryEntry, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []domain.HistoryEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		entries = append(entries, domain.HistoryEntry{Line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

var _ ports.HistoryStore = (*FileStore)(nil)
