package domain

import "time"

// HistoryEntry is one accepted input line with session metadata.
//
// The plain-text backend persists only Line; the SQLite backend keeps the
// full record so history can be searched and exported later.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Line      string    `json:"line"`
	Dir       string    `json:"dir"`
	ExitCode  int       `json:"exit_code"`
}
