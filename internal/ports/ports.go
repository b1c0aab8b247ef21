// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The session core depends only on these contracts; concrete adapters live in
// the infrastructure layer (readline terminal, gopsutil metrics, sqlite
// history, os/exec spawning). Swapping an adapter never touches the core.
package ports

import (
	"context"
	"errors"
	"io"

	"github.com/doeshing/goterm/internal/domain"
)

// ErrInterrupted reports that the user cancelled the pending input line
// (Ctrl+C at the prompt). The session discards the line and keeps running.
var ErrInterrupted = errors.New("line read interrupted")

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.goterm/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// LineReader supplies one input line at a time. Interactive implementations
// provide history recall and tab completion; non-interactive ones just scan.
type LineReader interface {
	// ReadLine blocks for the next line. It returns io.EOF when input is
	// exhausted and ErrInterrupted when the user cancels the current line.
	ReadLine(prompt string) (string, error)
	// Remember makes a line recallable in the current editing session.
	Remember(line string)
	Close() error
}

// HistoryStore persists accepted input lines across sessions.
type HistoryStore interface {
	Append(entry domain.HistoryEntry) error
	// Entries returns prior lines, oldest first. A missing backing file is
	// not an error; it yields an empty slice.
	Entries(limit int) ([]domain.HistoryEntry, error)
	Clear() error
	Path() string
}

// MetricsProvider is the source of CPU, memory and process data.
// Two adapters exist: gopsutil-backed and /proc-backed.
type MetricsProvider interface {
	Name() string
	CPU(context.Context) (domain.CPUStats, error)
	Memory(context.Context) (domain.MemoryStats, error)
	Disk(ctx context.Context, path string) (domain.DiskStats, error)
	Processes(context.Context) ([]domain.ProcessInfo, error)
}

// CommandExecutor spawns unrecognized input as an external command, relaying
// its output streams and surfacing the exit code.
type CommandExecutor interface {
	Execute(ctx context.Context, dir string, argv []string, stdout, stderr io.Writer) (domain.ExecutionResult, error)
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
