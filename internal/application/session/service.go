// Package session implements the interactive read-eval-print loop: it owns
// the working directory, dispatches builtin commands and forwards everything
// else to the external command executor.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/doeshing/goterm/internal/domain"
	"github.com/doeshing/goterm/internal/pkg/filesystem"
	"github.com/doeshing/goterm/internal/pkg/shellwords"
	"github.com/doeshing/goterm/internal/ports"
)

// handlerFunc runs one builtin. The returned string is printed to stdout
// when non-empty; the error is rendered as a one-line message. Neither is
// ever fatal to the loop.
type handlerFunc func(ctx context.Context, args []string) (string, error)

// Service drives one terminal session.
type Service struct {
	Config   domain.Config
	Reader   ports.LineReader
	History  ports.HistoryStore
	Metrics  ports.MetricsProvider
	Executor ports.CommandExecutor
	Logger   ports.Logger

	Stdout io.Writer
	Stderr io.Writer

	// SessionID tags history entries written by this session.
	SessionID string

	// cwd is the session working directory. It is deliberately not the
	// process working directory: relative paths resolve against it and
	// child processes inherit it via cmd.Dir, so tests can drive a session
	// without touching process state.
	cwd      string
	handlers map[string]handlerFunc
	lastExit int
}

// New builds a session rooted at the process working directory.
func New() *Service {
	s := &Service{Stdout: os.Stdout, Stderr: os.Stderr}
	if wd, err := os.Getwd(); err == nil {
		s.cwd = wd
	} else {
		s.cwd = filesystem.UserHomeDir()
	}
	s.registerHandlers()
	return s
}

// Dir returns the session working directory.
func (s *Service) Dir() string {
	return s.cwd
}

// SetDir overrides the starting directory. Used by tests and the cobra
// --dir flag; cd performs its own validation.
func (s *Service) SetDir(dir string) {
	s.cwd = dir
}

func (s *Service) registerHandlers() {
	s.handlers = map[string]handlerFunc{
		"ls":      s.handleList,
		"cd":      s.handleChangeDir,
		"pwd":     s.handlePrintWorkingDir,
		"mkdir":   s.handleMakeDir,
		"rm":      s.handleRemove,
		"rmdir":   s.handleRemoveDir,
		"cat":     s.handleCat,
		"touch":   s.handleTouch,
		"mv":      s.handleMove,
		"cp":      s.handleCopy,
		"clear":   s.handleClear,
		"help":    s.handleHelp,
		"sysinfo": s.handleSysinfo,
		"ps":      s.handleProcessList,
		"top":     s.handleTop,
		"history": s.handleHistory,
	}
}

// Run executes the loop until exit/quit or end-of-input. The returned error
// is only ever an I/O failure of the line reader itself.
func (s *Service) Run(ctx context.Context) error {
	s.preloadHistory()
	if s.Config.Prompt.Banner {
		fmt.Fprintln(s.Stdout, "goterm - type 'help' for commands, 'exit' to quit")
		fmt.Fprintf(s.Stdout, "History file: %s\n", s.History.Path())
	}

	for {
		line, err := s.Reader.ReadLine(s.prompt())
		if errors.Is(err, ports.ErrInterrupted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := s.Eval(ctx, line); quit {
			break
		}
	}

	fmt.Fprintln(s.Stdout, "Command history has been saved. Goodbye!")
	return nil
}

// Eval handles one accepted input line and reports whether the session
// should terminate.
func (s *Service) Eval(ctx context.Context, line string) bool {
	tokens, err := shellwords.Split(line)
	if err != nil {
		fmt.Fprintf(s.Stderr, "goterm: %v\n", err)
		s.record(line, 1)
		return false
	}
	if len(tokens) == 0 {
		return false
	}

	name, args := tokens[0], tokens[1:]
	if name == "exit" || name == "quit" {
		s.record(line, 0)
		return true
	}

	if handler, ok := s.handlers[name]; ok {
		out, err := handler(ctx, args)
		exit := 0
		if err != nil {
			fmt.Fprintf(s.Stderr, "%s: %v\n", name, err)
			exit = 1
		}
		if out != "" {
			fmt.Fprintln(s.Stdout, out)
		}
		s.lastExit = exit
		s.record(line, exit)
		return false
	}

	s.runExternal(ctx, line, tokens)
	return false
}

// LastExitCode reports the exit status of the most recent command.
func (s *Service) LastExitCode() int {
	return s.lastExit
}

func (s *Service) runExternal(ctx context.Context, line string, argv []string) {
	result, err := s.Executor.Execute(ctx, s.cwd, argv, s.Stdout, s.Stderr)
	if err != nil {
		fmt.Fprintf(s.Stderr, "%v\n", err)
	} else if result.ExitCode != 0 {
		fmt.Fprintf(s.Stderr, "%s: exit status %d\n", argv[0], result.ExitCode)
	}
	s.lastExit = result.ExitCode
	s.record(line, result.ExitCode)
	s.Logger.Debug("external command finished", map[string]interface{}{
		"argv":        argv,
		"exit_code":   result.ExitCode,
		"duration_ms": result.DurationMS,
	})
}

func (s *Service) record(line string, exitCode int) {
	entry := domain.HistoryEntry{
		Timestamp: time.Now(),
		SessionID: s.SessionID,
		Line:      line,
		Dir:       s.cwd,
		ExitCode:  exitCode,
	}
	if err := s.History.Append(entry); err != nil {
		s.Logger.Warn("history append failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) preloadHistory() {
	entries, err := s.History.Entries(s.Config.History.RecallLimit)
	if err != nil {
		s.Logger.Warn("history load failed", map[string]interface{}{"error": err.Error()})
		return
	}
	for _, entry := range entries {
		s.Reader.Remember(entry.Line)
	}
}

func (s *Service) prompt() string {
	format := s.Config.Prompt.Format
	if format == "" {
		format = "goterm:%s$ "
	}
	if strings.Contains(format, "%s") {
		return fmt.Sprintf(format, s.cwd)
	}
	return format
}

// resolve turns a user-supplied path into an absolute one: ~ expands to the
// home directory and relative paths are joined to the session cwd.
func (s *Service) resolve(path string) string {
	path = filesystem.ExpandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.cwd, path)
}
