// Package terminal provides the line-reading adapters: an interactive
// readline-backed reader with history recall and tab completion, and a
// plain scanner for piped input.
package terminal

import (
	"errors"
	"io"

	"github.com/chzyer/readline"

	"github.com/doeshing/goterm/internal/ports"
)

// ReadlineReader wraps chzyer/readline for interactive sessions.
type ReadlineReader struct {
	rl *readline.Instance
}

// NewReadlineReader builds the interactive reader. The completer supplies
// candidates for both command names and path arguments.
func NewReadlineReader(completer readline.AutoCompleter, historyLimit int) (*ReadlineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "goterm$ ",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistoryLimit:      historyLimit,
		HistorySearchFold: true,
		AutoComplete:      completer,
	})
	if err != nil {
		return nil, err
	}
	return &ReadlineReader{rl: rl}, nil
}

// ReadLine implements ports.LineReader.
func (r *ReadlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ports.ErrInterrupted
	}
	if errors.Is(err, io.EOF) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	return line, nil
}

// Remember preloads a line into the in-memory recall buffer.
func (r *ReadlineReader) Remember(line string) {
	_ = r.rl.SaveHistory(line)
}

// Close releases the terminal.
func (r *ReadlineReader) Close() error {
	return r.rl.Close()
}

var _ ports.LineReader = (*ReadlineReader)(nil)
