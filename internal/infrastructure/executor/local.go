// Package executor spawns unrecognized input as external commands.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/doeshing/goterm/internal/domain"
	"github.com/doeshing/goterm/internal/ports"
)

// LocalExecutor runs argv directly as a child process of the terminal,
// streaming its output and waiting for it to exit.
type LocalExecutor struct{}

// NewLocalExecutor builds a new executor.
func NewLocalExecutor() *LocalExecutor {
	return &LocalExecutor{}
}

// Execute implements ports.CommandExecutor. The child runs with dir as its
// working directory and its streams wired straight to stdout/stderr, so
// interactive output appears as it is produced.
func (e *LocalExecutor) Execute(ctx context.Context, dir string, argv []string, stdout, stderr io.Writer) (domain.ExecutionResult, error) {
	if len(argv) == 0 {
		return domain.ExecutionResult{}, errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	err := cmd.Run()
	result := domain.ExecutionResult{
		Ran:        err == nil,
		DurationMS: time.Since(start).Milliseconds(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// the command ran but failed; its exit code is the visible result
		result.Ran = true
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		result.Err = fmt.Errorf("%s: command not found", argv[0])
		result.ExitCode = 127
		return result, result.Err
	}
	if err != nil {
		result.Err = err
		result.ExitCode = 1
		return result, err
	}
	return result, nil
}

var _ ports.CommandExecutor = (*LocalExecutor)(nil)
