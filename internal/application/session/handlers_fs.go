package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/goterm/internal/infrastructure/fsops"
	"github.com/doeshing/goterm/internal/pkg/filesystem"
)

var errMissingOperand = errors.New("missing operand")

func (s *Service) handleList(_ context.Context, args []string) (string, error) {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	names, err := fsops.List(s.resolve(target))
	if err != nil {
		return "", fmt.Errorf("cannot access '%s': %v", target, underlying(err))
	}
	return strings.Join(names, "\n"), nil
}

func (s *Service) handleChangeDir(_ context.Context, args []string) (string, error) {
	target := filesystem.UserHomeDir()
	if len(args) > 0 {
		target = args[0]
	}
	resolved := s.resolve(target)
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("%s: %v", target, underlying(err))
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: not a directory", target)
	}
	s.cwd = resolved
	return "", nil
}

func (s *Service) handlePrintWorkingDir(context.Context, []string) (string, error) {
	return s.cwd, nil
}

func (s *Service) handleMakeDir(_ context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", errMissingOperand
	}
	var lines []string
	for _, arg := range args {
		if err := fsops.MakeDir(s.resolve(arg)); err != nil {
			lines = append(lines, fmt.Sprintf("mkdir: %v", underlying(err)))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Service) handleRemove(_ context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", errMissingOperand
	}
	var lines []string
	for _, arg := range args {
		if err := fsops.Remove(s.resolve(arg)); err != nil {
			lines = append(lines, fmt.Sprintf("rm: cannot remove '%s': %v", arg, underlying(err)))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Service) handleRemoveDir(_ context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", errMissingOperand
	}
	var lines []string
	for _, arg := range args {
		if err := fsops.RemoveDir(s.resolve(arg)); err != nil {
			lines = append(lines, fmt.Sprintf("rmdir: %s: %v", arg, underlying(err)))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Service) handleCat(_ context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", errMissingOperand
	}
	var parts []string
	for _, arg := range args {
		content, err := fsops.ReadFile(s.resolve(arg))
		if err != nil {
			parts = append(parts, fmt.Sprintf("cat: %s: %v", arg, underlying(err)))
			continue
		}
		parts = append(parts, strings.TrimSuffix(content, "\n"))
	}
	return strings.Join(parts, "\n"), nil
}

func (s *Service) handleTouch(_ context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", errMissingOperand
	}
	var lines []string
	for _, arg := range args {
		if err := fsops.Touch(s.resolve(arg)); err != nil {
			lines = append(lines, fmt.Sprintf("touch: %s: %v", arg, underlying(err)))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Service) handleMove(_ context.Context, args []string) (string, error) {
	return s.transfer(args, "mv", fsops.Move)
}

func (s *Service) handleCopy(_ context.Context, args []string) (string, error) {
	return s.transfer(args, "cp", fsops.Copy)
}

// transfer implements the shared mv/cp shape: N sources and a destination,
// which must be a directory when there is more than one source.
func (s *Service) transfer(args []string, name string, op func(src, dst string) error) (string, error) {
	if len(args) < 2 {
		return "", errMissingOperand
	}
	sources, dest := args[:len(args)-1], s.resolve(args[len(args)-1])
	if len(sources) > 1 {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return "", underlying(err)
		}
	}
	var lines []string
	for _, src := range sources {
		if err := op(s.resolve(src), dest); err != nil {
			lines = append(lines, fmt.Sprintf("%s: %s: %v", name, src, underlying(err)))
		}
	}
	return strings.Join(lines, "\n"), nil
}

// underlying strips the os wrapper so messages read like "no such file or
// directory" instead of a full *PathError chain.
func underlying(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Err
	}
	return err
}
