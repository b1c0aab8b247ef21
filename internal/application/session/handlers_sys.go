package session

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

const helpText = `Built-in commands:
  ls [path]        - list directory contents
  cd [dir]         - change directory
  pwd              - print current working directory
  mkdir NAME...    - create directories
  rm NAME...       - remove files (won't remove non-empty dirs)
  rmdir NAME...    - remove empty directories
  cat FILE...      - print file contents
  touch FILE...    - create or update timestamp
  mv SRC... DEST   - move files or directories
  cp SRC... DEST   - copy files or directories
  clear            - clear the screen
  sysinfo          - show system information & resource usage
  ps               - list processes
  top              - show top CPU-consuming processes
  history          - show command history
  help             - show this help
  exit/quit        - quit the terminal

Anything else runs as an external command with its output relayed here.`

func (s *Service) handleHelp(context.Context, []string) (string, error) {
	return helpText, nil
}

func (s *Service) handleClear(context.Context, []string) (string, error) {
	// ANSI erase display + cursor home
	fmt.Fprint(s.Stdout, "\x1b[2J\x1b[H")
	return "", nil
}

func (s *Service) handleSysinfo(ctx context.Context, _ []string) (string, error) {
	lines := []string{
		fmt.Sprintf("Platform: %s/%s", runtime.GOOS, runtime.GOARCH),
		fmt.Sprintf("Go: %s", runtime.Version()),
		fmt.Sprintf("CWD: %s", s.cwd),
	}

	if usage, err := s.Metrics.Disk(ctx, s.cwd); err == nil {
		lines = append(lines, fmt.Sprintf("Disk: total=%s used=%s free=%s",
			humanize.IBytes(usage.Total), humanize.IBytes(usage.Used), humanize.IBytes(usage.Free)))
	}

	degraded := false
	if cpuStats, err := s.Metrics.CPU(ctx); err == nil {
		lines = append(lines, fmt.Sprintf("CPU: %.1f%%", cpuStats.UsedPercent))
	} else {
		degraded = true
	}
	if memStats, err := s.Metrics.Memory(ctx); err == nil {
		lines = append(lines, fmt.Sprintf("Memory: %.1f%% (%s / %s)",
			memStats.UsedPercent, humanize.IBytes(memStats.Used), humanize.IBytes(memStats.Total)))
	} else {
		degraded = true
	}
	if degraded {
		lines = append(lines, "CPU/Memory: unavailable")
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Service) handleProcessList(ctx context.Context, _ []string) (string, error) {
	procs, err := s.Metrics.Processes(ctx)
	if err != nil {
		s.Logger.Warn("process list failed", map[string]interface{}{"provider": s.Metrics.Name(), "error": err.Error()})
		return "ps: process information unavailable", nil
	}
	lines := []string{fmt.Sprintf("%6s %-10s %5s %5s %s", "PID", "USER", "CPU%", "MEM%", "CMD")}
	for _, proc := range procs {
		user := proc.User
		if len(user) > 10 {
			user = user[:10]
		}
		lines = append(lines, fmt.Sprintf("%6d %-10s %5.1f %5.1f %s",
			proc.PID, user, proc.CPUPercent, proc.MemPercent, proc.Command))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Service) handleTop(ctx context.Context, _ []string) (string, error) {
	procs, err := s.Metrics.Processes(ctx)
	if err != nil {
		s.Logger.Warn("process list failed", map[string]interface{}{"provider": s.Metrics.Name(), "error": err.Error()})
		return "top: process information unavailable", nil
	}
	sort.Slice(procs, func(i, j int) bool {
		return procs[i].CPUPercent > procs[j].CPUPercent
	})
	count := s.Config.Metrics.TopCount
	if count <= 0 {
		count = 10
	}
	if len(procs) > count {
		procs = procs[:count]
	}
	lines := []string{fmt.Sprintf("%6s %5s %5s %s", "PID", "CPU%", "MEM%", "CMD")}
	for _, proc := range procs {
		lines = append(lines, fmt.Sprintf("%6d %5.1f %5.1f %s",
			proc.PID, proc.CPUPercent, proc.MemPercent, proc.Command))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Service) handleHistory(_ context.Context, _ []string) (string, error) {
	entries, err := s.History.Entries(0)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "(no history)", nil
	}
	lines := make([]string, 0, len(entries))
	for i, entry := range entries {
		lines = append(lines, fmt.Sprintf("%d: %s", i+1, entry.Line))
	}
	return strings.Join(lines, "\n"), nil
}
