package terminal

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/doeshing/goterm/internal/pkg/filesystem"
)

// Completer implements readline.AutoCompleter. The first token completes
// against builtin names plus executables on PATH; later tokens complete
// against the filesystem, resolved relative to the session working
// directory.
type Completer struct {
	builtins []string
	// workingDir yields the session's current directory at completion time.
	workingDir func() string

	scanPath bool
	pathOnce sync.Once
	pathCmds []string
}

// NewCompleter builds a completer over the given builtin command names.
func NewCompleter(builtins []string, workingDir func() string, scanPath bool) *Completer {
	return &Completer{
		builtins:   builtins,
		workingDir: workingDir,
		scanPath:   scanPath,
	}
}

// Do implements the readline.AutoCompleter interface.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	before := string(line[:pos])
	start := strings.LastIndexAny(before, " \t") + 1
	word := before[start:]

	var candidates []string
	if start == 0 {
		candidates = c.commandCandidates(word)
	} else {
		candidates = c.pathCandidates(word)
	}

	var completions [][]rune
	for _, candidate := range candidates {
		if strings.HasPrefix(candidate, word) {
			completions = append(completions, []rune(candidate[len(word):]))
		}
	}
	return completions, len(word)
}

func (c *Completer) commandCandidates(prefix string) []string {
	seen := make(map[string]bool, len(c.builtins))
	candidates := make([]string, 0, len(c.builtins))
	for _, name := range c.builtins {
		candidates = append(candidates, name)
		seen[name] = true
	}
	if !c.scanPath {
		return candidates
	}
	c.pathOnce.Do(c.loadPathCommands)
	for _, name := range c.pathCmds {
		if !seen[name] {
			candidates = append(candidates, name)
			seen[name] = true
		}
	}
	return candidates
}

// loadPathCommands scans PATH once per session; new installs are not picked
// up until restart.
func (c *Completer) loadPathCommands() {
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				c.pathCmds = append(c.pathCmds, entry.Name())
			}
		}
	}
}

// pathCandidates lists the entries of the directory the word points into,
// returned in the user's spelling (relative stays relative, ~ stays ~).
func (c *Completer) pathCandidates(word string) []string {
	dirPart, base := filepath.Split(word)

	resolved := filesystem.ExpandHome(dirPart)
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(c.workingDir(), resolved)
	}

	entries, err := os.ReadDir(resolved)
	if err != nil {
		return nil
	}

	var candidates []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		candidate := dirPart + name
		if entry.IsDir() {
			candidate += string(filepath.Separator)
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}
