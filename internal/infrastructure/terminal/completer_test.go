package terminal

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func complete(c *Completer, line string) ([]string, int) {
	runes := []rune(line)
	completions, length := c.Do(runes, len(runes))
	got := make([]string, 0, len(completions))
	for _, completion := range completions {
		got = append(got, string(completion))
	}
	sort.Strings(got)
	return got, length
}

func newTestCompleter(dir string) *Completer {
	return NewCompleter(
		[]string{"ls", "cd", "cat", "clear", "pwd"},
		func() string { return dir },
		false,
	)
}

func TestCompleterFirstTokenMatchesBuiltins(t *testing.T) {
	c := newTestCompleter(t.TempDir())

	got, length := complete(c, "c")
	want := []string{"at", "d", "lear"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("completions mismatch (-want +got):\n%s", diff)
	}
	if length != 1 {
		t.Errorf("length = %d, want 1", length)
	}
}

func TestCompleterNoMatchForUnknownPrefix(t *testing.T) {
	c := newTestCompleter(t.TempDir())
	got, _ := complete(c, "zzz")
	if len(got) != 0 {
		t.Errorf("expected no completions, got %v", got)
	}
}

func TestCompleterArgumentsCompleteAgainstCwd(t *testing.T) {
	dir := t.TempDir()
	mustTouch(t, filepath.Join(dir, "notes.txt"))
	mustTouch(t, filepath.Join(dir, "nothing.md"))
	if err := os.Mkdir(filepath.Join(dir, "node_modules"), 0o755); err != nil {
		t.Fatal(err)
	}
	c := newTestCompleter(dir)

	got, length := complete(c, "cat no")
	want := []string{
		"node_modules" + string(filepath.Separator),
		"notes.txt",
		"nothing.md",
	}
	for i := range want {
		want[i] = want[i][len("no"):]
	}
	sort.Strings(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("completions mismatch (-want +got):\n%s", diff)
	}
	if length != 2 {
		t.Errorf("length = %d, want 2", length)
	}
}

func TestCompleterArgumentsInSubdirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	mustTouch(t, filepath.Join(dir, "sub", "inner.txt"))
	c := newTestCompleter(dir)

	got, _ := complete(c, "cat sub/in")
	if diff := cmp.Diff([]string{"ner.txt"}, got); diff != "" {
		t.Errorf("completions mismatch (-want +got):\n%s", diff)
	}
}

func mustTouch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}
