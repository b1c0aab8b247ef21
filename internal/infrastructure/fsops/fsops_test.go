package fsops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestListDecoratesEntries(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "b.txt"), "data")
	if err := os.Mkdir(filepath.Join(dir, "a"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(dir, "b.txt"), filepath.Join(dir, "c")); err != nil {
		t.Fatal(err)
	}

	got, err := List(dir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"a/", "b.txt", "c@"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestListMissingDir(t *testing.T) {
	if _, err := List(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestMakeDirRefusesExisting(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "sub")
	if err := MakeDir(target); err != nil {
		t.Fatalf("MakeDir() error = %v", err)
	}
	if err := MakeDir(target); err == nil {
		t.Fatal("expected error creating existing directory")
	}
}

func TestMakeDirCreatesParents(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := MakeDir(target); err != nil {
		t.Fatalf("MakeDir() error = %v", err)
	}
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s, err = %v", target, err)
	}
}

func TestRemoveFileAndEmptyDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	mustWrite(t, file, "")
	if err := Remove(file); err != nil {
		t.Fatalf("Remove(file) error = %v", err)
	}

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := Remove(sub); err != nil {
		t.Fatalf("Remove(empty dir) error = %v", err)
	}
}

func TestRemoveRefusesNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(sub, "f.txt"), "x")

	if err := Remove(sub); err == nil {
		t.Fatal("expected error removing non-empty directory")
	}
	if _, err := os.Stat(sub); err != nil {
		t.Fatalf("directory should survive failed remove: %v", err)
	}
}

func TestTouchCreatesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new", "f.txt")
	if err := Touch(path); err != nil {
		t.Fatalf("Touch() error = %v", err)
	}
	content, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if content != "" {
		t.Errorf("touched file should be empty, got %q", content)
	}
}

func TestTouchUpdatesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	mustWrite(t, path, "keep me")
	if err := Touch(path); err != nil {
		t.Fatalf("Touch() error = %v", err)
	}
	content, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if content != "keep me" {
		t.Errorf("touch must not truncate, got %q", content)
	}
}

func TestMoveIntoDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "f.txt")
	mustWrite(t, src, "payload")
	dst := filepath.Join(dir, "sub")
	if err := os.Mkdir(dst, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := Move(src, dst); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source should be gone, err = %v", err)
	}
	content, err := ReadFile(filepath.Join(dst, "f.txt"))
	if err != nil || content != "payload" {
		t.Fatalf("moved file content = %q, err = %v", content, err)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "f.txt")
	mustWrite(t, src, "payload")

	dst := filepath.Join(dir, "g.txt")
	if err := Copy(src, dst); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	for _, path := range []string{src, dst} {
		content, err := ReadFile(path)
		if err != nil || content != "payload" {
			t.Fatalf("content of %s = %q, err = %v", path, content, err)
		}
	}
}

func TestCopyDirectoryTree(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tree")
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(src, "nested", "f.txt"), "deep")

	dst := filepath.Join(dir, "copy")
	if err := Copy(src, dst); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	content, err := ReadFile(filepath.Join(dst, "nested", "f.txt"))
	if err != nil || content != "deep" {
		t.Fatalf("copied content = %q, err = %v", content, err)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
