// Package fsops wraps the filesystem primitives behind the terminal's
// builtin commands. Every function takes absolute paths; resolving user
// input against the session working directory happens in the caller.
package fsops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// List enumerates the entries of dir, sorted by name. Directories get a
// trailing "/", symlinks a trailing "@".
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case entry.Type()&os.ModeSymlink != 0:
			name += "@"
		case entry.IsDir():
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// MakeDir creates a directory and any missing parents. An already existing
// directory is an error, matching mkdir(1).
func MakeDir(path string) error {
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("cannot create directory '%s': file exists", filepath.Base(path))
	}
	return os.MkdirAll(path, 0o755)
}

// Remove deletes a file or an empty directory. Non-empty directories are
// refused rather than removed recursively.
func Remove(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("cannot remove '%s': directory not empty", filepath.Base(path))
		}
		return nil
	}
	return os.Remove(path)
}

// RemoveDir deletes an empty directory.
func RemoveDir(path string) error {
	return os.Remove(path)
}

// Touch creates an empty file, or updates the modification time when the
// file already exists. Missing parent directories are created.
func Touch(path string) error {
	if _, err := os.Stat(path); err == nil {
		now := time.Now()
		return os.Chtimes(path, now, now)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, nil, 0o644)
}

// ReadFile returns the contents of a file.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Move renames src to dst. When dst is an existing directory the source is
// moved into it under its base name.
func Move(src, dst string) error {
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}
	return os.Rename(src, dst)
}

// Copy copies a file or a directory tree. When dst is an existing directory
// the source is copied into it under its base name.
func Copy(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(dst); err == nil && dstInfo.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}
	if info.IsDir() {
		return copyTree(src, dst)
	}
	return copyFile(src, dst, info.Mode())
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
