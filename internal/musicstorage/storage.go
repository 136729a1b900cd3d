// Package musicstorage is the file backend the browser and library
// delegate to for destructive operations.
package musicstorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage abstracts the music file backend.
type Storage interface {
	// DeleteFile removes the file at path.
	DeleteFile(path string) error
	// CopyFile copies src to dst, creating parent directories.
	CopyFile(src, dst string) error
	// MoveFile moves src to dst, falling back to copy+delete across
	// filesystems.
	MoveFile(src, dst string) error
}

// Filesystem is Storage bound to the local filesystem, rooted at root.
// Paths outside the root are rejected.
type Filesystem struct {
	root string
}

// NewFilesystem creates a filesystem storage rooted at root ("/" for the
// whole tree).
func NewFilesystem(root string) *Filesystem {
	return &Filesystem{root: filepath.Clean(root)}
}

// DeleteFile implements Storage.
func (f *Filesystem) DeleteFile(path string) error {
	if err := f.check(path); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s: is a directory", path)
	}
	return os.Remove(path)
}

// CopyFile implements Storage.
func (f *Filesystem) CopyFile(src, dst string) error {
	if err := f.check(dst); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating destination dir: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}

// MoveFile implements Storage.
func (f *Filesystem) MoveFile(src, dst string) error {
	if err := f.check(dst); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating destination dir: %w", err)
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	// Rename fails across filesystems.
	if err := f.CopyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func (f *Filesystem) check(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(f.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s: outside storage root %s", path, f.root)
	}
	return nil
}
