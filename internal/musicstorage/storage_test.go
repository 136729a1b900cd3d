package musicstorage

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteFile(t *testing.T) {
	dir := t.TempDir()
	fs := NewFilesystem(dir)

	path := filepath.Join(dir, "a.mp3")
	writeFile(t, path, "x")

	if err := fs.DeleteFile(path); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file still exists after delete")
	}
}

func TestDeleteFileRejectsDirectories(t *testing.T) {
	dir := t.TempDir()
	fs := NewFilesystem(dir)

	sub := filepath.Join(dir, "album")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := fs.DeleteFile(sub); err == nil {
		t.Error("expected error deleting a directory")
	}
}

func TestDeleteFileOutsideRoot(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	fs := NewFilesystem(root)

	path := filepath.Join(outside, "a.mp3")
	writeFile(t, path, "x")

	if err := fs.DeleteFile(path); err == nil {
		t.Error("expected error for path outside storage root")
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("file outside root must be untouched")
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	fs := NewFilesystem(dir)

	src := filepath.Join(dir, "a.mp3")
	dst := filepath.Join(dir, "library", "artist", "a.mp3")
	writeFile(t, src, "audio bytes")

	if err := fs.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "audio bytes" {
		t.Errorf("dst content = %q, err = %v", got, err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("copy must not remove the source")
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	fs := NewFilesystem(dir)

	src := filepath.Join(dir, "a.mp3")
	dst := filepath.Join(dir, "library", "a.mp3")
	writeFile(t, src, "audio")

	if err := fs.MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source still exists after move")
	}
	if got, _ := os.ReadFile(dst); string(got) != "audio" {
		t.Errorf("dst content = %q", got)
	}
}
