package fsbrowser

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOSListerOrderAndHidden(t *testing.T) {
	dir := t.TempDir()
	for _, d := range []string{"zeta", "Alpha"} {
		if err := os.Mkdir(filepath.Join(dir, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range []string{"b.mp3", "a.flac", ".hidden"} {
		if err := os.WriteFile(filepath.Join(dir, f), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := OSLister{}.List(dir)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}

	want := []string{"Alpha", "zeta", "a.flac", "b.mp3"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
	if !entries[0].Dir || entries[2].Dir {
		t.Error("directories should sort before files")
	}
}

func TestOSListerIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.mp3")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	l := OSLister{}
	if !l.IsDir(dir) {
		t.Error("IsDir(dir) = false")
	}
	if l.IsDir(file) {
		t.Error("IsDir(file) = true")
	}
	if l.IsDir(filepath.Join(dir, "missing")) {
		t.Error("IsDir(missing) = true")
	}
}

func TestCachedListerServesStaleUntilInvalidated(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "one.mp3"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	cl := NewCachedLister(OSLister{}, 8)

	entries, err := cl.List(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("first listing: %v, err=%v", entries, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "two.mp3"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	// Still cached.
	entries, _ = cl.List(dir)
	if len(entries) != 1 {
		t.Fatalf("expected cached listing of 1 entry, got %d", len(entries))
	}

	cl.Invalidate(dir)
	entries, _ = cl.List(dir)
	if len(entries) != 2 {
		t.Fatalf("expected fresh listing of 2 entries, got %d", len(entries))
	}
}
