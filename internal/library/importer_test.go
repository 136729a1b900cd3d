package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jansuchomel/cadence/internal/musicstorage"
	"github.com/jansuchomel/cadence/internal/tasks"
)

func newTestImporter(t *testing.T) (*Importer, *TrackStore, string) {
	t.Helper()
	libDir := filepath.Join(t.TempDir(), "library")
	ts := NewTrackStore(openTestDB(t))
	im := NewImporter(musicstorage.NewFilesystem(libDir), ts, libDir)
	return im, ts, libDir
}

func writeSong(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not really audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImporterCopy(t *testing.T) {
	im, ts, libDir := newTestImporter(t)
	src := writeSong(t, t.TempDir(), "Queen - One Vision.mp3")

	res := im.Copy(context.Background(), tasks.NewManager(), []string{src})

	if res.Imported != 1 || len(res.Failed) != 0 {
		t.Fatalf("expected 1 imported and no failures, got %+v", res)
	}

	// Source survives a copy.
	if _, err := os.Stat(src); err != nil {
		t.Errorf("expected source to remain: %v", err)
	}

	dst := filepath.Join(libDir, "Queen", "Queen - One Vision.mp3")
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("expected copied file at %s: %v", dst, err)
	}

	if ts.Count() != 1 {
		t.Fatalf("expected exactly one track row, got %d", ts.Count())
	}
	track := ts.List()[0]
	if track.Artist != "Queen" || track.Title != "One Vision" {
		t.Errorf("expected filename-parsed metadata, got %+v", track)
	}
	if track.Path != dst {
		t.Errorf("expected stored path %s, got %s", dst, track.Path)
	}
}

func TestImporterMove(t *testing.T) {
	im, ts, libDir := newTestImporter(t)
	src := writeSong(t, t.TempDir(), "ambient.mp3")

	res := im.Move(context.Background(), tasks.NewManager(), []string{src})

	if res.Imported != 1 {
		t.Fatalf("expected 1 imported, got %+v", res)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("expected source to be gone after move")
	}

	// No artist in the name so the file lands in the library root.
	dst := filepath.Join(libDir, "ambient.mp3")
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("expected moved file at %s: %v", dst, err)
	}
	if !ts.Has(dst) {
		t.Error("expected track row for moved file")
	}
}

func TestImporterCollectsFailures(t *testing.T) {
	im, ts, _ := newTestImporter(t)
	good := writeSong(t, t.TempDir(), "good.mp3")
	missing := filepath.Join(t.TempDir(), "missing.mp3")

	res := im.Copy(context.Background(), nil, []string{missing, good})

	if res.Imported != 1 {
		t.Errorf("expected the good file to import, got %d", res.Imported)
	}
	if len(res.Failed) != 1 || res.Failed[0].Path != missing {
		t.Errorf("expected the missing file to fail, got %+v", res.Failed)
	}
	if ts.Count() != 1 {
		t.Errorf("expected one track row, got %d", ts.Count())
	}
}

func TestImporterEmptyBatch(t *testing.T) {
	im, ts, _ := newTestImporter(t)

	res := im.Copy(context.Background(), nil, nil)

	if res.Imported != 0 || len(res.Failed) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
	if ts.Count() != 0 {
		t.Errorf("expected no track rows, got %d", ts.Count())
	}
}
