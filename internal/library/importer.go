package library

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/jansuchomel/cadence/internal/musicstorage"
	"github.com/jansuchomel/cadence/internal/tasks"
)

// Importer copies or moves files into the library directory and records
// them in the track store.
type Importer struct {
	storage musicstorage.Storage
	tracks  *TrackStore
	dir     string // library root directory
}

// NewImporter creates an importer placing files under dir.
func NewImporter(storage musicstorage.Storage, tracks *TrackStore, dir string) *Importer {
	return &Importer{storage: storage, tracks: tracks, dir: dir}
}

// ImportResult reports the outcome of one import batch.
type ImportResult struct {
	Imported int
	Failed   []musicstorage.FailedFile
}

// Copy imports files by copying them into the library.
func (im *Importer) Copy(ctx context.Context, tm *tasks.Manager, paths []string) ImportResult {
	return im.run(ctx, tm, "Copying to library", paths, im.storage.CopyFile)
}

// Move imports files by moving them into the library.
func (im *Importer) Move(ctx context.Context, tm *tasks.Manager, paths []string) ImportResult {
	return im.run(ctx, tm, "Moving to library", paths, im.storage.MoveFile)
}

func (im *Importer) run(ctx context.Context, tm *tasks.Manager, name string,
	paths []string, transfer func(src, dst string) error) ImportResult {

	if len(paths) == 0 {
		return ImportResult{}
	}

	var taskID int
	if tm != nil {
		taskID = tm.Start(name)
		defer tm.Finish(taskID)
	}

	var res ImportResult
	for i, src := range paths {
		if ctx.Err() != nil {
			break
		}

		track := readTrack(src)
		dst := im.destination(track)

		if err := transfer(src, dst); err != nil {
			res.Failed = append(res.Failed, musicstorage.FailedFile{Path: src, Err: err})
		} else {
			track.Path = dst
			im.tracks.Add(track)
			res.Imported++
		}

		if tm != nil {
			tm.SetProgress(taskID, i+1, len(paths))
		}
	}
	return res
}

// destination places a track under <library>/<artist>/<filename>, or
// directly under the library root when the artist is unknown.
func (im *Importer) destination(t Track) string {
	base := filepath.Base(t.Path)
	if t.Artist != "" {
		return filepath.Join(im.dir, sanitize(t.Artist), base)
	}
	return filepath.Join(im.dir, base)
}

// readTrack builds track metadata from the file's tags, falling back to
// an "Artist - Title" parse of the filename.
func readTrack(path string) Track {
	t := Track{Path: path}
	if info, err := os.Stat(path); err == nil {
		t.FileSize = info.Size()
	}

	if f, err := os.Open(path); err == nil {
		if m, err := tag.ReadFrom(f); err == nil {
			t.Title = m.Title()
			t.Artist = m.Artist()
			t.Album = m.Album()
		}
		f.Close()
	}

	if t.Title == "" {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if before, after, ok := strings.Cut(name, " - "); ok && t.Artist == "" {
			t.Artist = strings.TrimSpace(before)
			t.Title = strings.TrimSpace(after)
		} else {
			t.Title = name
		}
	}
	return t
}

// sanitize strips path separators from tag values used as directory names.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, string(filepath.Separator), "_")
	return strings.TrimSpace(s)
}
