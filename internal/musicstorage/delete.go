package musicstorage

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jansuchomel/cadence/internal/tasks"
)

const deleteConcurrency = 4

// DeleteResult reports the outcome of one deletion batch. Files that
// could not be removed are listed in Failed; an empty list means complete
// success.
type DeleteResult struct {
	Failed []FailedFile
}

// FailedFile is one file that could not be deleted.
type FailedFile struct {
	Path string
	Err  error
}

// DeleteFiles removes the given files through storage, registering the work
// with the task manager and running deletions with bounded parallelism.
// It blocks until the batch finishes and is meant to be run off the UI
// goroutine; per-file failures are collected, never returned early.
func DeleteFiles(ctx context.Context, tm *tasks.Manager, storage Storage, paths []string) DeleteResult {
	if len(paths) == 0 {
		return DeleteResult{}
	}

	var taskID int
	if tm != nil {
		taskID = tm.Start("Deleting files")
		defer tm.Finish(taskID)
	}

	var (
		mu     sync.Mutex
		failed []FailedFile
		done   int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(deleteConcurrency)

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := storage.DeleteFile(path)

			mu.Lock()
			if err != nil {
				failed = append(failed, FailedFile{Path: path, Err: err})
			}
			done++
			progress := done
			mu.Unlock()

			if tm != nil {
				tm.SetProgress(taskID, progress, len(paths))
			}
			return nil
		})
	}
	_ = g.Wait()

	return DeleteResult{Failed: failed}
}
