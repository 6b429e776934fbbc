package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bianoble/folderchronicle/internal/backup"
	"github.com/bianoble/folderchronicle/internal/filetime"
	"github.com/bianoble/folderchronicle/internal/naming"
	"github.com/bianoble/folderchronicle/internal/sandbox"
	"github.com/bianoble/folderchronicle/internal/scan"
)

// SortEngine files the regular files of a directory into YYYY/MM folders.
//
// A run is strictly sequential: scan, optional backup, then one
// classify-and-relocate pass over the candidates in scan order. Per-file
// failures are logged and counted; only a failure to read the base directory
// ends a run early. The engine keeps no state between runs; callers must
// serialize runs against the same base directory.
type SortEngine struct {
	// Location is the timezone used for YYYY/MM and the backup folder name.
	// Nil means time.Local.
	Location *time.Location

	// Now is the clock used for the backup folder name. Nil means time.Now.
	Now func() time.Time

	// Logger receives structured diagnostics. Nil discards them.
	Logger *slog.Logger

	// Progress, if set, is called after every backup copy and every
	// relocation attempt.
	Progress func(Event)

	// RunID tags the result and every log record.
	RunID string

	// Stat reads file timestamps. Nil means filetime.Stat.
	Stat func(path string) (filetime.Times, error)
}

// Run executes one sort run. A scan failure returns a result with
// StatusScanFailed together with the *scan.ScanError; every other outcome,
// including per-file failures, returns a nil error.
func (e *SortEngine) Run(ctx context.Context, opts SortOptions) (*RunResult, error) {
	log := e.logger().With("run_id", e.RunID, "base", opts.BaseDir)
	res := &RunResult{RunID: e.RunID, Action: opts.Action()}

	scanned, err := scan.Files(opts.BaseDir, opts.IncludeSubdirs)
	if err != nil {
		res.Status = StatusScanFailed
		res.Log = append(res.Log, "Failed to read directory: "+Describe(scanCause(err)))
		log.Error("scan failed", "error", err)
		return res, err
	}
	res.Skipped = scanned.Skipped
	for _, s := range scanned.Skipped {
		log.Warn("skipped unreadable directory", "path", s.Path, "error", s.Err)
	}

	files := scanned.Files
	log.Info("scan complete", "files", len(files), "recursive", opts.IncludeSubdirs)
	if len(files) == 0 {
		res.Status = StatusNothingToDo
		res.Log = []string{NoFilesMessage}
		return res, nil
	}

	if !opts.CopyNoBackup {
		if ctx.Err() != nil {
			res.Status = StatusCanceled
			return res, nil
		}
		if !e.backup(ctx, res, files, opts.BaseDir, log) {
			res.Status = StatusCanceled
			log.Warn("run canceled during backup")
			return res, nil
		}
	}

	res.Status = StatusCompleted
	for i, src := range files {
		if ctx.Err() != nil {
			res.Status = StatusCanceled
			log.Warn("run canceled", "attempted", i, "total", len(files))
			break
		}

		fr := e.relocate(opts, src)
		res.Files = append(res.Files, fr)
		name := filepath.Base(src)
		if fr.Err != nil {
			res.Failed++
			res.Log = append(res.Log, fmt.Sprintf("Error moving %s: %s", name, Describe(fr.Err)))
			log.Warn("relocation failed", "path", src, "error", fr.Err)
		} else {
			res.Succeeded++
			res.Log = append(res.Log, fmt.Sprintf("%s: %s -> %s/%s/", res.Action, name, fr.Year, fr.Month))
			log.Debug("relocated", "path", src, "destination", fr.Destination)
		}

		e.emit(Event{
			Phase:       PhaseRelocate,
			Index:       i + 1,
			Total:       len(files),
			Source:      src,
			Destination: fr.Destination,
			Err:         fr.Err,
		})
	}

	log.Info("run finished", "status", res.Status, "succeeded", res.Succeeded, "failed", res.Failed)
	return res, nil
}

// backup runs the backup stage and reports whether it ran to completion.
func (e *SortEngine) backup(ctx context.Context, res *RunResult, files []string, base string, log *slog.Logger) bool {
	dir := backup.Dir(base, e.now())
	res.BackupDir = dir

	i := 0
	stage := &backup.Stage{
		Describe: Describe,
		OnFile: func(src, dst string, err error) {
			i++
			if err != nil {
				err = &FileError{Phase: PhaseBackup, Path: src, Err: err}
				log.Warn("backup failed", "path", src, "error", err)
			}
			e.emit(Event{Phase: PhaseBackup, Index: i, Total: len(files), Source: src, Destination: dst, Err: err})
		},
		Stop: func() bool { return ctx.Err() != nil },
	}

	br := stage.Run(files, base, dir)
	res.Failed += br.Errors
	res.Log = append(res.Log, br.Log...)
	log.Info("backup complete", "dir", dir, "copied", br.Copied, "errors", br.Errors, "stopped", br.Stopped)
	return !br.Stopped
}

// relocate copies or moves one file into base/YYYY/MM.
func (e *SortEngine) relocate(opts SortOptions, src string) FileResult {
	fr := FileResult{Source: src}
	fail := func(err error) FileResult {
		fr.Err = &FileError{Phase: PhaseRelocate, Path: src, Err: err}
		return fr
	}

	dst, year, month, err := e.target(opts, src)
	if err != nil {
		return fail(err)
	}
	fr.Year, fr.Month = year, month

	if err := sandbox.SafeMkdirAll(opts.BaseDir, filepath.Join(year, month), 0755); err != nil {
		return fail(err)
	}

	dst = naming.Unique(dst)
	fr.Destination = dst

	if opts.CopyNoBackup {
		err = sandbox.CopyFile(src, dst)
	} else {
		err = sandbox.Move(src, dst)
	}
	if err != nil {
		return fail(err)
	}
	return fr
}

// target returns the intended destination of src before disambiguation.
func (e *SortEngine) target(opts SortOptions, src string) (dst, year, month string, err error) {
	times, err := e.stat(src)
	if err != nil {
		return "", "", "", err
	}
	ts := times.Pick(opts.UseCreationTime).In(e.location())
	year = fmt.Sprintf("%04d", ts.Year())
	month = fmt.Sprintf("%02d", int(ts.Month()))
	return filepath.Join(opts.BaseDir, year, month, filepath.Base(src)), year, month, nil
}

func (e *SortEngine) emit(ev Event) {
	if e.Progress != nil {
		e.Progress(ev)
	}
}

func (e *SortEngine) stat(path string) (filetime.Times, error) {
	if e.Stat != nil {
		return e.Stat(path)
	}
	return filetime.Stat(path)
}

func (e *SortEngine) location() *time.Location {
	if e.Location != nil {
		return e.Location
	}
	return time.Local
}

func (e *SortEngine) now() time.Time {
	if e.Now != nil {
		return e.Now().In(e.location())
	}
	return time.Now().In(e.location())
}

func (e *SortEngine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// scanCause strips the ScanError wrapper so the log line names the
// underlying filesystem error.
func scanCause(err error) error {
	var se *scan.ScanError
	if errors.As(err, &se) {
		return se.Err
	}
	return err
}
