// Package folderchronicle provides the public Go library API for
// FolderChronicle.
//
// FolderChronicle files the regular files of a directory into YYYY/MM
// subfolders named after each file's modification (or creation) time. In
// move mode every candidate is first copied into a timestamped backup folder
// inside the directory.
//
// # Basic Usage
//
//	client, err := folderchronicle.New(folderchronicle.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Sort(ctx, folderchronicle.SortOptions{
//	    BaseDir:        "/home/me/Pictures",
//	    IncludeSubdirs: true,
//	})
//
//	// Or observe each file as it is handled:
//	for ev := range client.Stream(ctx, opts) {
//	    fmt.Println(ev.Phase, ev.Source, ev.Err)
//	}
package folderchronicle

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/bianoble/folderchronicle/internal/engine"
	"github.com/bianoble/folderchronicle/internal/lock"
)

// ErrInvalidFolder is returned when the base directory is missing or is not
// a directory.
var ErrInvalidFolder = errors.New("please select a valid folder")

// ErrBusy is returned when another run holds the lock for the same folder.
var ErrBusy = lock.ErrBusy

// Options configures a FolderChronicle client.
type Options struct {
	// Logger receives structured diagnostics. Nil discards them.
	Logger *slog.Logger

	// Location is the timezone used for YYYY/MM folders and backup folder
	// names. Nil means time.Local.
	Location *time.Location

	// Now overrides the clock used for backup folder names.
	Now func() time.Time

	// LockDir is where run locks are kept. Empty uses the user cache directory.
	LockDir string

	// DisableLock skips the run lock entirely.
	DisableLock bool
}

// Client is the main entry point for the FolderChronicle library.
type Client struct {
	logger      *slog.Logger
	location    *time.Location
	now         func() time.Time
	lockDir     string
	disableLock bool
}

// New creates a new FolderChronicle Client.
func New(opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	lockDir := opts.LockDir
	if lockDir == "" && !opts.DisableLock {
		lockDir = lock.DefaultDir()
	}

	return &Client{
		logger:      logger,
		location:    loc,
		now:         opts.Now,
		lockDir:     lockDir,
		disableLock: opts.DisableLock,
	}, nil
}

// ValidateBaseDir checks that path names an existing directory and returns
// its absolute path with symlinks resolved.
func ValidateBaseDir(path string) (string, error) {
	if path == "" {
		return "", ErrInvalidFolder
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFolder, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFolder, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFolder, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidFolder, path)
	}
	return resolved, nil
}

// Sort runs one sort over opts.BaseDir. Per-file failures are reported in
// the result, not as an error. A failure to read the base directory returns
// the partial result together with the scan error.
func (c *Client) Sort(ctx context.Context, opts SortOptions) (*RunResult, error) {
	return c.run(ctx, opts, nil)
}

// SortWithProgress is Sort with fn called after every backup copy and every
// relocation attempt.
func (c *Client) SortWithProgress(ctx context.Context, opts SortOptions, fn func(Event)) (*RunResult, error) {
	return c.run(ctx, opts, fn)
}

// Stream runs a sort and yields an Event after every backup copy and every
// relocation attempt. Breaking out of the loop cancels the run after the
// file in progress.
func (c *Client) Stream(ctx context.Context, opts SortOptions) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		stopped := false
		progress := func(ev Event) {
			if stopped {
				return
			}
			if !yield(ev) {
				stopped = true
				cancel()
			}
		}
		if _, err := c.run(ctx, opts, progress); err != nil {
			c.logger.Warn("stream run failed", "base", opts.BaseDir, "error", err)
		}
	}
}

// Plan reports where every candidate would go without changing anything.
func (c *Client) Plan(ctx context.Context, opts SortOptions) (*Plan, error) {
	base, err := ValidateBaseDir(opts.BaseDir)
	if err != nil {
		return nil, err
	}
	opts.BaseDir = base
	return c.engine("", nil).Plan(ctx, opts)
}

func (c *Client) run(ctx context.Context, opts SortOptions, progress func(Event)) (*RunResult, error) {
	base, err := ValidateBaseDir(opts.BaseDir)
	if err != nil {
		return nil, err
	}
	opts.BaseDir = base

	runID := uuid.NewString()
	if !c.disableLock {
		rl, err := lock.Acquire(c.lockDir, base)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := rl.Release(); err != nil {
				c.logger.Warn("releasing run lock", "path", rl.Path, "error", err)
			}
		}()
		runID = rl.ID
	}

	return c.engine(runID, progress).Run(ctx, opts)
}

func (c *Client) engine(runID string, progress func(Event)) *engine.SortEngine {
	return &engine.SortEngine{
		Location: c.location,
		Now:      c.now,
		Logger:   c.logger,
		Progress: progress,
		RunID:    runID,
	}
}
