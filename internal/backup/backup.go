// Package backup copies a run's candidate files into a timestamped folder
// under the base directory before anything is moved.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bianoble/folderchronicle/internal/sandbox"
	"github.com/bianoble/folderchronicle/internal/scan"
)

// TimestampLayout formats the run time embedded in a backup folder name.
const TimestampLayout = "2006-01-02 15-04-05"

// DirName returns the backup folder name for a run started at now.
// Two runs in the same second share a name.
func DirName(now time.Time) string {
	return scan.BackupDirPrefix + " " + now.Format(TimestampLayout)
}

// Dir returns the backup folder path under base for a run started at now.
func Dir(base string, now time.Time) string {
	return filepath.Join(base, DirName(now))
}

// Result holds the outcome of one backup stage.
type Result struct {
	Dir    string
	Copied int
	Errors int
	// Stopped is set when Stop ended the stage before every file was tried.
	Stopped bool
	// Log holds one "Backup error ..." line per failed file.
	Log []string
}

// Stage copies files into a backup folder.
type Stage struct {
	// Describe renders a copy error for the log. Defaults to err.Error().
	Describe func(error) string
	// OnFile, if set, is called after each copy attempt.
	OnFile func(src, dst string, err error)
	// Stop, if set, is checked before each file; returning true ends the stage.
	Stop func() bool
}

// Run copies every file into dir, keeping each file's path relative to base
// (or just its name when it is not under base). Parent directories are
// created as needed. A failed copy is counted and logged and the remaining
// files are still attempted.
func (s *Stage) Run(files []string, base, dir string) *Result {
	res := &Result{Dir: dir}
	for _, src := range files {
		if s.Stop != nil && s.Stop() {
			res.Stopped = true
			break
		}
		dst := filepath.Join(dir, RelPath(base, src))
		err := copyOne(src, dst)
		if err != nil {
			res.Errors++
			res.Log = append(res.Log, fmt.Sprintf("Backup error %s: %s", src, s.describe(err)))
		} else {
			res.Copied++
		}
		if s.OnFile != nil {
			s.OnFile(src, dst, err)
		}
	}
	return res
}

func (s *Stage) describe(err error) string {
	if s.Describe != nil {
		return s.Describe(err)
	}
	return err.Error()
}

func copyOne(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return sandbox.CopyFile(src, dst)
}

// RelPath returns src relative to base, or src's base name when src does not
// lie under base.
func RelPath(base, src string) string {
	rel, err := filepath.Rel(base, src)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(src)
	}
	return rel
}
