// Package scan enumerates the files a sort run is allowed to touch.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BackupDirPrefix starts the name of every backup folder. Directories with
// this prefix are never scanned.
const BackupDirPrefix = "FolderChronicle Backup"

// ScanError reports that the base directory itself could not be read.
type ScanError struct {
	Base string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scanning %s: %v", e.Base, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// SkippedDir is a subdirectory left out of a recursive scan because it could
// not be read.
type SkippedDir struct {
	Path string
	Err  error
}

// Result is the candidate set of one scan.
type Result struct {
	// Files holds regular files in lexical walk order.
	Files   []string
	Skipped []SkippedDir
}

// Files returns the regular files eligible for sorting under base.
//
// Without recursion only the direct children of base are considered. With
// recursion the tree is walked depth-first; backup folders are pruned and
// files already under a YYYY/MM/ prefix relative to base are left out.
// Unreadable subdirectories are recorded in Result.Skipped. An unreadable base
// is a *ScanError.
func Files(base string, recursive bool) (*Result, error) {
	if recursive {
		return walk(base)
	}
	return list(base)
}

func list(base string) (*Result, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, &ScanError{Base: base, Err: err}
	}

	res := &Result{}
	for _, e := range entries {
		path := filepath.Join(base, e.Name())
		if isRegular(path, e) {
			res.Files = append(res.Files, path)
		}
	}
	return res, nil
}

func walk(base string) (*Result, error) {
	res := &Result{}
	// The trailing separator makes WalkDir follow a base that is itself a
	// symlink. Paths below it are joined and cleaned, so they keep base's spelling.
	root := base
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			res.Skipped = append(res.Skipped, SkippedDir{Path: path, Err: walkErr})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && IsBackupDirName(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if rel, err := filepath.Rel(base, path); err == nil && IsSorted(rel) {
			return nil
		}
		if isRegular(path, d) {
			res.Files = append(res.Files, path)
		}
		return nil
	})
	if err != nil {
		return nil, &ScanError{Base: base, Err: err}
	}
	return res, nil
}

// isRegular reports whether path is a regular file, following a symlink to
// its target.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsBackupDirName reports whether a directory name marks a backup folder.
func IsBackupDirName(name string) bool {
	return strings.HasPrefix(name, BackupDirPrefix)
}

// IsSorted reports whether rel, a path relative to the base directory,
// already sits under a YYYY/MM/ structure: at least three segments, the
// first exactly four ASCII digits and the second exactly two.
func IsSorted(rel string) bool {
	parts := strings.Split(filepath.ToSlash(filepath.Clean(rel)), "/")
	return len(parts) >= 3 && isDigits(parts[0], 4) && isDigits(parts[1], 2)
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
