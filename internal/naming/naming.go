// Package naming picks collision-free destination paths.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Unique returns path if nothing exists there. Otherwise it probes
// "stem (1).ext", "stem (2).ext", ... in the same directory and returns the
// first that does not exist. Existence is checked without following symlinks,
// so a dangling link still counts as taken.
func Unique(path string) string {
	return UniqueFunc(path, exists)
}

// UniqueFunc is Unique with a caller-supplied existence check.
func UniqueFunc(path string, taken func(string) bool) string {
	if !taken(path) {
		return path
	}

	dir := filepath.Dir(path)
	stem, ext := SplitExt(filepath.Base(path))
	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		if !taken(candidate) {
			return candidate
		}
	}
}

// SplitExt splits a file name into stem and extension. The extension is the
// final ".xxx" element; a name whose only dot is the leading one (".bashrc")
// or that ends in a lone dot ("name.") has no extension.
func SplitExt(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	if ext == name || ext == "." || strings.TrimLeft(name, ".") == strings.TrimPrefix(ext, ".") {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !os.IsNotExist(err)
}

// Reservations hands out unique destinations for a run that has not written
// anything yet. Paths it has returned count as taken alongside whatever
// already exists on disk. Not safe for concurrent use.
type Reservations struct {
	claimed map[string]bool
}

// NewReservations creates an empty reservation set.
func NewReservations() *Reservations {
	return &Reservations{claimed: make(map[string]bool)}
}

// Claim returns a path that neither exists nor was claimed before, and
// records it as claimed.
func (r *Reservations) Claim(path string) string {
	got := UniqueFunc(path, func(p string) bool {
		return r.claimed[p] || exists(p)
	})
	r.claimed[got] = true
	return got
}
