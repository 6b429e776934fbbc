// Package filetime reads the timestamps a file sort can be keyed on.
//
// Modification time is available everywhere. "Creation time" is the birth
// time where the platform records one (statx on Linux, st_birthtime on
// Darwin, CreationTime on Windows) and the inode status-change time
// otherwise.
package filetime

import "time"

// Times holds the timestamps recorded for a single file. Fields the platform
// does not provide are left zero.
type Times struct {
	Modified time.Time
	Accessed time.Time
	Changed  time.Time
	Born     time.Time
}

// Created returns the best available creation timestamp: birth time, then
// status-change time, then modification time.
func (t Times) Created() time.Time {
	switch {
	case !t.Born.IsZero():
		return t.Born
	case !t.Changed.IsZero():
		return t.Changed
	default:
		return t.Modified
	}
}

// Pick returns the creation time when creation is true, the modification
// time otherwise.
func (t Times) Pick(creation bool) time.Time {
	if creation {
		return t.Created()
	}
	return t.Modified
}

// Stat reads the timestamps of path, following symlinks.
func Stat(path string) (Times, error) {
	return stat(path)
}
