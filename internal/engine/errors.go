package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	"github.com/bianoble/folderchronicle/internal/sandbox"
)

// FileError is a per-file failure. It never aborts a run.
type FileError struct {
	Phase Phase
	Path  string
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Phase, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Kind classifies err into the label used in log lines.
func Kind(err error) string {
	var (
		pathErr *fs.PathError
		linkErr *os.LinkError
		errno   syscall.Errno
	)
	switch {
	case err == nil:
		return ""
	case sandbox.IsCrossDevice(err), errors.Is(err, syscall.EXDEV):
		return "CrossDeviceError"
	case errors.Is(err, fs.ErrPermission):
		return "PermissionError"
	case errors.Is(err, fs.ErrNotExist):
		return "FileNotFoundError"
	case errors.Is(err, fs.ErrExist):
		return "FileExistsError"
	case errors.Is(err, syscall.EISDIR):
		return "IsADirectoryError"
	case errors.Is(err, syscall.ENOTDIR):
		return "NotADirectoryError"
	case errors.Is(err, syscall.ENOSPC):
		return "DiskFullError"
	case errors.As(err, &pathErr), errors.As(err, &linkErr), errors.As(err, &errno):
		return "OSError"
	default:
		return "Error"
	}
}

// Describe renders err as "<Kind>: <message>". A FileError is described by
// its cause.
func Describe(err error) string {
	var fe *FileError
	if errors.As(err, &fe) {
		err = fe.Err
	}
	return Kind(err) + ": " + err.Error()
}
