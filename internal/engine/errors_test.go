package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"testing"

	"github.com/bianoble/folderchronicle/internal/sandbox"
)

func TestKind(t *testing.T) {
	pathErr := func(errno error) error {
		return &fs.PathError{Op: "open", Path: "/x", Err: errno}
	}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"permission", pathErr(syscall.EACCES), "PermissionError"},
		{"not exist", pathErr(syscall.ENOENT), "FileNotFoundError"},
		{"exists", pathErr(syscall.EEXIST), "FileExistsError"},
		{"is dir", pathErr(syscall.EISDIR), "IsADirectoryError"},
		{"not dir", pathErr(syscall.ENOTDIR), "NotADirectoryError"},
		{"disk full", pathErr(syscall.ENOSPC), "DiskFullError"},
		{"cross device link", &os.LinkError{Op: "rename", Old: "a", New: "b", Err: syscall.EXDEV}, "CrossDeviceError"},
		{"cross device fallback", &sandbox.CrossDeviceError{Src: "a", Dst: "b", Err: os.ErrPermission}, "CrossDeviceError"},
		{"other errno", pathErr(syscall.EIO), "OSError"},
		{"wrapped", fmt.Errorf("ctx: %w", pathErr(syscall.ENOENT)), "FileNotFoundError"},
		{"plain", errors.New("boom"), "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestDescribeUsesCause(t *testing.T) {
	cause := &fs.PathError{Op: "open", Path: "/x/a.txt", Err: syscall.ENOENT}
	fe := &FileError{Phase: PhaseRelocate, Path: "/x/a.txt", Err: cause}

	want := "FileNotFoundError: " + cause.Error()
	if got := Describe(fe); got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}
	if !errors.Is(fe, fs.ErrNotExist) {
		t.Error("FileError should unwrap to its cause")
	}
}
