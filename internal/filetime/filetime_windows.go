//go:build windows

package filetime

import (
	"os"
	"syscall"
	"time"
)

func stat(path string) (Times, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Times{}, err
	}
	t := Times{Modified: info.ModTime()}
	if data, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		t.Accessed = time.Unix(0, data.LastAccessTime.Nanoseconds())
		t.Born = time.Unix(0, data.CreationTime.Nanoseconds())
	}
	return t, nil
}
