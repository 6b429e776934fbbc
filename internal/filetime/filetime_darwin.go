//go:build darwin

package filetime

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

func stat(path string) (Times, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return Times{}, &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	return Times{
		Modified: time.Unix(st.Mtim.Unix()),
		Accessed: time.Unix(st.Atim.Unix()),
		Changed:  time.Unix(st.Ctim.Unix()),
		Born:     time.Unix(st.Btim.Unix()),
	}, nil
}
