//go:build linux

package filetime

import (
	"errors"
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

func stat(path string) (Times, error) {
	var sx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BASIC_STATS|unix.STATX_BTIME, &sx)
	if errors.Is(err, unix.ENOSYS) {
		return statCompat(path)
	}
	if err != nil {
		return Times{}, &fs.PathError{Op: "statx", Path: path, Err: err}
	}

	t := Times{
		Modified: statxTime(sx.Mtime),
		Accessed: statxTime(sx.Atime),
		Changed:  statxTime(sx.Ctime),
	}
	if sx.Mask&unix.STATX_BTIME != 0 {
		t.Born = statxTime(sx.Btime)
	}
	return t, nil
}

// statCompat covers kernels older than 4.11, which lack statx.
func statCompat(path string) (Times, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return Times{}, &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	return Times{
		Modified: time.Unix(st.Mtim.Unix()),
		Accessed: time.Unix(st.Atim.Unix()),
		Changed:  time.Unix(st.Ctim.Unix()),
	}, nil
}

func statxTime(ts unix.StatxTimestamp) time.Time {
	return time.Unix(ts.Sec, int64(ts.Nsec))
}
