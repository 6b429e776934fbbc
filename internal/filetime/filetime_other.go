//go:build !linux && !darwin && !windows

package filetime

import "os"

func stat(path string) (Times, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Times{}, err
	}
	return Times{Modified: info.ModTime(), Accessed: info.ModTime()}, nil
}
