//go:build !unix && !windows

package sandbox

func isEXDEV(error) bool { return false }
