//go:build windows

package loop

import "golang.org/x/sys/windows"

// affinityKey identifies the OS thread the caller is running on.
func affinityKey() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
