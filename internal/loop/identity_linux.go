//go:build linux

package loop

import "golang.org/x/sys/unix"

// affinityKey identifies the OS thread the caller is running on. A loop locks
// its goroutine to one OS thread, so no other goroutine can observe that key
// while the loop is running.
func affinityKey() uint64 {
	return uint64(unix.Gettid())
}
