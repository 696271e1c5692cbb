//go:build !linux && !windows

package loop

import (
	"bytes"
	"runtime"
	"strconv"
)

// affinityKey falls back to the goroutine id on platforms where x/sys exposes
// no thread id. The loop goroutine never changes, so the key is just as stable.
func affinityKey() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}
