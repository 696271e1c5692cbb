package core

import "strconv"

// ThreadID identifies a Thread within the process.
type ThreadID uint64

// NoThread is the identity reported for any goroutine that is not running a
// thread's event loop.
const NoThread ThreadID = 0

func (id ThreadID) String() string {
	if id == NoThread {
		return "none"
	}
	return "thread-" + strconv.FormatUint(uint64(id), 10)
}
