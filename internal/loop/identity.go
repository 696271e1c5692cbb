package loop

import (
	"sync"

	"github.com/sevigo/threadcall/internal/core"
)

// active maps the affinity key of every running loop to its Thread.
var active sync.Map

// CurrentID returns the identity of the thread whose loop is running on the
// calling goroutine, or core.NoThread if there is none.
func CurrentID() core.ThreadID {
	if t := Current(); t != nil {
		return t.id
	}
	return core.NoThread
}

// Current returns the thread whose loop is running on the calling goroutine,
// or nil.
func Current() *Thread {
	v, ok := active.Load(affinityKey())
	if !ok {
		return nil
	}
	return v.(*Thread)
}

func register(key uint64, t *Thread) { active.Store(key, t) }

func unregister(key uint64) { active.Delete(key) }
