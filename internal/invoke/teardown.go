package invoke

import (
	"log/slog"

	"github.com/sevigo/threadcall/internal/core"
	"github.com/sevigo/threadcall/internal/task"
)

// QuitWhenDrained arranges for t to quit once every task posted to it so far
// has run. It posts a final task to t with PostLast, so t rejects any work
// offered after the call; when the final task runs, it delivers t.Quit to t's
// owner, the thread in charge of t's lifecycle. A thread without an owner
// quits itself. It returns false if t no longer accepts work.
//
// The final task is always queued, even when called from t itself, so that
// work already waiting in t's queue is not cut short.
func QuitWhenDrained(t core.Stopper) bool {
	if isNil(t) {
		return false
	}
	if t.PostLast(task.New1(quitOnOwner, t)) {
		return true
	}
	slog.Debug("invoke: thread already stopping, quit not scheduled", "target", t.ID())
	return false
}

func quitOnOwner(t core.Stopper) {
	owner := t.Owner()
	if owner == nil {
		t.Quit()
		return
	}
	if !Method0(owner, t, core.Stopper.Quit) {
		// The owner is gone; nothing else will stop t.
		t.Quit()
	}
}
