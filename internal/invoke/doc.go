// Package invoke runs callables on a chosen thread.
//
// Every function in this package follows the same rule. If the calling
// goroutine is already running target's loop, the callable runs right away,
// in the caller's stack frame. Otherwise the callable and a copy of its
// arguments are packaged into a one-shot unit of work and posted to target's
// queue. The caller never blocks and never learns the callable's result. The
// returned bool reports only whether the call ran inline or was accepted by
// target's queue.
//
// Typed forms check the arguments at compile time:
//
//	invoke.Func2(worker, store.Put, key, value)
//	invoke.Method1(ui, label, (*Label).SetText, "done")
//
// Dynamic accepts any callable and checks its arguments at run time.
package invoke
