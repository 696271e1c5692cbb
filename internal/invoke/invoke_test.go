package invoke

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/threadcall/internal/core"
	"github.com/sevigo/threadcall/internal/core/mocks"
	"github.com/sevigo/threadcall/internal/logger"
	"github.com/sevigo/threadcall/internal/loop"
	"github.com/sevigo/threadcall/internal/task"
)

const waitFor = 5 * time.Second

// widget is thread-affine state: its value may only change on the thread that
// owns it, and every change is reported together with the thread it ran on.
type widget struct {
	value   int
	changes chan change
}

type change struct {
	value  int
	thread core.ThreadID
}

func newWidget() *widget {
	return &widget{changes: make(chan change, 1)}
}

func (w *widget) SetValue(v int) {
	w.value = v
	w.changes <- change{value: v, thread: loop.CurrentID()}
}

func updateValue(w *widget, v int) {
	w.SetValue(v)
}

func startThread(t *testing.T, name string) *loop.Thread {
	t.Helper()
	th := loop.New(name, loop.WithLogger(logger.Discard()))
	require.NoError(t, th.Start())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), waitFor)
		defer cancel()
		_ = th.Stop(ctx)
	})
	return th
}

// onThread runs fn on th and waits for it to return.
func onThread(t *testing.T, th *loop.Thread, fn func()) {
	t.Helper()
	done := make(chan struct{})
	require.True(t, th.Post(core.TaskFunc(func() {
		defer close(done)
		fn()
	})))
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatalf("task on %s did not finish", th)
	}
}

func TestInvoke_Variants(t *testing.T) {
	mainThread := startThread(t, "mainThread")
	anotherThread := startThread(t, "anotherThread")

	invokers := []struct {
		name   string
		invoke func(target core.Thread, w *widget, v int) bool
	}{
		{
			name: "method",
			invoke: func(target core.Thread, w *widget, v int) bool {
				return Method1(target, w, (*widget).SetValue, v)
			},
		},
		{
			name: "function",
			invoke: func(target core.Thread, w *widget, v int) bool {
				return Func2(target, updateValue, w, v)
			},
		},
		{
			name: "lambda",
			invoke: func(target core.Thread, w *widget, v int) bool {
				return Func2(target, func(b *widget, nv int) { b.SetValue(nv) }, w, v)
			},
		},
		{
			name: "lambda w/ capture",
			invoke: func(target core.Thread, w *widget, v int) bool {
				return Func1(target, func(nv int) { w.SetValue(nv) }, v)
			},
		},
		{
			name: "dynamic",
			invoke: func(target core.Thread, w *widget, v int) bool {
				ok, err := Dynamic(target, updateValue, w, v)
				return ok && err == nil
			},
		},
	}

	targets := []struct {
		name   string
		thread *loop.Thread
		same   bool
	}{
		{name: "on same thread", thread: mainThread, same: true},
		{name: "on different thread", thread: anotherThread},
	}

	value := 0
	for _, inv := range invokers {
		for _, target := range targets {
			value += 10
			newValue := value
			t.Run(inv.name+" "+target.name, func(t *testing.T) {
				w := newWidget()

				var ok bool
				var valueOnReturn int
				onThread(t, mainThread, func() {
					ok = inv.invoke(target.thread, w, newValue)
					if target.same {
						valueOnReturn = w.value
					}
				})
				require.True(t, ok)

				select {
				case c := <-w.changes:
					assert.Equal(t, newValue, c.value)
					assert.Equal(t, target.thread.ID(), c.thread)
				case <-time.After(waitFor):
					t.Fatal("callable never ran")
				}
				if target.same {
					assert.Equal(t, newValue, valueOnReturn, "same-thread call must complete before invoke returns")
				}
			})
		}
	}
}

func TestInvoke_NeverRunsOnCaller(t *testing.T) {
	worker := startThread(t, "worker")
	caller := startThread(t, "caller")

	ran := make(chan core.ThreadID, 1)
	var returned atomic.Bool
	onThread(t, caller, func() {
		assert.True(t, Func(worker, func() { ran <- loop.CurrentID() }))
		returned.Store(true)
	})

	select {
	case id := <-ran:
		assert.Equal(t, worker.ID(), id)
		assert.NotEqual(t, caller.ID(), id)
	case <-time.After(waitFor):
		t.Fatal("callable never ran")
	}
	assert.True(t, returned.Load())
}

func TestInvoke_ArgumentFidelityUnderConcurrency(t *testing.T) {
	worker := startThread(t, "worker")

	type args struct {
		id    int
		label string
		ratio float64
		tags  [2]string
	}

	const callers = 50
	results := make(chan args, callers)
	record := func(id int, label string, ratio float64, tags [2]string) {
		results <- args{id: id, label: label, ratio: ratio, tags: tags}
	}

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			label := fmt.Sprintf("call-%d", i)
			tags := [2]string{label, "x"}
			assert.True(t, Func4(worker, record, i, label, float64(i)/2, tags))
			// The unit holds its own copy of the array.
			tags[0] = "mutated"
		}()
	}
	wg.Wait()

	got := make(map[int]args, callers)
	for range callers {
		select {
		case a := <-results:
			got[a.id] = a
		case <-time.After(waitFor):
			t.Fatalf("only %d of %d calls arrived", len(got), callers)
		}
	}
	for i := range callers {
		label := fmt.Sprintf("call-%d", i)
		assert.Equal(t, args{id: i, label: label, ratio: float64(i) / 2, tags: [2]string{label, "x"}}, got[i])
	}
}

func TestInvoke_ArityForms(t *testing.T) {
	worker := startThread(t, "worker")

	type counter struct{ calls []string }
	c := &counter{}
	add := func(s string) { c.calls = append(c.calls, s) }

	require.True(t, Func(worker, func() { add("f0") }))
	require.True(t, Func1(worker, add, "f1"))
	require.True(t, Func2(worker, func(a, b string) { add(a + b) }, "f", "2"))
	require.True(t, Func3(worker, func(a string, b int, d bool) { add(fmt.Sprintf("%s%d%t", a, b, d)) }, "f", 3, true))
	require.True(t, FuncR0(worker, func() int { add("r0"); return 0 }))
	require.True(t, FuncR1(worker, func(s string) error { add(s); return errors.New("ignored") }, "r1"))
	require.True(t, FuncR2(worker, func(a string, n int) int { add(fmt.Sprint(a, n)); return n }, "r", 2))
	require.True(t, FuncR3(worker, func(a, b, d string) string { add(a + b + d); return "" }, "r", "3", ""))
	require.True(t, FuncR4(worker, func(a string, b, d, e int) bool { add(fmt.Sprint(a, b+d+e)); return true }, "r", 1, 1, 2))
	require.True(t, Method0(worker, c, func(c *counter) { c.calls = append(c.calls, "m0") }))
	require.True(t, Method2(worker, c, func(c *counter, a, b string) { c.calls = append(c.calls, a+b) }, "m", "2"))
	require.True(t, Method3(worker, c, func(c *counter, a string, b, d int) { c.calls = append(c.calls, fmt.Sprint(a, b+d)) }, "m", 1, 2))

	var calls []string
	onThread(t, worker, func() { calls = append(calls, c.calls...) })
	assert.Equal(t, []string{"f0", "f1", "f2", "f3true", "r0", "r1", "r2", "r3", "r4", "m0", "m2", "m3"}, calls)
}

func TestInvoke_FIFOPerTargetThread(t *testing.T) {
	worker := startThread(t, "worker")

	const posters, perPoster = 10, 10
	seen := make(map[int][]int)
	record := func(poster, seq int) { seen[poster] = append(seen[poster], seq) }

	var wg sync.WaitGroup
	for p := range posters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seq := range perPoster {
				assert.True(t, Func2(worker, record, p, seq))
			}
		}()
	}
	wg.Wait()

	var snapshot map[int][]int
	onThread(t, worker, func() { snapshot = seen })

	require.Len(t, snapshot, posters)
	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	for p := range posters {
		assert.Equal(t, want, snapshot[p], "poster %d", p)
	}
}

func TestInvoke_NoDoubleRun(t *testing.T) {
	worker := startThread(t, "worker")

	var token atomic.Int32
	require.True(t, Func(worker, func() { token.Add(1) }))
	onThread(t, worker, func() {})
	onThread(t, worker, func() {})

	assert.Equal(t, int32(1), token.Load())
}

func TestInvoke_AfterTeardownFails(t *testing.T) {
	worker := startThread(t, "worker")
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, worker.Stop(ctx))

	ran := false
	assert.False(t, Func(worker, func() { ran = true }))
	assert.False(t, Func1(worker, func(bool) { ran = true }, true))
	assert.False(t, Method1(worker, newWidget(), (*widget).SetValue, 1))

	ok, err := Dynamic(worker, func() { ran = true })
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, ran)
}

func TestInvoke_NilTarget(t *testing.T) {
	ran := false
	assert.False(t, Func(nil, func() { ran = true }))
	assert.False(t, Func2(nil, func(int, int) { ran = true }, 1, 2))
	ok, err := Dynamic(nil, func() { ran = true })
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, QuitWhenDrained(nil))

	var gone *loop.Thread
	assert.False(t, Func(gone, func() { ran = true }))
	assert.False(t, FuncR1(gone, func(int) int { ran = true; return 0 }, 1))
	assert.False(t, Method0(gone, &ran, func(b *bool) { *b = true }))
	ok, err = Dynamic(gone, func() { ran = true })
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, QuitWhenDrained(gone))
	assert.False(t, ran)
}

func TestInvoke_WithMockThread(t *testing.T) {
	const targetID = core.ThreadID(1 << 40)

	tests := []struct {
		name     string
		onTarget bool
		accept   bool
		wantOK   bool
		wantRan  bool
	}{
		{name: "same thread runs inline without posting", onTarget: true, wantOK: true, wantRan: true},
		{name: "cross thread hand-off accepted", accept: true, wantOK: true},
		{name: "cross thread hand-off rejected", accept: false, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			target := mocks.NewMockThread(ctrl)
			target.EXPECT().ID().Return(targetID).AnyTimes()

			if tt.onTarget {
				setCurrentThread(t, targetID)
			} else {
				target.EXPECT().Post(gomock.Any()).Return(tt.accept).Times(1)
			}

			ran := false
			ok := Func1(target, func(v bool) { ran = v }, true)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRan, ran)
		})
	}
}

func TestInvoke_PostedUnitRunsCallable(t *testing.T) {
	ctrl := gomock.NewController(t)
	target := mocks.NewMockThread(ctrl)
	target.EXPECT().ID().Return(core.ThreadID(1 << 41)).AnyTimes()

	var posted core.Task
	target.EXPECT().Post(gomock.Any()).DoAndReturn(func(unit core.Task) bool {
		posted = unit
		return true
	})

	got := ""
	require.True(t, Func2(target, func(a string, b int) { got = fmt.Sprint(a, b) }, "n", 7))
	require.NotNil(t, posted)
	assert.Empty(t, got, "cross-thread call must not run before the target executes it")

	posted.Execute()
	assert.Equal(t, "n7", got)
	assert.PanicsWithValue(t, task.ErrAlreadyExecuted, posted.Execute)
}

func TestDynamic_MismatchIsReportedBeforeAnything(t *testing.T) {
	ctrl := gomock.NewController(t)
	target := mocks.NewMockThread(ctrl)

	ran := false
	ok, err := Dynamic(target, func(int, string) { ran = true }, "wrong", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrArgumentMismatch)
	assert.False(t, ok)
	assert.False(t, ran)
}

func setCurrentThread(t *testing.T, id core.ThreadID) {
	t.Helper()
	prev := currentThread
	currentThread = func() core.ThreadID { return id }
	t.Cleanup(func() { currentThread = prev })
}
