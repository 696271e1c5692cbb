package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/threadcall/internal/config"
	"github.com/sevigo/threadcall/internal/core"
	"github.com/sevigo/threadcall/internal/logger"
	"github.com/sevigo/threadcall/internal/metrics"
)

func newTestApp(cfg *config.Config) *App {
	return NewApp(cfg, logger.Discard(), metrics.NewLoopMetrics("threadcall_test"), nil)
}

func testConfig(threads, tasks int) *config.Config {
	return &config.Config{
		Logging:         logger.Config{Level: "error", Format: "text"},
		Threads:         threads,
		TasksPerThread:  tasks,
		TaskDuration:    time.Millisecond,
		ShutdownTimeout: 10 * time.Second,
	}
}

// finishedThreads reads the finished-thread counter, or -1 if it has not
// been reported yet. Only workers report to the observer; the pool's control
// thread does not.
func finishedThreads(a *App) float64 {
	families, err := a.Metrics().Registry().Gather()
	if err != nil {
		return -1
	}
	for _, mf := range families {
		if mf.GetName() == "threadcall_test_threads_finished_total" && len(mf.GetMetric()) == 1 {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return -1
}

func TestApp_RunTeardown(t *testing.T) {
	tests := []struct {
		name    string
		threads int
		tasks   int
	}{
		{name: "ten by ten", threads: 10, tasks: 10},
		{name: "single thread", threads: 1, tasks: 25},
		{name: "no tasks", threads: 3, tasks: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(testConfig(tt.threads, tt.tasks))

			report, err := a.RunTeardown(context.Background())
			require.NoError(t, err)
			assert.True(t, report.OK())
			assert.Equal(t, tt.threads*tt.tasks, report.Completed)
			assert.Equal(t, tt.threads*tt.tasks, report.Posted)
			assert.Zero(t, report.Misplaced)

			assert.Eventually(t, func() bool {
				return finishedThreads(a) == float64(tt.threads)
			}, time.Second, 5*time.Millisecond)
		})
	}
}

func TestApp_RunTeardownTimesOut(t *testing.T) {
	cfg := testConfig(1, 5)
	cfg.TaskDuration = 200 * time.Millisecond
	cfg.ShutdownTimeout = 50 * time.Millisecond
	a := newTestApp(cfg)

	report, err := a.RunTeardown(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, report.Completed, report.Expected())
}

func TestApp_Demo(t *testing.T) {
	a := newTestApp(testConfig(1, 0))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	calls, err := a.Demo(ctx)
	require.NoError(t, err)
	require.Len(t, calls, 8)

	byLabel := make(map[string]Call, len(calls))
	for _, c := range calls {
		byLabel[c.Label] = c
	}

	var executor core.ThreadID
	for _, form := range []string{"func", "func2", "method", "dynamic"} {
		cross, ok := byLabel["cross-thread "+form]
		require.True(t, ok, form)
		same, ok := byLabel["same-thread "+form]
		require.True(t, ok, form)

		assert.False(t, cross.Inline, form)
		assert.Equal(t, core.NoThread, cross.Caller, form)
		assert.True(t, same.Inline, form)
		assert.Equal(t, same.Executor, same.Caller, form)
		assert.Equal(t, cross.Executor, same.Executor, form)
		executor = same.Executor
	}
	assert.NotEqual(t, core.NoThread, executor)

	assert.Equal(t, "answer=42", byLabel["cross-thread func2"].Result)
	assert.Equal(t, "sum=6", byLabel["same-thread dynamic"].Result)
	assert.Equal(t, "total=5", byLabel["cross-thread method"].Result)
	assert.Equal(t, "total=10", byLabel["same-thread method"].Result)
}

func TestApp_StartStopWithoutServer(t *testing.T) {
	a := newTestApp(testConfig(1, 0))
	require.NoError(t, a.Start())
	require.NoError(t, a.Stop(context.Background()))
}
