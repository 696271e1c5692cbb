package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/sevigo/threadcall/internal/app"
)

func TestPrintReport(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	tests := []struct {
		name     string
		report   *app.TeardownReport
		err      error
		contains []string
	}{
		{
			name: "all tasks ran",
			report: &app.TeardownReport{
				Threads: 2, TasksPerThread: 3, Posted: 6, Completed: 6, Elapsed: time.Second,
			},
			contains: []string{"Teardown summary", "completed:        6", "OK   all 6 tasks"},
		},
		{
			name: "tasks lost",
			report: &app.TeardownReport{
				Threads: 2, TasksPerThread: 3, Posted: 6, Completed: 4, Misplaced: 1,
			},
			err:      app.ErrIncomplete,
			contains: []string{"wrong thread:     1", "FAIL not every task completed"},
		},
		{
			name:     "no report",
			err:      errors.New("pool failed"),
			contains: []string{"run failed: pool failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printReport(&buf, tt.report, tt.err)
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
