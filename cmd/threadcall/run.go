package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/threadcall/internal/app"
	"github.com/sevigo/threadcall/internal/wire"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

var linger bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Posts work to a set of threads and tears them down once drained",
	Long: `run starts a pool of worker threads, posts a batch of tasks to each one and
asks every worker to quit through its control thread once its queue is empty.
It fails unless every task ran, each on the thread it was posted to.`,
	RunE: runTeardown,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	flags := runCmd.Flags()
	flags.Int("threads", 10, "number of worker threads")
	flags.Int("tasks", 10, "tasks posted to each worker")
	flags.Duration("task-duration", 100*time.Millisecond, "time each task sleeps")
	flags.Duration("shutdown-timeout", 30*time.Second, "how long to wait for the workers to drain")
	flags.BoolVar(&linger, "linger", false, "keep serving metrics after the run until interrupted")

	bindFlags(runCmd, map[string]string{
		"THREADS":          "threads",
		"TASKS_PER_THREAD": "tasks",
		"TASK_DURATION":    "task-duration",
		"SHUTDOWN_TIMEOUT": "shutdown-timeout",
	})
	rootCmd.AddCommand(runCmd)
}

func runTeardown(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := wire.InitializeApp(viper.GetViper())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer cleanup()

	if err := a.Start(); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), a.Config().ShutdownTimeout)
		defer cancel()
		_ = a.Stop(stopCtx)
	}()

	report, runErr := a.RunTeardown(ctx)
	printReport(cmd.OutOrStdout(), report, runErr)

	if linger && a.Config().MetricsAddr != "" {
		dimColor.Fprintf(cmd.OutOrStdout(), "serving metrics on %s, press Ctrl+C to exit\n", a.Config().MetricsAddr)
		<-ctx.Done()
	}
	return runErr
}

func printReport(w io.Writer, r *app.TeardownReport, err error) {
	titleColor.Fprintln(w, "Teardown summary")
	if r == nil {
		errorColor.Fprintf(w, "  run failed: %v\n", err)
		return
	}

	fmt.Fprintf(w, "  threads:          %d\n", r.Threads)
	fmt.Fprintf(w, "  tasks per thread: %d\n", r.TasksPerThread)
	fmt.Fprintf(w, "  posted:           %d\n", r.Posted)
	fmt.Fprintf(w, "  completed:        %d\n", r.Completed)
	if r.Misplaced > 0 {
		errorColor.Fprintf(w, "  wrong thread:     %d\n", r.Misplaced)
	}
	dimColor.Fprintf(w, "  elapsed:          %s\n", r.Elapsed)

	switch {
	case err != nil:
		errorColor.Fprintf(w, "FAIL %v\n", err)
	case r.OK():
		successColor.Fprintf(w, "OK   all %d tasks ran on their own thread\n", r.Expected())
	default:
		errorColor.Fprintln(w, "FAIL tasks were lost")
	}
}
