package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/threadcall/internal/wire"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke",
	Short: "Shows which thread runs a call and whether it was queued",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, cleanup, err := wire.InitializeApp(viper.GetViper())
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		calls, err := a.Demo(ctx)
		if err != nil {
			return fmt.Errorf("invoke demo failed: %w", err)
		}

		out := cmd.OutOrStdout()
		titleColor.Fprintln(out, "Invocations")
		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CALL\tCALLER\tEXECUTOR\tPATH\tRESULT")
		for _, c := range calls {
			path := "queued"
			if c.Inline {
				path = "inline"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Label, c.Caller, c.Executor, path, c.Result)
		}
		return w.Flush()
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.AddCommand(invokeCmd)
}
