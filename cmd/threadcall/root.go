package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "threadcall",
	Short: "threadcall runs callables on the thread that owns them.",
	Long: `threadcall drives thread-affine event loops: calls made on the owning thread
run inline, calls from anywhere else are queued to it and run in order.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .env in the working directory)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("log-output", "stderr", "log destination: stdout, stderr or file")
	flags.String("metrics-addr", "", "serve /metrics and /healthz on this address")

	bindFlags(rootCmd, map[string]string{
		"LOG_LEVEL":    "log-level",
		"LOG_FORMAT":   "log-format",
		"LOG_OUTPUT":   "log-output",
		"METRICS_ADDR": "metrics-addr",
	})
}

// bindFlags binds config keys to cmd's flags of the given names.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			slog.Error("Error binding flag", "flag", name, "error", err)
			os.Exit(1)
		}
	}
}

// initConfig points viper at the config file given on the command line.
// Environment variables and defaults are applied when the app is wired.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}
