// Package main implements the taskflow CLI.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "taskflow",
	Short:        "TaskFlow - tasks, to-dos and focus sessions",
	SilenceUsage: true,
}

var (
	dbFlag       string
	logLevelFlag string
	configFlag   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "SQLite database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config.toml")
}
