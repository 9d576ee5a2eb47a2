package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	debugMode  bool
)

func main() {
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lessonforge",
		Short:         "Generate language lessons from TV episode scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(debugMode)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ./config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newStatusCommand())
	rootCmd.AddCommand(newJobsCommand())
	rootCmd.AddCommand(newScriptCommand())
	rootCmd.AddCommand(newLessonsCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newMigrateCommand())
	return rootCmd
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}))
	slog.SetDefault(logger)
}
