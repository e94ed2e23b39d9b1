package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ion/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ion",
	Short: "Ion front-end diagnostic toolchain",
	Long:  `Ion diagnostic tools: replay recorded compile runs and decode structured tokens`,
}

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-warnings", 100, "maximum number of warnings to keep in reports")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a pprof CPU profile to this path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this path")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime execution trace to this path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
