package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rbfmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rbfmt",
	Short: "Ruby source formatter",
	Long:  `rbfmt rewrites Ruby files into one canonical layout, keeping comments and heredocs intact`,
	// ошибки печатает main
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureColor(cmd)
		stopProf, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		stopTrace, err := setupTracing(cmd)
		if err != nil {
			stopProf()
			return err
		}
		runCleanup = func() {
			stopTrace()
			stopProf()
		}
		return nil
	},
}

// runCleanup stops tracing and profiling; main runs it even when the command
// fails, since PersistentPostRun is skipped on error.
var runCleanup = func() {}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	rootCmd.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace event format (auto|text|ndjson); auto picks by file extension")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")

	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
}

// main runs the root command. Any error exits with status 1.
func main() {
	err := rootCmd.Execute()
	runCleanup()
	if err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "rbfmt: %s\n", msg)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом; mintty (Cygwin/MSYS)
// term не распознаёт
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) || isatty.IsCygwinTerminal(f.Fd()) // #nosec G115 -- fd fits in int
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
