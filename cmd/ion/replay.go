package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ion/internal/config"
	"ion/internal/diag"
	"ion/internal/diagfmt"
	"ion/internal/driver"
	"ion/internal/journal"
)

var replayCmd = &cobra.Command{
	Use:   "replay [flags] <recording.json|directory>",
	Short: "Replay recorded front-end diagnostics",
	Long:  `Replay diagnostic recordings (*.json): warnings print as they did in the original run, the first raised error ends each unit`,
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

// init registers CLI flags for the replay command used by runReplay.
// It configures output format, journaling, concurrency, the progress UI,
// and whether to emit backtraces or absolute file paths.
func init() {
	replayCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	replayCmd.Flags().Int("jobs", 0, "max parallel workers for directory replay (0=auto)")
	replayCmd.Flags().String("ui", "auto", "progress display for directory replay (auto|on|off)")
	replayCmd.Flags().Bool("backtrace", false, "include raise backtraces in pretty output")
	replayCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	replayCmd.Flags().String("journal", "", "write the warning journal to this path (overrides ion.toml)")
	replayCmd.Flags().Bool("no-journal", false, "skip the warning journal even when ion.toml configures one")
}

// runReplay executes the "replay" command: it replays the recordings at the
// provided path (single file or directory), prints warnings as they happen,
// formats the fatal diagnostics in the chosen output format, and exits with a
// non-zero status when any unit raised or failed to load.
func runReplay(cmd *cobra.Command, args []string) error {
	target := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "short":
		// supported
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	showBacktrace, err := cmd.Flags().GetBool("backtrace")
	if err != nil {
		return fmt.Errorf("failed to get backtrace flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	journalPath, err := cmd.Flags().GetString("journal")
	if err != nil {
		return fmt.Errorf("failed to get journal flag: %w", err)
	}

	noJournal, err := cmd.Flags().GetBool("no-journal")
	if err != nil {
		return fmt.Errorf("failed to get no-journal flag: %w", err)
	}
	if noJournal && journalPath != "" {
		return fmt.Errorf("journal and no-journal flags cannot be used together")
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	maxWarnings, err := cmd.Root().PersistentFlags().GetInt("max-warnings")
	if err != nil {
		return fmt.Errorf("failed to get max-warnings flag: %w", err)
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	// Манифест ищем вверх от цели, как компилятор ищет его от корня сборки
	manifestDir := target
	if !st.IsDir() {
		manifestDir = filepath.Dir(target)
	}
	manifest, manifestPath, err := config.LoadFromDir(manifestDir)
	if err != nil {
		return err
	}

	if err := applyColorMode(cmd, manifest); err != nil {
		return err
	}

	// Явный флаг главнее манифеста
	if !cmd.Root().PersistentFlags().Changed("max-warnings") {
		maxWarnings = manifest.Diagnostics.MaxWarnings
	}
	if maxWarnings <= 0 || maxWarnings > math.MaxUint16 {
		return fmt.Errorf("max-warnings out of range: %d", maxWarnings)
	}

	switch {
	case noJournal:
		journalPath = ""
	case journalPath == "" && manifest.Diagnostics.Journal != "":
		journalPath = manifest.Diagnostics.Journal
		if manifestPath != "" && !filepath.IsAbs(journalPath) {
			journalPath = filepath.Join(filepath.Dir(manifestPath), journalPath)
		}
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}

	collector := diag.NewCollector(maxWarnings)
	var wj *journal.Journal
	session := diag.Session(collector)
	if journalPath != "" {
		wj = journal.New(journalPath)
		session = diag.Multi(collector, wj)
	}

	opts := driver.Options{
		Out:           os.Stderr,
		Session:       session,
		EnableTimings: showTimings,
	}

	var (
		results []driver.FileResult
		runErr  error
	)
	if st.IsDir() {
		jobs, jobsErr := cmd.Flags().GetInt("jobs")
		if jobsErr != nil {
			cleanup()
			return fmt.Errorf("failed to get jobs flag: %w", jobsErr)
		}
		if shouldUseTUI(uiModeValue) && format == "pretty" {
			results, runErr = runReplayDirWithUI(cmd.Context(), "ion replay", target, opts, jobs)
		} else {
			results, runErr = driver.ReplayDir(cmd.Context(), target, opts, jobs)
		}
	} else {
		results = []driver.FileResult{driver.ReplayFile(target, opts)}
	}

	// Always cleanup profiler
	cleanup()

	if runErr != nil {
		return fmt.Errorf("replay failed: %w", runErr)
	}

	if wj != nil {
		if err := wj.Flush(); err != nil {
			return fmt.Errorf("failed to write journal: %w", err)
		}
	}

	// Ошибки входных данных не являются диагностиками, уводим их в stderr
	for i := range results {
		if results[i].Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", results[i].Path, results[i].Err)
		}
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	fatals := driver.FatalDiagnostics(results)

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, fatals, diagfmt.PrettyOpts{
			PathMode:      pathMode,
			ShowBacktrace: showBacktrace,
		})
	case "short":
		collector.Sort()
		if output := diag.FormatStableWarnings(collector.Events()); output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
		if output := diag.FormatStableDiagnostics(fatals); output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
	case "json":
		collector.Sort()
		jsonOpts := diagfmt.JSONOpts{PathMode: pathMode}
		if err := diagfmt.JSON(os.Stdout, fatals, collector.Events(), collector.Registered(), jsonOpts); err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
	}

	if showTimings {
		if summary := driver.TimingSummary(results); summary != "" {
			fmt.Fprint(os.Stderr, summary)
		}
	}

	if driver.HasErrors(results) {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - diagnostics already printed
	}
	return nil
}

// applyColorMode устанавливает глобальный цветовой режим процесса один раз
// перед любым выводом. Явный флаг --color главнее манифеста; auto смотрит на
// терминал и NO_COLOR.
func applyColorMode(cmd *cobra.Command, manifest config.Manifest) error {
	flags := cmd.Root().PersistentFlags()
	mode, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	if err := config.ValidateColorMode(mode); err != nil {
		return err
	}
	if !flags.Changed("color") {
		mode = manifest.Diagnostics.Color
	}
	color.NoColor = !config.ColorEnabled(mode, isTerminal(os.Stdout))
	return nil
}
