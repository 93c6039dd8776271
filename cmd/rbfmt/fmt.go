package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"rbfmt/internal/diagfmt"
	"rbfmt/internal/driver"
	"rbfmt/internal/observ"
	"rbfmt/internal/printer"
	"rbfmt/internal/project"
	"rbfmt/internal/trace"
)

// errSilent fails the command after everything was already reported.
var errSilent = errors.New("")

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path|-> [path...]",
	Short: "Format Ruby source files",
	Long: `Format rewrites Ruby files in place. Directories are walked using the
[files] patterns of .rbfmt.toml; "-" reads stdin and writes stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Bool("diff", false, "print a unified diff for files that would change")
	fmtCmd.Flags().String("format", "text", "output format (text|json|yaml)")
	fmtCmd.Flags().Bool("verify", false, "re-format the output and check comments are preserved")
	fmtCmd.Flags().Int("line-width", 0, "maximum line width (0 = from config)")
	fmtCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	fmtCmd.Flags().Bool("no-cache", false, "do not read or write the format cache")
	fmtCmd.Flags().String("config", "", "path to .rbfmt.toml (default: discovered from the first path)")
	fmtCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

type fmtFlags struct {
	check, stdout, diff, verify, noCache bool
	format, config, ui                   string
	lineWidth, jobs                      int
	quiet, timings                       bool
	maxDiagnostics                       int
}

func readFmtFlags(cmd *cobra.Command) (fmtFlags, error) {
	var f fmtFlags
	var err error
	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()
	get := func(fn func() error) {
		if err == nil {
			err = fn()
		}
	}
	get(func() (e error) { f.check, e = flags.GetBool("check"); return })
	get(func() (e error) { f.stdout, e = flags.GetBool("stdout"); return })
	get(func() (e error) { f.diff, e = flags.GetBool("diff"); return })
	get(func() (e error) { f.verify, e = flags.GetBool("verify"); return })
	get(func() (e error) { f.noCache, e = flags.GetBool("no-cache"); return })
	get(func() (e error) { f.format, e = flags.GetString("format"); return })
	get(func() (e error) { f.config, e = flags.GetString("config"); return })
	get(func() (e error) { f.ui, e = flags.GetString("ui"); return })
	get(func() (e error) { f.lineWidth, e = flags.GetInt("line-width"); return })
	get(func() (e error) { f.jobs, e = flags.GetInt("jobs"); return })
	get(func() (e error) { f.quiet, e = root.GetBool("quiet"); return })
	get(func() (e error) { f.timings, e = root.GetBool("timings"); return })
	get(func() (e error) { f.maxDiagnostics, e = root.GetInt("max-diagnostics"); return })
	if err != nil {
		return f, err
	}

	if f.stdout && f.check {
		return f, errors.New("fmt: --stdout cannot be used with --check")
	}
	switch f.format {
	case "text", "json", "yaml":
	default:
		return f, fmt.Errorf("fmt: unsupported output format %q", f.format)
	}
	if f.stdout && f.format != "text" {
		return f, errors.New("fmt: --stdout is only supported with text output")
	}
	if f.lineWidth < 0 {
		return f, fmt.Errorf("fmt: --line-width must not be negative, got %d", f.lineWidth)
	}
	return f, nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	flags, err := readFmtFlags(cmd)
	if err != nil {
		return err
	}
	mode, err := readUIMode(flags.ui)
	if err != nil {
		return err
	}

	start := args[0]
	if start == "-" {
		start = "."
	}
	cfg, err := loadConfig(flags.config, start)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	wallStart := time.Now()
	opts := driver.FormatOptions{
		Check:          flags.check,
		Stdout:         flags.stdout,
		Diff:           flags.diff,
		Verify:         flags.verify,
		Color:          colorEnabled(cmd, os.Stdout),
		LineWidth:      flags.lineWidth,
		Jobs:           flags.jobs,
		MaxDiagnostics: flags.maxDiagnostics,
		Config:         cfg,
		Timer:          timer,
	}

	if len(args) == 1 && args[0] == "-" {
		return runFmtStdin(cmd, flags, opts)
	}
	if args[0] == "-" || containsDash(args[1:]) {
		return errors.New("fmt: \"-\" cannot be combined with other paths")
	}

	if cfg.Cache.Enabled && !flags.noCache {
		cache, cacheErr := driver.OpenDiskCache("rbfmt")
		if cacheErr != nil {
			if !flags.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "fmt: cache disabled: %v\n", cacheErr)
			}
		} else {
			opts.Cache = cache
		}
	}

	var results []driver.FormatResult
	files, err := driver.CollectFiles(cmd.Context(), args, cfg)
	if err != nil {
		return err
	}
	if !flags.stdout && flags.format == "text" && !flags.quiet && shouldUseTUI(mode, len(files)) {
		results, err = runFmtWithUI(cmd.Context(), "rbfmt fmt", files, opts)
	} else {
		results, err = driver.FormatPaths(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}

	var hasErrors, hasChanges bool
	report := timer.Begin("report")
	switch flags.format {
	case "text":
		if flags.stdout {
			renderFmtStdout(cmd, results, flags, &hasErrors)
		} else {
			renderFmtText(cmd, results, flags, &hasErrors, &hasChanges)
		}
	case "json", "yaml":
		if err := renderFmtStructured(cmd.OutOrStdout(), results, flags, &hasErrors, &hasChanges); err != nil {
			return err
		}
	}

	timer.End(report, "")
	if flags.timings {
		printTimings(cmd.ErrOrStderr(), timer, time.Since(wallStart))
	}
	if hasErrors {
		return errors.New("fmt: failed to format some files")
	}
	if flags.check && hasChanges {
		return errors.New("fmt: formatting changes required")
	}
	return nil
}

func containsDash(args []string) bool {
	for _, a := range args {
		if a == "-" {
			return true
		}
	}
	return false
}

// loadConfig reads --config when given, otherwise the nearest .rbfmt.toml.
func loadConfig(explicit, start string) (project.Config, error) {
	if explicit != "" {
		return project.Load(explicit)
	}
	return project.Discover(start)
}

func runFmtStdin(cmd *cobra.Command, flags fmtFlags, opts driver.FormatOptions) error {
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("fmt: read stdin: %w", err)
	}
	out, err := driver.FormatBytes(cmd.Context(), "<stdin>", src, opts)
	if err != nil {
		reportFileError(cmd, "<stdin>", err)
		return errSilent
	}
	changed := string(out) != string(src)
	if flags.diff && changed {
		_, _ = io.WriteString(cmd.OutOrStdout(), driver.UnifiedDiff("<stdin>", src, out, opts.Color))
	}
	if flags.check {
		if changed {
			return errors.New("fmt: formatting changes required")
		}
		return nil
	}
	if !flags.diff {
		_, err = cmd.OutOrStdout().Write(out)
	}
	return err
}

func renderFmtStdout(cmd *cobra.Command, results []driver.FormatResult, flags fmtFlags, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			reportFileError(cmd, res.Path, res.Err)
			continue
		}
		_, _ = cmd.OutOrStdout().Write(res.Formatted)
	}
}

func renderFmtText(cmd *cobra.Command, results []driver.FormatResult, flags fmtFlags, hasErrors, hasChanges *bool) {
	out := cmd.OutOrStdout()
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			reportFileError(cmd, res.Path, res.Err)
			continue
		}
		if !res.Changed {
			continue
		}
		*hasChanges = true
		if res.Diff != "" {
			_, _ = io.WriteString(out, res.Diff)
			continue
		}
		if flags.quiet {
			continue
		}
		if flags.check {
			fmt.Fprintln(out, res.Path)
		} else {
			fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
	}
}

// reportFileError prints parse diagnostics with source context, anything
// else as a one-liner.
func reportFileError(cmd *cobra.Command, path string, err error) {
	var pe *printer.ParseError
	if errors.As(err, &pe) {
		diagfmt.PrettyItems(cmd.ErrOrStderr(), pe.Diagnostics, pe.FileSet, diagfmt.PrettyOpts{
			Color:     colorEnabled(cmd, os.Stderr),
			Context:   2,
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: true,
		})
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "fmt: %s: %v\n", path, err)
	}
	// события упавшего файла из ring буфера
	if ring := trace.RingOf(trace.FromContext(cmd.Context())); ring != nil {
		if events := ring.FileEvents(path); len(events) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace of %s:\n", path)
			_ = trace.WriteEvents(cmd.ErrOrStderr(), events, trace.FormatText)
		}
	}
}

type fmtFileReport struct {
	Path        string                     `json:"path" yaml:"path"`
	Changed     bool                       `json:"changed" yaml:"changed"`
	Cached      bool                       `json:"cached,omitempty" yaml:"cached,omitempty"`
	Error       string                     `json:"error,omitempty" yaml:"error,omitempty"`
	Diagnostics *diagfmt.DiagnosticsOutput `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Diff        string                     `json:"diff,omitempty" yaml:"diff,omitempty"`
}

type fmtReport struct {
	Check   bool            `json:"check" yaml:"check"`
	Files   []fmtFileReport `json:"files" yaml:"files"`
	Changed int             `json:"changed" yaml:"changed"`
	Failed  int             `json:"failed" yaml:"failed"`
}

func renderFmtStructured(w io.Writer, results []driver.FormatResult, flags fmtFlags, hasErrors, hasChanges *bool) error {
	report := fmtReport{Check: flags.check, Files: make([]fmtFileReport, 0, len(results))}
	for _, res := range results {
		fr := fmtFileReport{Path: res.Path, Changed: res.Changed, Cached: res.Cached, Diff: res.Diff}
		if res.Err != nil {
			*hasErrors = true
			report.Failed++
			fr.Error = res.Err.Error()
			var pe *printer.ParseError
			if errors.As(res.Err, &pe) {
				d := diagfmt.BuildDiagnostics(pe.Diagnostics, pe.FileSet, diagfmt.JSONOpts{
					IncludePositions: true,
					PathMode:         diagfmt.PathModeAuto,
					Max:              flags.maxDiagnostics,
					IncludeNotes:     true,
				})
				fr.Diagnostics = &d
			}
		}
		if res.Changed {
			*hasChanges = true
			report.Changed++
		}
		report.Files = append(report.Files, fr)
	}

	if flags.format == "yaml" {
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
