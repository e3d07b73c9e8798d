package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rsderive/internal/driver"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] <file.rs|directory>",
	Short: "Generate Builder, CustomDebug and seq! expansions",
	Long: `Expand parses a Rust source file, or every *.rs file under a directory,
and writes the generated code to <stem>.derive.rs next to each input.
The output suffix and wrapper names come from the nearest rsderive.toml.`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

var errExpandFailed = errors.New("expansion reported errors")

func init() {
	expandCmd.Flags().Bool("stdout", false, "print generated code instead of writing files")
	expandCmd.Flags().Bool("check", false, "fail if any generated file is missing or out of date")
	expandCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	expandCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	expandCmd.Flags().Bool("no-cache", false, "disable the on-disk expansion cache")
	expandCmd.Flags().String("diagnostics-format", "pretty", "diagnostics format (pretty|json)")
}

type expandFlags struct {
	stdout      bool
	check       bool
	jobs        int
	ui          uiMode
	noCache     bool
	diagsFormat string
}

func readExpandFlags(cmd *cobra.Command) (expandFlags, error) {
	var f expandFlags
	var err error
	flags := cmd.Flags()
	if f.stdout, err = flags.GetBool("stdout"); err != nil {
		return f, fmt.Errorf("failed to get stdout flag: %w", err)
	}
	if f.check, err = flags.GetBool("check"); err != nil {
		return f, fmt.Errorf("failed to get check flag: %w", err)
	}
	if f.stdout && f.check {
		return f, fmt.Errorf("--stdout and --check are mutually exclusive")
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	if f.noCache, err = flags.GetBool("no-cache"); err != nil {
		return f, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if f.diagsFormat, err = flags.GetString("diagnostics-format"); err != nil {
		return f, fmt.Errorf("failed to get diagnostics-format flag: %w", err)
	}
	switch f.diagsFormat {
	case "pretty", "json":
	default:
		return f, fmt.Errorf("unknown diagnostics format: %s", f.diagsFormat)
	}
	return f, nil
}

func runExpand(cmd *cobra.Command, args []string) error {
	path := args[0]
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	f, err := readExpandFlags(cmd)
	if err != nil {
		return err
	}

	opts := driver.Options{
		MaxDiagnostics: g.maxDiagnostics,
		Jobs:           f.jobs,
		Mode:           driver.ModeWrite,
		// в pretty-режиме тайминги печатаются таблицей, не диагностиками
		Timings: g.timings && f.diagsFormat == "json",
	}
	switch {
	case f.stdout:
		opts.Mode = driver.ModeStdout
	case f.check:
		opts.Mode = driver.ModeCheck
	}
	if !f.noCache {
		cache, cerr := driver.OpenDiskCache("rsderive")
		if cerr != nil {
			if !g.quiet {
				fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", cerr)
			}
		} else {
			opts.Cache = cache
		}
	}

	files, err := driver.Inputs(path, nil)
	if err != nil {
		return err
	}

	var res *driver.Result
	if !f.stdout && !g.quiet && shouldUseTUI(f.ui, len(files)) {
		res, err = runExpandWithUI(cmd.Context(), "rsderive expand", path, files, opts)
	} else {
		res, err = driver.Expand(cmd.Context(), path, opts)
	}
	if err != nil {
		return err
	}

	if f.stdout {
		if err := writeGenerated(cmd.OutOrStdout(), res); err != nil {
			return err
		}
	}

	if err := printDiagnostics(g, f.diagsFormat, res.Bag(g.maxDiagnostics), res.FileSet); err != nil {
		return err
	}

	if g.timings && f.diagsFormat == "pretty" {
		if err := printStageTimings(os.Stderr, res.Timings); err != nil {
			return err
		}
		fmt.Fprint(os.Stderr, res.Timing().Summary())
	}

	if f.check {
		if stale := res.Stale(); len(stale) > 0 {
			for _, p := range stale {
				fmt.Fprintf(os.Stderr, "out of date: %s\n", p)
			}
			return fmt.Errorf("%d generated file(s) out of date", len(stale))
		}
	}
	if !g.quiet && !f.stdout {
		fmt.Fprintln(os.Stderr, summaryLine(res))
	}
	if res.HasErrors() {
		return errExpandFailed
	}
	return nil
}

// writeGenerated prints rendered content of every file that has any.
func writeGenerated(out io.Writer, res *driver.Result) error {
	first := true
	for _, fr := range res.Files {
		if len(fr.Content) == 0 {
			continue
		}
		if !first {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		first = false
		if _, err := out.Write(fr.Content); err != nil {
			return err
		}
	}
	return nil
}

// summaryLine counts files per status, e.g. "3 files: 2 written, 1 unchanged".
func summaryLine(res *driver.Result) string {
	counts := make(map[driver.FileStatus]int)
	cached := 0
	for _, fr := range res.Files {
		counts[fr.Status]++
		if fr.Cached {
			cached++
		}
	}
	var parts []string
	for _, st := range []driver.FileStatus{
		driver.StatusWritten,
		driver.StatusUnchanged,
		driver.StatusStale,
		driver.StatusNoRequests,
		driver.StatusFailed,
	} {
		if n := counts[st]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, st))
		}
	}
	noun := "files"
	if len(res.Files) == 1 {
		noun = "file"
	}
	line := fmt.Sprintf("%d %s", len(res.Files), noun)
	if len(parts) > 0 {
		line += ": " + strings.Join(parts, ", ")
	}
	if cached > 0 {
		line += fmt.Sprintf(" (%d cached)", cached)
	}
	return line
}
