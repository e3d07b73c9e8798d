package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rsderive/internal/diag"
	"rsderive/internal/diagfmt"
	"rsderive/internal/source"
)

type globalFlags struct {
	quiet          bool
	timings        bool
	maxDiagnostics int
	colorMode      string
}

func readGlobalFlags(cmd *cobra.Command) (globalFlags, error) {
	var g globalFlags
	var err error
	flags := cmd.Root().PersistentFlags()
	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if g.colorMode, err = flags.GetString("color"); err != nil {
		return g, fmt.Errorf("failed to get color flag: %w", err)
	}
	return g, nil
}

// printDiagnostics renders bag to stderr. Pretty output is skipped for
// an empty bag; JSON is always printed so consumers get a document.
func printDiagnostics(g globalFlags, format string, bag *diag.Bag, fs *source.FileSet) error {
	return writeDiagnostics(os.Stderr, g, format, bag, fs)
}

func writeDiagnostics(w io.Writer, g globalFlags, format string, bag *diag.Bag, fs *source.FileSet) error {
	switch format {
	case "pretty", "":
		if bag.Len() == 0 {
			return nil
		}
		useColor, err := colorEnabled(g.colorMode, os.Stderr)
		if err != nil {
			return err
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   2,
			ShowNotes: true,
		})
		return nil
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			Max:              g.maxDiagnostics,
			IncludeNotes:     true,
		})
	default:
		return fmt.Errorf("unknown diagnostics format: %s", format)
	}
}
