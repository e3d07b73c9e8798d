package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rsderive/internal/diagfmt"
	"rsderive/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.rs",
	Short: "Parse a Rust source file and print the item tree",
	Long:  `Parse prints the items, attributes, generics and fields the generators see`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], g.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := printDiagnostics(g, "pretty", result.Bag, result.FileSet); err != nil {
		return err
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatASTPretty(os.Stdout, result.Builder, result.FileID, result.FileSet)
	case "json":
		err = diagfmt.FormatASTJSON(os.Stdout, result.Builder, result.FileID)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("%s has syntax errors", args[0])
	}
	return nil
}
