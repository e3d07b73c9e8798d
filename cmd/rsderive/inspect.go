package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"rsderive/internal/derive"
	"rsderive/internal/driver"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] file.rs",
	Short: "Show field classification and bound decisions",
	Long: `Inspect reports, for every struct requesting Builder or CustomDebug, how each
field is classified (optional, repeated, plain) and which bounds the Debug
impl would carry for each type parameter.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
}

var inspectTitle = lipgloss.NewStyle().Bold(true)

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Inspect(args[0], g.maxDiagnostics, nil)
	if err != nil {
		return err
	}
	if err := printDiagnostics(g, "pretty", res.Bag, res.FileSet); err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return fmt.Errorf("%s has syntax errors", args[0])
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		useColor, err := colorEnabled(g.colorMode, os.Stdout)
		if err != nil {
			return err
		}
		return renderInspectPretty(out, res.Records, useColor)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Records)
	case "msgpack":
		return msgpack.NewEncoder(out).Encode(res.Records)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func renderInspectPretty(out io.Writer, records []derive.RecordReport, useColor bool) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i := range records {
		rec := &records[i]
		if i > 0 {
			fmt.Fprintln(tw)
		}
		title := rec.Name
		if useColor {
			title = inspectTitle.Render(title)
		}
		fmt.Fprintf(tw, "%s [%s]\n", title, strings.Join(rec.Derives, ", "))
		if rec.Error != "" {
			fmt.Fprintf(tw, "  error: %s\n", rec.Error)
			continue
		}
		for _, f := range rec.Fields {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", f.Name, f.Type, fieldSummary(f))
		}
		for _, p := range rec.Params {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.Name, p.Decision, paramSummary(p))
		}
		switch {
		case rec.Override && len(rec.Predicates) == 0:
			fmt.Fprintln(tw, "  where: (none, overridden)")
		case rec.Override:
			fmt.Fprintf(tw, "  where: %s (overridden)\n", strings.Join(rec.Predicates, ", "))
		case len(rec.Predicates) > 0:
			fmt.Fprintf(tw, "  where: %s\n", strings.Join(rec.Predicates, ", "))
		}
	}
	return tw.Flush()
}

func fieldSummary(f derive.FieldReport) string {
	if f.Error != "" {
		return "error: " + f.Error
	}
	var parts []string
	kind := f.Kind
	if f.Inner != "" {
		kind += "<" + f.Inner + ">"
	}
	parts = append(parts, kind)
	if f.Accessor != "" {
		parts = append(parts, "each="+f.Accessor)
	}
	if f.Format != "" {
		parts = append(parts, fmt.Sprintf("format=%q", f.Format))
	}
	return strings.Join(parts, " ")
}

func paramSummary(p derive.ParamReport) string {
	var uses []string
	if p.Direct {
		uses = append(uses, "direct")
	}
	if p.Marker {
		uses = append(uses, "marker")
	}
	uses = append(uses, p.Assoc...)
	if len(uses) == 0 {
		return "unused"
	}
	return strings.Join(uses, ", ")
}
