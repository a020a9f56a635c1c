package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huekit/internal/colour"
)

var contrastSwap bool

func newContrastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Grade text contrast against WCAG 2.0",
		Long: `Compute the WCAG 2.0 contrast ratio of a foreground colour on a background
and report which conformance levels it passes.

Examples:
  huekit contrast "#333333" "#ffffff"
  huekit contrast 1a1a2e e94560 --swap --json`,
		Args: cobra.ExactArgs(2),
		RunE: runContrast,
	}
	cmd.Flags().BoolVar(&contrastSwap, "swap", false, "swap foreground and background")
	return cmd
}

func runContrast(cmd *cobra.Command, args []string) error {
	hexes := make([]string, len(args))
	for i, arg := range args {
		hex, err := colour.NormaliseHex(arg)
		if err != nil {
			return fmt.Errorf("%w: %q", err, arg)
		}
		hexes[i] = hex
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}

	report := colour.Check(hexes[0], hexes[1])
	if contrastSwap {
		report = report.Swap()
	}

	if globalJSON {
		return a.writeJSON(report)
	}

	sample := report.Foreground + " on " + report.Background
	if a.colourful() {
		sample = a.profile.String(" Sample text ").
			Foreground(a.profile.Color(report.Foreground)).
			Background(a.profile.Color(report.Background)).
			String()
	}
	fmt.Fprintf(a.out, "%s  %.2f:1  %s\n", sample, report.Ratio, report.Level)

	t := NewTable("CHECK", "RESULT")
	t.AddRow("AA normal text", passFail(report.Rating.AA))
	t.AddRow("AA large text", passFail(report.Rating.AALarge))
	t.AddRow("AAA normal text", passFail(report.Rating.AAA))
	t.AddRow("AAA large text", passFail(report.Rating.AAALarge))
	return t.Write(a.out)
}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}
