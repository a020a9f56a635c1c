package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huekit/internal/export"
)

var (
	// Export command flags
	exportPalette string
	exportOutput  string
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a palette as code",
		Long: `Render a palette in one of the built-in formats and print it or write it to
a file.

Formats:
` + formatList() + `

Examples:
  huekit export --palette sunset-vibes --format scss
  huekit generate pastel --json | huekit export --palette - --format tailwind
  huekit export --palette palette.json --format swift -o Palette.swift`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportPalette, "palette", "p", "", "palette to export (premade id, JSON file or -)")
	cmd.Flags().StringP("format", "f", string(export.FormatCSS), "export format")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func formatList() string {
	var b strings.Builder
	for _, info := range export.Formats() {
		fmt.Fprintf(&b, "  %-9s %s\n", info.Format, info.Name)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	p, err := resolvePalette(cmd, exportPalette)
	if err != nil {
		return err
	}

	out, err := export.Render(p, a.cfg.Export.Format)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		_, err = fmt.Fprintln(a.out, out)
		return err
	}
	path, err := writeFile(exportOutput, []byte(out+"\n"))
	if err != nil {
		return err
	}
	a.logger.Debug("exported palette", "format", a.cfg.Export.Format, "path", path)
	a.printf("Wrote %s\n", path)
	return nil
}
