package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huekit/internal/colour"
	"github.com/jmylchreest/huekit/internal/gradient"
)

var (
	// Gradient command flags
	gradientFromPalette string
	gradientType        string
	gradientDirection   string
)

type gradientResult struct {
	gradient.Gradient
	CSS string `json:"css"`
}

func newGradientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gradient",
		Short: "Build a CSS gradient",
		Long: `Build a random three-stop gradient from a colour harmony, or a gradient
from the first four colours of a palette, and print its CSS.

Examples:
  huekit gradient
  huekit gradient --type radial
  huekit gradient --from-palette sunset-vibes --direction "to bottom"`,
		Args: cobra.NoArgs,
		RunE: runGradient,
	}

	cmd.Flags().StringVar(&gradientFromPalette, "from-palette", "", "build from a palette (premade id, JSON file or -)")
	cmd.Flags().StringVar(&gradientType, "type", "", "gradient type (linear, radial, conic)")
	cmd.Flags().StringVar(&gradientDirection, "direction", "", `linear direction, e.g. "to right"`)
	return cmd
}

func runGradient(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	b := gradient.NewBuilder(a.rng)

	var g gradient.Gradient
	if gradientFromPalette != "" {
		p, err := resolvePalette(cmd, gradientFromPalette)
		if err != nil {
			return err
		}
		if g, err = b.FromPalette(p); err != nil {
			return err
		}
	} else {
		g = b.Random()
	}

	if gradientType != "" {
		t, err := gradient.ParseType(gradientType)
		if err != nil {
			return err
		}
		g = gradient.WithType(g, t)
	}
	if gradientDirection != "" {
		d, err := gradient.ParseDirection(gradientDirection)
		if err != nil {
			return err
		}
		g = gradient.WithDirection(g, d)
	}

	if globalJSON {
		return a.writeJSON(gradientResult{Gradient: g, CSS: gradient.CSS(g)})
	}

	fmt.Fprintln(a.out, g.Name)
	headers := []string{"STOP", "COLOR", "POSITION"}
	if a.colourful() {
		headers = append([]string{""}, headers...)
	}
	t := NewTable(headers...)
	for i, s := range g.Stops {
		row := []string{strconv.Itoa(i), s.Color, strconv.FormatFloat(s.Position, 'f', -1, 64) + "%"}
		if a.colourful() {
			row = append([]string{colour.Swatch(s.Color, swatchWidth, a.profile)}, row...)
		}
		t.AddRow(row...)
	}
	if err := t.Write(a.out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, gradient.Declaration(g))
	return err
}
