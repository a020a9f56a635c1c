package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huekit/internal/colour"
	"github.com/jmylchreest/huekit/internal/palette"
)

func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [filter]",
		Short: "Browse curated and generated palettes",
		Long: `List the curated palettes followed by two freshly generated palettes per
use case.

Filters:
  all      curated and generated palettes (default)
  curated  the curated list only
  <usecase> palettes of one category, e.g. nature`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExplore,
	}
}

func runExplore(cmd *cobra.Command, args []string) error {
	var raw string
	if len(args) == 1 {
		raw = args[0]
	}
	f, err := palette.ParseFilter(raw)
	if err != nil {
		return err
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}
	palettes := palette.Explore(palette.NewGenerator(a.rng), f)

	if globalJSON {
		return a.writeJSON(palettes)
	}

	t := NewTable("NAME", "CATEGORY", "COLOURS", "ID")
	for _, p := range palettes {
		t.AddRow(p.Name, p.Category.String(), a.strip(p), p.ID)
	}
	return t.Write(a.out)
}

// strip renders a palette compactly: touching swatches when colour is
// available, otherwise the hexes.
func (a *app) strip(p palette.Palette) string {
	if !a.colourful() {
		return strings.Join(p.Hex(), " ")
	}
	var b strings.Builder
	for _, c := range p.Colors {
		b.WriteString(colour.Swatch(c.Hex, 3, a.profile))
	}
	return b.String()
}
