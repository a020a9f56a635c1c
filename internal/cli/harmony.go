package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huekit/internal/colour"
	"github.com/jmylchreest/huekit/internal/harmony"
)

var (
	// Harmony command flags
	harmonyBase   int
	harmonyCount  int
	harmonyScheme string
)

// Hues are shown at a fixed mid saturation and lightness.
const (
	harmonySaturation = 70
	harmonyLightness  = 55
	maxHarmonyCount   = 12
)

type harmonyResult struct {
	Base   int            `json:"base"`
	Scheme harmony.Scheme `json:"scheme"`
	Hues   []int          `json:"hues"`
	Colors []string       `json:"colors"`
}

func newHarmonyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harmony",
		Short: "Compute harmonious hues from a base hue",
		Long: `Compute hues related to a base hue by a colour-wheel scheme.

Schemes: analogous, complementary, triadic, split-complementary, random

Examples:
  huekit harmony --base 200 --scheme triadic
  huekit harmony --base 30 --count 3 --json`,
		Args: cobra.NoArgs,
		RunE: runHarmony,
	}

	cmd.Flags().IntVar(&harmonyBase, "base", 0, "base hue in degrees (0-359, random when unset)")
	cmd.Flags().IntVar(&harmonyCount, "count", 5, "number of hues")
	cmd.Flags().StringVar(&harmonyScheme, "scheme", harmony.Analogous.String(), "harmony scheme")
	return cmd
}

func runHarmony(cmd *cobra.Command, args []string) error {
	scheme, err := harmony.ParseScheme(harmonyScheme)
	if err != nil {
		return err
	}
	if harmonyCount < 1 || harmonyCount > maxHarmonyCount {
		return fmt.Errorf("--count must be between 1 and %d", maxHarmonyCount)
	}
	if harmonyBase < 0 || harmonyBase > 359 {
		return fmt.Errorf("--base must be between 0 and 359, got %d", harmonyBase)
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}

	base := harmonyBase
	if !cmd.Flags().Changed("base") {
		base = a.rng.IntN(360)
	}

	res := harmonyResult{Base: base, Scheme: scheme, Hues: harmony.Hues(base, harmonyCount, scheme, a.rng)}
	for _, h := range res.Hues {
		res.Colors = append(res.Colors, colour.HSLToHex(float64(h), harmonySaturation, harmonyLightness))
	}

	if globalJSON {
		return a.writeJSON(res)
	}

	fmt.Fprintf(a.out, "%s from %d°\n", scheme, base)
	headers := []string{"HUE", "HEX"}
	if a.colourful() {
		headers = append([]string{""}, headers...)
	}
	t := NewTable(headers...)
	for i, h := range res.Hues {
		row := []string{strconv.Itoa(h), res.Colors[i]}
		if a.colourful() {
			row = append([]string{colour.Swatch(res.Colors[i], swatchWidth, a.profile)}, row...)
		}
		t.AddRow(row...)
	}
	return t.Write(a.out)
}
