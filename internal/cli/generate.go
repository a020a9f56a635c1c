package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huekit/internal/palette"
	"github.com/jmylchreest/huekit/internal/random"
)

var (
	// Generate command flags
	generateCount int
	generateFrom  string
	generateLocks []int
)

const maxGenerateCount = 20

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [usecase]",
		Short: "Generate colour palettes for a use case",
		Long: `Generate five-colour palettes from the harmony rules and saturation and
lightness ranges of a use case. Without a use case one is picked at random.

Use cases:
  branding, ui-design, interior, fashion, nature, minimal, vibrant, pastel

Examples:
  # One pastel palette
  huekit generate pastel

  # Three reproducible branding palettes as JSON
  huekit generate branding --count 3 --seed 42 --json

  # Regenerate a saved palette keeping its first and last colours
  huekit generate --from palette.json --lock 0,4`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().IntVarP(&generateCount, "count", "n", 1, "number of palettes to generate")
	cmd.Flags().StringVar(&generateFrom, "from", "", "regenerate a palette (premade id, JSON file or -), keeping locked colours")
	cmd.Flags().IntSliceVar(&generateLocks, "lock", nil, "positions (0-4) kept by --from")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateCount < 1 || generateCount > maxGenerateCount {
		return fmt.Errorf("--count must be between 1 and %d", maxGenerateCount)
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}
	gen := palette.NewGenerator(a.rng)

	var palettes []palette.Palette
	if generateFrom != "" {
		if len(args) > 0 {
			return errors.New("a use case cannot be combined with --from")
		}
		palettes, err = regenerate(cmd, gen)
	} else {
		palettes, err = generate(a, gen, args)
	}
	if err != nil {
		return err
	}

	if globalJSON {
		if len(palettes) == 1 {
			return a.writeJSON(palettes[0])
		}
		return a.writeJSON(palettes)
	}
	for i, p := range palettes {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		if err := a.writePalette(p); err != nil {
			return err
		}
	}
	return nil
}

func generate(a *app, gen *palette.Generator, args []string) ([]palette.Palette, error) {
	var u palette.UseCase
	if len(args) == 1 {
		var err error
		if u, err = palette.ParseUseCase(args[0]); err != nil {
			return nil, err
		}
	} else {
		u = random.Pick(a.rng, palette.UseCases()).UseCase
		a.logger.Debug("picked use case", "usecase", u)
	}

	out := make([]palette.Palette, generateCount)
	for i := range out {
		out[i] = gen.Generate(u)
	}
	return out, nil
}

func regenerate(cmd *cobra.Command, gen *palette.Generator) ([]palette.Palette, error) {
	prev, err := resolvePalette(cmd, generateFrom)
	if err != nil {
		return nil, err
	}

	var locks palette.Locks
	for _, i := range generateLocks {
		if i < 0 || i >= palette.Size {
			return nil, fmt.Errorf("--lock position %d out of range 0-%d", i, palette.Size-1)
		}
		locks[i] = true
	}

	out := make([]palette.Palette, generateCount)
	for i := range out {
		if out[i], err = gen.Regenerate(prev, locks); err != nil {
			return nil, err
		}
	}
	return out, nil
}
