// Package cli provides the command-line interface for huekit.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/huekit/internal/config"
	"github.com/jmylchreest/huekit/internal/logging"
	"github.com/jmylchreest/huekit/internal/random"
	"github.com/jmylchreest/huekit/internal/version"
)

var (
	// Global flags
	globalVerbose bool
	globalQuiet   bool
	globalSeed    uint64
	globalConfig  string
	globalJSON    bool
	globalPreview bool
)

// NewRootCmd builds the command tree. Each call returns a fresh tree with
// every flag reset to its default.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   version.Name,
		Short: "A colour palette toolkit",
		Long: `huekit generates colour palettes from colour-theory rules tuned per use case,
builds CSS gradients, extracts dominant colours from images and grades text
contrast against WCAG.

Palettes can be exported as CSS, SCSS, Tailwind, JSON, Swift or a plain hex
list, or handed to external exporter plugins. The same engine is available
over HTTP with 'huekit serve'.`,
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&globalVerbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&globalQuiet, "quiet", "q", false, "suppress non-error output")
	pf.Uint64Var(&globalSeed, "seed", 0, "seed for reproducible output (implies --seed-mode manual)")
	pf.String("seed-mode", string(random.ModeRandom), "seed mode (random, manual)")
	pf.StringVar(&globalConfig, "config", "", "config file (default $XDG_CONFIG_HOME/huekit/config.yaml)")
	pf.BoolVar(&globalJSON, "json", false, "write JSON instead of text")
	pf.BoolVar(&globalPreview, "preview", false, "show colour swatch previews")

	rootCmd.SetVersionTemplate(version.Get().String() + "\n")

	rootCmd.AddCommand(
		newVersionCmd(),
		newGenerateCmd(),
		newHarmonyCmd(),
		newGradientCmd(),
		newExtractCmd(),
		newContrastCmd(),
		newExportCmd(),
		newExploreCmd(),
		newServeCmd(),
		newPluginCmd(),
	)
	return rootCmd
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}

// app is what a command needs once flags and config are resolved.
type app struct {
	cfg     *config.Config
	logger  hclog.Logger
	rng     random.Source
	seed    uint64
	out     io.Writer
	profile termenv.Profile
	width   int
}

// setup loads configuration for cmd and builds the logger, random source
// and terminal profile.
func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(globalConfig, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Options{
		Level:  logging.LevelFor(cfg.Log.Level, globalVerbose, globalQuiet),
		Output: cmd.ErrOrStderr(),
		JSON:   cfg.Log.JSON,
	})
	if cfg.File != "" {
		logger.Debug("loaded config", "path", cfg.File)
	}

	seed, err := cfg.Seed.Seed()
	if err != nil {
		return nil, err
	}
	logger.Debug("random source", "mode", cfg.Seed.Mode, "seed", seed)

	a := &app{
		cfg:     cfg,
		logger:  logger,
		rng:     random.New(seed),
		seed:    seed,
		out:     cmd.OutOrStdout(),
		profile: termenv.Ascii,
	}
	if f, ok := a.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) && !globalJSON {
		a.profile = termenv.NewOutput(f).EnvColorProfile()
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			a.width = w
		}
	}
	return a, nil
}

// writeJSON encodes v indented to the command output.
func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// printf writes to the command output unless --quiet is set.
func (a *app) printf(format string, args ...any) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(a.out, format, args...)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if globalJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return err
		},
	}
}
