package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huekit/internal/colour"
	"github.com/jmylchreest/huekit/internal/extract"
	imageutil "github.com/jmylchreest/huekit/internal/image"
	"github.com/jmylchreest/huekit/internal/palette"
	"github.com/jmylchreest/huekit/internal/random"
	httputil "github.com/jmylchreest/huekit/internal/util/http"
	"github.com/jmylchreest/huekit/internal/util/imagecache"
)

type extractResult struct {
	Colors  []colour.Color   `json:"colors"`
	Palette *palette.Palette `json:"palette,omitempty"`
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <image|url>",
		Short: "Extract dominant colours from an image",
		Long: `Extract the most common hue-distinct colours from an image file, a
directory (a random image is picked), an http(s) URL or a data: URL.

Downloads are cached under the cache directory. With the default five
colours the result is also shown as a palette.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  huekit extract wallpaper.jpg
  huekit extract --colours 8 --algorithm kmeans ~/Pictures/wallpapers
  huekit extract https://example.com/photo.png --json`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}

	addExtractFlags(cmd)
	cmd.Flags().IntP("colours", "c", 5, "number of colours to extract")
	return cmd
}

// addExtractFlags registers the flags shared by every command that runs
// extractions.
func addExtractFlags(cmd *cobra.Command) {
	cmd.Flags().String("algorithm", string(extract.AlgorithmQuantize), "ranking algorithm (quantize, kmeans)")
	cmd.Flags().Int("max-dimension", imageutil.DefaultMaxDimension, "longest side images are downscaled to")
	cmd.Flags().String("cache-dir", "", "directory for downloaded images")
	cmd.Flags().Duration("timeout", httputil.DefaultTimeout, "timeout for image downloads")
}

// newExtractor wires an extractor from the resolved configuration.
// denyPrivate is set when URLs come from untrusted callers.
func newExtractor(a *app, rng random.Source, denyPrivate bool) (*extract.Extractor, error) {
	fetch := httputil.FetchOptions{Timeout: a.cfg.HTTP.Timeout, DenyPrivate: denyPrivate}
	cache, err := imagecache.New(a.cfg.Extract.CacheDir, fetch)
	if err != nil {
		return nil, err
	}

	loader := &imageutil.SmartLoader{
		Fetch:  fetch,
		Cache:  cache,
		Picker: imageutil.NewPicker(rng),
		Logger: a.logger.Named("image"),
	}
	return extract.New(extract.Config{
		Loader: loader,
		Rand:   rng,
		Logger: a.logger.Named("extract"),
		Options: extract.Options{
			Algorithm:    a.cfg.Extract.Algorithm,
			MaxDimension: a.cfg.Extract.MaxDimension,
		},
	}), nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	ex, err := newExtractor(a, a.rng, false)
	if err != nil {
		return err
	}

	ref := args[0]
	n := a.cfg.Extract.Colours
	a.logger.Debug("extracting", "ref", ref, "colours", n, "algorithm", a.cfg.Extract.Algorithm)

	colors := <-ex.Async(cmd.Context(), extract.Source{Ref: ref}, n)
	if len(colors) == 0 {
		return fmt.Errorf("no colours extracted from %s", ref)
	}

	res := extractResult{Colors: colors}
	if p, err := palette.Extracted(palette.NewGenerator(a.rng).ID(), colors); err == nil {
		res.Palette = &p
	}

	if globalJSON {
		return a.writeJSON(res)
	}
	if res.Palette != nil {
		return a.writePalette(*res.Palette)
	}
	return a.writeColours(colors)
}
