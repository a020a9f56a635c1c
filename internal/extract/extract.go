// Package extract pulls dominant colours out of raster images.
//
// The default pipeline downscales the image, quantises every channel to a
// coarse grid, ranks the buckets by frequency and keeps the most common
// colours whose hues are not too close to one already chosen. Neutral
// colours are never hue-filtered. A k-means algorithm can rank candidates
// instead of the frequency buckets.
package extract

import (
	"context"
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/huekit/internal/colour"
	imageutil "github.com/jmylchreest/huekit/internal/image"
	"github.com/jmylchreest/huekit/internal/random"
)

// Algorithm selects how candidate colours are ranked.
type Algorithm string

const (
	// AlgorithmQuantize ranks channel-quantised buckets by pixel count.
	AlgorithmQuantize Algorithm = "quantize"

	// AlgorithmKMeans ranks k-means cluster centroids by cluster size.
	AlgorithmKMeans Algorithm = "kmeans"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmQuantize, AlgorithmKMeans}
}

// ParseAlgorithm validates an algorithm name. The empty string selects quantize.
func ParseAlgorithm(s string) (Algorithm, error) {
	if s == "" {
		return AlgorithmQuantize, nil
	}
	alg := Algorithm(s)
	if !slices.Contains(ValidAlgorithms(), alg) {
		return "", fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", s, ValidAlgorithms())
	}
	return alg, nil
}

// MaxColours bounds how many colours one extraction may return.
const MaxColours = 256

// Options tune the pipeline. Zero fields take the defaults.
type Options struct {
	Algorithm         Algorithm
	MaxDimension      int
	Quantum           int
	Oversample        int
	HueTolerance      float64
	NeutralSaturation int
}

// DefaultOptions returns the standard pipeline settings.
func DefaultOptions() Options {
	return Options{
		Algorithm:         AlgorithmQuantize,
		MaxDimension:      imageutil.DefaultMaxDimension,
		Quantum:           32,
		Oversample:        3,
		HueTolerance:      30,
		NeutralSaturation: 10,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Algorithm == "" {
		o.Algorithm = d.Algorithm
	}
	if o.MaxDimension <= 0 {
		o.MaxDimension = d.MaxDimension
	}
	if o.Quantum <= 0 {
		o.Quantum = d.Quantum
	}
	if o.Oversample <= 0 {
		o.Oversample = d.Oversample
	}
	if o.HueTolerance <= 0 {
		o.HueTolerance = d.HueTolerance
	}
	if o.NeutralSaturation <= 0 {
		o.NeutralSaturation = d.NeutralSaturation
	}
	return o
}

// Config wires an Extractor's collaborators. Rand must be safe for
// concurrent use when Async runs overlap; wrap it with random.NewLocked.
type Config struct {
	Loader  imageutil.Loader
	Rand    random.Source
	Logger  hclog.Logger
	Options Options
}

// Extractor runs the extraction pipeline. It never returns an error:
// anything that cannot be decoded yields an empty slice.
type Extractor struct {
	loader imageutil.Loader
	rng    random.Source
	logger hclog.Logger
	opts   Options
}

// New returns an extractor. Missing collaborators fall back to a
// SmartLoader, a randomly seeded source and a null logger.
func New(cfg Config) *Extractor {
	e := &Extractor{
		loader: cfg.Loader,
		rng:    cfg.Rand,
		logger: cfg.Logger,
		opts:   cfg.Options.withDefaults(),
	}
	if e.loader == nil {
		e.loader = imageutil.NewSmartLoader()
	}
	if e.rng == nil {
		e.rng = random.NewLocked(random.NewRandom())
	}
	if e.logger == nil {
		e.logger = hclog.NewNullLogger()
	}
	return e
}

// Options returns the effective settings.
func (e *Extractor) Options() Options {
	return e.opts
}

// FromImage extracts up to n colours from a decoded image. It returns fewer
// than n only when the image has no visible pixels.
func (e *Extractor) FromImage(img image.Image, n int) []colour.Color {
	if img == nil || n <= 0 {
		return []colour.Color{}
	}
	n = min(n, MaxColours)

	small := imageutil.Downscale(img, e.opts.MaxDimension)
	limit := n * e.opts.Oversample

	var ranked []colour.RGB
	switch e.opts.Algorithm {
	case AlgorithmKMeans:
		ranked = newKMeans(e.rng).rank(small, limit)
	default:
		ranked = quantize(small, e.opts.Quantum)
		ranked = ranked[:min(len(ranked), limit)]
	}

	return e.choose(ranked, n)
}

// FromBytes decodes data and extracts up to n colours.
func (e *Extractor) FromBytes(ctx context.Context, data []byte, n int) []colour.Color {
	if ctx.Err() != nil {
		return []colour.Color{}
	}
	img, err := imageutil.Decode(data)
	if err != nil {
		e.logger.Debug("image decode failed", "bytes", len(data), "error", err)
		return []colour.Color{}
	}
	return e.FromImage(img, n)
}

// FromRef loads a file path, directory, URL or data URL and extracts up to
// n colours.
func (e *Extractor) FromRef(ctx context.Context, ref string, n int) []colour.Color {
	img, err := e.loader.Load(ctx, ref)
	if err != nil {
		e.logger.Debug("image load failed", "ref", ref, "error", err)
		return []colour.Color{}
	}
	if ctx.Err() != nil {
		return []colour.Color{}
	}
	return e.FromImage(img, n)
}

// choose walks the ranked candidates keeping hue-distinct colours, then
// tops up with random picks from the same list.
func (e *Extractor) choose(ranked []colour.RGB, n int) []colour.Color {
	out := make([]colour.Color, 0, n)
	var hues []float64

	for _, rgb := range ranked {
		if len(out) >= n {
			break
		}
		hsl := rgb.HSL()
		if hsl.S > e.opts.NeutralSaturation {
			h := float64(hsl.H)
			if slices.ContainsFunc(hues, func(used float64) bool {
				return math.Abs(used-h) < e.opts.HueTolerance
			}) {
				continue
			}
			hues = append(hues, h)
		}
		out = append(out, e.named(rgb, hsl))
	}

	for len(out) < n && len(ranked) > 0 {
		rgb := random.Pick(e.rng, ranked)
		out = append(out, e.named(rgb, rgb.HSL()))
	}
	return out
}

func (e *Extractor) named(rgb colour.RGB, hsl colour.HSL) colour.Color {
	return colour.Color{
		Hex:  rgb.Hex(),
		Name: colour.NameFor(float64(hsl.H), float64(hsl.S), e.rng),
	}
}
