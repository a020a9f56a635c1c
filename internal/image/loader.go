// Package image loads images from files, directories, URLs, data URLs and
// raw bytes, and downscales them for colour analysis.
package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"strings"

	"github.com/h2non/filetype"
	"github.com/hashicorp/go-hclog"
	_ "golang.org/x/image/webp" // Register WebP format

	httputil "github.com/jmylchreest/huekit/internal/util/http"
	"github.com/jmylchreest/huekit/internal/util/imagecache"
)

var (
	// ErrEmptyRef is returned when no image reference is given.
	ErrEmptyRef = errors.New("image reference cannot be empty")
	// ErrUnsupported is returned for data that is not a supported image.
	ErrUnsupported = errors.New("unsupported image format")
)

// supportedMIME lists the formats with a registered decoder.
var supportedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Loader turns a reference into a decoded image.
type Loader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// Decode sniffs data and decodes it. Anything that is not JPEG, PNG, GIF or
// WebP is rejected before a decoder runs.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no data", ErrUnsupported)
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return nil, fmt.Errorf("%w: unrecognised content", ErrUnsupported)
	}
	if !supportedMIME[kind.MIME.Value] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, kind.MIME.Value)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// Load reads and decodes the file at path.
func (FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, ErrEmptyRef
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return Decode(data)
}

// SmartLoader dispatches on the reference: data: URLs are decoded inline,
// http(s) URLs are fetched (through the cache when one is set), and
// anything else is a file path. Directories resolve to a random image.
type SmartLoader struct {
	Fetch  httputil.FetchOptions
	Cache  *imagecache.Cache
	Picker *Picker
	Logger hclog.Logger
}

// NewSmartLoader returns a loader with default fetch options.
func NewSmartLoader() *SmartLoader {
	return &SmartLoader{}
}

// Load implements Loader.
func (l *SmartLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	logger := l.logger()
	switch {
	case ref == "":
		return nil, ErrEmptyRef
	case IsDataURL(ref):
		data, err := ParseDataURL(ref)
		if err != nil {
			return nil, err
		}
		return Decode(data)
	case IsURL(ref):
		logger.Debug("fetching image", "url", ref)
		data, err := l.fetch(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
		}
		return Decode(data)
	}

	path, err := l.picker().Resolve(ref)
	if err != nil {
		return nil, err
	}
	if path != ref {
		logger.Debug("selected image from directory", "dir", ref, "path", path)
	}
	return FileLoader{}.Load(ctx, path)
}

func (l *SmartLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.Cache != nil {
		return l.Cache.Get(ctx, url)
	}
	return httputil.Fetch(ctx, url, l.Fetch)
}

func (l *SmartLoader) picker() *Picker {
	if l.Picker == nil {
		return NewPicker(nil)
	}
	return l.Picker
}

func (l *SmartLoader) logger() hclog.Logger {
	if l.Logger == nil {
		return hclog.NewNullLogger()
	}
	return l.Logger
}

// IsURL reports whether ref is an http(s) URL.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
