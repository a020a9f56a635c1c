package image

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jmylchreest/huekit/internal/random"
)

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectory returns the image files directly inside dir, sorted by
// name. It does not recurse, but follows symlinks.
func ScanDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var images []string
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			continue
		}
		if isImageFile(entry.Name()) {
			images = append(images, full)
		}
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dir)
	}
	return images, nil
}

// Picker resolves directories to one of their images.
type Picker struct {
	rng random.Source
}

// NewPicker returns a picker over rng. A nil rng uses a randomly seeded source.
func NewPicker(rng random.Source) *Picker {
	if rng == nil {
		rng = random.NewRandom()
	}
	return &Picker{rng: rng}
}

// Resolve returns path unchanged for files and a random image for directories.
func (p *Picker) Resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	images, err := ScanDirectory(path)
	if err != nil {
		return "", err
	}
	return random.Pick(p.rng, images), nil
}
