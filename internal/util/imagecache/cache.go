// Package imagecache keeps downloaded images on disk so repeated
// extractions of the same URL skip the network.
package imagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	httputil "github.com/jmylchreest/huekit/internal/util/http"
	"github.com/jmylchreest/huekit/internal/version"
)

// ErrNotURL is returned for references that are not http(s) URLs.
var ErrNotURL = errors.New("invalid URL: must start with http:// or https://")

// DefaultDir returns the per-user cache directory for images.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", version.Name, "images"), nil
	}
	return filepath.Join(cacheDir, version.Name, "images"), nil
}

// Cache stores fetched images in Dir, keyed by a hash of the URL.
type Cache struct {
	Dir   string
	Fetch httputil.FetchOptions
}

// New returns a cache rooted at dir, or at DefaultDir when dir is empty.
func New(dir string, fetch httputil.FetchOptions) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &Cache{Dir: dir, Fetch: fetch}, nil
}

// Path returns where url is cached. The file may not exist yet.
func (c *Cache) Path(url string) string {
	sum := sha256.Sum256([]byte(url))
	ext := filepath.Ext(url)
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 {
		ext = ".img"
	}
	return filepath.Join(c.Dir, hex.EncodeToString(sum[:16])+ext)
}

// Get returns the bytes for url, downloading them on a cache miss.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, ErrNotURL
	}

	path := c.Path(url)
	if data, err := os.ReadFile(path); err == nil { // #nosec G304 - path is derived from a hash inside the cache dir
		return data, nil
	}

	data, err := httputil.Fetch(ctx, url, c.Fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	if err := os.MkdirAll(c.Dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - Cache files need standard read permissions
		return nil, fmt.Errorf("failed to write cached image: %w", err)
	}
	return data, nil
}
