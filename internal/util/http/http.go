// Package http provides HTTP utilities for fetching remote resources.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmylchreest/huekit/internal/security"
	"github.com/jmylchreest/huekit/internal/version"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBytes caps response bodies at 32 MiB.
	DefaultMaxBytes = 32 << 20
)

// ErrTooLarge is returned when a response exceeds FetchOptions.MaxBytes.
var ErrTooLarge = errors.New("response body too large")

// FetchOptions configures HTTP fetch behavior.
type FetchOptions struct {
	// Timeout specifies the HTTP request timeout.
	// If zero, DefaultTimeout is used.
	Timeout time.Duration

	// MaxBytes limits the body size. If zero, DefaultMaxBytes is used.
	MaxBytes int64

	// Headers specifies additional HTTP headers to send with the request.
	Headers map[string]string

	// DenyPrivate refuses URLs, redirect targets and resolved addresses
	// that are local or private. Use it for URLs taken from untrusted input.
	DenyPrivate bool

	// Client overrides the HTTP client, mainly for tests. With DenyPrivate
	// its redirects are still checked, but its transport is used as is.
	Client *http.Client
}

// NewClient returns the client Fetch uses when opts.Client is unset.
func NewClient(opts FetchOptions) *http.Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}
	if opts.DenyPrivate {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = nil
		transport.DialContext = security.GuardedDialer().DialContext
		client.Transport = transport
		client.CheckRedirect = security.CheckRedirect
	}
	return client
}

// Fetch retrieves content from a URL with context and timeout support.
// It sets the User-Agent header and rejects non-200 responses.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	limit := opts.MaxBytes
	if limit == 0 {
		limit = DefaultMaxBytes
	}

	if opts.DenyPrivate {
		if err := security.ValidateRemoteURL(url); err != nil {
			return nil, err
		}
	}

	client := opts.Client
	switch {
	case client == nil:
		client = NewClient(opts)
	case opts.DenyPrivate:
		guarded := *client
		guarded.CheckRedirect = security.CheckRedirect
		client = &guarded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}

	return data, nil
}
