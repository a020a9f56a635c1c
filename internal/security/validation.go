// Package security validates untrusted references before huekit fetches or
// writes them.
package security

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// maxRedirects matches net/http's default redirect limit.
const maxRedirects = 10

var (
	// ErrPrivateHost is returned for URLs pointing at loopback, private or
	// link-local addresses.
	ErrPrivateHost = errors.New("URL cannot point to local or private hosts")

	// ErrPathEscape is returned for file names that would leave their
	// directory.
	ErrPathEscape = errors.New("file path escapes the output directory")
)

// ValidateRemoteURL checks that urlStr is an http(s) URL with a public
// host. Literal addresses in any inet_aton form and local host names are
// rejected here. Names that resolve to private addresses are caught at
// connect time by DialControl.
func ValidateRemoteURL(urlStr string) error {
	if urlStr == "" {
		return errors.New("empty URL")
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("invalid URL protocol (only http:// and https:// allowed): %s", scheme)
	}
	if parsed.Host == "" {
		return errors.New("URL must have a hostname")
	}

	host := strings.ToLower(parsed.Hostname())
	if isLocalOrPrivateHost(host) {
		return fmt.Errorf("%w: %s", ErrPrivateHost, host)
	}
	return nil
}

// ValidateFilePath checks that name, as returned by an exporter, stays
// inside baseDir once joined, and returns the joined path.
func ValidateFilePath(name, baseDir string) (string, error) {
	if name == "" {
		return "", errors.New("empty file path")
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: absolute path %s", ErrPathEscape, name)
	}

	cleanBase := filepath.Clean(baseDir)
	final := filepath.Join(cleanBase, name)
	if final == cleanBase || !strings.HasPrefix(final, cleanBase+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscape, name)
	}
	return final, nil
}

// DialControl is a net.Dialer Control hook refusing connections to local
// or private addresses. It sees the resolved address of every dial.
func DialControl(network, address string, _ syscall.RawConn) error {
	ap, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: unparseable dial address %s", ErrPrivateHost, address)
	}
	if isLocalOrPrivateAddr(ap.Addr()) {
		return fmt.Errorf("%w: %s", ErrPrivateHost, ap.Addr())
	}
	return nil
}

// CheckRedirect validates every redirect target with ValidateRemoteURL.
// It is meant for http.Client.CheckRedirect.
func CheckRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if err := ValidateRemoteURL(req.URL.String()); err != nil {
		return fmt.Errorf("redirect refused: %w", err)
	}
	return nil
}

// GuardedDialer returns a dialer that applies DialControl.
func GuardedDialer() *net.Dialer {
	return &net.Dialer{Control: DialControl}
}

func isLocalOrPrivateHost(host string) bool {
	host = strings.TrimSuffix(strings.Trim(host, "[]"), ".")
	switch {
	case host == "localhost", host == "metadata",
		strings.HasSuffix(host, ".localhost"),
		strings.HasSuffix(host, ".local"),
		strings.HasSuffix(host, ".internal"):
		return true
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		return isLocalOrPrivateAddr(addr)
	}
	if addr, ok := parseLegacyIPv4(host); ok {
		return isLocalOrPrivateAddr(addr)
	}
	return false
}

func isLocalOrPrivateAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	if addr.Is4() && addr.As4()[0] == 0 {
		return true
	}
	return addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() || addr.IsUnspecified()
}

// parseLegacyIPv4 accepts the shorthand forms inet_aton does and browsers
// still resolve: one to four parts, each decimal, octal (leading 0) or hex
// (leading 0x), the last part filling the remaining bytes.
func parseLegacyIPv4(host string) (netip.Addr, bool) {
	parts := strings.Split(host, ".")
	if len(parts) == 0 || len(parts) > 4 {
		return netip.Addr{}, false
	}
	vals := make([]uint64, len(parts))
	for i, p := range parts {
		if p == "" {
			return netip.Addr{}, false
		}
		v, err := strconv.ParseUint(p, 0, 32)
		if err != nil {
			return netip.Addr{}, false
		}
		vals[i] = v
	}

	last := len(vals) - 1
	var n uint64
	for i, v := range vals[:last] {
		if v > 0xff {
			return netip.Addr{}, false
		}
		n |= v << (8 * (3 - i))
	}
	if vals[last] >= 1<<(8*(4-last)) {
		return netip.Addr{}, false
	}
	n |= vals[last]
	return netip.AddrFrom4([4]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}), true
}
