package image

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrDataURL is returned for malformed data: URLs.
var ErrDataURL = errors.New("malformed data URL")

// IsDataURL reports whether ref uses the data: scheme.
func IsDataURL(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}

// ParseDataURL returns the payload of a data: URL such as
// "data:image/png;base64,iVBOR...". Non-base64 payloads are percent-decoded.
func ParseDataURL(ref string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !IsDataURL(ref) || !ok {
		return nil, ErrDataURL
	}

	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// Some encoders drop the padding.
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDataURL, err)
		}
		return data, nil
	}

	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataURL, err)
	}
	return []byte(s), nil
}
