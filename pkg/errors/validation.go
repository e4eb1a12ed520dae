package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// maxSegmentLength bounds a single group, name, or version segment.
const maxSegmentLength = 256

// ValidatePathSegment validates a value that is interpolated as one segment
// of a REST path (package group, name, or version).
//
// The validation rules are intentionally conservative:
//   - No empty values
//   - No control characters or null bytes
//   - No path separators (/, \)
//   - No parent directory sequences (..)
//   - Maximum length of 256 characters
//
// The field argument names the value in the returned message.
func ValidatePathSegment(field, value string) error {
	if value == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", field)
	}

	if len(value) > maxSegmentLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", field, maxSegmentLength)
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", field)
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(value, pattern) {
			return New(ErrCodeInvalidInput, "%s contains invalid characters: %q", field, pattern)
		}
	}

	return nil
}

// ValidateURL validates a server base URL.
// It ensures the URL parses, uses an http or https scheme, and names a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must include the http or https scheme: %q", rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL has no host: %q", rawURL)
	}

	return nil
}
