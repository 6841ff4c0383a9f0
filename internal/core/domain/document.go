package domain

import (
	"errors"
	"net/url"
	"strings"
)

// Document represents a registered PDF source.
// Documents are never mutated in place; a Save replaces the record wholesale.
type Document struct {
	// ID is the caller-assigned stable identifier.
	ID string `json:"id" yaml:"id"`

	// Title is the display name.
	Title string `json:"title" yaml:"title"`

	// Path is a resolvable, URI-encoded location such as /data/book.pdf.
	Path string `json:"path" yaml:"path"`
}

// ErrRelativePath is returned by NormalisePath for paths without a leading slash.
var ErrRelativePath = errors.New("path must start with '/' (e.g., /data/book.pdf)")

// NormalisePath trims the path, decodes any existing percent-escapes and
// re-encodes it, so that already-escaped and raw input map to the same value.
// Undecodable input is encoded as given.
func NormalisePath(path string) (string, error) {
	sanitised := strings.TrimSpace(path)
	if !strings.HasPrefix(sanitised, "/") {
		return "", ErrRelativePath
	}

	decoded, err := url.PathUnescape(sanitised)
	if err != nil {
		decoded = sanitised
	}

	return (&url.URL{Path: decoded}).EscapedPath(), nil
}

// DecodedPath returns the document path with percent-escapes removed.
// The raw path is returned when it cannot be decoded.
func (d Document) DecodedPath() string {
	decoded, err := url.PathUnescape(d.Path)
	if err != nil {
		return d.Path
	}
	return decoded
}
