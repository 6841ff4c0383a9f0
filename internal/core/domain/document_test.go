package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalisePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain path", "/data/book.pdf", "/data/book.pdf"},
		{"trims whitespace", "  /data/book.pdf  ", "/data/book.pdf"},
		{"encodes spaces", "/data/my book.pdf", "/data/my%20book.pdf"},
		{"keeps existing escapes", "/data/my%20book.pdf", "/data/my%20book.pdf"},
		{"undecodable input is encoded as given", "/data/100%.pdf", "/data/100%25.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalisePath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalisePath_RejectsRelative(t *testing.T) {
	_, err := NormalisePath("data/book.pdf")
	assert.ErrorIs(t, err, ErrRelativePath)
}

func TestDocument_DecodedPath(t *testing.T) {
	doc := Document{ID: "pdf-1", Path: "/data/my%20book.pdf"}
	assert.Equal(t, "/data/my book.pdf", doc.DecodedPath())

	broken := Document{ID: "pdf-2", Path: "/data/%zz.pdf"}
	assert.Equal(t, "/data/%zz.pdf", broken.DecodedPath())
}
