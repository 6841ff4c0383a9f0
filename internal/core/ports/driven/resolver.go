package driven

import "context"

// PathResolver checks whether a document path still points at a PDF.
type PathResolver interface {
	// Resolvable reports whether path refers to a readable PDF.
	// A false result with a nil error means the path is gone or is not a PDF.
	Resolvable(ctx context.Context, path string) (bool, error)
}
