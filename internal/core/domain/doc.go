// Package domain defines the core business entities for pdfindex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A registered PDF (id, title, resolvable path)
//   - Highlight: A rectangular, page-anchored annotation
//   - Topic: A node in the topic forest used to categorise highlights
//   - Bookmark: A titled page marker inside a document
//   - Backup: The full-snapshot interchange format
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
