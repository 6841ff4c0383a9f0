package domain

const unknownDescription = "Unknown"

// ReadingDirection is the per-document page order preference.
type ReadingDirection string

// Available reading directions.
const (
	// ReadingDirectionLTR turns pages left to right. It is the default.
	ReadingDirectionLTR ReadingDirection = "ltr"

	// ReadingDirectionRTL turns pages right to left.
	ReadingDirectionRTL ReadingDirection = "rtl"
)

// IsValid returns true if the reading direction is recognised.
func (d ReadingDirection) IsValid() bool {
	return d == ReadingDirectionLTR || d == ReadingDirectionRTL
}

// String returns the string representation.
func (d ReadingDirection) String() string {
	return string(d)
}

// Description returns a human-readable description of the direction.
func (d ReadingDirection) Description() string {
	switch d {
	case ReadingDirectionLTR:
		return "Left to right"
	case ReadingDirectionRTL:
		return "Right to left"
	default:
		return unknownDescription
	}
}

// StorageBackend identifies the persistent store implementation.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendBolt is the bbolt key-value file. It is the default.
	StorageBackendBolt StorageBackend = "bolt"

	// StorageBackendSQLite is the SQLite database file.
	StorageBackendSQLite StorageBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageBackendBolt || b == StorageBackendSQLite
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendBolt:
		return "bbolt (embedded key-value file)"
	case StorageBackendSQLite:
		return "SQLite (embedded relational file)"
	default:
		return unknownDescription
	}
}

// StorageSettings holds persistent store configuration.
type StorageSettings struct {
	// Backend selects the store implementation.
	Backend StorageBackend

	// DataDir is the directory holding the database file.
	// Empty means ~/.pdfindex/data.
	DataDir string
}

// LibrarySettings holds document library configuration.
type LibrarySettings struct {
	// Root is prepended to document paths when resolving them on disk.
	// Empty means paths are absolute filesystem paths.
	Root string
}

// TopicSettings holds topic display configuration.
type TopicSettings struct {
	// PathSeparator joins topic names in breadcrumbs.
	PathSeparator string

	// Layout controls graph layout spacing.
	Layout LayoutOptions
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Storage StorageSettings
	Library LibrarySettings
	Topics  TopicSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageBackendBolt,
		},
		Topics: TopicSettings{
			PathSeparator: DefaultPathSeparator,
			Layout:        DefaultLayoutOptions(),
		},
	}
}
