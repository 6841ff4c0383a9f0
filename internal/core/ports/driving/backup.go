package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

// BackupService exports and imports full store snapshots.
type BackupService interface {
	// Export returns a snapshot of every partition.
	Export(ctx context.Context) (*domain.Backup, error)

	// Import replaces the store's contents with the snapshot atomically.
	Import(ctx context.Context, snapshot *domain.Backup) error

	// Encode writes the snapshot in the given format.
	Encode(w io.Writer, snapshot *domain.Backup, format domain.BackupFormat) error

	// Decode reads a snapshot in the given format.
	Decode(r io.Reader, format domain.BackupFormat) (*domain.Backup, error)
}
