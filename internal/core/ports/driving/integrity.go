package driving

import (
	"context"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

// IntegrityService reports dangling references without changing anything.
type IntegrityService interface {
	Audit(ctx context.Context) (*domain.IntegrityReport, error)
}
