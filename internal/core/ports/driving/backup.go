package driving

import (
	"context"

	"github.com/atticware/ghattic/internal/core/domain"
)

// Backup runs the issue/pull-request mirror for one repository.
type Backup interface {
	// Run performs one backup pass: full where no cursor exists,
	// incremental otherwise. On error the returned summary still
	// describes the kinds that completed before the failure.
	Run(ctx context.Context) (*domain.RunSummary, error)
}
