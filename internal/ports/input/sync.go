package input

import (
	"context"

	"localesync/internal/domain/entities"
)

type SyncUseCase interface {
	// Run synchronizes every configured locale and reports what was written.
	Run(ctx context.Context) (*entities.Report, error)
}
