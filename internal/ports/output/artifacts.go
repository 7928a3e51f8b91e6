package output

import (
	"context"

	"localesync/internal/domain/entities"
)

// ArtifactEmitter persists reconciled component translations.
type ArtifactEmitter interface {
	Emit(ctx context.Context, artifact entities.Artifact) error
}

// CoverageAuditor measures how much of the template a locale document
// translates. data is the locale's resolved document, before reconciliation.
type CoverageAuditor interface {
	Audit(ctx context.Context, locale entities.Locale, template, data *entities.Tree) (entities.Coverage, error)
}
