package output

import (
	"context"

	"localesync/internal/domain/entities"
)

// TemplateStore loads the canonical template document.
type TemplateStore interface {
	// Load returns the template. Errors wrap domain.ErrTemplateNotFound or
	// domain.ErrTemplateInvalid and are fatal for a run.
	Load(ctx context.Context) (*entities.Tree, error)
}

// LocaleSource reads the raw document for one locale identifier.
type LocaleSource interface {
	// Fetch returns the parsed document and the path it came from.
	// A missing resource yields an error wrapping fs.ErrNotExist; a
	// resource that cannot be decoded yields a decode error.
	Fetch(ctx context.Context, locale string) (*entities.Tree, string, error)
}
