package application

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"localesync/internal/domain"
	"localesync/internal/domain/entities"
	"localesync/internal/ports/output"
)

// Resolution is the document a locale is reconciled from.
type Resolution struct {
	Document *entities.Tree
	Source   string // entities.SourceLocale or entities.SourceTemplate
	Reason   string // fallback reason when Source is the template
	Path     string
}

// LocaleResolver picks the document for a locale, substituting the whole
// template when the locale has nothing usable.
type LocaleResolver struct {
	source   output.LocaleSource
	template *entities.Tree
	logger   *zap.Logger
}

func NewLocaleResolver(source output.LocaleSource, template *entities.Tree, logger *zap.Logger) *LocaleResolver {
	return &LocaleResolver{
		source:   source,
		template: template,
		logger:   logger,
	}
}

// Resolve returns the locale's own document, or the template when the
// locale document is missing, empty or malformed. Other read failures are
// returned.
func (r *LocaleResolver) Resolve(ctx context.Context, locale string) (*Resolution, error) {
	doc, path, err := r.source.Fetch(ctx, locale)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return r.fallback(locale, path, entities.FallbackMissing), nil
	case errors.Is(err, domain.ErrMalformedDocument):
		r.logger.Warn("locale document is malformed, using template",
			zap.String("locale", locale),
			zap.String("path", path),
			zap.Error(err),
		)
		return r.fallback(locale, path, entities.FallbackInvalid), nil
	case err != nil:
		return nil, fmt.Errorf("fetch locale %s: %w", locale, err)
	case doc.Len() == 0:
		return r.fallback(locale, path, entities.FallbackEmpty), nil
	}

	return &Resolution{
		Document: doc,
		Source:   entities.SourceLocale,
		Path:     path,
	}, nil
}

func (r *LocaleResolver) fallback(locale, path, reason string) *Resolution {
	r.logger.Debug("locale falls back to template",
		zap.String("locale", locale),
		zap.String("reason", reason),
	)
	return &Resolution{
		Document: r.template,
		Source:   entities.SourceTemplate,
		Reason:   reason,
		Path:     path,
	}
}
