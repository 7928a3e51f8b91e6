package application

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"localesync/internal/domain"
	"localesync/internal/domain/entities"
	"localesync/internal/ports/input"
	"localesync/internal/ports/output"
)

var _ input.SyncUseCase = (*SyncService)(nil)

type SyncService struct {
	templates output.TemplateStore
	locales   output.LocaleSource
	emitter   output.ArtifactEmitter
	auditor   output.CoverageAuditor
	mappings  entities.Mappings
	only      []string
	logger    *zap.Logger
}

type Option func(*SyncService)

// WithAuditor enables per-locale coverage measurement.
func WithAuditor(auditor output.CoverageAuditor) Option {
	return func(s *SyncService) { s.auditor = auditor }
}

// WithLocales restricts a run to the given supported locale identifiers.
func WithLocales(ids ...string) Option {
	return func(s *SyncService) { s.only = ids }
}

func NewSyncService(
	templates output.TemplateStore,
	locales output.LocaleSource,
	emitter output.ArtifactEmitter,
	mappings entities.Mappings,
	logger *zap.Logger,
	opts ...Option,
) *SyncService {
	s := &SyncService{
		templates: templates,
		locales:   locales,
		emitter:   emitter,
		mappings:  mappings,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loads the template once and synchronizes each target locale in turn.
// It stops at the first error; the returned report covers the locales
// finished before it.
func (s *SyncService) Run(ctx context.Context) (*entities.Report, error) {
	targets, err := s.targets()
	if err != nil {
		return nil, err
	}

	template, err := s.templates.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	for _, component := range template.Keys() {
		if _, ok := s.mappings.Namespace(component); !ok {
			s.logger.Warn("component has no help namespace, using its key",
				zap.String("component", component),
			)
		}
	}

	resolver := NewLocaleResolver(s.locales, template, s.logger)
	report := &entities.Report{}
	for _, locale := range targets {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		lr, err := s.syncLocale(ctx, resolver, template, locale)
		if err != nil {
			return report, fmt.Errorf("locale %s: %w", locale.ID, err)
		}
		report.Locales = append(report.Locales, *lr)
	}
	return report, nil
}

func (s *SyncService) targets() ([]entities.Locale, error) {
	all := s.mappings.SupportedLocales()
	if len(s.only) == 0 {
		return all, nil
	}
	out := make([]entities.Locale, 0, len(s.only))
	seen := make(map[string]bool, len(s.only))
	for _, id := range s.only {
		if !slices.Contains(s.mappings.Locales, id) {
			return nil, fmt.Errorf("%w: %q is not a supported locale", domain.ErrInvalidLocale, id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, s.mappings.Locale(id))
	}
	return out, nil
}

func (s *SyncService) syncLocale(ctx context.Context, resolver *LocaleResolver, template *entities.Tree, locale entities.Locale) (*entities.LocaleReport, error) {
	res, err := resolver.Resolve(ctx, locale.ID)
	if err != nil {
		return nil, err
	}

	plan := ReconcileDocument(template, res.Document, s.mappings.HelpKey)
	lr := &entities.LocaleReport{
		Locale:  locale,
		Source:  res.Source,
		Reason:  res.Reason,
		Path:    res.Path,
		Skipped: plan.Skipped,
	}
	for _, component := range plan.Skipped {
		s.logger.Warn("skipping component unknown to the template",
			zap.String("locale", locale.ID),
			zap.String("component", component),
			zap.Error(domain.ErrUnknownComponent),
		)
	}

	for _, entry := range plan.Entries {
		if err := s.emitter.Emit(ctx, s.artifact(locale, entry)); err != nil {
			return nil, fmt.Errorf("emit %s: %w", entry.Component, err)
		}
		switch entry.Pass {
		case PassMissing:
			lr.Missing = append(lr.Missing, entry.Component)
		case PassMain:
			lr.Written = append(lr.Written, entry.Component)
		}
	}

	if s.auditor != nil {
		coverage, err := s.auditor.Audit(ctx, locale, template, res.Document)
		if err != nil {
			s.logger.Warn("coverage audit failed", zap.String("locale", locale.ID), zap.Error(err))
		} else {
			lr.Coverage = &coverage
		}
	}

	s.logger.Info("locale synchronized",
		zap.String("locale", locale.ID),
		zap.String("folder", locale.Folder),
		zap.String("source", res.Source),
		zap.String("reason", res.Reason),
		zap.Int("missing_components", len(lr.Missing)),
		zap.Int("components", len(lr.Written)),
	)
	return lr, nil
}

func (s *SyncService) artifact(locale entities.Locale, entry PlanEntry) entities.Artifact {
	namespace, _ := s.mappings.Namespace(entry.Component)
	return entities.Artifact{
		Component:   entry.Component,
		Locale:      locale,
		PathSegment: s.mappings.PathSegment(entry.Component),
		Namespace:   namespace,
		Translation: entry.Translation,
		Help:        HelpMarkup(entry.Data, entry.Template, s.mappings.HelpKey),
	}
}
