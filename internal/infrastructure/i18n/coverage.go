package i18n

import (
	"context"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	i18ntemplate "github.com/nicksnyder/go-i18n/v2/i18n/template"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"localesync/internal/domain"
	"localesync/internal/domain/entities"
	"localesync/internal/ports/output"
)

// Ensure CoverageAuditor implements the output.CoverageAuditor port.
var _ output.CoverageAuditor = (*CoverageAuditor)(nil)

// CoverageAuditor measures translation coverage with a go-i18n Bundle.
//
// Template strings are registered under the base language and the locale's
// own strings under the locale's tag. Each template leaf is then localized
// for the locale: go-i18n serves it from the locale tag when the locale
// translates it and falls back to the base language otherwise, which is the
// same per-key fallback the reconciler applies.
type CoverageAuditor struct {
	base    language.Tag
	helpKey string
	logger  *zap.Logger
}

// NewCoverageAuditor builds an auditor whose template strings are written
// in baseLocale (e.g. "en").
func NewCoverageAuditor(baseLocale, helpKey string, logger *zap.Logger) (*CoverageAuditor, error) {
	tag, err := language.Parse(baseLocale)
	if err != nil {
		return nil, fmt.Errorf("%w: base locale %q: %w", domain.ErrInvalidLocale, baseLocale, err)
	}
	return &CoverageAuditor{
		base:    tag,
		helpKey: helpKey,
		logger:  logger,
	}, nil
}

// Audit counts the template's string leaves served by the locale. data is
// the locale's resolved document; when it is the template itself every leaf
// counts as a fallback.
func (a *CoverageAuditor) Audit(ctx context.Context, locale entities.Locale, template, data *entities.Tree) (entities.Coverage, error) {
	if err := ctx.Err(); err != nil {
		return entities.Coverage{}, err
	}
	tag, err := language.Parse(locale.ID)
	if err != nil {
		return entities.Coverage{}, fmt.Errorf("%w: %q: %w", domain.ErrInvalidLocale, locale.ID, err)
	}

	var ids []string
	var templateMessages []*i18n.Message
	walkLeaves("", template, a.helpKey, func(id string, v any) {
		s, ok := v.(string)
		if !ok {
			return
		}
		ids = append(ids, id)
		if s != "" {
			templateMessages = append(templateMessages, &i18n.Message{ID: id, Other: s})
		}
	})

	coverage := entities.Coverage{Total: len(ids)}
	if data == template {
		coverage.Fallback = coverage.Total
		a.log(locale, coverage)
		return coverage, nil
	}

	var localeMessages []*i18n.Message
	walkLeaves("", data, a.helpKey, func(id string, v any) {
		if s, ok := v.(string); ok && s != "" {
			localeMessages = append(localeMessages, &i18n.Message{ID: id, Other: s})
		}
	})

	bundle := i18n.NewBundle(a.base)
	if tag != a.base && len(templateMessages) > 0 {
		if err := bundle.AddMessages(a.base, templateMessages...); err != nil {
			return entities.Coverage{}, fmt.Errorf("add template messages: %w", err)
		}
	}
	if len(localeMessages) > 0 {
		if err := bundle.AddMessages(tag, localeMessages...); err != nil {
			return entities.Coverage{}, fmt.Errorf("add %s messages: %w", locale.ID, err)
		}
	}

	localizer := i18n.NewLocalizer(bundle, locale.ID)
	for _, id := range ids {
		// Leaves are plain text; placeholders like {{name}} are not templates.
		_, used, err := localizer.LocalizeWithTag(&i18n.LocalizeConfig{
			MessageID:      id,
			TemplateParser: i18ntemplate.IdentityParser{},
		})
		if err == nil && used == tag {
			coverage.Translated++
		} else {
			coverage.Fallback++
		}
	}

	a.log(locale, coverage)
	return coverage, nil
}

func (a *CoverageAuditor) log(locale entities.Locale, c entities.Coverage) {
	a.logger.Info("translation coverage",
		zap.String("locale", locale.ID),
		zap.Int("translated", c.Translated),
		zap.Int("fallback", c.Fallback),
		zap.Int("total", c.Total),
		zap.Float64("ratio", c.Ratio()),
	)
}

// walkLeaves visits every non-object value under tree with its dotted
// message ID, skipping helpKey at every level.
func walkLeaves(prefix string, tree *entities.Tree, helpKey string, fn func(id string, v any)) {
	for _, key := range tree.Keys() {
		if key == helpKey {
			continue
		}
		id := key
		if prefix != "" {
			id = prefix + "." + key
		}
		v, _ := tree.Get(key)
		if sub, ok := v.(*entities.Tree); ok {
			walkLeaves(id, sub, helpKey, fn)
			continue
		}
		fn(id, v)
	}
}
