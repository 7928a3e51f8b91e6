package application

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"localesync/internal/domain/entities"
)

type memoryTemplates struct {
	tree *entities.Tree
	err  error
}

func (m memoryTemplates) Load(context.Context) (*entities.Tree, error) {
	return m.tree, m.err
}

type fetchResult struct {
	tree *entities.Tree
	err  error
}

// memoryLocales returns fs.ErrNotExist for locales it does not hold.
type memoryLocales map[string]fetchResult

func (m memoryLocales) Fetch(_ context.Context, locale string) (*entities.Tree, string, error) {
	path := "i18n/" + locale + ".json"
	r, ok := m[locale]
	if !ok {
		return nil, path, fmt.Errorf("locale %s: %w", locale, fs.ErrNotExist)
	}
	return r.tree, path, r.err
}

type recordingEmitter struct {
	artifacts []entities.Artifact
	failOn    string // component key
}

func (e *recordingEmitter) Emit(_ context.Context, a entities.Artifact) error {
	if a.Component == e.failOn {
		return errors.New("disk full")
	}
	e.artifacts = append(e.artifacts, a)
	return nil
}

func (e *recordingEmitter) forLocale(id string) []entities.Artifact {
	var out []entities.Artifact
	for _, a := range e.artifacts {
		if a.Locale.ID == id {
			out = append(out, a)
		}
	}
	return out
}

type stubAuditor struct {
	calls []string
	err   error
}

func (a *stubAuditor) Audit(_ context.Context, locale entities.Locale, template, data *entities.Tree) (entities.Coverage, error) {
	a.calls = append(a.calls, locale.ID)
	if a.err != nil {
		return entities.Coverage{}, a.err
	}
	return entities.Coverage{Total: 2, Translated: 1, Fallback: 1}, nil
}
