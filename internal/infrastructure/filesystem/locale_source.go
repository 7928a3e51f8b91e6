package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"localesync/internal/domain/entities"
	"localesync/internal/ports/output"
)

var _ output.LocaleSource = (*LocaleSource)(nil)

// localeExtensions is the lookup order for <locale><ext> in the i18n dir.
var localeExtensions = []string{".json", ".jsonc", ".yaml", ".yml", ".toml"}

// LocaleSource reads locale documents from the i18n directory.
type LocaleSource struct {
	dir string
}

func NewLocaleSource(dir string) *LocaleSource {
	return &LocaleSource{dir: dir}
}

func (s *LocaleSource) Fetch(ctx context.Context, locale string) (*entities.Tree, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	for _, ext := range localeExtensions {
		path := filepath.Join(s.dir, locale+ext)
		data, err := readFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, path, fmt.Errorf("read %s: %w", path, err)
		}
		tree, err := Decode(path, data)
		return tree, path, err
	}
	return nil, filepath.Join(s.dir, locale+localeExtensions[0]), fmt.Errorf("locale %s: %w", locale, fs.ErrNotExist)
}
