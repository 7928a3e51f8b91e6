package filesystem

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

var _ output.TemplateStore = (*TemplateStore)(nil)

// TemplateStore reads the template document from a single file.
type TemplateStore struct {
	path   string
	logger *zap.Logger
}

func NewTemplateStore(path string, logger *zap.Logger) *TemplateStore {
	return &TemplateStore{path: path, logger: logger}
}

// Load reads and validates the template. The template must be a non-empty
// object whose every component is itself an object.
func (s *TemplateStore) Load(ctx context.Context) (*entities.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := readFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", s.path, err)
	}

	tree, err := Decode(s.path, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTemplateInvalid, err)
	}
	if tree.Len() == 0 {
		return nil, fmt.Errorf("%w: %s has no components", domain.ErrTemplateInvalid, s.path)
	}
	for _, component := range tree.Keys() {
		if _, ok := tree.Subtree(component); !ok {
			return nil, fmt.Errorf("%w: component %q in %s is not an object", domain.ErrTemplateInvalid, component, s.path)
		}
	}

	s.logger.Info("template loaded",
		zap.String("path", s.path),
		zap.Int("components", tree.Len()),
	)
	return tree, nil
}
