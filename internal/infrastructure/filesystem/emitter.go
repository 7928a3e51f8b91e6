package filesystem

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"localesync/internal/domain/entities"
	"localesync/internal/ports/output"
)

var _ output.ArtifactEmitter = (*Emitter)(nil)

// helpTemplate wraps help markup for the editor's help sidebar. The
// surrounding whitespace matches files already checked into node packages.
const helpTemplate = `
              <script type="text/html" data-help-name="%s">
              %s
              </script>
            `

// Emitter writes artifacts under <root>/<prefix><segment>/<locales>/<folder>.
type Emitter struct {
	root       string
	prefix     string
	localesDir string
	logger     *zap.Logger
}

func NewEmitter(root, prefix, localesDir string, logger *zap.Logger) *Emitter {
	return &Emitter{
		root:       root,
		prefix:     prefix,
		localesDir: localesDir,
		logger:     logger,
	}
}

// Dir returns the directory an artifact is written to.
func (e *Emitter) Dir(a entities.Artifact) string {
	return filepath.Join(e.root, e.prefix+a.PathSegment, e.localesDir, a.Locale.Folder)
}

// Emit writes <component>.json and, when the artifact carries help markup,
// <component>.html. Existing files are overwritten.
func (e *Emitter) Emit(ctx context.Context, a entities.Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := e.Dir(a)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	body, err := EncodeComponent(a.Component, a.Translation)
	if err != nil {
		return fmt.Errorf("encode %s: %w", a.Component, err)
	}
	jsonPath := filepath.Join(dir, a.Component+".json")
	if err := writeFile(jsonPath, body); err != nil {
		return fmt.Errorf("write %s: %w", jsonPath, err)
	}

	if a.Help != "" {
		htmlPath := filepath.Join(dir, a.Component+".html")
		if err := writeFile(htmlPath, []byte(HelpDocument(a.Namespace, a.Help))); err != nil {
			return fmt.Errorf("write %s: %w", htmlPath, err)
		}
	}

	e.logger.Debug("artifact written",
		zap.String("component", a.Component),
		zap.String("locale", a.Locale.ID),
		zap.String("dir", dir),
		zap.Bool("help", a.Help != ""),
	)
	return nil
}

// EncodeComponent renders {component: translation} with two-space
// indentation and no trailing newline.
func EncodeComponent(component string, translation *entities.Tree) ([]byte, error) {
	wrapper := entities.NewTree()
	wrapper.Set(component, translation)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wrapper); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// HelpDocument wraps help markup in the script tag the editor looks up by
// namespace.
func HelpDocument(namespace, markup string) string {
	return fmt.Sprintf(helpTemplate, namespace, markup)
}
