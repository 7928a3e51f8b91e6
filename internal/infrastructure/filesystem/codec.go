package filesystem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"localesync/internal/domain"
	"localesync/internal/domain/entities"
)

// Decode parses a translation document, choosing the format from the file
// extension of path. Blank documents decode to an empty tree. Parse
// failures wrap domain.ErrMalformedDocument.
//
// JSON and YAML keep the document's key order. TOML keys come out sorted.
func Decode(path string, data []byte) (*entities.Tree, error) {
	var (
		tree *entities.Tree
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		tree, err = decodeJSON(data)
	case ".yaml", ".yml":
		tree, err = decodeYAML(data)
	case ".toml":
		tree, err = decodeTOML(data)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrMalformedDocument, path, err)
	}
	return tree, nil
}

func decodeJSON(data []byte) (*entities.Tree, error) {
	// Hand-edited locale files carry comments and trailing commas.
	stripped := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(stripped)) == 0 {
		return entities.NewTree(), nil
	}
	tree := entities.NewTree()
	if err := json.Unmarshal(stripped, tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func decodeYAML(data []byte) (*entities.Tree, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return entities.NewTree(), nil
		}
		node = node.Content[0]
	}
	if node.Kind == 0 {
		return entities.NewTree(), nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping at the top level", node.Line)
	}
	v, err := yamlValue(node)
	if err != nil {
		return nil, err
	}
	return v.(*entities.Tree), nil
}

func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		tree := entities.NewTree()
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := yamlValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			tree.Set(node.Content[i].Value, v)
		}
		return tree, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := yamlValue(child)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return v, nil
	}
}

func decodeTOML(data []byte) (*entities.Tree, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return treeFromMap(raw), nil
}

func treeFromMap(m map[string]any) *entities.Tree {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	tree := entities.NewTree()
	for _, k := range keys {
		tree.Set(k, fromTOML(m[k]))
	}
	return tree
}

func fromTOML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return treeFromMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = fromTOML(item)
		}
		return out
	default:
		return v
	}
}
