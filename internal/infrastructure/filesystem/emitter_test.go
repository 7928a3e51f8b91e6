package filesystem

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"localesync/internal/domain/entities"
)

func testTree(t *testing.T, js string) *entities.Tree {
	t.Helper()
	out := entities.NewTree()
	require.NoError(t, json.Unmarshal([]byte(js), out))
	return out
}

func TestEncodeComponent(t *testing.T) {
	translation := testTree(t, `{"label":"Result & more","fields":{"name":"<b>Name</b>","empty":{}},"count":3}`)

	got, err := EncodeComponent("result", translation)
	require.NoError(t, err)

	want := `{
  "result": {
    "label": "Result & more",
    "fields": {
      "name": "<b>Name</b>",
      "empty": {}
    },
    "count": 3
  }
}`
	assert.Equal(t, want, string(got))
}

func TestEmitter_Emit(t *testing.T) {
	root := t.TempDir()
	emitter := NewEmitter(root, "rules-node-", "locales", zaptest.NewLogger(t))
	artifact := entities.Artifact{
		Component:   "rules-debug",
		Locale:      entities.Locale{ID: "zh-Hans", Folder: "zh-CN"},
		PathSegment: "debug",
		Namespace:   "rules-debug",
		Translation: testTree(t, `{"label":"调试"}`),
		Help:        "<p>帮助</p>",
	}

	require.NoError(t, emitter.Emit(context.Background(), artifact))

	dir := filepath.Join(root, "rules-node-debug", "locales", "zh-CN")
	assert.Equal(t, dir, emitter.Dir(artifact))

	body, err := os.ReadFile(filepath.Join(dir, "rules-debug.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"rules-debug\": {\n    \"label\": \"调试\"\n  }\n}", string(body))

	help, err := os.ReadFile(filepath.Join(dir, "rules-debug.html"))
	require.NoError(t, err)
	assert.Equal(t, "\n              <script type=\"text/html\" data-help-name=\"rules-debug\">\n              <p>帮助</p>\n              </script>\n            ", string(help))
}

func TestEmitter_OverwritesAndSkipsEmptyHelp(t *testing.T) {
	root := t.TempDir()
	emitter := NewEmitter(root, "rules-node-", "locales", zaptest.NewLogger(t))
	artifact := entities.Artifact{
		Component:   "topology",
		Locale:      entities.Locale{ID: "de", Folder: "de"},
		PathSegment: "topology",
		Namespace:   "topology",
		Translation: testTree(t, `{"label":"a much longer first value"}`),
	}
	ctx := context.Background()

	require.NoError(t, emitter.Emit(ctx, artifact))
	artifact.Translation = testTree(t, `{"label":"short"}`)
	require.NoError(t, emitter.Emit(ctx, artifact))

	dir := emitter.Dir(artifact)
	body, err := os.ReadFile(filepath.Join(dir, "topology.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"topology\": {\n    \"label\": \"short\"\n  }\n}", string(body))

	_, err = os.Stat(filepath.Join(dir, "topology.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestEmitter_ReportsWriteFailures(t *testing.T) {
	root := t.TempDir()
	// A file where the package directory should be.
	require.NoError(t, os.WriteFile(filepath.Join(root, "rules-node-result"), nil, 0o644))
	emitter := NewEmitter(root, "rules-node-", "locales", zaptest.NewLogger(t))

	err := emitter.Emit(context.Background(), entities.Artifact{
		Component:   "result",
		Locale:      entities.Locale{ID: "de", Folder: "de"},
		PathSegment: "result",
		Translation: entities.NewTree(),
	})

	assert.Error(t, err)
}
