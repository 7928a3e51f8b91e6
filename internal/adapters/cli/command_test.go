package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const template = `{
  "result": {
    "HTML_HELP_TEMPLATE": "<p>Shows the result.</p>",
    "label": "Result",
    "fields": {"name": "Name", "value": "Value"}
  },
  "topology": {
    "label": "Topology",
    "graph": {"node": "Node", "edge": {"in": "In", "out": "Out"}}
  },
  "rules-debug": {
    "label": "Debug"
  }
}`

type workspace struct {
	i18n  string
	nodes string
}

func newWorkspace(t *testing.T, locales map[string]string) workspace {
	t.Helper()
	for _, key := range []string{
		"I18N_DIR", "TEMPLATE_FILE", "NODES_DIR", "NODE_DIR_PREFIX",
		"LOCALES_SUBDIR", "MAPPINGS_FILE", "BASE_LOCALE", "LOG_ENV",
	} {
		t.Setenv(key, "")
	}
	root := t.TempDir()
	ws := workspace{i18n: filepath.Join(root, "i18n"), nodes: filepath.Join(root, "rules-nodes")}
	require.NoError(t, os.MkdirAll(ws.i18n, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ws.i18n, "template.json"), []byte(template), 0o644))
	for name, content := range locales {
		require.NoError(t, os.WriteFile(filepath.Join(ws.i18n, name), []byte(content), 0o644))
	}
	return ws
}

func (ws workspace) run(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var stderr bytes.Buffer
	args = append([]string{"--i18n-dir", ws.i18n, "--nodes-dir", ws.nodes}, args...)
	code := Run(context.Background(), args, &stderr)
	return code, stderr.String()
}

func (ws workspace) read(t *testing.T, segment, folder, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(ws.nodes, "rules-node-"+segment, "locales", folder, name))
	require.NoError(t, err)
	return string(data)
}

func TestRun_WritesEveryComponent(t *testing.T) {
	ws := newWorkspace(t, map[string]string{
		"de.json": `{"result":{"label":"Ergebnis","HTML_HELP_TEMPLATE":"<p>Zeigt das Ergebnis.</p>"}}`,
	})

	code, stderr := ws.run(t, "--locale", "de", "--coverage")
	require.Equal(t, ExitOK, code, stderr)

	assert.Equal(t, `{
  "result": {
    "label": "Ergebnis",
    "fields": {
      "name": "Name",
      "value": "Value"
    }
  }
}`, ws.read(t, "result", "de", "result.json"))
	assert.Contains(t, ws.read(t, "result", "de", "result.html"), `data-help-name="result">`)
	assert.Contains(t, ws.read(t, "result", "de", "result.html"), "<p>Zeigt das Ergebnis.</p>")

	// Components the locale never mentions are written in full.
	assert.Equal(t, `{
  "topology": {
    "label": "Topology",
    "graph": {
      "node": "Node",
      "edge": {
        "in": "In",
        "out": "Out"
      }
    }
  }
}`, ws.read(t, "topology", "de", "topology.json"))
	assert.Contains(t, ws.read(t, "debug", "de", "rules-debug.json"), `"label": "Debug"`)
	_, err := os.Stat(filepath.Join(ws.nodes, "rules-node-debug", "locales", "de", "rules-debug.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_EmptyLocaleMatchesTemplateArtifacts(t *testing.T) {
	ws := newWorkspace(t, map[string]string{"fr.json": "{}"})

	code, stderr := ws.run(t, "--locale", "en", "--locale", "fr")
	require.Equal(t, ExitOK, code, stderr)

	for _, c := range []struct{ segment, name string }{
		{"result", "result.json"},
		{"result", "result.html"},
		{"topology", "topology.json"},
		{"debug", "rules-debug.json"},
	} {
		assert.Equal(t, ws.read(t, c.segment, "en-US", c.name), ws.read(t, c.segment, "fr", c.name), c.name)
	}
}

func TestRun_MalformedLocaleFallsBackToTemplate(t *testing.T) {
	ws := newWorkspace(t, map[string]string{"it.json": `{"result": {`})

	code, stderr := ws.run(t, "--locale", "it")
	require.Equal(t, ExitOK, code, stderr)

	assert.Contains(t, ws.read(t, "result", "it", "result.json"), `"label": "Result"`)
}

func TestRun_ExitCodes(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		ws := newWorkspace(t, nil)
		code, stderr := ws.run(t, "--help")
		assert.Equal(t, ExitOK, code)
		assert.Contains(t, stderr, "--nodes-dir")
	})
	t.Run("unknown flag", func(t *testing.T) {
		ws := newWorkspace(t, nil)
		code, _ := ws.run(t, "--frobnicate")
		assert.Equal(t, ExitUsage, code)
	})
	t.Run("stray argument", func(t *testing.T) {
		ws := newWorkspace(t, nil)
		code, stderr := ws.run(t, "extra")
		assert.Equal(t, ExitUsage, code)
		assert.Contains(t, stderr, "unexpected argument: extra")
	})
	t.Run("unsupported locale", func(t *testing.T) {
		ws := newWorkspace(t, nil)
		code, _ := ws.run(t, "--locale", "tlh")
		assert.Equal(t, ExitUsage, code)
	})
	t.Run("missing template", func(t *testing.T) {
		ws := newWorkspace(t, nil)
		code, _ := ws.run(t, "--template", "absent.json")
		assert.Equal(t, ExitFailure, code)
		_, err := os.Stat(ws.nodes)
		assert.True(t, os.IsNotExist(err))
	})
}
