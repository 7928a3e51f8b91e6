package application

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"localesync/internal/domain/entities"
)

// tree parses a JSON object literal into an ordered tree.
func tree(t *testing.T, js string) *entities.Tree {
	t.Helper()
	out := entities.NewTree()
	require.NoError(t, json.Unmarshal([]byte(js), out))
	return out
}
