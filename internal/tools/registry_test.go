package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	}
	return root
}

func TestRegistryToolDefsSorted(t *testing.T) {
	r := NewRegistry(nil)
	RegisterFileTools(r, t.TempDir())
	r.Register(&LaunchAgentTool{})

	var names []string
	for _, def := range r.ToolDefs() {
		names = append(names, def.Name)
		assert.NotEmpty(t, def.Description)
		assert.Equal(t, "object", def.Parameters["type"])
	}
	assert.Equal(t, []string{"file_ls", "file_read", "file_search", "launch_agent"}, names)
	assert.Equal(t, names, r.Names())
}

func TestRegistryExecute(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "hello\n"})
	r := NewRegistry(nil)
	RegisterFileTools(r, root)
	ctx := context.Background()

	res, err := r.Execute(ctx, "nope", "{}")
	require.NoError(t, err)
	assert.Equal(t, "unknown tool: nope", res.Error)

	res, err = r.Execute(ctx, "file_read", `{"offset": 1}`)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Error, "invalid arguments: schema validation failed"), res.Error)

	res, err = r.Execute(ctx, "file_read", `{"path": "a.txt"}`)
	require.NoError(t, err)
	assert.Empty(t, res.Error)
	assert.Equal(t, "   1\thello\n", res.Output)

	// Empty arguments are treated as an empty object.
	res, err = r.Execute(ctx, "file_ls", "")
	require.NoError(t, err)
	assert.Empty(t, res.Error)
	assert.Contains(t, res.Output, "a.txt")
}
