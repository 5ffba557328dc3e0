package tools

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRead(t *testing.T) {
	root := writeTree(t, map[string]string{"notes.md": "one\ntwo\nthree\nfour\n"})
	tool := &FileReadTool{Root: root}
	ctx := context.Background()

	tests := []struct {
		name string
		args string
		want string
	}{
		{"whole file", `{"path":"notes.md"}`, "   1\tone\n   2\ttwo\n   3\tthree\n   4\tfour\n"},
		{"offset and limit", `{"path":"notes.md","offset":1,"limit":2}`, "   2\ttwo\n   3\tthree\n"},
		{"offset past end", `{"path":"notes.md","offset":10}`, ""},
		{"absolute path", `{"path":"` + filepath.Join(root, "notes.md") + `","limit":1}`, "   1\tone\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tool.Execute(ctx, tt.args)
			require.NoError(t, err)
			assert.Empty(t, res.Error)
			assert.Equal(t, tt.want, res.Output)
		})
	}

	res, err := tool.Execute(ctx, `{"path":"missing.md"}`)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Error)
}

func TestFileSearch(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.go":              "package main\n// TODO: flags\n",
		"internal/a/a.go":      "package a\n",
		"internal/a/a.md":      "TODO: docs\n",
		"internal/b/b_test.go": "package b\n// TODO: more tests\n",
	})
	tool := &FileSearchTool{Root: root}
	ctx := context.Background()

	res, err := tool.Execute(ctx, `{"pattern":"**/*.go"}`)
	require.NoError(t, err)
	lines := strings.Split(res.Output, "\n")
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "main.go"),
		filepath.Join(root, "internal/a/a.go"),
		filepath.Join(root, "internal/b/b_test.go"),
	}, lines)

	res, err = tool.Execute(ctx, `{"grep":"TODO"}`)
	require.NoError(t, err)
	assert.Len(t, strings.Split(res.Output, "\n"), 3)
	assert.Contains(t, res.Output, filepath.Join(root, "main.go")+":2: // TODO: flags")

	res, err = tool.Execute(ctx, `{"grep":"TODO","pattern":"**/*.go","path":"internal"}`)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "internal/b/b_test.go")+":2: // TODO: more tests", res.Output)

	res, err = tool.Execute(ctx, `{"pattern":"*.rs"}`)
	require.NoError(t, err)
	assert.Equal(t, "no matches", res.Output)

	res, err = tool.Execute(ctx, `{}`)
	require.NoError(t, err)
	assert.Equal(t, "provide either 'pattern' or 'grep'", res.Error)

	res, err = tool.Execute(ctx, `{"pattern":"[a"}`)
	require.NoError(t, err)
	assert.Contains(t, res.Error, "invalid glob pattern")
}

func TestFileList(t *testing.T) {
	root := writeTree(t, map[string]string{
		"go.mod":        "module x\n",
		"cmd/x/main.go": "package main\n",
		".git/config":   "[core]\n",
	})
	tool := &FileListTool{Root: root}
	ctx := context.Background()

	res, err := tool.Execute(ctx, `{}`)
	require.NoError(t, err)
	assert.Contains(t, res.Output, "cmd/\n")
	assert.Contains(t, res.Output, "go.mod\n")

	res, err = tool.Execute(ctx, `{"recursive":true}`)
	require.NoError(t, err)
	assert.Contains(t, res.Output, "cmd/\n  x/\n    main.go\n")
	assert.NotContains(t, res.Output, "config")

	res, err = tool.Execute(ctx, `{"recursive":true,"limit":1}`)
	require.NoError(t, err)
	assert.Contains(t, res.Output, "... (limit reached)")
}
