package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolve joins relative paths onto root.
func resolve(root, path string) string {
	if path == "" {
		path = "."
	}
	if filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}

type FileReadTool struct {
	Root string
}

type fileReadArgs struct {
	Path   string `json:"path"`
	Offset int    `json:"offset,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

func (f *FileReadTool) Name() string { return "file_read" }
func (f *FileReadTool) Description() string {
	return "Read the contents of a file. Returns numbered lines."
}

func (f *FileReadTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path":   map[string]any{"type": "string", "description": "Absolute or relative file path"},
			"offset": map[string]any{"type": "integer", "minimum": 0, "description": "Line offset to start reading from (0-indexed)"},
			"limit":  map[string]any{"type": "integer", "minimum": 0, "description": "Max number of lines to read"},
		},
		"required": []string{"path"},
	}
}

func (f *FileReadTool) Execute(_ context.Context, rawArgs string) (Result, error) {
	var args fileReadArgs
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return Result{Error: "invalid arguments: " + err.Error()}, nil
	}
	data, err := os.ReadFile(resolve(f.Root, args.Path))
	if err != nil {
		return Result{Error: err.Error()}, nil
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	start := min(args.Offset, len(lines))
	end := len(lines)
	if args.Limit > 0 && start+args.Limit < end {
		end = start + args.Limit
	}
	var sb strings.Builder
	for i := start; i < end; i++ {
		fmt.Fprintf(&sb, "%4d\t%s\n", i+1, lines[i])
	}
	return Result{Output: sb.String()}, nil
}
