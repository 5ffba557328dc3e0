package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const defaultListLimit = 500

// FileListTool lists directories, optionally as an indented tree.
type FileListTool struct {
	Root string
}

type fileListArgs struct {
	Path      string `json:"path,omitempty"`
	Recursive bool   `json:"recursive,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

func (f *FileListTool) Name() string { return "file_ls" }
func (f *FileListTool) Description() string {
	return "List files and directories. Supports recursive listing to view project structure. Hidden directories are skipped when recursive."
}

func (f *FileListTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path":      map[string]any{"type": "string", "description": "Directory to list (default: current dir)"},
			"recursive": map[string]any{"type": "boolean", "description": "List subdirectories recursively"},
			"limit":     map[string]any{"type": "integer", "minimum": 0, "description": "Max entries to list (default 500)"},
		},
	}
}

func (f *FileListTool) Execute(ctx context.Context, rawArgs string) (Result, error) {
	var args fileListArgs
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return Result{Error: "invalid arguments: " + err.Error()}, nil
	}
	root := resolve(f.Root, args.Path)
	limit := args.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var sb strings.Builder
	count := 0
	truncated := false

	if !args.Recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return Result{Error: err.Error()}, nil
		}
		fmt.Fprintf(&sb, "Listing %s:\n", root)
		for _, e := range entries {
			if count >= limit {
				truncated = true
				break
			}
			sb.WriteString(entryName(e) + "\n")
			count++
		}
	} else {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if path == root {
				return nil
			}
			if d.IsDir() && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if count >= limit {
				truncated = true
				return filepath.SkipAll
			}
			rel, _ := filepath.Rel(root, path)
			depth := strings.Count(rel, string(os.PathSeparator))
			sb.WriteString(strings.Repeat("  ", depth) + entryName(d) + "\n")
			count++
			return nil
		})
		if err != nil {
			return Result{Error: err.Error()}, nil
		}
	}

	if truncated {
		sb.WriteString("... (limit reached)\n")
	}
	return Result{Output: sb.String()}, nil
}

func entryName(d fs.DirEntry) string {
	if d.IsDir() {
		return d.Name() + "/"
	}
	return d.Name()
}
