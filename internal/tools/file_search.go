package tools

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	maxSearchResults = 100
	maxGrepFileSize  = 1 << 20
)

var errSearchLimit = errors.New("search limit reached")

type FileSearchTool struct {
	Root string
}

type fileSearchArgs struct {
	Pattern string `json:"pattern,omitempty"`
	Path    string `json:"path,omitempty"`
	Grep    string `json:"grep,omitempty"`
}

func (f *FileSearchTool) Name() string { return "file_search" }
func (f *FileSearchTool) Description() string {
	return "Search for files by glob pattern or search file contents with a text query. Provide 'pattern' for glob matching (supports **), 'grep' for content search, or both to grep only matching files."
}

func (f *FileSearchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pattern": map[string]any{"type": "string", "description": "Glob pattern (e.g. '**/*.go')"},
			"path":    map[string]any{"type": "string", "description": "Directory to search in (default: current dir)"},
			"grep":    map[string]any{"type": "string", "description": "Text to search for in file contents"},
		},
	}
}

func (f *FileSearchTool) Execute(ctx context.Context, rawArgs string) (Result, error) {
	var args fileSearchArgs
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return Result{Error: "invalid arguments: " + err.Error()}, nil
	}
	if args.Pattern == "" && args.Grep == "" {
		return Result{Error: "provide either 'pattern' or 'grep'"}, nil
	}
	if args.Pattern != "" && !doublestar.ValidatePattern(args.Pattern) {
		return Result{Error: fmt.Sprintf("invalid glob pattern %q", args.Pattern)}, nil
	}

	root := resolve(f.Root, args.Path)
	fsys := os.DirFS(root)
	pattern := args.Pattern
	if pattern == "" {
		pattern = "**"
	}

	var results []string
	err := doublestar.GlobWalk(fsys, pattern, func(path string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if args.Grep == "" {
			results = append(results, filepath.Join(root, path))
		} else {
			results = append(results, grepFile(fsys, root, path, args.Grep, maxSearchResults-len(results))...)
		}
		if len(results) >= maxSearchResults {
			return errSearchLimit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errSearchLimit) {
		return Result{Error: err.Error()}, nil
	}
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	if len(results) == 0 {
		return Result{Output: "no matches"}, nil
	}
	return Result{Output: strings.Join(results, "\n")}, nil
}

func grepFile(fsys fs.FS, root, path, needle string, limit int) []string {
	info, err := fs.Stat(fsys, path)
	if err != nil || info.Size() > maxGrepFileSize {
		return nil
	}
	file, err := fsys.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var hits []string
	sc := bufio.NewScanner(file)
	for n := 1; sc.Scan() && len(hits) < limit; n++ {
		if line := sc.Text(); strings.Contains(line, needle) {
			hits = append(hits, fmt.Sprintf("%s:%d: %s", filepath.Join(root, path), n, line))
		}
	}
	return hits
}
