// Package project reads the project notes file that every session, parent
// and sub-agent alike, gets in its system prompt.
package project

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NoteFiles are tried in order; the first one found wins.
var NoteFiles = []string{"SWARM.md", "AGENTS.md", "CLAUDE.md"}

var ErrNoNotes = errors.New("no project notes file found")

// Context is the parsed notes file.
type Context struct {
	Path         string
	Title        string
	Commands     []string
	Style        []string
	Architecture []string
	Notes        []string
}

// Load reads the first notes file in root.
func Load(root string) (*Context, error) {
	for _, name := range NoteFiles {
		path := filepath.Join(root, name)
		content, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		ctx := parse(string(content))
		ctx.Path = path
		return ctx, nil
	}
	return nil, fmt.Errorf("%w in %s (checked %s)", ErrNoNotes, root, strings.Join(NoteFiles, ", "))
}

// parse sorts content lines by their "## " section: commands, style and
// architecture headers are recognised, anything else is a note.
func parse(raw string) *Context {
	ctx := &Context{}
	var section *[]string

	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "# "):
			ctx.Title = strings.TrimPrefix(line, "# ")
			continue
		case strings.HasPrefix(line, "## "):
			header := strings.ToLower(strings.TrimPrefix(line, "## "))
			switch {
			case strings.Contains(header, "command"):
				section = &ctx.Commands
			case strings.Contains(header, "style"), strings.Contains(header, "convention"):
				section = &ctx.Style
			case strings.Contains(header, "architecture"), strings.Contains(header, "structure"):
				section = &ctx.Architecture
			default:
				section = &ctx.Notes
			}
			continue
		}
		if section == nil {
			section = &ctx.Notes
		}
		*section = append(*section, line)
	}
	return ctx
}

// Prompt formats the notes as a system prompt section.
func (c *Context) Prompt() string {
	var b strings.Builder
	b.WriteString("## Project Context\n\n")
	if c.Title != "" {
		fmt.Fprintf(&b, "**Project**: %s\n\n", c.Title)
	}
	writeSection(&b, "Code Style & Conventions", c.Style)
	writeSection(&b, "Common Commands", c.Commands)
	writeSection(&b, "Architecture", c.Architecture)
	writeSection(&b, "Notes", c.Notes)
	return b.String()
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n", title)
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
	b.WriteString("\n")
}
