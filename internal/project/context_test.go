package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notes = `# Billing Service

Handles invoices.

## Commands
- go test ./...
- make lint

## Code Style
- wrap errors with %w

## Project Structure
- internal/ holds the domain packages

## Gotchas
- the ledger table is append-only
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AGENTS.md"), []byte(notes), 0644))

	ctx, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "AGENTS.md"), ctx.Path)
	assert.Equal(t, "Billing Service", ctx.Title)
	assert.Equal(t, []string{"- go test ./...", "- make lint"}, ctx.Commands)
	assert.Equal(t, []string{"- wrap errors with %w"}, ctx.Style)
	assert.Equal(t, []string{"- internal/ holds the domain packages"}, ctx.Architecture)
	assert.Equal(t, []string{"Handles invoices.", "- the ledger table is append-only"}, ctx.Notes)
}

func TestLoadPrefersSwarmNotes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CLAUDE.md"), []byte("# Other\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SWARM.md"), []byte("# Mine\n"), 0644))

	ctx, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Mine", ctx.Title)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNoNotes)
}

func TestPrompt(t *testing.T) {
	p := parse(notes).Prompt()
	assert.True(t, strings.HasPrefix(p, "## Project Context\n\n**Project**: Billing Service\n\n"))
	assert.Contains(t, p, "### Common Commands\n- go test ./...\n- make lint\n\n")
	assert.Contains(t, p, "### Notes\n")
	assert.Less(t, strings.Index(p, "### Code Style"), strings.Index(p, "### Common Commands"))

	assert.Equal(t, "## Project Context\n\n", (&Context{}).Prompt())
}
