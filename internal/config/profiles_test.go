package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileStoreRoundTrip(t *testing.T) {
	store := ProfileStore{Dir: filepath.Join(t.TempDir(), "agents")}

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, store.Save(AgentProfile{Name: "reviewer", Description: "reviews code", SystemPrompt: "You review Go code.", Model: "gpt-4o"}))
	require.NoError(t, store.Save(AgentProfile{Name: "archivist", SystemPrompt: "You read docs."}))

	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"archivist", "reviewer"}, names)

	p, err := store.Load("reviewer")
	require.NoError(t, err)
	assert.Equal(t, "You review Go code.", p.SystemPrompt)
	assert.Equal(t, "gpt-4o", p.Model)

	require.NoError(t, store.Delete("reviewer"))
	_, err = store.Load("reviewer")
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.ErrorIs(t, store.Delete("reviewer"), ErrProfileNotFound)
}

func TestProfileStoreLoadFillsName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ops.yaml"), []byte("system_prompt: You run ops.\n"), 0644))

	p, err := ProfileStore{Dir: dir}.Load("ops")
	require.NoError(t, err)
	assert.Equal(t, "ops", p.Name)
	assert.Equal(t, "You run ops.", p.SystemPrompt)
}

func TestProfileStoreRejectsBadNames(t *testing.T) {
	store := ProfileStore{Dir: t.TempDir()}
	for _, name := range []string{"", "../etc", "a/b", ".."} {
		_, err := store.Load(name)
		assert.ErrorContains(t, err, "invalid profile name", "name %q", name)
	}
}

func TestProfileStoreBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("system_prompt: [unclosed\n"), 0644))
	_, err := ProfileStore{Dir: dir}.Load("broken")
	assert.ErrorContains(t, err, `profile "broken"`)
}
