package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "swarm.log")
	log, err := New(Config{Level: "debug", File: path})
	require.NoError(t, err)

	log.Debug().Int("agent_id", 2).Msg("hello")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "hello", entry["message"])
	assert.EqualValues(t, 2, entry["agent_id"])
	assert.Contains(t, entry, "time")
}

func TestNewLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		log, err := New(Config{Level: tt.level})
		require.NoError(t, err)
		assert.Equal(t, tt.want, log.GetLevel(), "level %q", tt.level)
		assert.NoError(t, log.Close())
	}
}

func TestNewBadFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := New(Config{File: filepath.Join(blocker, "swarm.log")})
	assert.Error(t, err)
}
