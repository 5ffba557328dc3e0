package subagent

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardRender(t *testing.T) {
	specs := []AgentSpec{
		{DisplayName: "Parser Audit", Profile: "reviewer"},
		{DisplayName: "Docs Check"},
	}
	b := NewBoard(specs)

	lines := strings.Split(b.Render(), "\n")
	// Trailing newline leaves one empty element.
	require.Len(t, lines, b.Height()+1)
	assert.Equal(t, 6, b.Height())
	assert.Contains(t, lines[0], "Parser Audit")
	assert.Contains(t, lines[0], "(reviewer)")
	assert.Contains(t, lines[1], "Launching agent... - 0 tokens used")
	assert.Empty(t, lines[2])
	assert.Contains(t, lines[3], "(Default)")
}

func TestBoardApply(t *testing.T) {
	b := NewBoard([]AgentSpec{{DisplayName: "a"}})

	assert.False(t, b.Apply(ProgressEvent{AgentID: 3, Status: "x"}))
	assert.False(t, b.Apply(ProgressEvent{AgentID: -1, Status: "x"}))

	assert.True(t, b.Apply(ProgressEvent{AgentID: 0, Status: "Reading files", TokensUsed: 420}))
	assert.False(t, b.Finished(0))
	assert.Equal(t, 420, b.Tokens(0))
	assert.Contains(t, b.Render(), "Reading files - 420 tokens used")

	assert.True(t, b.Apply(ProgressEvent{AgentID: 0, Status: StatusFinished, TokensUsed: 500}))
	assert.True(t, b.Finished(0))
}

func TestBoardDrawAppendsThenOverwrites(t *testing.T) {
	b := NewBoard([]AgentSpec{{DisplayName: "a"}, {DisplayName: "b"}})
	var out strings.Builder

	require.NoError(t, b.Draw(&out))
	first := out.String()
	assert.NotContains(t, first, ansi.EraseScreenBelow)
	assert.Equal(t, b.Height(), strings.Count(first, "\n"))

	b.Apply(ProgressEvent{AgentID: 1, Status: "Thinking", TokensUsed: 10})
	out.Reset()
	require.NoError(t, b.Draw(&out))
	second := out.String()

	prefix := ansi.CursorUp(6) + "\r" + ansi.EraseScreenBelow
	require.True(t, strings.HasPrefix(second, prefix))
	body := strings.TrimPrefix(second, prefix)
	assert.Equal(t, b.Render(), body)
	assert.Equal(t, 6, strings.Count(body, "\n"))
}

func TestBoardDrawError(t *testing.T) {
	b := NewBoard([]AgentSpec{{DisplayName: "a"}})
	assert.ErrorIs(t, b.Draw(failingWriter{}), errWrite)

	// A failed draw does not count as the first one.
	var out strings.Builder
	require.NoError(t, b.Draw(&out))
	assert.NotContains(t, out.String(), ansi.EraseScreenBelow)
}

func TestWriteRoster(t *testing.T) {
	var out strings.Builder
	err := WriteRoster(&out, []AgentSpec{
		{DisplayName: "Log Scanner", PromptSummary: "scan the logs", Profile: "ops"},
		{DisplayName: "Test Runner", PromptSummary: "run the tests"},
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Launch 2 agent(s) to perform tasks in parallel:")
	assert.Contains(t, text, strings.Repeat("─", rosterRuleWidth))
	assert.Contains(t, text, "Log Scanner")
	assert.Contains(t, text, "(ops)")
	assert.Contains(t, text, "    scan the logs\n\n")
	assert.Contains(t, text, "(Default)")
	assert.Less(t, strings.Index(text, "Log Scanner"), strings.Index(text, "Test Runner"))
}
