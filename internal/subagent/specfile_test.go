package subagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpecs(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "yaml list",
			data: `
- agent_display_name: Parser Audit
  prompt: Review the parser
  prompt_summary: review parser
  agent_cli_name: reviewer
- agent_display_name: Docs Check
  prompt: Check the docs
  prompt_summary: check docs
`,
		},
		{
			name: "json object",
			data: `{"subagents":[
				{"agent_display_name":"Parser Audit","prompt":"Review the parser","prompt_summary":"review parser","agent_cli_name":"reviewer"},
				{"agent_display_name":"Docs Check","prompt":"Check the docs","prompt_summary":"check docs"}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs, err := ParseSpecs([]byte(tt.data), nil)
			require.NoError(t, err)
			require.Len(t, specs, 2)
			assert.Equal(t, AgentSpec{
				DisplayName:   "Parser Audit",
				Prompt:        "Review the parser",
				PromptSummary: "review parser",
				Profile:       "reviewer",
			}, specs[0])
			assert.Equal(t, "Docs Check", specs[1].DisplayName)
			assert.Empty(t, specs[1].Profile)
		})
	}
}

func TestParseSpecsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, data string
	}{
		{"empty", ""},
		{"missing prompt", "- agent_display_name: a\n  prompt_summary: s\n"},
		{"empty list", "[]"},
		{"wrong type", "- agent_display_name: a\n  prompt: [1, 2]\n  prompt_summary: s\n"},
		{"not yaml", "subagents: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpecs([]byte(tt.data), nil)
			assert.Error(t, err)
		})
	}
}
