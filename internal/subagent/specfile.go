package subagent

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/swarm/internal/schema"
)

// LaunchSchema is the JSON schema of a launch request,
// {"subagents": [AgentSpec, ...]}.
func LaunchSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subagents": map[string]any{
				"type":        "array",
				"description": "Sub-agents to launch, all at once",
				"minItems":    1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"agent_display_name": map[string]any{"type": "string", "description": "Three to five word name for the status board"},
						"prompt":             map[string]any{"type": "string", "description": "Complete task description for the sub-agent"},
						"prompt_summary":     map[string]any{"type": "string", "description": "One line summary of the task"},
						"agent_cli_name":     map[string]any{"type": "string", "description": "Optional agent profile to run the sub-agent with"},
					},
					"required": []string{"agent_display_name", "prompt", "prompt_summary"},
				},
			},
		},
		"required": []string{"subagents"},
	}
}

// ParseSpecs reads a spec file: either a bare list of agent specs or a
// launch request object, in YAML or JSON.
func ParseSpecs(data []byte, v *schema.Validator) ([]AgentSpec, error) {
	if v == nil {
		v = schema.NewValidator()
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse spec file: %w", err)
	}
	if list, ok := doc.([]any); ok {
		doc = map[string]any{"subagents": list}
	}
	if err := v.ValidateValue(LaunchSchema(), doc); err != nil {
		return nil, fmt.Errorf("invalid spec file: %w", err)
	}

	// Validation guarantees the shape, so the typed decode cannot disagree.
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var req struct {
		Subagents []AgentSpec `yaml:"subagents"`
	}
	if err := yaml.Unmarshal(out, &req); err != nil {
		return nil, fmt.Errorf("parse spec file: %w", err)
	}
	return req.Subagents, nil
}
