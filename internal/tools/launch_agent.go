package tools

import (
	"context"
	"encoding/json"
	"io"

	"github.com/jeanpaul/swarm/internal/subagent"
)

// Launcher runs a set of sub-agents and returns their combined report.
type Launcher interface {
	Launch(ctx context.Context, exec subagent.ExecContext, conv subagent.Conversation, specs []subagent.AgentSpec, display io.Writer) (string, error)
}

// LaunchAgentTool lets a session delegate work to parallel sub-agents. It
// launches on behalf of the session that owns it: Exec and Conversation
// are that session's, and Display is its interactive sink.
type LaunchAgentTool struct {
	Launcher     Launcher
	Exec         subagent.ExecContext
	Conversation subagent.Conversation
	Display      io.Writer
}

type launchAgentArgs struct {
	Subagents []subagent.AgentSpec `json:"subagents"`
}

func (l *LaunchAgentTool) Name() string { return "launch_agent" }
func (l *LaunchAgentTool) Description() string {
	return "Launch one or more sub-agents that work on independent tasks in parallel. " +
		"Each sub-agent starts from a copy of this conversation, works on its own prompt and returns a summary report. " +
		"Use it to split broad investigations into focused pieces. Sub-agents cannot launch sub-agents."
}

func (l *LaunchAgentTool) Parameters() map[string]any { return subagent.LaunchSchema() }

func (l *LaunchAgentTool) Execute(ctx context.Context, rawArgs string) (Result, error) {
	var args launchAgentArgs
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return Result{Error: "invalid arguments: " + err.Error()}, nil
	}
	if l.Launcher == nil {
		return Result{Error: "sub-agent launcher not configured"}, nil
	}
	display := l.Display
	if display == nil {
		display = io.Discard
	}
	report, err := l.Launcher.Launch(ctx, l.Exec, l.Conversation, args.Subagents, display)
	if err != nil {
		return Result{Error: err.Error()}, nil
	}
	return Result{Output: report}, nil
}
