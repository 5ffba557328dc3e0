package subagent

import (
	"strings"

	"github.com/jeanpaul/swarm/internal/summary"
)

const workerInstructions = `SUBAGENT - You are a specialized instance delegated a task by your parent agent.

SUBAGENT CONTEXT:
- You are NOT the primary agent. You are a focused worker.
- Your parent agent is coordinating several workers like you and depends on your findings.
- You are not allowed to use the launch_agent tool. Do not try to start further sub-agents.

REPORTING REQUIREMENTS:
When the task is complete, report concrete technical findings:
- file paths, function names and code patterns you actually looked at
- implementation details, not impressions
- numbers where they exist (line counts, sizes, timings)
- what the parent agent should do next

Summaries like "analyzed codebase" or "completed task" are not acceptable.

End your work with your report formatted as ` + summary.OpenTag + ` YOUR REPORT HERE ` + summary.CloseTag

// WrapPrompt prefixes the worker instructions with the agent's task.
func WrapPrompt(prompt string) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(prompt))
	sb.WriteString("\n\n")
	sb.WriteString(workerInstructions)
	return sb.String()
}
