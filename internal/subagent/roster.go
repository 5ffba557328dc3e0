package subagent

import (
	"fmt"
	"io"
	"strings"

	"github.com/jeanpaul/swarm/internal/tui"
)

const rosterRuleWidth = 50

// WriteRoster prints the agents about to be launched.
func WriteRoster(w io.Writer, specs []AgentSpec) error {
	var sb strings.Builder
	sb.WriteString(tui.HeaderStyle.Render(fmt.Sprintf("Launch %d agent(s) to perform tasks in parallel:", len(specs))))
	sb.WriteString("\n\n")
	sb.WriteString(tui.Separator(rosterRuleWidth))
	sb.WriteString("\n\n")

	for _, spec := range specs {
		fmt.Fprintf(&sb, "%s%s %s\n",
			tui.BulletStyle.Render("  • "),
			tui.AgentNameStyle.Render(spec.DisplayName),
			tui.ProfileStyle.Render("("+spec.profileLabel()+")"),
		)
		fmt.Fprintf(&sb, "    %s\n\n", tui.PromptSummaryStyle.Render(spec.PromptSummary))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
