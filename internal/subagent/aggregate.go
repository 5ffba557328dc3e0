package subagent

import (
	"fmt"
	"io"
	"strings"

	"github.com/jeanpaul/swarm/internal/tui"
)

// Aggregate joins outcomes into the combined report, in the order given.
// Non-empty successes are numbered from 1; empty ones are dropped without
// using a number. Failures and crashes are written to display as error
// lines and left out of the report.
func Aggregate(outcomes []Outcome, display io.Writer) (string, error) {
	var sb strings.Builder
	n := 1
	for _, o := range outcomes {
		switch o.Kind {
		case OutcomeSuccess:
			if strings.TrimSpace(o.Report) == "" {
				continue
			}
			fmt.Fprintf(&sb, "=== Agent %d Output ===\n", n)
			sb.WriteString(o.Report)
			sb.WriteString("\n\n")
			n++
		case OutcomeFailure:
			if err := writeError(display, fmt.Sprintf("Agent %q failed: %v", o.Name, o.Err)); err != nil {
				return "", err
			}
		case OutcomeCrashed:
			if err := writeError(display, fmt.Sprintf("Agent %q crashed unexpectedly: %v", o.Name, o.Err)); err != nil {
				return "", err
			}
		}
	}
	return sb.String(), nil
}

func writeError(w io.Writer, line string) error {
	_, err := fmt.Fprintln(w, tui.ErrorStyle.Render(line))
	return err
}
