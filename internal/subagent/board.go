package subagent

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jeanpaul/swarm/internal/tui"
)

// linesPerAgent is the board height of one agent: name/profile line,
// status/usage line, blank separator.
const linesPerAgent = 3

type boardRow struct {
	status   string
	tokens   int
	finished bool
}

// Board is the live status board of one launch. It is owned by the
// orchestrator loop and never touched by runners.
type Board struct {
	specs []AgentSpec
	rows  []boardRow
	drawn bool
}

func NewBoard(specs []AgentSpec) *Board {
	rows := make([]boardRow, len(specs))
	for i := range rows {
		rows[i].status = statusLaunching
	}
	return &Board{specs: specs, rows: rows}
}

// Apply records the latest event for its agent. Events for unknown agents
// are ignored and reported as false.
func (b *Board) Apply(ev ProgressEvent) bool {
	if ev.AgentID < 0 || ev.AgentID >= len(b.rows) {
		return false
	}
	row := &b.rows[ev.AgentID]
	row.status = ev.Status
	row.tokens = ev.TokensUsed
	if ev.Finished() {
		row.finished = true
	}
	return true
}

func (b *Board) Finished(id int) bool {
	return id >= 0 && id < len(b.rows) && b.rows[id].finished
}

func (b *Board) Tokens(id int) int {
	if id < 0 || id >= len(b.rows) {
		return 0
	}
	return b.rows[id].tokens
}

// Height is the number of terminal lines one drawing occupies.
func (b *Board) Height() int { return linesPerAgent * len(b.rows) }

// Render returns the full board text for the current snapshot.
func (b *Board) Render() string {
	var sb strings.Builder
	for i, spec := range b.specs {
		row := b.rows[i]
		fmt.Fprintf(&sb, "%s%s %s\n",
			tui.BulletStyle.Render("  • "),
			tui.AgentNameStyle.Render(spec.DisplayName),
			tui.ProfileStyle.Render("("+spec.profileLabel()+")"),
		)
		fmt.Fprintf(&sb, "    %s\n\n",
			tui.StatusStyle.Render(fmt.Sprintf("%s - %d tokens used", row.status, row.tokens)),
		)
	}
	return sb.String()
}

// Draw prints the board. The first drawing is appended; every later one
// moves the cursor back to the top of the previous drawing and overwrites
// the whole block.
func (b *Board) Draw(w io.Writer) error {
	var sb strings.Builder
	if b.drawn && b.Height() > 0 {
		sb.WriteString(ansi.CursorUp(b.Height()))
		sb.WriteString("\r")
		sb.WriteString(ansi.EraseScreenBelow)
	}
	sb.WriteString(b.Render())
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	b.drawn = true
	return nil
}
