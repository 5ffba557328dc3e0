package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Core palette
	Blue      = lipgloss.Color("#5F87FF")
	Cyan      = lipgloss.Color("#00D4AA")
	White     = lipgloss.Color("#e0e0e0")
	DarkGray  = lipgloss.Color("#6c6c6c")
	Red       = lipgloss.Color("#FF4136")
	DimGreen  = lipgloss.Color("#008F11")
	BrightRed = lipgloss.Color("#FF6F61")

	// Launch header
	HeaderStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(DarkGray)

	// Roster and status board
	BulletStyle = lipgloss.NewStyle().
			Foreground(Blue)

	AgentNameStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	ProfileStyle = lipgloss.NewStyle().
			Foreground(DarkGray)

	PromptSummaryStyle = lipgloss.NewStyle().
				Foreground(DarkGray)

	StatusStyle = lipgloss.NewStyle().
			Foreground(Cyan)

	// Spinner
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(DimGreen)

	// Error
	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	// Interrupt notice inside a transcript
	InterruptStyle = lipgloss.NewStyle().
			Foreground(BrightRed).
			Italic(true)
)

// Separator is the rule drawn under the launch header.
func Separator(width int) string {
	if width <= 0 {
		return ""
	}
	return SeparatorStyle.Render(strings.Repeat("─", width))
}
