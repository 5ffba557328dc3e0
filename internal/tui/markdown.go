package tui

import (
	"io"

	"github.com/charmbracelet/glamour"
)

// MarkdownWriter renders every write as a markdown document before passing
// it on. Sessions write one assistant turn per call, so each turn renders
// on its own.
type MarkdownWriter struct {
	w        io.Writer
	renderer *glamour.TermRenderer
}

func NewMarkdownWriter(w io.Writer, width int) (*MarkdownWriter, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &MarkdownWriter{w: w, renderer: r}, nil
}

// Write falls back to the raw text when rendering fails.
func (m *MarkdownWriter) Write(p []byte) (int, error) {
	out, err := m.renderer.Render(string(p))
	if err != nil {
		out = string(p)
	}
	if _, err := io.WriteString(m.w, out); err != nil {
		return 0, err
	}
	return len(p), nil
}
