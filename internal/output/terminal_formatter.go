package output

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	"github.com/wealthlab/wealth-calculator/internal/domain"
)

// TerminalFormatter renders the markdown report for a terminal. Style is a
// glamour standard style name; empty picks one from the terminal background.
type TerminalFormatter struct {
	Style string
	Width int
}

func (t TerminalFormatter) Name() string { return "terminal" }

func (t TerminalFormatter) Format(report *domain.Report) ([]byte, error) {
	return renderTerminal(reportMarkdown(report), t.Style, t.Width)
}

func renderTerminal(md []byte, style string, width int) ([]byte, error) {
	if style == "" {
		style = styles.AutoStyle
	}
	if width <= 0 {
		width = 120
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	out, err := r.RenderBytes(md)
	if err != nil {
		return nil, err
	}
	return out, nil
}
