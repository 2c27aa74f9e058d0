package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Rounded border pieces for panels.
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderPanel draws content inside a rounded border with title embedded in
// the top edge: ╭─ Title ─────╮. Lines wider than the panel are cut.
func RenderPanel(content, title string, width int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = BorderHighlightColor
	}
	border := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(borderColor)

	inner := max(width-2, 1)

	var top string
	if title == "" || inner < 4 {
		top = border.Render(borderTopLeft + strings.Repeat(borderHorizontal, inner) + borderTopRight)
	} else {
		// "─ " + title + " " + dashes
		shown := ansi.Truncate(title, inner-4, "…")
		dashes := max(inner-3-lipgloss.Width(shown), 0)
		top = border.Render(borderTopLeft+borderHorizontal+" ") +
			titleStyle.Render(shown) +
			border.Render(" "+strings.Repeat(borderHorizontal, dashes)+borderTopRight)
	}

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	rows := make([]string, 0, len(lines)+2)
	rows = append(rows, top)
	for _, line := range lines {
		line = ansi.Truncate(line, inner, "")
		if w := lipgloss.Width(line); w < inner {
			line += strings.Repeat(" ", inner-w)
		}
		rows = append(rows, border.Render(borderVertical)+line+border.Render(borderVertical))
	}
	rows = append(rows, border.Render(borderBottomLeft+strings.Repeat(borderHorizontal, inner)+borderBottomRight))

	return strings.Join(rows, "\n")
}
