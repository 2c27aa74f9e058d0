// Package logpanel shows recent log entries inside the TUI in debug mode.
package logpanel

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/dealboard/internal/log"
	"github.com/zjrosen/dealboard/internal/pubsub"
	"github.com/zjrosen/dealboard/internal/ui/styles"
)

// maxEntries bounds the in-memory history.
const maxEntries = 500

// Model accumulates log entries and renders them in a scrollable viewport.
type Model struct {
	entries  []string
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
	ch       <-chan log.LogEvent
	ctx      context.Context
}

// New creates a hidden panel.
func New() Model {
	return Model{minLevel: log.LevelDebug, viewport: viewport.New(0, 0)}
}

// Listen subscribes to the global logger and returns the first listen
// command. It returns nil when logging is off.
func (m Model) Listen(ctx context.Context) (Model, tea.Cmd) {
	m.ctx = ctx
	m.ch = log.Subscribe(ctx)
	return m, pubsub.ListenCmd(ctx, m.ch)
}

func (m Model) next() tea.Cmd {
	if m.ch == nil {
		return nil
	}
	return pubsub.ListenCmd(m.ctx, m.ch)
}

// Update records log events and, while visible, handles scrolling and filter keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case log.LogEvent:
		m.entries = append(m.entries, strings.TrimSuffix(msg.Payload, "\n"))
		if len(m.entries) > maxEntries {
			m.entries = m.entries[len(m.entries)-maxEntries:]
		}
		m.refresh()
		return m, m.next()

	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		switch msg.String() {
		case "c":
			m.entries = nil
		case "d":
			m.minLevel = log.LevelDebug
		case "i":
			m.minLevel = log.LevelInfo
		case "w":
			m.minLevel = log.LevelWarn
		case "e":
			m.minLevel = log.LevelError
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		if m.visible {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// SetSize sets the panel area.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.refresh()
	return m
}

// Toggle shows or hides the panel.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	m.refresh()
	return m
}

// Visible reports whether the panel is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Entries returns the entries that pass the level filter.
func (m Model) Entries() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if entryLevel(e) >= m.minLevel {
			out = append(out, e)
		}
	}
	return out
}

func (m *Model) refresh() {
	w := max(m.width-2, 10)
	h := max(m.height-4, 3)
	atBottom := m.viewport.AtBottom()
	m.viewport.Width = w
	m.viewport.Height = h

	entries := m.Entries()
	if len(entries) == 0 {
		m.viewport.SetContent(styles.DealEmptyStyle.Render("No logs to display"))
		return
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = colorize(ansi.Truncate(e, w, "…"))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// View renders the panel.
func (m Model) View() string {
	hint := styles.HelpSectionStyle.Render("[c] clear  [d/i/w/e] level  [ctrl+x] close")
	return styles.RenderPanel(m.viewport.View()+"\n"+hint, "Logs ("+m.minLevel.String()+"+)", m.width, true)
}

// entryLevel reads the level tag written by log.Logger.
func entryLevel(entry string) log.Level {
	switch {
	case strings.Contains(entry, "[ERROR]"):
		return log.LevelError
	case strings.Contains(entry, "[WARN]"):
		return log.LevelWarn
	case strings.Contains(entry, "[INFO]"):
		return log.LevelInfo
	default:
		return log.LevelDebug
	}
}

func colorize(entry string) string {
	var c lipgloss.TerminalColor
	switch entryLevel(entry) {
	case log.LevelError:
		c = styles.StatusErrorColor
	case log.LevelWarn:
		c = styles.StatusWarningColor
	case log.LevelInfo:
		c = styles.TextPrimaryColor
	default:
		c = styles.TextMutedColor
	}
	return lipgloss.NewStyle().Foreground(c).Render(entry)
}
