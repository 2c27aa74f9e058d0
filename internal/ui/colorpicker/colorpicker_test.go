package colorpicker

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msg and returns the message its command produces, if any.
func send(m Model, msg tea.Msg) (Model, tea.Msg) {
	m, cmd := m.Update(msg)
	if cmd == nil {
		return m, nil
	}
	return m, cmd()
}

func TestOpen_CursorOnCurrentColor(t *testing.T) {
	m := New().Open(pipeline.Quoting, "#ff9f43")
	require.Equal(t, pipeline.Quoting, m.Stage())
	require.Equal(t, "Orange", m.Selected().Name)

	m = m.Open(pipeline.Technical, "#010203")
	require.Equal(t, DefaultPresets[0], m.Selected(), "unknown colors start at the top")
}

func TestUpdate_NavigateAndSelect(t *testing.T) {
	m := New().Open(pipeline.Technical, "")

	m, _ = send(m, key("j"))
	m, _ = send(m, key("down"))
	m, _ = send(m, key("k"))
	require.Equal(t, DefaultPresets[1], m.Selected())

	_, msg := send(m, key("enter"))
	require.Equal(t, SelectMsg{Stage: pipeline.Technical, Hex: DefaultPresets[1].Hex}, msg)
}

func TestUpdate_CursorClamped(t *testing.T) {
	m := New().Open(pipeline.Technical, "")
	m, _ = send(m, key("k"))
	require.Equal(t, DefaultPresets[0], m.Selected())

	for range len(DefaultPresets) + 3 {
		m, _ = send(m, key("j"))
	}
	require.Equal(t, DefaultPresets[len(DefaultPresets)-1], m.Selected())
}

func TestUpdate_ResetAndCancel(t *testing.T) {
	m := New().Open(pipeline.Negotiation, "")

	_, msg := send(m, key("r"))
	require.Equal(t, ResetMsg{Stage: pipeline.Negotiation}, msg)

	_, msg = send(m, key("esc"))
	require.Equal(t, CancelMsg{}, msg)
}

func TestCustom_ValidHex(t *testing.T) {
	m := New().Open(pipeline.Prospecting, "")
	m, _ = m.Update(key("c"))
	require.True(t, m.InCustomMode())

	m, _ = m.Update(key("#ab12ef"))
	_, msg := send(m, key("enter"))
	require.Equal(t, SelectMsg{Stage: pipeline.Prospecting, Hex: "#AB12EF"}, msg)
}

func TestCustom_InvalidHexShowsError(t *testing.T) {
	m := New().Open(pipeline.Prospecting, "")
	m, _ = m.Update(key("c"))
	m, _ = m.Update(key("orange"))

	m, msg := send(m, key("enter"))
	require.Nil(t, msg)
	require.Contains(t, ansi.Strip(m.View()), "Invalid hex color")

	// Esc leaves custom mode instead of closing the picker.
	m, msg = send(m, key("esc"))
	require.Nil(t, msg)
	require.False(t, m.InCustomMode())
}

func TestView_ListsPresets(t *testing.T) {
	m := New().Open(pipeline.Quoting, "#FECA57")
	view := ansi.Strip(m.View())

	require.Contains(t, view, "Color: Quoting")
	require.Contains(t, view, ">")
	for _, p := range DefaultPresets {
		require.Contains(t, view, p.Name)
	}
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, "Yellow") {
			require.Contains(t, line, ">", "cursor sits on the current color")
		}
	}
}

func TestOverlay_CentersOnBackground(t *testing.T) {
	m := New().Open(pipeline.Quoting, "").SetSize(80, 30)
	bg := strings.Repeat(strings.Repeat(".", 80)+"\n", 29) + strings.Repeat(".", 80)

	out := ansi.Strip(m.Overlay(bg))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 30)
	require.True(t, strings.HasPrefix(lines[0], "...."), "rows above the box stay visible")
	require.Contains(t, out, "Color: Quoting")
}
