package deallist

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func sampleDeals() []pipeline.Deal {
	return []pipeline.Deal{
		{ID: "a", Title: "Acme renewal", Company: "Acme", Amount: 1234500, Stage: pipeline.Quoting},
		{ID: "b", Title: "Globex pilot", Company: "Globex Corporation", Amount: 50000, Stage: pipeline.Technical},
		{ID: "c", Title: "Initech expansion", Company: "Initech", Amount: 9900000, Stage: pipeline.Negotiation},
	}
}

func view(m Model) string {
	return ansi.Strip(zone.Scan(m.View()))
}

func TestSelected_EmptyList(t *testing.T) {
	m := New()
	_, ok := m.Selected()
	require.False(t, ok)
	require.Contains(t, view(m), "No deals")

	m = m.MoveDown().MoveUp()
	require.Zero(t, m.Cursor())
}

func TestCursor_MovesWithinBounds(t *testing.T) {
	m := New().SetDeals(sampleDeals())

	m = m.MoveUp()
	require.Zero(t, m.Cursor())

	m = m.MoveDown().MoveDown().MoveDown().MoveDown()
	require.Equal(t, 2, m.Cursor())

	d, ok := m.Selected()
	require.True(t, ok)
	require.Equal(t, "c", d.ID)
}

func TestSetDeals_KeepsCursorOnSameDeal(t *testing.T) {
	m := New().SetDeals(sampleDeals()).MoveDown() // on "b"

	reordered := []pipeline.Deal{sampleDeals()[1], sampleDeals()[2], sampleDeals()[0]}
	m = m.SetDeals(reordered)

	d, ok := m.Selected()
	require.True(t, ok)
	require.Equal(t, "b", d.ID)
	require.Zero(t, m.Cursor())
}

func TestSetDeals_ClampsWhenListShrinks(t *testing.T) {
	m := New().SetDeals(sampleDeals()).MoveDown().MoveDown()
	require.Equal(t, 2, m.Cursor())

	m = m.SetDeals([]pipeline.Deal{{ID: "z", Title: "Only one"}})
	require.Zero(t, m.Cursor())
	d, ok := m.Selected()
	require.True(t, ok)
	require.Equal(t, "z", d.ID)

	m = m.SetDeals(nil)
	_, ok = m.Selected()
	require.False(t, ok)
}

func TestView_RowsAndCursor(t *testing.T) {
	m := New().SetSize(80, 10).SetDeals(sampleDeals()).MoveDown()
	lines := strings.Split(view(m), "\n")

	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "TITLE")
	require.Contains(t, lines[0], "AMOUNT")
	require.True(t, strings.HasPrefix(lines[1], "  Acme renewal"))
	require.True(t, strings.HasPrefix(lines[2], "> Globex pilot"))
	require.Contains(t, lines[1], "$12,345")
	require.Contains(t, lines[3], "negotiation")

	for _, l := range lines {
		require.Equal(t, runewidth.StringWidth(lines[0]), runewidth.StringWidth(l), "rows must align: %q", l)
	}
}

func TestView_TruncatesLongTitles(t *testing.T) {
	deals := []pipeline.Deal{{
		ID:      "long",
		Title:   "An extraordinarily long opportunity title that cannot fit",
		Company: "Umbrella",
		Stage:   pipeline.Prospecting,
	}}
	m := New().SetSize(50, 5).SetDeals(deals)
	out := view(m)

	require.Contains(t, out, "…")
	for _, l := range strings.Split(out, "\n") {
		require.LessOrEqual(t, runewidth.StringWidth(l), 50+minTitleWidth)
	}
}

func TestView_WideRunes(t *testing.T) {
	deals := []pipeline.Deal{
		{ID: "jp", Title: "東京オフィス契約", Company: "株式会社テスト", Amount: 100, Stage: pipeline.Quoting},
		{ID: "en", Title: "Plain", Company: "Co", Amount: 100, Stage: pipeline.Quoting},
	}
	m := New().SetSize(70, 5).SetDeals(deals)
	lines := strings.Split(view(m), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, runewidth.StringWidth(lines[1]), runewidth.StringWidth(lines[2]))
}

func TestView_ScrollsToCursor(t *testing.T) {
	var deals []pipeline.Deal
	for i := 0; i < 10; i++ {
		deals = append(deals, pipeline.Deal{ID: string(rune('a' + i)), Title: "Deal " + string(rune('A'+i)), Stage: pipeline.Technical})
	}
	m := New().SetSize(60, 4).SetDeals(deals) // header + 3 rows
	for i := 0; i < 5; i++ {
		m = m.MoveDown()
	}
	out := view(m)
	require.Contains(t, out, "> Deal F")
	require.NotContains(t, out, "Deal A")
	require.Len(t, strings.Split(out, "\n"), 4)
}

func TestHandleMouse_Wheel(t *testing.T) {
	m := New().SetDeals(sampleDeals())

	m, ok := m.HandleMouse(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	require.True(t, ok)
	require.Equal(t, 1, m.Cursor())

	m, ok = m.HandleMouse(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	require.True(t, ok)
	require.Zero(t, m.Cursor())

	_, ok = m.HandleMouse(tea.MouseMsg{Button: tea.MouseButtonRight, Action: tea.MouseActionRelease})
	require.False(t, ok)
}

func TestHandleMouse_ClickSelectsRow(t *testing.T) {
	m := New().SetSize(80, 10).SetDeals(sampleDeals())

	var z *zone.ZoneInfo
	for retries := 0; retries < 50; retries++ {
		_ = zone.Scan(m.View())
		z = zone.Get(rowZoneID(2))
		if z != nil && !z.IsZero() {
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.NotNil(t, z)
	require.False(t, z.IsZero())

	m, ok := m.HandleMouse(tea.MouseMsg{X: z.StartX + 2, Y: z.StartY, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.True(t, ok)
	require.Equal(t, 2, m.Cursor())
}

func TestFit(t *testing.T) {
	require.Equal(t, "abc  ", fit("abc", 5))
	require.Equal(t, "abcd…", fit("abcdefgh", 5))
	require.Equal(t, 6, runewidth.StringWidth(fit("日本語テキスト", 6)))
}
