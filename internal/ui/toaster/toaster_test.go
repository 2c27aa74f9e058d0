package toaster

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestToaster_ShowAndDismiss(t *testing.T) {
	m := New()
	require.False(t, m.Visible())
	require.Empty(t, m.View())

	m, cmd := m.Show("Moved Acme renewal to quoting", StyleSuccess)
	require.NotNil(t, cmd)
	require.True(t, m.Visible())
	require.Equal(t, "✓ Moved Acme renewal to quoting", m.View())

	m = m.Update(DismissMsg{seq: m.seq})
	require.False(t, m.Visible())
	require.Empty(t, m.Message())
}

func TestToaster_StaleDismissKeepsNewerToast(t *testing.T) {
	m := New()
	m, _ = m.Show("first", StyleSuccess)
	stale := DismissMsg{seq: m.seq}
	m, _ = m.Show("load failed", StyleError)

	m = m.Update(stale)
	require.True(t, m.Visible())
	require.Equal(t, "✗ load failed", m.View())
}

func TestToaster_IgnoresOtherMessages(t *testing.T) {
	m, _ := New().Show("saved", StyleSuccess)
	m = m.Update("unrelated")
	require.True(t, m.Visible())
}
