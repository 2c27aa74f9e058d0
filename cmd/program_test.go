package cmd

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/dealboard/internal/app"
	"github.com/zjrosen/dealboard/internal/config"
	"github.com/zjrosen/dealboard/internal/pipeline"
)

// This package has no TestMain, so the zone manager only exists if
// newProgram installs it.
func TestNewProgram_DashboardRenders(t *testing.T) {
	e := testEnv(t)
	model := app.New(app.Options{Service: e.svc, Config: config.Defaults(), Initial: pipeline.Selected(pipeline.Quoting)})

	var out bytes.Buffer
	p, release := newProgram(model, tea.WithInput(nil), tea.WithOutput(&out))
	defer release()
	require.NotNil(t, p)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 24})
	var view string
	require.NotPanics(t, func() { view = updated.View() })
	view = ansi.Strip(view)
	require.Contains(t, view, "Prospecting (0)")
	require.Contains(t, view, "▸ Quoting")
}
