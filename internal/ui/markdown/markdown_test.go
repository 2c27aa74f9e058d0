package markdown

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestRenderer_RendersHeadingsAndLists(t *testing.T) {
	r, err := New(60, StyleNoTTY)
	require.NoError(t, err)
	require.Equal(t, 60, r.Width())

	out, err := r.Render("# Acme renewal\n\n- call procurement\n- send quote\n")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	require.Contains(t, plain, "Acme renewal")
	require.Contains(t, plain, "call procurement")
	require.Contains(t, plain, "send quote")
}

func TestRenderer_WrapsAtWidth(t *testing.T) {
	r, err := New(20, StyleNoTTY)
	require.NoError(t, err)

	out := r.RenderOrPlain(strings.Repeat("word ", 20), 20)
	for _, line := range strings.Split(ansi.Strip(out), "\n") {
		require.LessOrEqual(t, len(strings.TrimRight(line, " ")), 20, "line %q", line)
	}
}

func TestRenderOrPlain_NilRendererFallsBack(t *testing.T) {
	var r *Renderer
	out := r.RenderOrPlain("  budget approved for the next quarter  ", 12)
	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		require.LessOrEqual(t, len(line), 12, "line %q", line)
	}
	require.Equal(t, "budget approved for the next quarter", strings.Join(strings.Fields(out), " "))
}
