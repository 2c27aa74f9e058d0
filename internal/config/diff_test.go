package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

func TestLineDiff(t *testing.T) {
	require.Empty(t, LineDiff("a\nb\n", "a\nb\n"))
	require.Equal(t, " a\n-b\n+c\n", LineDiff("a\nb\n", "a\nc\n"))
	require.Equal(t, "+x\n", LineDiff("", "x\n"))
}

func TestPreviewStageColor_DoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	diff, err := PreviewStageColor(path, pipeline.Quoting, "#FF9F43")
	require.NoError(t, err)

	var added []string
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "+") {
			added = append(added, line)
		}
	}
	require.NotEmpty(t, added)
	require.Contains(t, strings.Join(added, "\n"), "quoting")
	require.Contains(t, strings.Join(added, "\n"), "#FF9F43")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))
}

func TestPreviewStageColor_NoChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveStageColor(path, pipeline.Technical, "#7D56F4"))

	diff, err := PreviewStageColor(path, pipeline.Technical, "#7D56F4")
	require.NoError(t, err)
	require.Empty(t, diff)
}

func TestPreviewStageColor_RejectsBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_, err := PreviewStageColor(path, pipeline.Quoting, "orange")
	require.ErrorContains(t, err, "invalid hex color")
}
