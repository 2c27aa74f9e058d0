package styles

import (
	"os"
	"strings"
	"testing"

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

// resetTheme restores the default theme after a test mutates globals.
func resetTheme(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		require.NoError(t, ApplyTheme(ThemeConfig{}))
	})
}

func TestStageColor_DefaultsToPipelineInfo(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	for _, s := range pipeline.Stages() {
		require.Equal(t, pipeline.Info(s).Color, StageColor(s).Dark, "stage %s", s)
	}
}

func TestApplyStageColors_Overrides(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyStageColors(map[string]string{"Quoting": "#FF9F43"}))
	require.Equal(t, "#FF9F43", StageColor(pipeline.Quoting).Dark)
	require.Equal(t, pipeline.Info(pipeline.Technical).Color, StageColor(pipeline.Technical).Dark)
}

func TestApplyStageColors_RejectsBadInput(t *testing.T) {
	resetTheme(t)

	err := ApplyStageColors(map[string]string{"closed": "#FFFFFF"})
	require.ErrorIs(t, err, pipeline.ErrUnknownStage)

	err = ApplyStageColors(map[string]string{"quoting": "orange"})
	require.ErrorContains(t, err, "invalid hex color")
	require.Equal(t, pipeline.Info(pipeline.Quoting).Color, StageColor(pipeline.Quoting).Dark,
		"a rejected override must not change anything")
}

func TestApplyTheme_Default(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, DefaultPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
}

func TestApplyTheme_PresetWithOverride(t *testing.T) {
	resetTheme(t)
	err := ApplyTheme(ThemeConfig{
		Preset: "dracula",
		Colors: map[string]string{"text.primary": "#00FF00"},
	})
	require.NoError(t, err)
	require.Equal(t, "#00FF00", TextPrimaryColor.Dark)
	require.Equal(t, DraculaPreset.Colors[TokenTextSecondary], TextSecondaryColor.Dark)
	require.Equal(t, "#F1FA8C", StageColor(pipeline.Quoting).Dark)
}

func TestApplyTheme_StageColorsBeatPreset(t *testing.T) {
	resetTheme(t)
	err := ApplyTheme(ThemeConfig{
		Preset:      "nord",
		StageColors: map[string]string{"negotiation": "#123456"},
	})
	require.NoError(t, err)
	require.Equal(t, "#123456", StageColor(pipeline.Negotiation).Dark)
}

func TestApplyTheme_StageTokenInColors(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"stage.technical": "#ABC"}}))
	require.Equal(t, "#ABC", StageColor(pipeline.Technical).Dark)
}

func TestApplyTheme_Errors(t *testing.T) {
	resetTheme(t)
	require.ErrorContains(t, ApplyTheme(ThemeConfig{Preset: "solarized"}), "unknown theme preset")
	require.ErrorContains(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"issue.bug": "#FFF"}}), "unknown color token")
	require.ErrorContains(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"text.muted": "gray"}}), "invalid hex color")
	require.ErrorIs(t, ApplyTheme(ThemeConfig{StageColors: map[string]string{"won": "#FFF"}}), pipeline.ErrUnknownStage)
}

func TestPresets_CoverAllTokens(t *testing.T) {
	for name, p := range Presets {
		for _, token := range AllTokens() {
			c, ok := p.Colors[token]
			require.True(t, ok, "preset %s missing %s", name, token)
			require.True(t, IsValidHexColor(c), "preset %s token %s: %s", name, token, c)
		}
	}
}

func TestIsValidHexColor(t *testing.T) {
	require.True(t, IsValidHexColor("#FFF"))
	require.True(t, IsValidHexColor("#a1b2c3"))
	require.False(t, IsValidHexColor("FFF"))
	require.False(t, IsValidHexColor("#FFFF"))
	require.False(t, IsValidHexColor("#GGGGGG"))
}

func TestRenderPanel(t *testing.T) {
	out := ansi.Strip(RenderPanel("line one\nline two", "Notes", 20, true))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[0], "╭─ Notes "))
	require.Equal(t, "│line one          │", lines[1])
	require.Equal(t, "╰"+strings.Repeat("─", 18)+"╯", lines[3])
	for _, l := range lines {
		require.Equal(t, 20, lipgloss.Width(l))
	}
}

func TestRenderPanel_TruncatesLongTitleAndLines(t *testing.T) {
	out := ansi.Strip(RenderPanel(strings.Repeat("x", 50), "A very long panel title", 16, false))
	for _, l := range strings.Split(out, "\n") {
		require.Equal(t, 16, lipgloss.Width(l))
	}
}

func TestResetStageColor_RestoresThemeColor(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{
		Preset:      "nord",
		StageColors: map[string]string{"quoting": "#123456"},
	}))
	require.Equal(t, "#123456", StageColor(pipeline.Quoting).Dark)

	ResetStageColor(pipeline.Quoting)
	require.Equal(t, Presets["nord"].Colors[StageToken(pipeline.Quoting)], StageColor(pipeline.Quoting).Dark)
}

func TestResetStageColor_AfterLiveOverride(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyStageColors(map[string]string{"technical": "#ABCDEF"}))

	ResetStageColor(pipeline.Technical)
	require.Equal(t, DefaultPreset.Colors[StageToken(pipeline.Technical)], StageColor(pipeline.Technical).Dark)
}
