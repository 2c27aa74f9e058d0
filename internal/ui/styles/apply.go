package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
	// StageColors is keyed by stage name, e.g. "quoting": "#FF9F43".
	StageColors map[string]string
}

var (
	stageMu     sync.RWMutex
	stageColors = defaultStageColors()
	// themeStageColors are the stage colors of the active theme before
	// per-stage overrides; ResetStageColor falls back to them.
	themeStageColors = defaultStageColors()
)

func defaultStageColors() map[pipeline.Stage]lipgloss.AdaptiveColor {
	m := make(map[pipeline.Stage]lipgloss.AdaptiveColor, len(pipeline.Stages()))
	for _, s := range pipeline.Stages() {
		m[s] = makeColor(pipeline.Info(s).Color)
	}
	return m
}

// StageColor returns the themed color of s.
func StageColor(s pipeline.Stage) lipgloss.AdaptiveColor {
	stageMu.RLock()
	defer stageMu.RUnlock()
	if c, ok := stageColors[s]; ok {
		return c
	}
	return makeColor(pipeline.Info(s).Color)
}

// ApplyStageColors overrides stage colors by stage name. Unknown stages and
// malformed hex values are rejected before anything changes.
func ApplyStageColors(overrides map[string]string) error {
	parsed := make(map[pipeline.Stage]string, len(overrides))
	for name, hex := range overrides {
		s, err := pipeline.ParseStage(name)
		if err != nil {
			return fmt.Errorf("stage color %q: %w", name, err)
		}
		if !isValidHexColor(hex) {
			return fmt.Errorf("invalid hex color for stage %s: %s", s, hex)
		}
		parsed[s] = hex
	}

	stageMu.Lock()
	defer stageMu.Unlock()
	for s, hex := range parsed {
		stageColors[s] = makeColor(hex)
	}
	return nil
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Apply stage color overrides
// 5. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	base := make(map[pipeline.Stage]lipgloss.AdaptiveColor, len(pipeline.Stages()))
	for _, s := range pipeline.Stages() {
		if c, ok := colors[StageToken(s)]; ok {
			base[s] = makeColor(c)
		} else {
			base[s] = makeColor(pipeline.Info(s).Color)
		}
	}

	for name, value := range cfg.StageColors {
		s, err := pipeline.ParseStage(name)
		if err != nil {
			return fmt.Errorf("stage color %q: %w", name, err)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for stage %s: %s", s, value)
		}
		colors[StageToken(s)] = value
	}

	applyColors(colors)
	rebuildStyles()

	stageMu.Lock()
	themeStageColors = base
	stageMu.Unlock()
	return nil
}

// ResetStageColor drops any override of s and restores the theme's color.
func ResetStageColor(s pipeline.Stage) {
	stageMu.Lock()
	defer stageMu.Unlock()
	if c, ok := themeStageColors[s]; ok {
		stageColors[s] = c
		return
	}
	stageColors[s] = makeColor(pipeline.Info(s).Color)
}

func makeColor(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
}

func applyColors(colors map[ColorToken]string) {
	set := func(token ColorToken, dst *lipgloss.AdaptiveColor) {
		if c, ok := colors[token]; ok {
			*dst = makeColor(c)
		}
	}

	set(TokenTextPrimary, &TextPrimaryColor)
	set(TokenTextSecondary, &TextSecondaryColor)
	set(TokenTextMuted, &TextMutedColor)
	set(TokenBorderDefault, &BorderDefaultColor)
	set(TokenBorderHighlight, &BorderHighlightColor)
	set(TokenStatusSuccess, &StatusSuccessColor)
	set(TokenStatusWarning, &StatusWarningColor)
	set(TokenStatusError, &StatusErrorColor)
	set(TokenSelectionIndicator, &SelectionIndicatorColor)
	set(TokenButtonText, &ButtonTextColor)
	set(TokenButtonActiveText, &ButtonActiveTextColor)
	set(TokenButtonInactiveBg, &ButtonInactiveBgColor)

	stageMu.Lock()
	defer stageMu.Unlock()
	stageColors = defaultStageColors()
	for _, s := range pipeline.Stages() {
		if c, ok := colors[StageToken(s)]; ok {
			stageColors[s] = makeColor(c)
		}
	}
}

// rebuildStyles recreates all Style objects with updated colors.
// This is necessary because lipgloss.Style objects capture colors at creation time.
func rebuildStyles() {
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	StageButtonStyle = baseButtonStyle.
		Foreground(ButtonTextColor).
		Background(ButtonInactiveBgColor)

	StageButtonActiveStyle = baseButtonStyle.
		Foreground(ButtonActiveTextColor).
		Underline(true).
		UnderlineSpaces(true)

	DealTitleStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	DealDetailStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	DealEmptyStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)
	DealHeaderStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Bold(true)
	HelpSectionStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(0, 1)
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}

// IsValidHexColor reports whether s is a #RGB or #RRGGBB color.
func IsValidHexColor(s string) bool {
	return isValidHexColor(s)
}
