// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"} // Deal titles
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // Company, amount
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, footers

	// Semantic color names - Border
	BorderDefaultColor   = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderHighlightColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Selection indicator color (used for ">" prefix in the deal list)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	// Stage button colors. Active buttons use the stage color as background.
	ButtonTextColor       = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonActiveTextColor = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#1A1A1A"}
	ButtonInactiveBgColor = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	// StageButtonStyle renders an inactive stage button.
	StageButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonInactiveBgColor)

	// StageButtonActiveStyle is combined with the stage color by ActiveStageButton.
	StageButtonActiveStyle = baseButtonStyle.
				Foreground(ButtonActiveTextColor).
				Underline(true).
				UnderlineSpaces(true)

	// Deal list
	DealTitleStyle   = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	DealDetailStyle  = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	DealEmptyStyle   = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)
	DealHeaderStyle  = lipgloss.NewStyle().Foreground(TextMutedColor).Bold(true)
	DealCursorStyle  = lipgloss.NewStyle().Bold(true)
	HelpSectionStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(0, 1)
)

// ActiveStageButton returns the active button style with color as background.
func ActiveStageButton(color lipgloss.TerminalColor) lipgloss.Style {
	return StageButtonActiveStyle.Background(color)
}

// StageLabelStyle colors a stage name in its stage color.
func StageLabelStyle(color lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color)
}
