package styles

import "github.com/zjrosen/dealboard/internal/pipeline"

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	// Borders
	TokenBorderDefault   ColorToken = "border.default"
	TokenBorderHighlight ColorToken = "border.highlight"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Selection
	TokenSelectionIndicator ColorToken = "selection.indicator"

	// Stage buttons
	TokenButtonText       ColorToken = "button.text"
	TokenButtonActiveText ColorToken = "button.active.text"
	TokenButtonInactiveBg ColorToken = "button.inactive.bg"
)

// StageToken returns the token that overrides the color of s, e.g. "stage.quoting".
func StageToken(s pipeline.Stage) ColorToken {
	return ColorToken("stage." + s.String())
}

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	tokens := []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,

		TokenBorderDefault,
		TokenBorderHighlight,

		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		TokenSelectionIndicator,

		TokenButtonText,
		TokenButtonActiveText,
		TokenButtonInactiveBg,
	}
	for _, s := range pipeline.Stages() {
		tokens = append(tokens, StageToken(s))
	}
	return tokens
}
