package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":       DefaultPreset,
	"dracula":       DraculaPreset,
	"nord":          NordPreset,
	"high-contrast": HighContrastPreset,
}

// DefaultPreset matches the AdaptiveColor dark values in styles.go and the
// stage colors from pipeline.Info.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default dealboard theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CCCCCC",
		TokenTextSecondary: "#BBBBBB",
		TokenTextMuted:     "#696969",

		TokenBorderDefault:   "#696969",
		TokenBorderHighlight: "#54A0FF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		TokenSelectionIndicator: "#FFFFFF",

		TokenButtonText:       "#FFFFFF",
		TokenButtonActiveText: "#1A1A1A",
		TokenButtonInactiveBg: "#2D3436",

		"stage.prospecting": "#54A0FF",
		"stage.technical":   "#7D56F4",
		"stage.quoting":     "#FECA57",
		"stage.negotiation": "#73F59F",
	},
}

// DraculaPreset uses the Dracula palette.
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#F8F8F2",
		TokenTextSecondary: "#BFBFBF",
		TokenTextMuted:     "#6272A4",

		TokenBorderDefault:   "#6272A4",
		TokenBorderHighlight: "#BD93F9",

		TokenStatusSuccess: "#50FA7B",
		TokenStatusWarning: "#FFB86C",
		TokenStatusError:   "#FF5555",

		TokenSelectionIndicator: "#F8F8F2",

		TokenButtonText:       "#F8F8F2",
		TokenButtonActiveText: "#282A36",
		TokenButtonInactiveBg: "#44475A",

		"stage.prospecting": "#8BE9FD",
		"stage.technical":   "#BD93F9",
		"stage.quoting":     "#F1FA8C",
		"stage.negotiation": "#50FA7B",
	},
}

// NordPreset uses the Nord palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#ECEFF4",
		TokenTextSecondary: "#D8DEE9",
		TokenTextMuted:     "#4C566A",

		TokenBorderDefault:   "#4C566A",
		TokenBorderHighlight: "#88C0D0",

		TokenStatusSuccess: "#A3BE8C",
		TokenStatusWarning: "#EBCB8B",
		TokenStatusError:   "#BF616A",

		TokenSelectionIndicator: "#ECEFF4",

		TokenButtonText:       "#ECEFF4",
		TokenButtonActiveText: "#2E3440",
		TokenButtonInactiveBg: "#3B4252",

		"stage.prospecting": "#81A1C1",
		"stage.technical":   "#B48EAD",
		"stage.quoting":     "#EBCB8B",
		"stage.negotiation": "#A3BE8C",
	},
}

// HighContrastPreset is for maximum readability.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#FFFFFF",
		TokenTextSecondary: "#FFFFFF",
		TokenTextMuted:     "#C0C0C0",

		TokenBorderDefault:   "#FFFFFF",
		TokenBorderHighlight: "#00FFFF",

		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		TokenSelectionIndicator: "#FFFF00",

		TokenButtonText:       "#FFFFFF",
		TokenButtonActiveText: "#000000",
		TokenButtonInactiveBg: "#000000",

		"stage.prospecting": "#00FFFF",
		"stage.technical":   "#FF00FF",
		"stage.quoting":     "#FFFF00",
		"stage.negotiation": "#00FF00",
	},
}
