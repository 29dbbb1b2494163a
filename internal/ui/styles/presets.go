// Package styles contains Lip Gloss style definitions.
package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the stock espalier color scheme.
// Values mirror the Dark sides of the AdaptiveColor definitions in styles.go.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default espalier theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CCCCCC",
		TokenTextSecondary:   "#BBBBBB",
		TokenTextMuted:       "#696969",
		TokenTextDescription: "#999999",
		TokenTextPlaceholder: "#777777",

		TokenBorderDefault:   "#696969",
		TokenBorderFocus:     "#FFFFFF",
		TokenBorderHighlight: "#54A0FF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		TokenSelectionIndicator: "#FFFFFF",

		TokenSpinner: "#FFFFFF",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CDD6F4", // text
		TokenTextSecondary:   "#BAC2DE", // subtext1
		TokenTextMuted:       "#6C7086", // overlay0
		TokenTextDescription: "#A6ADC8", // subtext0
		TokenTextPlaceholder: "#585B70", // surface2

		TokenBorderDefault:   "#6C7086", // overlay0
		TokenBorderFocus:     "#CDD6F4", // text
		TokenBorderHighlight: "#89B4FA", // blue

		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusWarning: "#F9E2AF", // yellow
		TokenStatusError:   "#F38BA8", // red

		TokenSelectionIndicator: "#CDD6F4", // text

		TokenSpinner: "#CBA6F7", // mauve
	},
}

// CatppuccinLattePreset is the Catppuccin Latte (light) theme.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Catppuccin Latte - warm, cozy light theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#4C4F69", // text
		TokenTextSecondary:   "#5C5F77", // subtext1
		TokenTextMuted:       "#9CA0B0", // overlay0
		TokenTextDescription: "#6C6F85", // subtext0
		TokenTextPlaceholder: "#ACB0BE", // surface2

		TokenBorderDefault:   "#9CA0B0", // overlay0
		TokenBorderFocus:     "#4C4F69", // text
		TokenBorderHighlight: "#1E66F5", // blue

		TokenStatusSuccess: "#40A02B", // green
		TokenStatusWarning: "#DF8E1D", // yellow
		TokenStatusError:   "#D20F39", // red

		TokenSelectionIndicator: "#4C4F69", // text

		TokenSpinner: "#8839EF", // mauve
	},
}

// DraculaPreset is the Dracula theme.
// Colors from: https://draculatheme.com/spec
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula - dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#F8F8F2", // foreground
		TokenTextSecondary:   "#F8F8F2", // foreground
		TokenTextMuted:       "#6272A4", // comment
		TokenTextDescription: "#F8F8F2", // foreground
		TokenTextPlaceholder: "#6272A4", // comment

		TokenBorderDefault:   "#6272A4", // comment
		TokenBorderFocus:     "#F8F8F2", // foreground
		TokenBorderHighlight: "#BD93F9", // purple

		TokenStatusSuccess: "#50FA7B", // green
		TokenStatusWarning: "#F1FA8C", // yellow
		TokenStatusError:   "#FF5555", // red

		TokenSelectionIndicator: "#F8F8F2", // foreground

		TokenSpinner: "#BD93F9", // purple
	},
}

// NordPreset is the Nord theme.
// Colors from: https://www.nordtheme.com/docs/colors-and-palettes
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#ECEFF4", // snow storm 3
		TokenTextSecondary:   "#E5E9F0", // snow storm 2
		TokenTextMuted:       "#4C566A", // polar night 4
		TokenTextDescription: "#D8DEE9", // snow storm 1
		TokenTextPlaceholder: "#4C566A", // polar night 4

		TokenBorderDefault:   "#4C566A", // polar night 4
		TokenBorderFocus:     "#ECEFF4", // snow storm 3
		TokenBorderHighlight: "#88C0D0", // frost 2

		TokenStatusSuccess: "#A3BE8C", // aurora green
		TokenStatusWarning: "#EBCB8B", // aurora yellow
		TokenStatusError:   "#BF616A", // aurora red

		TokenSelectionIndicator: "#ECEFF4", // snow storm 3

		TokenSpinner: "#88C0D0", // frost 2
	},
}

// HighContrastPreset maximizes legibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#FFFFFF",
		TokenTextSecondary:   "#FFFFFF",
		TokenTextMuted:       "#FFFFFF", // no muted colors in high contrast
		TokenTextDescription: "#FFFFFF",
		TokenTextPlaceholder: "#CCCCCC", // slightly dimmed but still readable

		TokenBorderDefault:   "#FFFFFF",
		TokenBorderFocus:     "#FFFF00", // bright yellow for focus
		TokenBorderHighlight: "#00FFFF", // cyan for highlights

		TokenStatusSuccess: "#00FF00", // pure green
		TokenStatusWarning: "#FFFF00", // pure yellow
		TokenStatusError:   "#FF0000", // pure red

		TokenSelectionIndicator: "#FFFF00", // yellow for visibility

		TokenSpinner: "#FFFF00", // yellow for visibility
	},
}
