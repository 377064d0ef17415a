package catalog

import "kv.dev/portfolio/internal/models"

// Fallback keys used when a stored or submitted key is unknown
const (
	DefaultBackground = "light"
	DefaultAccent     = "blue"
	DefaultFont       = "rounded"
	DefaultMode       = "light"
)

var backgroundPresets = map[string]models.BackgroundPreset{
	"light": {
		Key:        "light",
		Body:       "#f0f0f0",
		Header:     "#f8f8f8",
		Text:       "#222",
		CenterLine: "gray",
	},
	"sunset": {
		Key:        "sunset",
		Body:       "#1b1020",
		Header:     "#2a1724",
		Text:       "#ffeadd",
		CenterLine: "#f97316",
	},
	"midnight": {
		Key:        "midnight",
		Body:       "#020617",
		Header:     "#020617",
		Text:       "#e5e7ef",
		CenterLine: "#4b5563",
	},
}

var accentPresets = map[string]models.AccentPreset{
	"blue":   {Key: "blue", Accent: "#4da3ff", Hover: "#8bc2ff"},
	"teal":   {Key: "teal", Accent: "#14b8a6", Hover: "#2dd4bf"},
	"purple": {Key: "purple", Accent: "#a855f7", Hover: "#c4b5fd"},
	"orange": {Key: "orange", Accent: "#f97316", Hover: "#fdba74"},
}

var fontPresets = map[string]models.FontPreset{
	"rounded": {Key: "rounded", Font: `"Montserrat", system-ui, sans-serif`},
	"system":  {Key: "system", Font: `system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif`},
	"serif":   {Key: "serif", Font: `"Georgia", "Times New Roman", serif`},
	"mono":    {Key: "mono", Font: `ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, "Liberation Mono", "Courier New", monospace`},
}

// Named modes are applied through the data-theme attribute alone.
var namedModes = []string{"light", "dark", "sunset", "midnight"}

// DefaultCustom is the composite used before any custom theme is saved
var DefaultCustom = models.CustomSettings{
	BackgroundKey: "sunset",
	AccentKey:     "blue",
	FontKey:       "rounded",
}

// Background resolves a background key, falling back to the default preset
func Background(key string) models.BackgroundPreset {
	if p, ok := backgroundPresets[key]; ok {
		return p
	}
	return backgroundPresets[DefaultBackground]
}

// Accent resolves an accent key, falling back to the default preset
func Accent(key string) models.AccentPreset {
	if p, ok := accentPresets[key]; ok {
		return p
	}
	return accentPresets[DefaultAccent]
}

// Font resolves a font key, falling back to the default preset
func Font(key string) models.FontPreset {
	if p, ok := fontPresets[key]; ok {
		return p
	}
	return fontPresets[DefaultFont]
}

// IsMode reports whether name is a named mode or custom
func IsMode(name string) bool {
	if name == models.ThemeCustom {
		return true
	}
	for _, m := range namedModes {
		if m == name {
			return true
		}
	}
	return false
}

// Modes lists the selectable modes in display order
func Modes() []string {
	return append(append([]string{}, namedModes...), models.ThemeCustom)
}

// BackgroundKeys lists background preset keys in display order
func BackgroundKeys() []string { return []string{"light", "sunset", "midnight"} }

// AccentKeys lists accent preset keys in display order
func AccentKeys() []string { return []string{"blue", "teal", "purple", "orange"} }

// FontKeys lists font preset keys in display order
func FontKeys() []string { return []string{"rounded", "system", "serif", "mono"} }
