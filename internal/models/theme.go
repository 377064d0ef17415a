package models

import "strings"

// ThemeCustom is the theme mode that composes presets from each catalog
const ThemeCustom = "custom"

// BackgroundPreset holds page surface colors
type BackgroundPreset struct {
	Key        string `json:"key"`
	Body       string `json:"body"`
	Header     string `json:"header"`
	Text       string `json:"text"`
	CenterLine string `json:"center_line"`
}

// AccentPreset holds accent colors
type AccentPreset struct {
	Key    string `json:"key"`
	Accent string `json:"accent"`
	Hover  string `json:"hover"`
}

// FontPreset holds a font stack
type FontPreset struct {
	Key  string `json:"key"`
	Font string `json:"font"`
}

// CustomSettings selects one preset from each catalog
type CustomSettings struct {
	BackgroundKey string `json:"backgroundKey"`
	AccentKey     string `json:"accentKey"`
	FontKey       string `json:"fontKey"`
}

// CSSVar is a single style variable override on the root element
type CSSVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ThemeState is the resolved theme for a page render
type ThemeState struct {
	Mode   string         `json:"mode"`
	Custom CustomSettings `json:"custom"`
	Vars   []CSSVar       `json:"vars,omitempty"`
}

// Style joins the overrides into an inline style declaration
func (s ThemeState) Style() string {
	if len(s.Vars) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s.Vars))
	for _, v := range s.Vars {
		parts = append(parts, v.Name+": "+v.Value)
	}
	return strings.Join(parts, "; ") + ";"
}
