// Package theme defines the named color palettes console2svg renders
// terminal cells against, and the SGR-derived text style that decorates
// each cell.
package theme

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme is an immutable named color palette: background, foreground, and
// the ordered 16-element ANSI palette (normal 0-7, bright 8-15).
type Theme struct {
	Name       string
	Background string
	Foreground string
	ANSI       [16]string
}

// Color returns the i-th ANSI color (0-15). Out-of-range indices clamp
// into 0-15.
func (t Theme) Color(i int) string {
	if i < 0 {
		i = 0
	}
	if i > 15 {
		i = 15
	}
	return t.ANSI[i]
}

// cube6 holds the 6 intensity levels used by the 216-color cube (16-231).
var cube6 = [6]int{0, 95, 135, 175, 215, 255}

// Palette256 resolves an xterm 256-color index against this theme: 0-15 map
// to the theme's ANSI palette, 16-231 are the 6x6x6 RGB cube, and 232-255
// are the 24-step grayscale ramp.
func (t Theme) Palette256(n int) string {
	switch {
	case n < 0:
		n = 0
	case n > 255:
		n = 255
	}
	if n < 16 {
		return t.Color(n)
	}
	if n <= 231 {
		idx := n - 16
		r := cube6[idx/36%6]
		g := cube6[idx/6%6]
		b := cube6[idx%6]
		return fmt.Sprintf("#%02X%02X%02X", r, g, b)
	}
	level := 8 + 10*(n-232)
	return fmt.Sprintf("#%02X%02X%02X", level, level, level)
}

// TrueColor formats a 24-bit RGB triple as a hex color string.
func TrueColor(r, g, b int) string {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return v
	}
	return fmt.Sprintf("#%02X%02X%02X", clamp(r), clamp(g), clamp(b))
}

// Blend mixes two hex colors by t in [0,1]. Invalid inputs fall back to
// the first color.
func Blend(a, b string, t float64) string {
	ca, err1 := colorful.Hex(a)
	cb, err2 := colorful.Hex(b)
	if err1 != nil || err2 != nil {
		return a
	}
	return ca.BlendRgb(cb, t).Hex()
}

// Dark is the default dark theme.
var Dark = Theme{
	Name:       "dark",
	Background: "#0C0C0C",
	Foreground: "#CCCCCC",
	ANSI: [16]string{
		"#0C0C0C", "#C50F1F", "#13A10E", "#C19C00",
		"#0037DA", "#881798", "#3A96DD", "#CCCCCC",
		"#767676", "#E74856", "#16C60C", "#F9F1A5",
		"#3B78FF", "#B4009E", "#61D6D6", "#F2F2F2",
	},
}

// Light is the default light theme.
var Light = Theme{
	Name:       "light",
	Background: "#FFFFFF",
	Foreground: "#0C0C0C",
	ANSI: [16]string{
		"#0C0C0C", "#C50F1F", "#13A10E", "#C19C00",
		"#0037DA", "#881798", "#3A96DD", "#CCCCCC",
		"#767676", "#E74856", "#16C60C", "#F9F1A5",
		"#3B78FF", "#B4009E", "#61D6D6", "#0C0C0C",
	},
}

// Dracula is a popular community theme included as a built-in catalog
// entry (spec section 11: built-in theme catalog).
var Dracula = Theme{
	Name:       "dracula",
	Background: "#282A36",
	Foreground: "#F8F8F2",
	ANSI: [16]string{
		"#21222C", "#FF5555", "#50FA7B", "#F1FA8C",
		"#BD93F9", "#FF79C6", "#8BE9FD", "#F8F8F2",
		"#6272A4", "#FF6E6E", "#69FF94", "#FFFFA5",
		"#D6ACFF", "#FF92DF", "#A4FFFF", "#FFFFFF",
	},
}

// builtin is the name -> Theme catalog consulted by Resolve.
var builtin = map[string]Theme{
	"dark":    Dark,
	"light":   Light,
	"dracula": Dracula,
}

// Register adds or overrides a named theme in the built-in catalog. Used by
// internal/config when loading a user's YAML theme overrides.
func Register(t Theme) {
	builtin[t.Name] = t
}

// Resolve looks up a theme by name, falling back to Dark for an unknown or
// empty name.
func Resolve(name string) Theme {
	if name == "" {
		return Dark
	}
	if t, ok := builtin[name]; ok {
		return t
	}
	return Dark
}
