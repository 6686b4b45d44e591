package theme

// TextStyle holds the visual attributes merged by SGR operations onto a
// screen cell. Foreground/Background are resolved hex colors (or the
// empty string, meaning "theme default").
type TextStyle struct {
	Foreground string
	Background string
	Bold       bool
	Italic     bool
	Underline  bool
	Reversed   bool
	Faint      bool
}

// Default returns the zero-value style: both colors default to the active
// theme's background/foreground and no attributes are set.
func Default() TextStyle {
	return TextStyle{}
}

// Effective resolves fg/bg against a theme, applying the Reversed swap.
// A cell with an empty Foreground/Background always takes the theme's
// default color for that channel.
func (s TextStyle) Effective(t Theme) (fg, bg string) {
	fg, bg = s.Foreground, s.Background
	if fg == "" {
		fg = t.Foreground
	}
	if bg == "" {
		bg = t.Background
	}
	if s.Reversed {
		fg, bg = bg, fg
	}
	return fg, bg
}

// Reset clears every attribute and color (SGR 0).
func (s *TextStyle) Reset() {
	*s = TextStyle{}
}
