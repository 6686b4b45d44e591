// Package term implements the VT/ANSI terminal emulator core: a character
// cell screen buffer (ScreenBuffer) with scrollback, dual main/alternate
// screens, deferred wrap, wide-character handling, and SGR style state,
// driven by a byte-oriented escape-sequence parser (AnsiParser).
package term

import "github.com/arika0093/console2svg/internal/theme"

// ScreenCell is one character-cell position on the grid. Text holds a
// grapheme cluster (a base rune plus any combining marks appended to it),
// not a single code unit, so it can represent a surrogate-pair-origin
// character or a base+combining-mark sequence in one cell.
type ScreenCell struct {
	Text               string
	Style              theme.TextStyle
	IsWide             bool // this cell holds the first column of a double-width glyph
	IsWideContinuation bool // this cell is the trailing (blank) half of a wide glyph
}

// blankCell returns an empty cell carrying the given style (used when
// clearing regions so the erased area keeps the active background color).
func blankCell(style theme.TextStyle) ScreenCell {
	return ScreenCell{Text: " ", Style: style}
}

func (c ScreenCell) isBlank() bool {
	return c.Text == "" || c.Text == " "
}
