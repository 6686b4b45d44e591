package term

import "github.com/arika0093/console2svg/internal/theme"

// dispatchCSI handles one fully-collected CSI sequence (final byte b, with
// p.csiParams/csiPrivate/csiHasIntermed already populated by stepCSI). Per
// spec section 4.2 rule 4: any sequence carrying a private prefix or an
// intermediate byte is, by default, parsed to completion but produces no
// buffer mutation — this discards DA1/DA2/DECRPM responses and mouse
// reports a real terminal might otherwise act on. The one private-prefixed
// family we do recognize (DEC private mode set/reset, `?...h` / `?...l`,
// specifically the alternate-screen modes 47, 1047 and 1049) is handled
// explicitly before that default applies.
func (p *AnsiParser) dispatchCSI(b byte) {
	params := parseParams(p.csiParams)

	if b == 'h' || b == 'l' {
		p.dispatchMode(b == 'h', params)
		return
	}

	if p.csiPrivate != 0 || p.csiHasIntermed {
		return // filtered: fully parsed, no mutation
	}

	switch b {
	case 'A':
		p.buf.MoveBy(-paramOr(params, 0, 1), 0)
	case 'B':
		p.buf.MoveBy(paramOr(params, 0, 1), 0)
	case 'C':
		p.buf.MoveBy(0, paramOr(params, 0, 1))
	case 'D':
		p.buf.MoveBy(0, -paramOr(params, 0, 1))
	case 'E':
		row, _ := p.buf.Cursor()
		p.buf.MoveTo(row+paramOr(params, 0, 1), 0)
	case 'F':
		row, _ := p.buf.Cursor()
		p.buf.MoveTo(row-paramOr(params, 0, 1), 0)
	case 'G', '`':
		row, _ := p.buf.Cursor()
		p.buf.MoveTo(row, paramOr(params, 0, 1)-1)
	case 'd':
		_, col := p.buf.Cursor()
		p.buf.MoveTo(paramOr(params, 0, 1)-1, col)
	case 'H', 'f':
		row := paramOr(params, 0, 1) - 1
		col := paramOr(params, 1, 1) - 1
		p.buf.MoveTo(row, col)
	case 'J':
		p.buf.ClearDisplay(paramOr(params, 0, 0))
	case 'K':
		p.buf.ClearLine(paramOr(params, 0, 0))
	case 'L':
		p.buf.InsertLines(paramOr(params, 0, 1))
	case 'M':
		p.buf.DeleteLines(paramOr(params, 0, 1))
	case 'P':
		p.buf.DeleteChars(paramOr(params, 0, 1))
	case '@':
		p.buf.InsertChars(paramOr(params, 0, 1))
	case 'X':
		p.buf.EraseChars(paramOr(params, 0, 1))
	case 's':
		p.buf.SaveCursor()
	case 'u':
		p.buf.RestoreCursor()
	case 'm':
		p.dispatchSGR(params)
	}
	// Unrecognized finals (e.g. 'c' DA1/DA2, 'n' DSR, 'r' DECSTBM) are
	// parsed to completion and otherwise ignored; this emulator does not
	// claim full xterm conformance.
}

// dispatchMode handles DEC private mode set/reset (CSI ?Pm h / CSI ?Pm l).
// The only modes this emulator cares about are 47, 1047 and 1049 (all
// treated as the alternate screen);
// others (cursor visibility, bracketed paste, mouse tracking) are parsed
// and ignored since they have no effect on rendered cell content.
func (p *AnsiParser) dispatchMode(set bool, params []int) {
	if p.csiPrivate != '?' {
		return
	}
	for _, mode := range params {
		if mode == 1049 || mode == 47 || mode == 1047 {
			p.buf.SetAlternateScreen(set)
		}
	}
}

// dispatchSGR resolves one or more SGR (CSI ... m) parameters against
// p.style, per spec section 4.2's color-resolution rules: 16-color direct,
// 256-palette (38/48;5;n) via theme.Palette256, and truecolor
// (38/48;2;r;g;b) via theme.TrueColor.
func (p *AnsiParser) dispatchSGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		n := params[i]
		switch {
		case n == 0:
			p.style.Reset()
		case n == 1:
			p.style.Bold = true
		case n == 2:
			p.style.Faint = true
		case n == 3:
			p.style.Italic = true
		case n == 4:
			p.style.Underline = true
		case n == 7:
			p.style.Reversed = true
		case n == 22:
			p.style.Bold, p.style.Faint = false, false
		case n == 23:
			p.style.Italic = false
		case n == 24:
			p.style.Underline = false
		case n == 27:
			p.style.Reversed = false
		case n >= 30 && n <= 37:
			p.style.Foreground = p.theme.Color(n - 30)
		case n == 38:
			color, consumed := p.resolveExtendedColor(params[i+1:])
			if color != "" {
				p.style.Foreground = color
			}
			i += consumed
		case n == 39:
			p.style.Foreground = ""
		case n >= 40 && n <= 47:
			p.style.Background = p.theme.Color(n - 40)
		case n == 48:
			color, consumed := p.resolveExtendedColor(params[i+1:])
			if color != "" {
				p.style.Background = color
			}
			i += consumed
		case n == 49:
			p.style.Background = ""
		case n >= 90 && n <= 97:
			p.style.Foreground = p.theme.Color(n - 90 + 8)
		case n >= 100 && n <= 107:
			p.style.Background = p.theme.Color(n - 100 + 8)
		}
	}
	p.buf.SetStyle(p.style)
}

// resolveExtendedColor parses the parameters following an SGR 38/48
// introducer (either "5;n" for a 256-palette index or "2;r;g;b" for
// truecolor) and returns the resolved hex color plus how many extra
// params it consumed.
func (p *AnsiParser) resolveExtendedColor(rest []int) (string, int) {
	if len(rest) == 0 {
		return "", 0
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return "", len(rest)
		}
		return p.theme.Palette256(rest[1]), 2
	case 2:
		if len(rest) < 4 {
			return "", len(rest)
		}
		return theme.TrueColor(rest[1], rest[2], rest[3]), 4
	}
	return "", len(rest)
}
