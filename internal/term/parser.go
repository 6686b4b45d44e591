package term

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/arika0093/console2svg/internal/theme"
)

type parserState int

const (
	stateNormal parserState = iota
	stateEscape
	stateCSI
	stateOSC
)

// AnsiParser is a byte-oriented state machine that turns a terminal
// program's raw output into ScreenBuffer mutations. It consumes UTF-8
// incrementally: state (including a partially-decoded UTF-8 lead byte or a
// half-parsed escape sequence) persists across Feed calls, which has the
// same effect spec section 4.2 describes as "buffering the incomplete
// sequence and prepending it to the next chunk" without needing a separate
// byte-level buffer.
type AnsiParser struct {
	buf   *ScreenBuffer
	theme theme.Theme
	style theme.TextStyle

	state parserState

	utf8Buf [4]byte
	utf8Len int
	utf8Got int

	csiParams       []byte
	csiPrivate      byte // '?', '>', '<', or 0
	csiHasIntermed  bool
	oscBuf          []byte
}

// NewAnsiParser creates a parser that drives buf, resolving SGR colors
// against th.
func NewAnsiParser(buf *ScreenBuffer, th theme.Theme) *AnsiParser {
	return &AnsiParser{buf: buf, theme: th}
}

// Feed consumes a chunk of output bytes, mutating the underlying
// ScreenBuffer.
func (p *AnsiParser) Feed(data []byte) {
	for _, b := range data {
		p.step(b)
	}
}

func (p *AnsiParser) step(b byte) {
	switch p.state {
	case stateNormal:
		p.stepNormal(b)
	case stateEscape:
		p.stepEscape(b)
	case stateCSI:
		p.stepCSI(b)
	case stateOSC:
		p.stepOSC(b)
	}
}

func (p *AnsiParser) stepNormal(b byte) {
	if p.utf8Len > 0 {
		if b >= 0x80 && b <= 0xBF {
			p.utf8Buf[p.utf8Got] = b
			p.utf8Got++
			if p.utf8Got == p.utf8Len {
				r, size := utf8.DecodeRune(p.utf8Buf[:p.utf8Len])
				p.utf8Len, p.utf8Got = 0, 0
				if r != utf8.RuneError || size > 1 {
					p.emitRune(r)
				}
			}
			return
		}
		// Invalid continuation byte: discard the partial sequence and fall
		// through to process b as a fresh byte.
		p.utf8Len, p.utf8Got = 0, 0
	}

	switch b {
	case 0x1b:
		p.state = stateEscape
	case '\n':
		p.buf.LineFeed()
	case '\r':
		p.buf.CarriageReturn()
	case '\b':
		p.buf.Backspace()
	case '\t':
		p.buf.Tab()
	case 0x07: // BEL
	default:
		switch {
		case b >= 0x20 && b <= 0x7E:
			p.emitRune(rune(b))
		case b >= 0xC0 && b <= 0xF7:
			p.utf8Buf[0] = b
			p.utf8Got = 1
			switch {
			case b < 0xE0:
				p.utf8Len = 2
			case b < 0xF0:
				p.utf8Len = 3
			default:
				p.utf8Len = 4
			}
		}
		// Other C0 controls and stray continuation bytes are ignored.
	}
}

// emitRune classifies a decoded scalar per spec section 4.2 rules 2-5:
// drop zero-width characters, route variation selectors/combining marks to
// AppendCombining, otherwise PutGrapheme.
func (p *AnsiParser) emitRune(r rune) {
	if isZeroWidth(r) {
		return
	}
	if isVariationSelector(r) || isCombiningMark(r) {
		p.buf.AppendCombining(string(r))
		return
	}
	p.buf.PutGrapheme(string(r), p.style)
}

func (p *AnsiParser) stepEscape(b byte) {
	switch b {
	case '[':
		p.state = stateCSI
		p.csiParams = p.csiParams[:0]
		p.csiPrivate = 0
		p.csiHasIntermed = false
	case ']':
		p.state = stateOSC
		p.oscBuf = p.oscBuf[:0]
	case '7':
		p.buf.SaveCursor()
		p.state = stateNormal
	case '8':
		p.buf.RestoreCursor()
		p.state = stateNormal
	case 'D':
		p.buf.LineFeed()
		p.state = stateNormal
	case 'M':
		p.reverseIndex()
		p.state = stateNormal
	case 'c':
		p.buf.FullReset()
		p.style = theme.TextStyle{}
		p.state = stateNormal
	case 0x1b:
		// ESC ESC: treat as one no-op Escape, stay ready for a fresh one.
	default:
		// Unrecognized ESC <char> (including the input-only "Alt+char"
		// case) has no effect on rendered output.
		p.state = stateNormal
	}
}

// reverseIndex moves the cursor up one row, scrolling the bottom edge down
// if already at the top. ScreenBuffer has no direct primitive for this (it
// only ever scrolls up), so it is expressed via MoveBy plus a manual
// scroll-down when already at row 0.
func (p *AnsiParser) reverseIndex() {
	row, _ := p.buf.Cursor()
	if row == 0 {
		p.buf.InsertLines(1)
		return
	}
	p.buf.MoveBy(-1, 0)
}

func (p *AnsiParser) stepCSI(b byte) {
	switch {
	case b >= 0x30 && b <= 0x3F:
		if len(p.csiParams) == 0 && (b == '?' || b == '>' || b == '<') {
			p.csiPrivate = b
			return
		}
		p.csiParams = append(p.csiParams, b)
	case b >= 0x20 && b <= 0x2F:
		p.csiHasIntermed = true
		p.csiParams = append(p.csiParams, b)
	default:
		p.dispatchCSI(b)
		p.state = stateNormal
	}
}

func (p *AnsiParser) stepOSC(b byte) {
	if b == 0x07 || b == 0x1b {
		p.state = stateNormal
		return
	}
	p.oscBuf = append(p.oscBuf, b)
}

// parseParams splits the collected CSI parameter bytes into integers,
// missing/empty values defaulting to 0.
func parseParams(raw []byte) []int {
	s := string(raw)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]int, len(parts))
	for i, part := range parts {
		v, _ := strconv.Atoi(part)
		out[i] = v
	}
	return out
}

func paramOr(params []int, idx, def int) int {
	if idx < len(params) && params[idx] > 0 {
		return params[idx]
	}
	return def
}
