package term

import (
	"testing"

	"github.com/arika0093/console2svg/internal/theme"
)

func TestSGRBasicAttributes(t *testing.T) {
	buf := NewScreenBuffer(10, 1)
	p := NewAnsiParser(buf, theme.Dark)
	p.Feed([]byte("\x1b[1;4;31mx"))
	cell := buf.CellAt(0, 0)
	if !cell.Style.Bold || !cell.Style.Underline {
		t.Fatalf("style = %+v, want Bold and Underline set", cell.Style)
	}
	if cell.Style.Foreground != theme.Dark.Color(1) {
		t.Fatalf("foreground = %q, want %q", cell.Style.Foreground, theme.Dark.Color(1))
	}
}

func TestSGRResetClearsAttributes(t *testing.T) {
	buf := NewScreenBuffer(10, 1)
	p := NewAnsiParser(buf, theme.Dark)
	p.Feed([]byte("\x1b[1;31m"))
	p.Feed([]byte("\x1b[0mx"))
	cell := buf.CellAt(0, 0)
	if cell.Style.Bold || cell.Style.Foreground != "" {
		t.Fatalf("style after SGR 0 = %+v, want zero value", cell.Style)
	}
}

func TestSGR256Palette(t *testing.T) {
	buf := NewScreenBuffer(10, 1)
	p := NewAnsiParser(buf, theme.Dark)
	p.Feed([]byte("\x1b[38;5;196mx"))
	cell := buf.CellAt(0, 0)
	want := theme.Dark.Palette256(196)
	if cell.Style.Foreground != want {
		t.Fatalf("256-palette foreground = %q, want %q", cell.Style.Foreground, want)
	}
}

func TestSGRTrueColor(t *testing.T) {
	buf := NewScreenBuffer(10, 1)
	p := NewAnsiParser(buf, theme.Dark)
	p.Feed([]byte("\x1b[38;2;10;20;30mx"))
	cell := buf.CellAt(0, 0)
	want := theme.TrueColor(10, 20, 30)
	if cell.Style.Foreground != want {
		t.Fatalf("truecolor foreground = %q, want %q", cell.Style.Foreground, want)
	}
}

func TestSGRReversedSwapsEffectiveColors(t *testing.T) {
	buf := NewScreenBuffer(10, 1)
	p := NewAnsiParser(buf, theme.Dark)
	p.Feed([]byte("\x1b[7mx"))
	cell := buf.CellAt(0, 0)
	fg, bg := cell.Style.Effective(theme.Dark)
	if fg != theme.Dark.Background || bg != theme.Dark.Foreground {
		t.Fatalf("reversed effective colors = fg:%q bg:%q, want swapped theme defaults", fg, bg)
	}
}

func TestSGRBrightForegroundRange(t *testing.T) {
	buf := NewScreenBuffer(10, 1)
	p := NewAnsiParser(buf, theme.Dark)
	p.Feed([]byte("\x1b[92mx"))
	cell := buf.CellAt(0, 0)
	if cell.Style.Foreground != theme.Dark.Color(10) {
		t.Fatalf("bright foreground = %q, want %q", cell.Style.Foreground, theme.Dark.Color(10))
	}
}

func TestCSIEraseDisplayModes(t *testing.T) {
	buf := NewScreenBuffer(5, 2)
	p := NewAnsiParser(buf, theme.Dark)
	p.Feed([]byte("abcde\r\nfghij"))
	p.Feed([]byte("\x1b[1;3H\x1b[2J"))
	if got := plainRow(buf, 0); got != "     " {
		t.Fatalf("row 0 after CSI 2J = %q, want blank", got)
	}
	if got := plainRow(buf, 1); got != "     " {
		t.Fatalf("row 1 after CSI 2J = %q, want blank", got)
	}
}

func TestCSIDeleteChars(t *testing.T) {
	buf := NewScreenBuffer(5, 1)
	p := NewAnsiParser(buf, theme.Dark)
	p.Feed([]byte("abcde"))
	p.Feed([]byte("\x1b[H\x1b[2P")) // home, delete 2 chars
	if got := plainRow(buf, 0); got != "cde  " {
		t.Fatalf("row after CSI 2P = %q, want %q", got, "cde  ")
	}
}
