package replay

import (
	"reflect"
	"testing"
)

func TestParseInputTextPrintable(t *testing.T) {
	events := ParseInputText([]byte("hi"), 0)
	if len(events) != 2 || events[0].Key != "h" || events[1].Key != "i" {
		t.Fatalf("events = %+v, want h then i", events)
	}
}

func TestParseInputTextCtrlLetter(t *testing.T) {
	events := ParseInputText([]byte{0x03}, 0) // Ctrl-C
	if len(events) != 1 || events[0].Key != "c" || !hasMod(events[0].Modifiers, ModCtrl) {
		t.Fatalf("events = %+v, want ctrl+c", events)
	}
}

func TestParseInputTextCoalescesCRLF(t *testing.T) {
	events := ParseInputText([]byte("\r\n"), 0)
	if len(events) != 1 || events[0].Key != "Enter" {
		t.Fatalf("CRLF events = %+v, want a single Enter", events)
	}
}

func TestParseInputTextTwoSeparateCRsStayTwoEnters(t *testing.T) {
	events := ParseInputText([]byte("\r\r"), 0)
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2 separate Enters", len(events))
	}
}

func TestParseInputTextArrowKeys(t *testing.T) {
	events := ParseInputText([]byte("\x1b[A\x1b[B"), 0)
	if len(events) != 2 || events[0].Key != "Up" || events[1].Key != "Down" {
		t.Fatalf("events = %+v, want Up then Down", events)
	}
}

func TestParseInputTextModifiedArrow(t *testing.T) {
	// CSI 1;6A = Up with shift+ctrl (M=6 -> bits=5 -> shift|ctrl)
	events := ParseInputText([]byte("\x1b[1;6A"), 0)
	if len(events) != 1 || events[0].Key != "Up" {
		t.Fatalf("events = %+v, want Up", events)
	}
	if !hasMod(events[0].Modifiers, ModShift) || !hasMod(events[0].Modifiers, ModCtrl) {
		t.Fatalf("modifiers = %+v, want shift+ctrl", events[0].Modifiers)
	}
}

func TestParseInputTextAltChar(t *testing.T) {
	events := ParseInputText([]byte("\x1bx"), 0)
	if len(events) != 1 || events[0].Key != "x" || !hasMod(events[0].Modifiers, ModAlt) {
		t.Fatalf("events = %+v, want alt+x", events)
	}
}

func TestParseInputTextFiltersPrivateAndIntermediateCSI(t *testing.T) {
	// A mouse report: CSI < ... M
	events := ParseInputText([]byte("\x1b[<0;10;20Ma"), 0)
	if len(events) != 1 || events[0].Key != "a" {
		t.Fatalf("events = %+v, want only the trailing 'a'", events)
	}
}

func TestParseInputTextPartialEscapeRemainder(t *testing.T) {
	events, remainder := ParseInputTextPartial([]byte("a\x1b["), 0)
	if len(events) != 1 || events[0].Key != "a" {
		t.Fatalf("events = %+v, want just 'a'", events)
	}
	if string(remainder) != "\x1b[" {
		t.Fatalf("remainder = %q, want %q", remainder, "\x1b[")
	}
	// feeding the remainder + completion should now decode cleanly
	more, _ := ParseInputTextPartial(append(remainder, 'A'), 0)
	if len(more) != 1 || more[0].Key != "Up" {
		t.Fatalf("completed events = %+v, want Up", more)
	}
}

func TestParseInputTextTrailingLoneEscapeIsEscapeKey(t *testing.T) {
	events := ParseInputText([]byte("a\x1b"), 0)
	if len(events) != 2 || events[1].Key != "Escape" {
		t.Fatalf("events = %+v, want a then Escape", events)
	}
}

func TestEventToBytesRoundTripsNamedKeys(t *testing.T) {
	cases := []InputEvent{
		{Key: "Enter"},
		{Key: "Up"},
		{Key: "F5"},
		{Key: "Tab", Modifiers: []Modifier{ModShift}},
	}
	for _, ev := range cases {
		b := EventToBytes(ev)
		got, _ := ParseInputTextPartial(b, 0)
		if len(got) != 1 || got[0].Key != ev.Key {
			t.Errorf("round trip for %+v produced %+v", ev, got)
		}
	}
}

func TestEventToBytesCtrlLetter(t *testing.T) {
	got := EventToBytes(InputEvent{Key: "c", Modifiers: []Modifier{ModCtrl}})
	if !reflect.DeepEqual(got, []byte{0x03}) {
		t.Fatalf("Ctrl+c bytes = %v, want [0x03]", got)
	}
}
