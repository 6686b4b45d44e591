package recording

import (
	"bytes"
	"strings"
	"testing"
)

func TestCastCodecRoundTrip(t *testing.T) {
	sess := NewSession(80, 24, 1700000000)
	sess.Append(Event{Time: 0, Type: EventOutput, Data: "hello"})
	sess.Append(Event{Time: 0.5, Type: EventOutput, Data: "world"})

	var buf bytes.Buffer
	if err := (CastCodec{}).Write(&buf, sess); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := (CastCodec{}).Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Width != 80 || got.Height != 24 {
		t.Fatalf("dims = %dx%d, want 80x24", got.Width, got.Height)
	}
	events := got.Events()
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Data != "hello" || events[1].Data != "world" {
		t.Fatalf("events = %+v, want hello/world", events)
	}
}

func TestCastCodecRejectsUnsupportedVersion(t *testing.T) {
	r := strings.NewReader(`{"version":1,"width":10,"height":5,"timestamp":0}` + "\n")
	if _, err := (CastCodec{}).Read(r); err == nil {
		t.Fatalf("expected an error for asciicast version 1")
	}
}

func TestCastCodecSkipsMalformedShortArrays(t *testing.T) {
	r := strings.NewReader(
		`{"version":2,"width":10,"height":5,"timestamp":0}` + "\n" +
			`[0.1,"o"]` + "\n" +
			`` + "\n" +
			`not even json` + "\n" +
			`[0.2,"o","b"]` + "\n",
	)
	sess, err := (CastCodec{}).Read(r)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	events := sess.Events()
	if len(events) != 1 || events[0].Data != "b" {
		t.Fatalf("events = %+v, want only the well-formed event", events)
	}
}

func TestCastCodecClampsOutOfOrderTimes(t *testing.T) {
	r := strings.NewReader(
		`{"version":2,"width":10,"height":5,"timestamp":0}` + "\n" +
			`[1.0,"o","a"]` + "\n" +
			`[0.2,"o","b"]` + "\n",
	)
	sess, err := (CastCodec{}).Read(r)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	events := sess.Events()
	if events[1].Time < events[0].Time {
		t.Fatalf("events = %+v, want non-decreasing time", events)
	}
}
