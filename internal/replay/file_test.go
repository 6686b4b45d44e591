package replay

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestWriteFile_ProducesDocumentedShape(t *testing.T) {
	var buf bytes.Buffer
	events := []InputEvent{
		{Time: 0, Key: "a", Kind: KindKeydown},
		{Time: 1.5, Key: "Enter", Kind: KindKeydown, Modifiers: []Modifier{ModCtrl}},
	}
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	if err := WriteFile(&buf, events, now); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"version": "1"`, `"createdAt": "2026-07-30T12:00:00Z"`, `"totalDuration": 1.5`, `"key": "Enter"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got:\n%s", want, out)
		}
	}
}

func TestReadFile_RoundTripsAbsoluteTimes(t *testing.T) {
	var buf bytes.Buffer
	events := []InputEvent{
		{Time: 0, Key: "a", Kind: KindKeydown},
		{Time: 2.25, Key: "b", Kind: KindKeydown},
	}
	if err := WriteFile(&buf, events, time.Now()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, total, err := ReadFile(&buf)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if total != 2.25 {
		t.Errorf("totalDuration = %v, want 2.25", total)
	}
	if len(got) != 2 || got[0].Key != "a" || got[1].Key != "b" || got[1].Time != 2.25 {
		t.Errorf("round-tripped events = %+v", got)
	}
}

func TestReadFile_TickDeltasResolveToAbsoluteTime(t *testing.T) {
	doc := `{"version":"1","createdAt":"2026-07-30T12:00:00Z","totalDuration":0,"replay":[
		{"tick":0.5,"key":"a","type":"keydown"},
		{"tick":0.25,"key":"b","type":"keydown"},
		{"tick":1,"key":"c","type":"keydown"}
	]}`
	events, _, err := ReadFile(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := []float64{0.5, 0.75, 1.75}
	for i, w := range want {
		if events[i].Time != w {
			t.Errorf("events[%d].Time = %v, want %v", i, events[i].Time, w)
		}
	}
}

func TestReadFile_TimeWinsOverTickWhenBothPresent(t *testing.T) {
	doc := `{"version":"1","replay":[
		{"time":0,"key":"a","type":"keydown"},
		{"time":9.9,"tick":0.01,"key":"b","type":"keydown"}
	]}`
	events, _, err := ReadFile(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if events[1].Time != 9.9 {
		t.Errorf("events[1].Time = %v, want 9.9 (time should win over tick)", events[1].Time)
	}
}

func TestReadFile_MissingTotalDurationFallsBackToLastEventTime(t *testing.T) {
	doc := `{"version":"1","replay":[{"time":0,"key":"a","type":"keydown"},{"time":4,"key":"b","type":"keydown"}]}`
	_, total, err := ReadFile(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if total != 4 {
		t.Errorf("totalDuration = %v, want 4 (fallback to last event time)", total)
	}
}
