package replay

import (
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"
)

// fileEvent is one element of a replay file's "replay" array (spec section
// 6): either an absolute Time or a Tick delta from the previous event's
// resolved time is present; Time wins when both are.
type fileEvent struct {
	Time      *float64   `json:"time,omitempty"`
	Tick      *float64   `json:"tick,omitempty"`
	Key       string     `json:"key"`
	Modifiers []Modifier `json:"modifiers,omitempty"`
	Type      EventKind  `json:"type"`
}

// file is the on-disk replay document: `{"version":"1","createdAt":...,
// "totalDuration":...,"replay":[...]}` (spec section 6).
type file struct {
	Version       string      `json:"version"`
	CreatedAt     string      `json:"createdAt"`
	TotalDuration float64     `json:"totalDuration"`
	Replay        []fileEvent `json:"replay"`
}

// WriteFile serializes events to the input-replay file format, stamping
// createdAt with now. Each event is written with an absolute time (the
// tick-delta form is a reader-side convenience this writer never needs).
func WriteFile(w io.Writer, events []InputEvent, now time.Time) error {
	f := file{
		Version:   "1",
		CreatedAt: now.Format(time.RFC3339),
		Replay:    make([]fileEvent, len(events)),
	}
	for i, e := range events {
		t := e.Time
		f.Replay[i] = fileEvent{Time: &t, Key: e.Key, Modifiers: e.Modifiers, Type: e.Kind}
	}
	if len(events) > 0 {
		f.TotalDuration = events[len(events)-1].Time
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return errors.Wrap(err, "replay: write file")
	}
	return nil
}

// ReadFile parses an input-replay file, resolving each event's tick-delta
// form into an absolute time relative to the previous event when no
// absolute time is given — time wins when both are present, per spec
// section 6. It returns the decoded events and the file's declared
// totalDuration, used by internal/convert to enforce the replay-overrun
// timeout (spec section 5/7).
func ReadFile(r io.Reader) ([]InputEvent, float64, error) {
	var f file
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, 0, errors.Wrap(err, "replay: read file")
	}

	events := make([]InputEvent, len(f.Replay))
	prev := 0.0
	for i, fe := range f.Replay {
		var t float64
		switch {
		case fe.Time != nil:
			t = *fe.Time
		case fe.Tick != nil:
			t = prev + *fe.Tick
		default:
			t = prev
		}
		prev = t
		events[i] = InputEvent{Time: t, Key: fe.Key, Modifiers: fe.Modifiers, Kind: fe.Type}
	}

	totalDuration := f.TotalDuration
	if totalDuration == 0 && len(events) > 0 {
		totalDuration = events[len(events)-1].Time
	}
	return events, totalDuration, nil
}
