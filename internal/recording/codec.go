package recording

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// castHeader is the first line of an asciicast-v2 file.
type castHeader struct {
	Version   int `json:"version"`
	Width     int `json:"width"`
	Height    int `json:"height"`
	Timestamp int64 `json:"timestamp"`
}

// CastCodec reads and writes asciicast-v2: a header JSON object on the
// first line, followed by one `[time, type, data]` JSON array per event,
// one per line.
type CastCodec struct{}

// Write serializes a session as asciicast-v2 to w.
func (CastCodec) Write(w io.Writer, s *Session) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(castHeader{Version: 2, Width: s.Width, Height: s.Height, Timestamp: s.Timestamp}); err != nil {
		return errors.Wrap(err, "recording: write cast header")
	}
	for _, e := range s.Events() {
		row := [3]interface{}{e.Time, string(e.Type), e.Data}
		if err := enc.Encode(row); err != nil {
			return errors.Wrap(err, "recording: write cast event")
		}
	}
	return nil
}

// Read parses an asciicast-v2 stream into a Session.
func (CastCodec) Read(r io.Reader) (*Session, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrap(err, "recording: read cast header")
		}
		return nil, errors.New("recording: empty cast file")
	}
	var hdr castHeader
	if err := json.Unmarshal(scanner.Bytes(), &hdr); err != nil {
		return nil, errors.Wrap(err, "recording: decode cast header")
	}
	if hdr.Version != 2 {
		return nil, errors.Errorf("recording: unsupported cast version %d", hdr.Version)
	}

	sess := NewSession(hdr.Width, hdr.Height, hdr.Timestamp)
	lastTime := -1.0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var row []json.RawMessage
		if err := json.Unmarshal(line, &row); err != nil || len(row) < 3 {
			// Spec section 6: skip blank lines and malformed event
			// arrays shorter than [time, type, data] rather than
			// aborting the whole read.
			continue
		}
		var t float64
		var typ, data string
		if err := json.Unmarshal(row[0], &t); err != nil {
			return nil, errors.Wrap(err, "recording: decode cast event time")
		}
		if err := json.Unmarshal(row[1], &typ); err != nil {
			return nil, errors.Wrap(err, "recording: decode cast event type")
		}
		if err := json.Unmarshal(row[2], &data); err != nil {
			return nil, errors.Wrap(err, "recording: decode cast event data")
		}
		if t < lastTime {
			t = lastTime
		}
		lastTime = t
		sess.Append(Event{Time: t, Type: EventType(typ), Data: data})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "recording: scan cast body")
	}
	return sess, nil
}
