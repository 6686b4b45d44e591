// Package recording models an ordered terminal output/input timeline
// (RecordingSession), asciicast-v2 serialization (CastCodec), and the
// byte-stream-to-session adapter used for piped input (PipeRecorder).
package recording

import "sync"

// EventType distinguishes an "o" (output) from an "i" (input) event.
type EventType string

const (
	EventOutput EventType = "o"
	EventInput  EventType = "i"
)

// Event is one timestamped chunk of a recording: time is seconds elapsed
// since the session started, monotonically non-decreasing across the
// ordered Events slice.
type Event struct {
	Time float64
	Type EventType
	Data string
}

// Session is an ordered list of output/input events plus the asciicast-v2
// header fields. Writes come from exactly one producer per spec section 5,
// so Append only needs to guard against a concurrent reader snapshotting
// mid-append, not against concurrent writers.
type Session struct {
	mu        sync.Mutex
	Version   int
	Width     int
	Height    int
	Timestamp int64
	events    []Event
}

// NewSession creates an empty session header for a width x height terminal
// recorded starting at unixTimestamp.
func NewSession(width, height int, unixTimestamp int64) *Session {
	return &Session{Version: 2, Width: width, Height: height, Timestamp: unixTimestamp}
}

// Append adds an event. Callers must supply a time no earlier than the
// previous append's time.
func (s *Session) Append(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// Events returns a snapshot of the recorded events in append order.
func (s *Session) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// LastTime returns the time of the most recently appended event, or 0 for
// an empty session.
func (s *Session) LastTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return 0
	}
	return s.events[len(s.events)-1].Time
}
