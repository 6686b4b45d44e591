package replay

import (
	"io"
	"sync"
	"time"
)

// Stream exposes a recorded sequence of InputEvents as an io.Reader that
// releases each event's encoded bytes at its recorded time, measured from
// the moment the Stream was constructed (spec section 4.4: "wall-clock
// scheduled via a timer").
type Stream struct {
	events []InputEvent
	start  time.Time
	now    func() time.Time

	mu      sync.Mutex
	idx     int
	pending []byte
}

// NewStream builds a Stream over events; playback starts immediately.
func NewStream(events []InputEvent) *Stream {
	return newStream(events, time.Now)
}

func newStream(events []InputEvent, now func() time.Time) *Stream {
	return &Stream{events: events, start: now(), now: now}
}

// Read blocks until at least one due event's bytes are available, then
// copies as many as fit into p. It returns io.EOF once every event has
// been released.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	for len(s.pending) == 0 {
		if s.idx >= len(s.events) {
			s.mu.Unlock()
			return 0, io.EOF
		}
		next := s.events[s.idx]
		due := s.start.Add(time.Duration(next.Time * float64(time.Second)))
		wait := due.Sub(s.now())
		if wait > 0 {
			s.mu.Unlock()
			time.Sleep(wait)
			s.mu.Lock()
			continue
		}
		s.pending = EventToBytes(next)
		s.idx++
	}
	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	s.mu.Unlock()
	return n, nil
}

// TotalDuration returns the recorded time of the final event.
func (s *Stream) TotalDuration() float64 {
	if len(s.events) == 0 {
		return 0
	}
	return s.events[len(s.events)-1].Time
}
