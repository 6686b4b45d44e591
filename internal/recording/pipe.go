package recording

import (
	"io"
	"time"

	"github.com/pkg/errors"
)

// PipeRecorder turns an already-open byte stream (piped stdin, a file, a
// network socket) into a Session by reading it to completion and recording
// each read as a single "o" event timestamped against a monotonic clock
// that starts when Record is called.
type PipeRecorder struct {
	// Now lets tests substitute a deterministic clock; defaults to
	// time.Now when left nil.
	Now func() time.Time
}

// Record reads r until EOF, producing a session sized width x height.
func (p PipeRecorder) Record(r io.Reader, width, height int) (*Session, error) {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	start := now()
	sess := NewSession(width, height, start.Unix())

	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			elapsed := now().Sub(start).Seconds()
			if elapsed < sess.LastTime() {
				elapsed = sess.LastTime()
			}
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			sess.Append(Event{Time: elapsed, Type: EventOutput, Data: string(chunk)})
		}
		if err == io.EOF {
			return sess, nil
		}
		if err != nil {
			return sess, errors.Wrap(err, "recording: read piped input")
		}
	}
}
