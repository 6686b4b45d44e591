// Package svgrender renders a replayed terminal session as a static or
// animated self-contained SVG document.
package svgrender

import (
	"github.com/arika0093/console2svg/internal/recording"
	"github.com/arika0093/console2svg/internal/term"
	"github.com/arika0093/console2svg/internal/theme"
)

// frame is one TerminalFrame: a point in time and the buffer snapshot at
// that instant.
type frame struct {
	time float64
	buf  *term.ScreenBuffer
}

// replayTo builds a ScreenBuffer by feeding every "o" event up to and
// including targetIdx (or all of them, if targetIdx < 0) through a fresh
// AnsiParser. Only output events drive the emulator; "i" events record
// what was sent to the child, not what it drew.
func replayTo(sess *recording.Session, th theme.Theme, targetIdx int) *term.ScreenBuffer {
	buf := term.NewScreenBuffer(sess.Width, sess.Height)
	parser := term.NewAnsiParser(buf, th)
	events := sess.Events()
	for i, e := range events {
		if targetIdx >= 0 && i > targetIdx {
			break
		}
		if e.Type != recording.EventOutput {
			continue
		}
		parser.Feed([]byte(e.Data))
	}
	return buf
}

// replayFrames builds one frame per output event, cloning the buffer after
// each, per spec section 4.6 ("Build TerminalFrame list by replaying
// events incrementally and cloning after each").
func replayFrames(sess *recording.Session, th theme.Theme) []frame {
	buf := term.NewScreenBuffer(sess.Width, sess.Height)
	parser := term.NewAnsiParser(buf, th)
	events := sess.Events()

	frames := make([]frame, 0, len(events))
	for _, e := range events {
		if e.Type != recording.EventOutput {
			continue
		}
		parser.Feed([]byte(e.Data))
		frames = append(frames, frame{time: e.Time, buf: buf.Clone()})
	}
	return frames
}

// plainRows converts a buffer snapshot into the plain-text row slice
// CropResolver's pattern matching needs.
func plainRows(buf *term.ScreenBuffer, includeScrollback bool) []string {
	rows := buf.Rows(includeScrollback)
	out := make([]string, len(rows))
	for i, row := range rows {
		s := ""
		for _, cell := range row {
			if cell.IsWideContinuation {
				continue
			}
			if cell.Text == "" {
				s += " "
				continue
			}
			s += cell.Text
		}
		out[i] = s
	}
	return out
}
