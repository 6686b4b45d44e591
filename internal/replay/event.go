// Package replay implements the bidirectional codec between raw VT input
// byte streams and structured key events (InputEvent), plus a time-gated
// byte-stream view over a recorded sequence of such events (ReplayStream).
package replay

// Modifier is one of the four modifier bits an InputEvent may carry.
type Modifier string

const (
	ModShift Modifier = "shift"
	ModCtrl  Modifier = "ctrl"
	ModAlt   Modifier = "alt"
	ModMeta  Modifier = "meta"
)

// EventKind distinguishes a decoded key press from an opaque raw byte run.
type EventKind string

const (
	KindKeydown EventKind = "keydown"
	KindRaw     EventKind = "raw"
)

// InputEvent is one decoded keystroke (or raw byte chunk) with its
// replay-relative timestamp.
type InputEvent struct {
	Time      float64
	Key       string
	Modifiers []Modifier
	Kind      EventKind
}

func hasMod(mods []Modifier, m Modifier) bool {
	for _, x := range mods {
		if x == m {
			return true
		}
	}
	return false
}
