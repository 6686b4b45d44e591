package replay

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// csiLetterKeys maps a plain CSI final letter to its named key, per spec
// section 4.4's {A,B,C,D,H,F,P,Q,R,S} table.
var csiLetterKeys = map[byte]string{
	'A': "Up", 'B': "Down", 'C': "Right", 'D': "Left",
	'H': "Home", 'F': "End",
	'P': "F1", 'Q': "F2", 'R': "F3", 'S': "F4",
}

// csiTildeKeys maps a CSI `~` numeric parameter to its named key.
var csiTildeKeys = map[int]string{
	2: "Insert", 3: "Delete", 5: "PageUp", 6: "PageDown", 7: "Home", 8: "End",
	11: "F1", 12: "F2", 13: "F3", 14: "F4", 15: "F5",
	17: "F6", 18: "F7", 19: "F8", 20: "F9", 21: "F10", 23: "F11", 24: "F12",
}

// ss3Keys maps an SS3 (ESC O <final>) final byte to its named key.
var ss3Keys = map[byte]string{
	'A': "Up", 'B': "Down", 'C': "Right", 'D': "Left",
	'H': "Home", 'F': "End",
	'P': "F1", 'Q': "F2", 'R': "F3", 'S': "F4",
}

// win32VkKeys maps a subset of Windows virtual-key codes carried by
// win32-input-mode sequences (CSI ... _) to named keys.
var win32VkKeys = map[int]string{
	0x25: "Left", 0x26: "Up", 0x27: "Right", 0x28: "Down",
	0x24: "Home", 0x23: "End", 0x21: "PageUp", 0x22: "PageDown",
	0x2D: "Insert", 0x2E: "Delete",
	0x70: "F1", 0x71: "F2", 0x72: "F3", 0x73: "F4", 0x74: "F5",
	0x75: "F6", 0x76: "F7", 0x77: "F8", 0x78: "F9", 0x79: "F10",
	0x7A: "F11", 0x7B: "F12",
	0x0D: "Enter", 0x08: "Backspace", 0x1B: "Escape", 0x09: "Tab",
}

// ParseInputText decodes a complete byte stream with no further data
// expected: any incomplete trailing escape sequence is resolved as best it
// can be (a lone trailing ESC becomes a standalone Escape key) rather than
// held back as a remainder.
func ParseInputText(data []byte, t float64) []InputEvent {
	events, remainder := ParseInputTextPartial(data, t)
	if len(remainder) == 1 && remainder[0] == 0x1b {
		events = append(events, InputEvent{Time: t, Key: "Escape", Kind: KindKeydown})
	}
	return events
}

// ParseInputTextPartial decodes as many complete tokens as data contains,
// returning any incomplete ESC/CSI/SS3 suffix as remainder so the caller
// can prepend it to the next chunk (spec section 4.4).
func ParseInputTextPartial(data []byte, t float64) ([]InputEvent, []byte) {
	var events []InputEvent
	i := 0
	for i < len(data) {
		ev, consumed, incomplete := decodeOne(data[i:], t)
		if incomplete {
			return events, data[i:]
		}
		if consumed == 0 {
			// Defensive: never spin without progress.
			i++
			continue
		}
		if ev != nil {
			events = append(events, *ev)
		}
		i += consumed
	}
	return events, nil
}

// decodeOne attempts to decode a single token at the start of b. incomplete
// is true when b looks like the start of an escape sequence that was cut
// short (more bytes needed); consumed is then 0 and the caller should treat
// the whole of b as remainder.
func decodeOne(b []byte, t float64) (ev *InputEvent, consumed int, incomplete bool) {
	c := b[0]
	switch {
	case c == 0x1b:
		return decodeEscape(b, t)
	case c == 0x08 || c == 0x7f:
		return &InputEvent{Time: t, Key: "Backspace", Kind: KindKeydown}, 1, false
	case c == 0x09:
		return &InputEvent{Time: t, Key: "Tab", Kind: KindKeydown}, 1, false
	case c == 0x0a:
		return &InputEvent{Time: t, Key: "Enter", Kind: KindKeydown}, 1, false
	case c == 0x0d:
		n := 1
		if len(b) > 1 && b[1] == 0x0a {
			n = 2 // coalesce CRLF into one Enter
		}
		return &InputEvent{Time: t, Key: "Enter", Kind: KindKeydown}, n, false
	case c >= 0x01 && c <= 0x1a:
		letter := string(rune('a' + c - 1))
		return &InputEvent{Time: t, Key: letter, Modifiers: []Modifier{ModCtrl}, Kind: KindKeydown}, 1, false
	case c < 0x20:
		return nil, 1, false // other C0 controls: drop
	default:
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			if size == 0 {
				return nil, 0, true
			}
			return nil, 1, false
		}
		if size > len(b) {
			return nil, 0, true
		}
		return &InputEvent{Time: t, Key: string(r), Kind: KindKeydown}, size, false
	}
}

func decodeEscape(b []byte, t float64) (*InputEvent, int, bool) {
	if len(b) < 2 {
		return nil, 0, true
	}
	switch b[1] {
	case 0x1b:
		// ESC ESC: one Escape now, leave the second ESC for the next call.
		return &InputEvent{Time: t, Key: "Escape", Kind: KindKeydown}, 1, false
	case '[':
		return decodeCSI(b, t)
	case 'O':
		return decodeSS3(b, t)
	default:
		r, size := utf8.DecodeRune(b[1:])
		if r == utf8.RuneError && size <= 1 {
			return nil, 0, true
		}
		if size > len(b)-1 {
			return nil, 0, true
		}
		return &InputEvent{Time: t, Key: string(r), Modifiers: []Modifier{ModAlt}, Kind: KindKeydown}, 1 + size, false
	}
}

func decodeSS3(b []byte, t float64) (*InputEvent, int, bool) {
	if len(b) < 3 {
		return nil, 0, true
	}
	key, ok := ss3Keys[b[2]]
	if !ok {
		return nil, 3, false
	}
	return &InputEvent{Time: t, Key: key, Kind: KindKeydown}, 3, false
}

// decodeCSI decodes `ESC [ ... <final>`. Private-prefixed (?, <, >) or
// intermediate-byte (0x20-0x2F) sequences are silently dropped, per spec
// section 4.4.
func decodeCSI(b []byte, t float64) (*InputEvent, int, bool) {
	i := 2
	private := byte(0)
	if i < len(b) && (b[i] == '?' || b[i] == '<' || b[i] == '>') {
		private = b[i]
		i++
	}
	paramStart := i
	hasIntermediate := false
	for i < len(b) {
		if b[i] >= 0x30 && b[i] <= 0x3F {
			i++
			continue
		}
		if b[i] >= 0x20 && b[i] <= 0x2F {
			hasIntermediate = true
			i++
			continue
		}
		break
	}
	if i >= len(b) {
		return nil, 0, true
	}
	final := b[i]
	total := i + 1
	raw := string(b[paramStart:i])

	if private != 0 || hasIntermediate {
		return nil, total, false
	}

	switch final {
	case 'Z':
		return &InputEvent{Time: t, Key: "Tab", Modifiers: []Modifier{ModShift}, Kind: KindKeydown}, total, false
	case '~':
		n, _ := strconv.Atoi(strings.SplitN(raw, ";", 2)[0])
		key, ok := csiTildeKeys[n]
		if !ok {
			return nil, total, false
		}
		return &InputEvent{Time: t, Key: key, Modifiers: csiModifiers(raw), Kind: KindKeydown}, total, false
	case '_':
		return decodeWin32InputMode(raw, t, total)
	default:
		key, ok := csiLetterKeys[final]
		if !ok {
			return nil, total, false
		}
		return &InputEvent{Time: t, Key: key, Modifiers: csiModifiers(raw), Kind: KindKeydown}, total, false
	}
}

// csiModifiers decodes the trailing ";M" modifier parameter xterm appends
// to cursor/function-key CSI sequences, per spec 4.4: "M-1 bits:
// shift/alt/ctrl/meta".
func csiModifiers(raw string) []Modifier {
	parts := strings.Split(raw, ";")
	if len(parts) < 2 {
		return nil
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m <= 0 {
		return nil
	}
	bits := m - 1
	var mods []Modifier
	if bits&1 != 0 {
		mods = append(mods, ModShift)
	}
	if bits&2 != 0 {
		mods = append(mods, ModAlt)
	}
	if bits&4 != 0 {
		mods = append(mods, ModCtrl)
	}
	if bits&8 != 0 {
		mods = append(mods, ModMeta)
	}
	return mods
}

// decodeWin32InputMode decodes a win32-input-mode CSI: `Vk;Sc;Uc;Kd;Cs;Rc _`.
// Key-up events (Kd=0) are skipped; Cs follows the Windows console API's
// control-key-state bit layout (left/right alt = 0x01/0x02, left/right
// ctrl = 0x04/0x08, shift = 0x10).
func decodeWin32InputMode(raw string, t float64, total int) (*InputEvent, int, bool) {
	parts := strings.Split(raw, ";")
	if len(parts) < 6 {
		return nil, total, false
	}
	vk, _ := strconv.Atoi(parts[0])
	uc, _ := strconv.Atoi(parts[2])
	kd, _ := strconv.Atoi(parts[3])
	cs, _ := strconv.Atoi(parts[4])

	if kd == 0 {
		return nil, total, false
	}

	var mods []Modifier
	if cs&0x10 != 0 {
		mods = append(mods, ModShift)
	}
	if cs&0x04 != 0 || cs&0x08 != 0 {
		mods = append(mods, ModCtrl)
	}
	if cs&0x01 != 0 || cs&0x02 != 0 {
		mods = append(mods, ModAlt)
	}

	if key, ok := win32VkKeys[vk]; ok {
		return &InputEvent{Time: t, Key: key, Modifiers: mods, Kind: KindKeydown}, total, false
	}
	if uc > 0 {
		return &InputEvent{Time: t, Key: string(rune(uc)), Modifiers: mods, Kind: KindKeydown}, total, false
	}
	return nil, total, false
}
