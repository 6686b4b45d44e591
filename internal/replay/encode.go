package replay

import "strconv"

// namedKeyBytes is the modifier-less byte sequence for each named key
// EventToBytes knows how to encode, grounded on the teacher's bubbletea
// key-to-bytes table (internal/app/keybytes.go) generalized from
// bubbletea.KeyMsg to our own InputEvent.
var namedKeyBytes = map[string][]byte{
	"Enter":     {'\r'},
	"Backspace": {0x7f},
	"Tab":       {'\t'},
	"Escape":    {0x1b},
	"Up":        {0x1b, '[', 'A'},
	"Down":      {0x1b, '[', 'B'},
	"Right":     {0x1b, '[', 'C'},
	"Left":      {0x1b, '[', 'D'},
	"Home":      {0x1b, '[', 'H'},
	"End":       {0x1b, '[', 'F'},
	"Insert":    {0x1b, '[', '2', '~'},
	"Delete":    {0x1b, '[', '3', '~'},
	"PageUp":    {0x1b, '[', '5', '~'},
	"PageDown":  {0x1b, '[', '6', '~'},
	"F1":        {0x1b, 'O', 'P'},
	"F2":        {0x1b, 'O', 'Q'},
	"F3":        {0x1b, 'O', 'R'},
	"F4":        {0x1b, 'O', 'S'},
	"F5":        {0x1b, '[', '1', '5', '~'},
	"F6":        {0x1b, '[', '1', '7', '~'},
	"F7":        {0x1b, '[', '1', '8', '~'},
	"F8":        {0x1b, '[', '1', '9', '~'},
	"F9":        {0x1b, '[', '2', '0', '~'},
	"F10":       {0x1b, '[', '2', '1', '~'},
	"F11":       {0x1b, '[', '2', '3', '~'},
	"F12":       {0x1b, '[', '2', '4', '~'},
}

// csiModifierFinal is the CSI final byte used for the "ESC [ 1;M X" modified
// cursor/function-key encoding, keyed by the same named keys as
// namedKeyBytes' cursor/F1-F4 rows.
var csiModifierFinal = map[string]byte{
	"Up": 'A', "Down": 'B', "Right": 'C', "Left": 'D',
	"Home": 'H', "End": 'F',
	"F1": 'P', "F2": 'Q', "F3": 'R', "F4": 'S',
}

// csiTildeParam is the numeric parameter used in "ESC [ N ~" / "ESC [ N;M ~"
// encodings, keyed by named key.
var csiTildeParam = map[string]int{
	"Insert": 2, "Delete": 3, "PageUp": 5, "PageDown": 6,
	"F5": 15, "F6": 17, "F7": 18, "F8": 19, "F9": 20, "F10": 21, "F11": 23, "F12": 24,
}

// EventToBytes encodes an InputEvent back into the raw bytes a terminal
// program would receive for that keystroke — the inverse of ParseInputText.
func EventToBytes(ev InputEvent) []byte {
	if ev.Key == "Tab" && hasMod(ev.Modifiers, ModShift) {
		return []byte{0x1b, '[', 'Z'}
	}

	if len(ev.Key) == 1 {
		r := rune(ev.Key[0])
		if hasMod(ev.Modifiers, ModCtrl) && r >= 'a' && r <= 'z' {
			ctrl := []byte{byte(r - 'a' + 1)}
			if hasMod(ev.Modifiers, ModAlt) {
				return append([]byte{0x1b}, ctrl...)
			}
			return ctrl
		}
	}

	modifierCode := modifierEncoding(ev.Modifiers)

	if final, ok := csiModifierFinal[ev.Key]; ok {
		if modifierCode == 0 {
			return append([]byte{}, namedKeyBytes[ev.Key]...)
		}
		return []byte("\x1b[1;" + strconv.Itoa(modifierCode) + string(final))
	}

	if n, ok := csiTildeParam[ev.Key]; ok {
		if modifierCode == 0 {
			return append([]byte{}, namedKeyBytes[ev.Key]...)
		}
		return []byte("\x1b[" + strconv.Itoa(n) + ";" + strconv.Itoa(modifierCode) + "~")
	}

	if b, ok := namedKeyBytes[ev.Key]; ok {
		return append([]byte{}, b...)
	}

	if hasMod(ev.Modifiers, ModAlt) {
		return append([]byte{0x1b}, []byte(ev.Key)...)
	}

	return []byte(ev.Key)
}

// modifierEncoding packs the modifier set into xterm's "M" value
// (1 + bitmask, bit0=shift, bit1=alt, bit2=ctrl, bit3=meta), or 0 when no
// modifiers are set (meaning: use the unmodified encoding).
func modifierEncoding(mods []Modifier) int {
	bits := 0
	if hasMod(mods, ModShift) {
		bits |= 1
	}
	if hasMod(mods, ModAlt) {
		bits |= 2
	}
	if hasMod(mods, ModCtrl) {
		bits |= 4
	}
	if hasMod(mods, ModMeta) {
		bits |= 8
	}
	if bits == 0 {
		return 0
	}
	return bits + 1
}

