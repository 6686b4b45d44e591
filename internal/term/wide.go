package term

import (
	"unicode"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// wideRanges enumerates the East-Asian-Wide/Fullwidth and pictographic
// blocks spec section 4.1 requires recognizing explicitly, independent of
// whatever table the width library ships with.
var wideRanges = []struct{ lo, hi rune }{
	{0x1100, 0x115F}, // Hangul Jamo
	{0x2E80, 0x2FFD}, // CJK Radicals / Kangxi Radicals
	{0x3000, 0x303F}, // CJK Symbols and Punctuation
	{0x3040, 0x33FF}, // Hiragana..CJK Compat
	{0x4E00, 0x9FFF}, // CJK Unified Ideographs
	{0xA960, 0xA97F}, // Hangul Jamo Extended-A
	{0xAC00, 0xD7A3}, // Hangul Syllables
	{0xF900, 0xFAFF}, // CJK Compatibility Ideographs
	{0xFE30, 0xFE6F}, // CJK Compatibility Forms / Small Form Variants
	{0xFF01, 0xFF60}, // Fullwidth Forms
	{0xFFE0, 0xFFE6}, // Fullwidth Signs
	{0x1F300, 0x1F64F}, // Misc Symbols and Pictographs / Emoticons
	{0x1F680, 0x1F6FF}, // Transport and Map Symbols
	{0x1F900, 0x1F9FF}, // Supplemental Symbols and Pictographs
	{0x20000, 0x2FFFD}, // CJK Unified Ideographs Extension B..
}

// vs16WideSymbols is the small fixed list of ambiguous-width symbols that
// U+FE0F (VS16, "emoji presentation") promotes to double-width, per spec
// section 4.1's "promotes a small fixed list of ambiguous-width emoji
// symbols to wide".
var vs16WideSymbols = map[rune]bool{
	'☀': true, // ☀ sun
	'☁': true, // ☁ cloud
	'☂': true, // ☂ umbrella
	'☃': true, // ☃ snowman
	'☑': true, // ☑ check box
	'☔': true, // ☔ umbrella with rain
	'☕': true, // ☕ hot beverage
	'☹': true, // ☹ frowning face
	'☺': true, // ☺ smiling face
	'♈': true, // ♈ aries
	'♠': true, // ♠ spade suit
	'♣': true, // ♣ club suit
	'♥': true, // ♥ heart suit
	'♦': true, // ♦ diamond suit
	'♨': true, // ♨ hot springs
	'♻': true, // ♻ recycling symbol
	'♿': true, // ♿ wheelchair symbol
	'⚓': true, // ⚓ anchor
	'⚠': true, // ⚠ warning sign
	'⚡': true, // ⚡ high voltage
	'⚪': true, // ⚪ white circle
	'⚫': true, // ⚫ black circle
	'⚽': true, // ⚽ soccer ball
	'⚾': true, // ⚾ baseball
	'⛄': true, // ⛄ snowman without snow
	'⛎': true, // ⛎ ophiuchus
	'⛔': true, // ⛔ no entry
	'⛪': true, // ⛪ church
	'⛲': true, // ⛲ fountain
	'⛳': true, // ⛳ flag in hole
	'⛵': true, // ⛵ sailboat
	'⛺': true, // ⛺ tent
	'⛽': true, // ⛽ fuel pump
	'✈': true, // ✈ airplane
	'✉': true, // ✉ envelope
	'✏': true, // ✏ pencil
	'✒': true, // ✒ black nib
	'✔': true, // ✔ heavy check mark
	'✖': true, // ✖ heavy multiplication x
	'✨': true, // ✨ sparkles
	'✳': true, // ✳ eight spoked asterisk
	'✴': true, // ✴ eight pointed star
	'❄': true, // ❄ snowflake
	'❇': true, // ❇ sparkle
	'❓': true, // ❓ question mark
	'❗': true, // ❗ exclamation mark
	'❤': true, // ❤ heavy black heart
}

// isWideRune reports whether r occupies two display columns. The explicit
// block table is consulted first (it is the spec's contract); go-runewidth
// covers anything the table misses (ambiguous-width box drawing, additional
// pictographs added to Unicode after the table above was written).
func isWideRune(r rune) bool {
	for _, rg := range wideRanges {
		if r >= rg.lo && r <= rg.hi {
			return true
		}
	}
	return runewidth.RuneWidth(r) == 2
}

// isZeroWidth reports whether r is one of the zero-width characters spec
// section 4.2 rule 2 says to drop outright (not append, not display).
func isZeroWidth(r rune) bool {
	switch {
	case r >= 0x200B && r <= 0x200D: // ZWSP, ZWNJ, ZWJ
		return true
	case r == 0xFEFF: // BOM / zero width no-break space
		return true
	case r == 0x00AD: // soft hyphen
		return true
	}
	return false
}

// isVariationSelector reports whether r is in the variation selector block
// (U+FE00..U+FE0F), which spec 4.2 rule 3 routes to AppendCombining.
func isVariationSelector(r rune) bool {
	return r >= 0xFE00 && r <= 0xFE0F
}

const vs16 = '️'

// isCombiningMark reports whether r is a combining or enclosing mark
// (Unicode categories Mn/Me), the other half of spec 4.2 rule 3.
func isCombiningMark(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r)
}

// clusterWidth returns the display width of an assembled grapheme cluster
// (a base rune plus whatever combining marks AppendCombining has appended
// to it since), using uniseg's grapheme-aware measurement. This is how a
// combining mark outside the fixed vs16WideSymbols list can still widen its
// base cell: uniseg is asked to measure the cluster as assembled so far
// rather than consulting a list of known sequences.
func clusterWidth(s string) int {
	return uniseg.StringWidth(s)
}
