// Package chrome renders the optional window-frame and desktop-background
// SVG fragments that wrap a terminal's cell content.
package chrome

import "fmt"

// Kind names a built-in window chrome style.
type Kind string

const (
	KindNone    Kind = "none"
	KindMacOS   Kind = "macos"
	KindWindows Kind = "windows"
)

// titlebarHeight is the chrome's vertical inset; width chrome never insets
// horizontally (the frame border is folded into padding).
const titlebarHeight = 32.0

// Resolve normalizes a chrome name, defaulting unknown or empty names to
// KindNone.
func Resolve(name string) Kind {
	switch Kind(name) {
	case KindMacOS, KindWindows:
		return Kind(name)
	default:
		return KindNone
	}
}

// InsetY returns the vertical space this chrome reserves above the
// terminal content (the titlebar), consumed by CropResolver's
// chromeInsetY.
func (k Kind) InsetY() float64 {
	if k == KindNone {
		return 0
	}
	return titlebarHeight
}

// Render emits the chrome's SVG fragment (titlebar background plus any
// decoration) sized to canvasWidth, positioned at the canvas origin.
func (k Kind) Render(canvasWidth float64) string {
	switch k {
	case KindMacOS:
		return renderMacOS(canvasWidth)
	case KindWindows:
		return renderWindows(canvasWidth)
	default:
		return ""
	}
}

func renderMacOS(width float64) string {
	return fmt.Sprintf(
		`<rect x="0" y="0" width="%.3f" height="%.3f" rx="6" fill="#3A3A3A"/>`+
			`<circle cx="20" cy="16" r="6" fill="#FF5F56"/>`+
			`<circle cx="40" cy="16" r="6" fill="#FFBD2E"/>`+
			`<circle cx="60" cy="16" r="6" fill="#27C93F"/>`,
		width, titlebarHeight,
	)
}

func renderWindows(width float64) string {
	return fmt.Sprintf(
		`<rect x="0" y="0" width="%.3f" height="%.3f" fill="#2B2B2B"/>`+
			`<rect x="%.3f" y="12" width="16" height="2" fill="#CCCCCC"/>`+
			`<rect x="%.3f" y="6" width="16" height="14" fill="none" stroke="#CCCCCC" stroke-width="1.5"/>`+
			`<line x1="%.3f" y1="6" x2="%.3f" y2="20" stroke="#E81123" stroke-width="1.5"/>`+
			`<line x1="%.3f" y1="20" x2="%.3f" y2="6" stroke="#E81123" stroke-width="1.5"/>`,
		width, titlebarHeight,
		width-72, width-44,
		width-20, width-4,
		width-20, width-4,
	)
}
