package svgrender

import (
	"github.com/arika0093/console2svg/internal/chrome"
	"github.com/arika0093/console2svg/internal/crop"
)

// Options configures both the static and animated renderers.
type Options struct {
	ThemeName  string
	ChromeName string
	Background chrome.Background
	Padding    float64
	FontFamily string
	Opacity    float64 // 0..1; <= 0 or > 1 falls back to fully opaque

	Crop crop.Spec

	MinRows int

	// FrameIndex selects a single output event to render up to (static
	// renderer only). Nil means "the last event", and also makes
	// scrollback visible per spec section 4.6.
	FrameIndex *int

	// Animated-only fields.
	FPS     float64
	Loop    bool
	Sleep   float64
	FadeOut float64
}

func (o Options) fontFamily() string {
	if o.FontFamily == "" {
		return "ui-monospace, SFMono-Regular, Menlo, Consolas, monospace"
	}
	return o.FontFamily
}

// opacity returns the content opacity to render at, defaulting an unset or
// out-of-range value to fully opaque.
func (o Options) opacity() float64 {
	if o.Opacity <= 0 || o.Opacity > 1 {
		return 1
	}
	return o.Opacity
}
