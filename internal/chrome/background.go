package chrome

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// Background describes the desktop backdrop behind a cropped, padded
// terminal: none, a solid color, a two-color gradient, or an image.
type Background struct {
	Colors []string // 0, 1, or 2 hex colors
	Image  string    // path or URL, mutually exclusive with Colors
}

// ParseBackground parses the CLI background spec: empty, "#RRGGBB",
// "#RRGGBB,#RRGGBB" (gradient), or a path/URL treated as an image when it
// is not a bare hex color list.
func ParseBackground(raw string) Background {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Background{}
	}
	parts := strings.Split(raw, ",")
	allColors := true
	for _, p := range parts {
		if _, err := colorful.Hex(strings.TrimSpace(p)); err != nil {
			allColors = false
			break
		}
	}
	if allColors && len(parts) <= 2 {
		out := make([]string, len(parts))
		for i, p := range parts {
			out[i] = strings.TrimSpace(p)
		}
		return Background{Colors: out}
	}
	return Background{Image: raw}
}

// Render emits the background SVG fragment sized to the full canvas,
// behind the chrome and cell content.
func (b Background) Render(width, height float64) string {
	switch {
	case b.Image != "":
		return fmt.Sprintf(`<image href="%s" x="0" y="0" width="%.3f" height="%.3f" preserveAspectRatio="xMidYMid slice"/>`,
			escapeAttr(b.Image), width, height)
	case len(b.Colors) == 2:
		id := "bg-" + uuid.New().String()
		return fmt.Sprintf(
			`<defs><linearGradient id="%s" x1="0" y1="0" x2="1" y2="1">`+
				`<stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/>`+
				`</linearGradient></defs>`+
				`<rect x="0" y="0" width="%.3f" height="%.3f" fill="url(#%s)"/>`,
			id, b.Colors[0], b.Colors[1], width, height, id,
		)
	case len(b.Colors) == 1:
		return fmt.Sprintf(`<rect x="0" y="0" width="%.3f" height="%.3f" fill="%s"/>`, width, height, b.Colors[0])
	default:
		return ""
	}
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
