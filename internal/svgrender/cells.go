package svgrender

import (
	"fmt"
	"strings"

	"github.com/arika0093/console2svg/internal/crop"
	"github.com/arika0093/console2svg/internal/term"
	"github.com/arika0093/console2svg/internal/theme"
	"github.com/valyala/bytebufferpool"
)

// writeCells walks the visible window of rows (per spec section 4.6 step
// 4) in reading order, emitting a background rect for any cell whose
// effective background differs from the theme default and one <text>
// element for each run of adjacent non-blank cells sharing a style (a
// wide cell always gets its own element).
func writeCells(buf *bytebufferpool.ByteBuffer, rows [][]term.ScreenCell, res crop.Result, th theme.Theme) {
	for r := res.StartRow; r < res.EndRow && r < len(rows); r++ {
		row := rows[r]
		y := float64(r-res.StartRow)*crop.CellHeight + crop.BaselineOffset
		for c := res.StartCol; c < res.EndCol && c < len(row); c++ {
			cell := row[c]
			if cell.IsWideContinuation {
				continue
			}
			x := float64(c-res.StartCol) * crop.CellWidth
			fg, bg := cell.Style.Effective(th)

			width := crop.CellWidth
			text, n := cell.Text, 1
			if cell.IsWide {
				width *= 2
			} else if text != "" && text != " " {
				for c+n < res.EndCol && c+n < len(row) {
					next := row[c+n]
					if next.IsWide || next.IsWideContinuation || next.Style != cell.Style || next.Text == "" || next.Text == " " {
						break
					}
					text += next.Text
					n++
				}
				width *= float64(n)
			}
			if bg != th.Background {
				fmt.Fprintf(buf, `<rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="%s"/>`,
					x, y-crop.BaselineOffset, width, crop.CellHeight, bg)
			}
			if text != "" && text != " " {
				classes := textClasses(cell.Style)
				fmt.Fprintf(buf, `<text x="%.3f" y="%.3f" fill="%s" class="crt"%s>%s</text>`,
					x, y, fg, classes, escapeText(text))
			}
			c += n - 1
		}
	}
}

func textClasses(s theme.TextStyle) string {
	var css strings.Builder
	if s.Bold {
		css.WriteString("font-weight:bold;")
	}
	if s.Italic {
		css.WriteString("font-style:italic;")
	}
	if s.Underline {
		css.WriteString("text-decoration:underline;")
	}
	if css.Len() == 0 {
		return ""
	}
	return fmt.Sprintf(` style="%s"`, css.String())
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
