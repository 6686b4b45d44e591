package svgrender

import (
	"fmt"

	"github.com/arika0093/console2svg/internal/chrome"
	"github.com/arika0093/console2svg/internal/crop"
	"github.com/arika0093/console2svg/internal/recording"
	"github.com/arika0093/console2svg/internal/theme"
	"github.com/valyala/bytebufferpool"
)

// Static renders one ScreenBuffer snapshot as a self-contained SVG
// document (spec section 4.6, SvgRenderer).
type Static struct{}

// Render replays sess up to Options.FrameIndex (or the whole session when
// nil, with scrollback made visible) and emits the SVG document.
func (Static) Render(sess *recording.Session, opts Options) string {
	th := theme.Resolve(opts.ThemeName)

	includeScrollback := opts.FrameIndex == nil
	targetIdx := -1
	if opts.FrameIndex != nil {
		targetIdx = *opts.FrameIndex
	}

	buf := replayTo(sess, th, targetIdx)
	rows := buf.Rows(includeScrollback)

	grid := crop.Grid{Rows: plainRows(buf, includeScrollback), Width: buf.Width()}
	ch := chrome.Resolve(opts.ChromeName)
	res := crop.Resolve(grid, opts.Crop, 0, ch.InsetY(), opts.Padding, opts.MinRows)

	out := bytebufferpool.Get()
	defer bytebufferpool.Put(out)

	fmt.Fprintf(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.3f %.3f" role="img" aria-label="console2svg output">`,
		res.CanvasWidth, res.CanvasHeight)
	fmt.Fprintf(out, `<style>text{font-family:%s;font-size:%.0fpx;}.crt{white-space:pre;}</style>`,
		opts.fontFamily(), crop.FontSize)
	out.WriteString(opts.Background.Render(res.CanvasWidth, res.CanvasHeight))
	out.WriteString(ch.Render(res.CanvasWidth))

	fmt.Fprintf(out, `<g transform="translate(%.3f,%.3f)" opacity="%.3f">`, res.OffsetX-res.PxCropLeft, res.OffsetY-res.PxCropTop, opts.opacity())
	fmt.Fprintf(out, `<rect x="0" y="0" width="%.3f" height="%.3f" fill="%s"/>`, res.ViewWidth+res.PxCropLeft+res.PxCropRight, res.ViewHeight+res.PxCropTop+res.PxCropBottom, th.Background)
	writeCells(out, rows, res, th)
	out.WriteString(`</g></svg>`)

	return out.String()
}
