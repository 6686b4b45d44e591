package svgrender

import (
	"fmt"
	"math"

	"github.com/arika0093/console2svg/internal/chrome"
	"github.com/arika0093/console2svg/internal/crop"
	"github.com/arika0093/console2svg/internal/recording"
	"github.com/arika0093/console2svg/internal/theme"
	"github.com/samber/lo"
	"github.com/valyala/bytebufferpool"
)

// Animated renders a replayed session as a multi-frame SVG with
// content-addressed <defs>/<use> deduplication and CSS @keyframes timing
// (spec section 4.6, AnimatedSvgRenderer).
type Animated struct{}

type keptFrame struct {
	start, end float64
	fragment   string
}

// Render builds the full animated SVG document for sess.
func (Animated) Render(sess *recording.Session, opts Options) string {
	th := theme.Resolve(opts.ThemeName)
	frames := replayFrames(sess, th)
	if len(frames) == 0 {
		return Static{}.Render(sess, opts)
	}

	fps := opts.FPS
	if fps <= 0 {
		fps = 10
	}
	kept := downsample(frames, fps)

	duration := math.Max(frames[len(frames)-1].time, 0.05) + opts.Sleep
	if opts.FadeOut > 0 {
		duration += opts.FadeOut
	}

	ch := chrome.Resolve(opts.ChromeName)
	var grid crop.Grid
	var res crop.Result
	fragments := make([]keptFrame, len(kept))
	for i, f := range kept {
		includeScrollback := i == len(kept)-1
		rows := f.buf.Rows(includeScrollback)
		grid = crop.Grid{Rows: plainRows(f.buf, includeScrollback), Width: f.buf.Width()}
		res = crop.Resolve(grid, opts.Crop, 0, ch.InsetY(), opts.Padding, opts.MinRows)

		cellBuf := bytebufferpool.Get()
		writeCells(cellBuf, rows, res, th)
		fragments[i] = keptFrame{start: f.time, fragment: cellBuf.String()}
		bytebufferpool.Put(cellBuf)
	}
	for i := range fragments {
		if i+1 < len(fragments) {
			fragments[i].end = fragments[i+1].start
		} else {
			fragments[i].end = duration
		}
	}

	uniqueFragments := lo.Uniq(lo.Map(fragments, func(f keptFrame, _ int) string { return f.fragment }))
	idOf := make(map[string]int, len(uniqueFragments))
	for i, s := range uniqueFragments {
		idOf[s] = i
	}

	out := bytebufferpool.Get()
	defer bytebufferpool.Put(out)

	fmt.Fprintf(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.3f %.3f" role="img" aria-label="console2svg output">`,
		res.CanvasWidth, res.CanvasHeight)
	out.WriteString(`<style>text{font-family:` + opts.fontFamily() + `;font-size:` + fmt.Sprintf("%.0f", crop.FontSize) + `px;}.crt{white-space:pre;}`)
	writeKeyframeRules(out, fragments, duration, opts.Loop, opts.FadeOut)
	out.WriteString(`</style>`)
	out.WriteString(opts.Background.Render(res.CanvasWidth, res.CanvasHeight))
	out.WriteString(ch.Render(res.CanvasWidth))

	fmt.Fprintf(out, `<g transform="translate(%.3f,%.3f)" opacity="%.3f">`, res.OffsetX-res.PxCropLeft, res.OffsetY-res.PxCropTop, opts.opacity())
	fmt.Fprintf(out, `<rect x="0" y="0" width="%.3f" height="%.3f" fill="%s"/>`,
		res.ViewWidth+res.PxCropLeft+res.PxCropRight, res.ViewHeight+res.PxCropTop+res.PxCropBottom, th.Background)

	out.WriteString(`<defs>`)
	for i, s := range uniqueFragments {
		fmt.Fprintf(out, `<g id="fd-%d">%s</g>`, i, s)
	}
	out.WriteString(`</defs>`)

	for i, f := range fragments {
		fmt.Fprintf(out, `<use href="#fd-%d" id="frame-%d" class="frame frame-%d"/>`, idOf[f.fragment], i, i)
	}
	out.WriteString(`</g></svg>`)

	return out.String()
}

// downsample walks frames in time order keeping one iff at least 1/fps
// seconds elapsed since the last kept frame, always keeping the first and
// last (spec section 4.6 step 2).
func downsample(frames []frame, fps float64) []frame {
	if len(frames) <= 2 {
		return frames
	}
	minGap := 1.0 / fps
	kept := make([]frame, 0, len(frames))
	kept = append(kept, frames[0])
	last := frames[0].time
	for i := 1; i < len(frames)-1; i++ {
		if frames[i].time-last >= minGap {
			kept = append(kept, frames[i])
			last = frames[i].time
		}
	}
	if kept[len(kept)-1].time != frames[len(frames)-1].time {
		kept = append(kept, frames[len(frames)-1])
	}
	return kept
}

// writeKeyframeRules emits one @keyframes block and one .frame-i rule per
// kept frame, per spec section 4.6 step 5-6.
func writeKeyframeRules(out *bytebufferpool.ByteBuffer, fragments []keptFrame, duration float64, loop bool, fadeOut float64) {
	mode := "forwards"
	if loop {
		mode = "infinite"
	}
	for i, f := range fragments {
		startPct := f.start / duration * 100
		endPct := f.end / duration * 100
		isLast := i == len(fragments)-1

		fmt.Fprintf(out, `@keyframes k_%d{0%%{opacity:0}`, i)
		if startPct > 0 {
			fmt.Fprintf(out, `%.3f%%{opacity:0}`, startPct)
		}
		fmt.Fprintf(out, `%.3f%%{opacity:1}`, startPct)
		if isLast && fadeOut <= 0 {
			out.WriteString(`100%{opacity:1}`)
		} else if isLast && fadeOut > 0 {
			fadeStartPct := (duration - fadeOut) / duration * 100
			fmt.Fprintf(out, `%.3f%%{opacity:1}100%%{opacity:0}`, fadeStartPct)
		} else {
			fmt.Fprintf(out, `%.3f%%{opacity:1}%.3f%%{opacity:0}100%%{opacity:0}`, endPct, endPct)
		}
		out.WriteString(`}`)
		fmt.Fprintf(out, `.frame-%d{animation:k_%d %.3fs linear %s;}`, i, i, duration, mode)
	}
}
