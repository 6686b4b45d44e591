package crop

import "strings"

// Grid is the minimal read-only view CropResolver needs of a rendered
// screen: plain-text rows (for pattern matching) plus dimensions. Renderers
// build this from a term.ScreenBuffer snapshot (possibly with scrollback
// rows prepended).
type Grid struct {
	Rows  []string // plain text, one entry per row, in top-to-bottom order
	Width int      // columns
}

// Result is the resolved crop: the row/column window into Grid, the pixel
// trim still to apply after cell-granularity cropping, and the final
// canvas/view dimensions.
type Result struct {
	StartRow, EndRow int // row window, EndRow exclusive
	StartCol, EndCol int // column window, EndCol exclusive

	PxCropTop, PxCropBottom, PxCropLeft, PxCropRight float64

	ViewWidth, ViewHeight     float64
	CanvasWidth, CanvasHeight float64
	OffsetX, OffsetY          float64
}

// Resolve implements the spec section 4.5 procedure: cell-granularity crop
// first (characters and text-pattern sides), then pixel crop, then the
// chrome/padding-inclusive canvas size, honoring a minimum visible row
// count.
func Resolve(grid Grid, spec Spec, chromeInsetX, chromeInsetY, padding float64, minRows int) Result {
	totalRows := len(grid.Rows)
	startRow, endRow := resolveRowRange(grid.Rows, spec.Top, spec.Bottom, totalRows)
	startCol, endCol := resolveColRange(spec.Left, spec.Right, grid.Width)

	var r Result
	r.StartRow, r.EndRow = startRow, endRow
	r.StartCol, r.EndCol = startCol, endCol

	contentWidth := float64(endCol-startCol) * CellWidth
	contentHeight := float64(endRow-startRow) * CellHeight

	if spec.Top.Unit == UnitPixels {
		r.PxCropTop = float64(spec.Top.Amount)
	}
	if spec.Bottom.Unit == UnitPixels {
		r.PxCropBottom = float64(spec.Bottom.Amount)
	}
	if spec.Left.Unit == UnitPixels {
		r.PxCropLeft = float64(spec.Left.Amount)
	}
	if spec.Right.Unit == UnitPixels {
		r.PxCropRight = float64(spec.Right.Amount)
	}

	viewWidth := contentWidth - r.PxCropLeft - r.PxCropRight
	viewHeight := contentHeight - r.PxCropTop - r.PxCropBottom
	if viewWidth < 1 {
		viewWidth = 1
	}
	if viewHeight < 1 {
		viewHeight = 1
	}

	minHeight := float64(minRows) * CellHeight
	if viewHeight < minHeight {
		viewHeight = minHeight
	}

	r.ViewWidth, r.ViewHeight = viewWidth, viewHeight
	r.CanvasWidth = chromeInsetX + 2*padding + viewWidth
	r.CanvasHeight = chromeInsetY + 2*padding + viewHeight
	r.OffsetX = chromeInsetX/2 + padding
	r.OffsetY = chromeInsetY + padding
	return r
}

func resolveRowRange(rows []string, top, bottom Side, total int) (start, end int) {
	start, end = 0, total
	switch top.Unit {
	case UnitCharacters:
		start = clamp(top.Amount, 0, total)
	case UnitTextPattern:
		if idx, ok := findRow(rows, top.Pattern, false); ok {
			start = clamp(idx+top.Offset, 0, total)
		}
	}
	switch bottom.Unit {
	case UnitCharacters:
		end = clamp(total-bottom.Amount, 0, total)
	case UnitTextPattern:
		if idx, ok := findRow(rows, bottom.Pattern, true); ok {
			end = clamp(idx+1+bottom.Offset, 0, total)
		}
	}
	if end < start {
		end = start
	}
	return start, end
}

func resolveColRange(left, right Side, total int) (start, end int) {
	start, end = 0, total
	if left.Unit == UnitCharacters {
		start = clamp(left.Amount, 0, total)
	}
	if right.Unit == UnitCharacters {
		end = clamp(total-right.Amount, 0, total)
	}
	if end < start {
		end = start
	}
	return start, end
}

// findRow scans rows for the first one containing pattern. bottomUp scans
// from the last row toward the first (so the match nearest the bottom
// wins); otherwise it scans top-down.
func findRow(rows []string, pattern string, bottomUp bool) (int, bool) {
	if pattern == "" {
		return 0, false
	}
	if bottomUp {
		for i := len(rows) - 1; i >= 0; i-- {
			if strings.Contains(rows[i], pattern) {
				return i, true
			}
		}
		return 0, false
	}
	for i, row := range rows {
		if strings.Contains(row, pattern) {
			return i, true
		}
	}
	return 0, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
