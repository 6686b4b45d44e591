package term

import (
	"sync"

	"github.com/arika0093/console2svg/internal/theme"
)

// ScreenBuffer is a character-cell screen: a fixed W x H grid of cells with
// cursor state, main/alternate screens, scrollback, and a deferred-wrap
// flag. All mutating methods are safe for concurrent use with rendering
// reads, mirroring the teacher Screen type's own mutex discipline.
type ScreenBuffer struct {
	mu sync.Mutex

	width, height int

	main, alt [][]ScreenCell
	usingAlt  bool

	cursorRow, cursorCol int
	pendingWrap          bool

	savedRow, savedCol   int
	savedMainRow         int
	savedMainCol         int

	style theme.TextStyle

	scrollback [][]ScreenCell
}

// NewScreenBuffer allocates a blank W x H buffer. Width and height must be
// at least 1.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	b := &ScreenBuffer{width: width, height: height}
	b.main = makeGrid(width, height, theme.TextStyle{})
	b.alt = makeGrid(width, height, theme.TextStyle{})
	return b
}

func makeGrid(width, height int, style theme.TextStyle) [][]ScreenCell {
	g := make([][]ScreenCell, height)
	for r := range g {
		g[r] = blankRow(width, style)
	}
	return g
}

func blankRow(width int, style theme.TextStyle) []ScreenCell {
	row := make([]ScreenCell, width)
	for c := range row {
		row[c] = blankCell(style)
	}
	return row
}

// Width returns the buffer's fixed column count.
func (b *ScreenBuffer) Width() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width
}

// Height returns the buffer's fixed row count.
func (b *ScreenBuffer) Height() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.height
}

// Cursor returns the current (row, col) position.
func (b *ScreenBuffer) Cursor() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorRow, b.cursorCol
}

// Style returns the active SGR-derived drawing style.
func (b *ScreenBuffer) Style() theme.TextStyle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.style
}

// SetStyle replaces the active drawing style (used by the SGR dispatcher).
func (b *ScreenBuffer) SetStyle(s theme.TextStyle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.style = s
}

// CellAt returns the cell at (row, col); out-of-bounds returns a blank cell.
func (b *ScreenBuffer) CellAt(row, col int) ScreenCell {
	b.mu.Lock()
	defer b.mu.Unlock()
	grid := b.grid()
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return blankCell(theme.TextStyle{})
	}
	return grid[row][col]
}

// Rows returns a snapshot of the active grid's rows, in top-to-bottom
// order. If includeScrollback is true and the main screen is active,
// scrollback rows are prepended; the alternate screen never includes them.
func (b *ScreenBuffer) Rows(includeScrollback bool) [][]ScreenCell {
	b.mu.Lock()
	defer b.mu.Unlock()
	grid := b.grid()
	if !includeScrollback || b.usingAlt || len(b.scrollback) == 0 {
		out := make([][]ScreenCell, len(grid))
		copy(out, grid)
		return out
	}
	out := make([][]ScreenCell, 0, len(b.scrollback)+len(grid))
	out = append(out, b.scrollback...)
	out = append(out, grid...)
	return out
}

// ScrollbackLen reports the number of rows currently retained in
// scrollback. Scrolling on the alternate screen never adds to it, but rows
// retained from the main screen still count while it is active.
func (b *ScreenBuffer) ScrollbackLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.scrollback)
}

// InAlternateScreen reports whether the alternate screen is active.
func (b *ScreenBuffer) InAlternateScreen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.usingAlt
}

// grid returns the active grid. Caller must hold b.mu.
func (b *ScreenBuffer) grid() [][]ScreenCell {
	if b.usingAlt {
		return b.alt
	}
	return b.main
}

// clampCursor clamps cursorRow/cursorCol into the grid bounds.
func (b *ScreenBuffer) clampCursor() {
	if b.cursorRow < 0 {
		b.cursorRow = 0
	}
	if b.cursorRow >= b.height {
		b.cursorRow = b.height - 1
	}
	if b.cursorCol < 0 {
		b.cursorCol = 0
	}
	if b.cursorCol >= b.width {
		b.cursorCol = b.width - 1
	}
}

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// PutGrapheme writes one display cluster at the cursor, per spec section
// 4.1: resolves a pending deferred wrap first, pads-and-wraps ahead of a
// wide glyph that would otherwise split across the line boundary, stores
// the cluster (plus its continuation cell if wide), and defers a further
// wrap if the write lands exactly on the last column.
func (b *ScreenBuffer) PutGrapheme(g string, style theme.TextStyle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	wide := isWideRune(firstRune(g))

	if b.pendingWrap {
		b.advanceLineLocked()
		b.cursorCol = 0
		b.pendingWrap = false
	}

	if wide && b.cursorCol == b.width-1 {
		grid := b.grid()
		grid[b.cursorRow][b.cursorCol] = blankCell(b.style)
		b.advanceLineLocked()
		b.cursorCol = 0
	}

	grid := b.grid()
	row := grid[b.cursorRow]
	row[b.cursorCol] = ScreenCell{Text: g, Style: style, IsWide: wide}
	if wide && b.cursorCol+1 < b.width {
		row[b.cursorCol+1] = ScreenCell{Text: " ", Style: style, IsWideContinuation: true}
	}

	step := 1
	if wide {
		step = 2
	}
	b.cursorCol += step
	if b.cursorCol >= b.width {
		b.cursorCol = b.width - 1
		b.pendingWrap = true
	}
}

// AppendCombining appends a combining/variation-selector mark to the last
// printable cell the cursor logically passed, per spec section 4.1. A
// VS16 (U+FE0F) mark promotes a narrow base cell listed in
// vs16WideSymbols to wide, consuming the next cell if it is a plain space.
func (b *ScreenBuffer) AppendCombining(mark string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	col := b.cursorCol
	if !b.pendingWrap {
		col--
	}
	if col < 0 || col >= b.width {
		return
	}

	grid := b.grid()
	row := grid[b.cursorRow]
	if row[col].IsWideContinuation && col > 0 {
		col--
	}

	target := &row[col]
	base := firstRune(target.Text)
	target.Text += mark

	var promote bool
	switch {
	case firstRune(mark) == vs16:
		// Only the documented fixed list of ambiguous-width symbols
		// promotes on VS16; any other base stays narrow.
		promote = vs16WideSymbols[base] && !target.IsWide
	case !target.IsWide:
		// Other combining marks don't have a fixed list: ask uniseg
		// whether the assembled cluster actually measures wide now.
		promote = clusterWidth(target.Text) >= 2
	}

	if promote {
		target.IsWide = true
		if col+1 < b.width {
			next := row[col+1]
			if next.isBlank() {
				row[col+1] = ScreenCell{Text: "", Style: target.Style, IsWideContinuation: true}
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Control characters
// ---------------------------------------------------------------------------

// advanceLineLocked performs the row-advance half of a line feed: move down
// one row, scrolling the active grid up if already at the bottom. Caller
// must hold b.mu. Column position is untouched.
func (b *ScreenBuffer) advanceLineLocked() {
	if b.cursorRow >= b.height-1 {
		b.scrollUpLocked(1)
		b.cursorRow = b.height - 1
		return
	}
	b.cursorRow++
}

// LineFeed handles '\n': advance one row, scrolling if at the bottom.
// Column position (and any pending deferred wrap) is left untouched, so
// that a following '\r' can resolve CRLF the usual way.
func (b *ScreenBuffer) LineFeed() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advanceLineLocked()
}

// CarriageReturn handles '\r': column to 0, clearing any deferred wrap.
func (b *ScreenBuffer) CarriageReturn() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorCol = 0
	b.pendingWrap = false
}

// Backspace handles '\b': column back by one, floored at 0.
func (b *ScreenBuffer) Backspace() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cursorCol > 0 {
		b.cursorCol--
	}
}

// Tab handles '\t': advance to the next column that is a multiple of 8,
// moving at least one column.
func (b *ScreenBuffer) Tab() {
	b.mu.Lock()
	defer b.mu.Unlock()
	next := (b.cursorCol/8 + 1) * 8
	if next <= b.cursorCol {
		next = b.cursorCol + 1
	}
	b.cursorCol = next
	if b.cursorCol >= b.width {
		b.cursorCol = b.width - 1
	}
}

// ScrollUp scrolls the active grid up by n lines. On the main screen, each
// scrolled-off top row is appended to scrollback; alt-screen content never
// enters scrollback.
func (b *ScreenBuffer) ScrollUp(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scrollUpLocked(n)
}

func (b *ScreenBuffer) scrollUpLocked(n int) {
	for i := 0; i < n; i++ {
		grid := b.grid()
		if !b.usingAlt {
			row0 := make([]ScreenCell, b.width)
			copy(row0, grid[0])
			b.scrollback = append(b.scrollback, row0)
		}
		for r := 0; r < b.height-1; r++ {
			grid[r] = grid[r+1]
		}
		grid[b.height-1] = blankRow(b.width, b.style)
	}
}

// ---------------------------------------------------------------------------
// Cursor moves
// ---------------------------------------------------------------------------

// MoveTo sets the cursor to an absolute (row, col), clamped to the grid,
// clearing any deferred wrap.
func (b *ScreenBuffer) MoveTo(row, col int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorRow, b.cursorCol = row, col
	b.clampCursor()
	b.pendingWrap = false
}

// MoveBy moves the cursor by a relative (dRow, dCol), clamped to the grid,
// clearing any deferred wrap.
func (b *ScreenBuffer) MoveBy(dRow, dCol int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorRow += dRow
	b.cursorCol += dCol
	b.clampCursor()
	b.pendingWrap = false
}

// SaveCursor stashes the current cursor position (ESC 7 / CSI s).
func (b *ScreenBuffer) SaveCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.savedRow, b.savedCol = b.cursorRow, b.cursorCol
}

// RestoreCursor recalls the stashed cursor position (ESC 8 / CSI u),
// clearing any deferred wrap.
func (b *ScreenBuffer) RestoreCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorRow, b.cursorCol = b.savedRow, b.savedCol
	b.clampCursor()
	b.pendingWrap = false
}

// ---------------------------------------------------------------------------
// Erase / delete / insert
// ---------------------------------------------------------------------------

// ClearLine erases part of the cursor's row: 0 = cursor to end, 1 = start
// to cursor (inclusive), 2 = entire line.
func (b *ScreenBuffer) ClearLine(mode int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	row := b.grid()[b.cursorRow]
	switch mode {
	case 0:
		for c := b.cursorCol; c < b.width; c++ {
			row[c] = blankCell(b.style)
		}
	case 1:
		for c := 0; c <= b.cursorCol && c < b.width; c++ {
			row[c] = blankCell(b.style)
		}
	case 2:
		for c := 0; c < b.width; c++ {
			row[c] = blankCell(b.style)
		}
	}
}

// ClearDisplay erases part of the screen: 0 = cursor to end of screen,
// 1 = start of screen to cursor (inclusive), 2 = entire screen.
func (b *ScreenBuffer) ClearDisplay(mode int) {
	b.mu.Lock()
	grid := b.grid()
	switch mode {
	case 0:
		row := grid[b.cursorRow]
		for c := b.cursorCol; c < b.width; c++ {
			row[c] = blankCell(b.style)
		}
		for r := b.cursorRow + 1; r < b.height; r++ {
			grid[r] = blankRow(b.width, b.style)
		}
	case 1:
		for r := 0; r < b.cursorRow; r++ {
			grid[r] = blankRow(b.width, b.style)
		}
		row := grid[b.cursorRow]
		for c := 0; c <= b.cursorCol && c < b.width; c++ {
			row[c] = blankCell(b.style)
		}
	case 2:
		for r := 0; r < b.height; r++ {
			grid[r] = blankRow(b.width, b.style)
		}
	}
	b.mu.Unlock()
}

// EraseChars overwrites n cells from the cursor with blanks. If the
// erasure begins on a wide-continuation cell, the preceding wide half is
// blanked too; if it ends on a wide cell, the following continuation is
// blanked too — so no orphaned half ever remains.
func (b *ScreenBuffer) EraseChars(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n <= 0 || b.cursorCol >= b.width {
		return
	}
	row := b.grid()[b.cursorRow]
	start := b.cursorCol
	end := start + n - 1
	if end >= b.width {
		end = b.width - 1
	}
	if row[start].IsWideContinuation && start > 0 {
		row[start-1] = blankCell(b.style)
	}
	endWasWide := row[end].IsWide
	for c := start; c <= end; c++ {
		row[c] = blankCell(b.style)
	}
	if endWasWide && end+1 < b.width {
		row[end+1] = blankCell(b.style)
	}
}

// DeleteChars shifts the rest of the row left by n columns starting at the
// cursor, blanking the freed cells on the right.
func (b *ScreenBuffer) DeleteChars(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n <= 0 {
		return
	}
	row := b.grid()[b.cursorRow]
	shiftFrom := b.cursorCol + n
	if shiftFrom > b.width {
		shiftFrom = b.width
	}
	j := b.cursorCol
	for c := shiftFrom; c < b.width; c++ {
		row[j] = row[c]
		j++
	}
	for ; j < b.width; j++ {
		row[j] = blankCell(b.style)
	}
}

// InsertChars shifts the row right by n columns from the cursor, opening n
// blank cells at the cursor (CSI @).
func (b *ScreenBuffer) InsertChars(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n <= 0 {
		return
	}
	row := b.grid()[b.cursorRow]
	for c := b.width - 1; c >= b.cursorCol+n; c-- {
		row[c] = row[c-n]
	}
	end := b.cursorCol + n
	if end > b.width {
		end = b.width
	}
	for c := b.cursorCol; c < end; c++ {
		row[c] = blankCell(b.style)
	}
}

// InsertLines inserts n blank lines at the cursor's row, pushing rows
// below it down and off the bottom of the screen.
func (b *ScreenBuffer) InsertLines(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	grid := b.grid()
	for i := 0; i < n; i++ {
		for r := b.height - 1; r > b.cursorRow; r-- {
			grid[r] = grid[r-1]
		}
		grid[b.cursorRow] = blankRow(b.width, b.style)
	}
}

// DeleteLines deletes n lines at the cursor's row, pulling rows below it
// up and blanking the bottom of the screen.
func (b *ScreenBuffer) DeleteLines(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	grid := b.grid()
	for i := 0; i < n; i++ {
		for r := b.cursorRow; r < b.height-1; r++ {
			grid[r] = grid[r+1]
		}
		grid[b.height-1] = blankRow(b.width, b.style)
	}
}

// ---------------------------------------------------------------------------
// Alternate screen / full reset / clone
// ---------------------------------------------------------------------------

// SetAlternateScreen enters or leaves the alternate screen (CSI ?1049h/l).
// Entering stashes the main cursor and clears a fresh alt grid; leaving
// restores the main cursor. Idempotent.
func (b *ScreenBuffer) SetAlternateScreen(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if on == b.usingAlt {
		return
	}
	if on {
		b.savedMainRow, b.savedMainCol = b.cursorRow, b.cursorCol
		b.alt = makeGrid(b.width, b.height, theme.TextStyle{})
		b.usingAlt = true
		b.cursorRow, b.cursorCol = 0, 0
		b.pendingWrap = false
		return
	}
	b.usingAlt = false
	b.cursorRow, b.cursorCol = b.savedMainRow, b.savedMainCol
	b.clampCursor()
	b.pendingWrap = false
}

// FullReset implements ESC c (RIS): clears the display, homes the cursor,
// and resets the drawing style.
func (b *ScreenBuffer) FullReset() {
	b.mu.Lock()
	b.style = theme.TextStyle{}
	grid := b.grid()
	for r := range grid {
		grid[r] = blankRow(b.width, b.style)
	}
	b.cursorRow, b.cursorCol = 0, 0
	b.pendingWrap = false
	b.mu.Unlock()
}

// Clone produces an independent deep copy of the buffer, required for
// per-frame snapshots (TerminalFrame). Scrollback rows are immutable once
// appended, so they are shared by reference rather than re-copied cell by
// cell; the main/alt grids are deep-copied since rendering continues to
// mutate the live buffer afterward.
func (b *ScreenBuffer) Clone() *ScreenBuffer {
	b.mu.Lock()
	defer b.mu.Unlock()

	clone := &ScreenBuffer{
		width:        b.width,
		height:       b.height,
		usingAlt:     b.usingAlt,
		cursorRow:    b.cursorRow,
		cursorCol:    b.cursorCol,
		pendingWrap:  b.pendingWrap,
		savedRow:     b.savedRow,
		savedCol:     b.savedCol,
		savedMainRow: b.savedMainRow,
		savedMainCol: b.savedMainCol,
		style:        b.style,
	}
	clone.main = deepCopyGrid(b.main)
	clone.alt = deepCopyGrid(b.alt)
	clone.scrollback = make([][]ScreenCell, len(b.scrollback))
	copy(clone.scrollback, b.scrollback)
	return clone
}

func deepCopyGrid(grid [][]ScreenCell) [][]ScreenCell {
	out := make([][]ScreenCell, len(grid))
	for r, row := range grid {
		cp := make([]ScreenCell, len(row))
		copy(cp, row)
		out[r] = cp
	}
	return out
}
