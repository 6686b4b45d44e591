package crop

// Cell metrics shared by CropResolver and the SVG renderers, so hit-testing
// crops and animation timing stay consistent (spec section 4.6).
const (
	CellWidth      = 8.4
	CellHeight     = 18.0
	FontSize       = 14.0
	BaselineOffset = 14.0
)
