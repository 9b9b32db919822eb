/*
Package part implements the compressed visual-layer record format.

A part encodes one trait layer as a run-length compressed pixel grid. The
record starts with a 4 byte header; the grid width and height as
little-endian 16-bit values. The remainder is a sequence of 2 byte runs,
each a run length followed by a palette color index. Runs are laid out
row-major, left to right then top to bottom, and never cross a row
boundary. Color index 0 marks empty space: it advances the position but
draws nothing. The run lengths must cover the grid exactly.
*/
package part

const (
	headerSize = 4
	runSize    = 2

	// Transparent is the reserved color index for empty space.
	Transparent = 0

	maxRunLength = 0xff
	maxDimension = 0xffff
)

// Run is one horizontal span of same-colored pixels.
type Run struct {
	Row    int
	Col    int
	Length int
	// Color indexes the palette, 1-based; Transparent never appears in a
	// decoded Run.
	Color byte
}

// Layer is a decoded part: grid bounds plus the visible runs in record
// order.
type Layer struct {
	Width  int
	Height int
	Runs   []Run
}

// SameBounds reports whether l and m declare the same grid size.
func (l *Layer) SameBounds(m *Layer) bool {
	return l.Width == m.Width && l.Height == m.Height
}
