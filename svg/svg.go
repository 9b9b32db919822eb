/*
Package svg composites decoded visual layers into a scalable vector image.

Each run becomes one filled rectangle, one grid unit tall. Rectangles are
emitted strictly in layer order then run order so renderers that paint in
document order stack later layers on top. Output is byte stable for a
given input.
*/
package svg

import (
	"errors"
	"fmt"
	"io"

	"github.com/pixelforge/pixelmint/part"
)

var (
	// ErrBoundsMismatch is returned when the layers of one image declare
	// different grid bounds.
	ErrBoundsMismatch = errors.New("svg: layer bounds mismatch")

	// ErrBadColorIndex is returned when a run's color index does not
	// resolve within the palette.
	ErrBadColorIndex = errors.New("svg: color index outside palette")

	errNoLayers = errors.New("svg: no layers")
)

const (
	header = `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="0 0 %d %d" shape-rendering="crispEdges">`
	rect   = `<rect x="%d" y="%d" width="%d" height="1" fill="#%s"/>`
	footer = `</svg>`
)

// Compose writes the layers to w as a single SVG document, resolving run
// colors through palette. Color index n refers to palette[n-1]; index 0
// never reaches the compositor. All layers must declare identical grid
// bounds.
func Compose(w io.Writer, layers []*part.Layer, palette []string) error {
	if len(layers) == 0 {
		return errNoLayers
	}
	for _, l := range layers[1:] {
		if !layers[0].SameBounds(l) {
			return ErrBoundsMismatch
		}
	}

	if _, err := fmt.Fprintf(w, header, layers[0].Width, layers[0].Height); err != nil {
		return err
	}

	for _, l := range layers {
		for _, r := range l.Runs {
			if r.Color == part.Transparent || int(r.Color) > len(palette) {
				return ErrBadColorIndex
			}
			if _, err := fmt.Fprintf(w, rect, r.Col, r.Row, r.Length, palette[r.Color-1]); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w, footer)
	return err
}
