package part

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

var (
	errEmptyImage   = errors.New("part: empty image")
	errImageTooBig  = errors.New("part: image dimensions exceed 16 bits")
	errClearPalette = errors.New("part: palette index 0 must be transparent")
	errBigPalette   = errors.New("part: more than 255 opaque colors")
)

// BuildPalette quantizes all images down to one shared palette of at most
// colors opaque entries, with index 0 reserved for transparency.
func BuildPalette(images []image.Image, colors int) color.Palette {
	q := quantize.MedianCutQuantizer{}
	p := make(color.Palette, 0, colors)
	for _, m := range images {
		p = q.Quantize(p, m)
	}
	return append(color.Palette{color.Transparent}, p...)
}

func opaque(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a >= 0x8000
}

type encoder struct {
	w      io.Writer
	length int
	color  byte
}

func (e *encoder) flush() error {
	if e.length == 0 {
		return nil
	}
	_, err := e.w.Write([]byte{byte(e.length), e.color})
	e.length = 0
	return err
}

func (e *encoder) pixel(c byte) error {
	if e.length > 0 && (c != e.color || e.length == maxRunLength) {
		if err := e.flush(); err != nil {
			return err
		}
	}
	e.color = c
	e.length++
	return nil
}

// Encode writes m to w as a part record, resolving colors through p. Index 0
// of p must be the transparent entry; pixels below 50% alpha encode as
// transparent regardless of their color. Runs split at row ends and at the
// maximum run length, so Decode on the output reproduces the image exactly.
func Encode(w io.Writer, m image.Image, p color.Palette) error {
	b := m.Bounds()
	width, height := b.Dx(), b.Dy()

	if width == 0 || height == 0 {
		return errEmptyImage
	}
	if width > maxDimension || height > maxDimension {
		return errImageTooBig
	}
	if len(p) < 1 || opaque(p[0]) {
		return errClearPalette
	}
	if len(p) > maxRunLength+1 {
		return errBigPalette
	}

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint16(hdr[0:2], uint16(width))
	binary.LittleEndian.PutUint16(hdr[2:4], uint16(height))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	colors := p[1:]

	e := encoder{w: w}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := m.At(x, y)

			i := Transparent
			if opaque(c) {
				i = colors.Index(c) + 1
			}

			if err := e.pixel(byte(i)); err != nil {
				return err
			}
		}
		// Runs never cross a row boundary.
		if err := e.flush(); err != nil {
			return err
		}
	}

	return nil
}
