package part

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrMalformed is returned when a record's run data does not cover its
	// declared grid exactly.
	ErrMalformed = errors.New("part: run data does not cover the grid")

	errShortHeader = errors.New("part: record shorter than header")
	errEmptyGrid   = errors.New("part: zero grid dimension")
)

type decoder struct {
	layer Layer

	row int
	col int
}

func (d *decoder) run(length int, color byte) error {
	if length == 0 || d.row >= d.layer.Height {
		return ErrMalformed
	}
	// A run is a horizontal span; spilling into the next row cannot be
	// drawn as a single rectangle.
	if d.col+length > d.layer.Width {
		return ErrMalformed
	}

	if color != Transparent {
		d.layer.Runs = append(d.layer.Runs, Run{
			Row:    d.row,
			Col:    d.col,
			Length: length,
			Color:  color,
		})
	}

	d.col += length
	if d.col == d.layer.Width {
		d.row++
		d.col = 0
	}

	return nil
}

func (d *decoder) decode(b []byte) error {
	if len(b) < headerSize {
		return errShortHeader
	}

	d.layer.Width = int(binary.LittleEndian.Uint16(b[0:2]))
	d.layer.Height = int(binary.LittleEndian.Uint16(b[2:4]))
	if d.layer.Width == 0 || d.layer.Height == 0 {
		return errEmptyGrid
	}

	b = b[headerSize:]
	if len(b)%runSize != 0 {
		return ErrMalformed
	}

	for i := 0; i < len(b); i += runSize {
		if err := d.run(int(b[i]), b[i+1]); err != nil {
			return err
		}
	}

	// Every pixel of the grid must have been covered.
	if d.row != d.layer.Height || d.col != 0 {
		return ErrMalformed
	}

	return nil
}

// Decode parses a part record and returns its grid bounds and visible runs
// in record order.
func Decode(b []byte) (*Layer, error) {
	var d decoder
	if err := d.decode(b); err != nil {
		return nil, err
	}
	return &d.layer, nil
}
