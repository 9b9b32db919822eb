package part

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.RGBA{0xff, 0x00, 0x00, 0xff}
	blue = color.RGBA{0x00, 0x00, 0xff, 0xff}
)

func testPalette() color.Palette {
	return color.Palette{color.Transparent, red, blue}
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 4, 3))
	// Row 0: red, red, transparent, transparent
	m.Set(0, 0, red)
	m.Set(1, 0, red)
	// Row 1: blue across
	for x := 0; x < 4; x++ {
		m.Set(x, 1, blue)
	}
	// Row 2 left transparent

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m, testPalette()))

	l, err := Decode(b.Bytes())
	require.NoError(t, err)

	assert.Equal(t, 4, l.Width)
	assert.Equal(t, 3, l.Height)
	assert.Equal(t, []Run{
		{Row: 0, Col: 0, Length: 2, Color: 1},
		{Row: 1, Col: 0, Length: 4, Color: 2},
	}, l.Runs)
}

func TestEncodeSplitsLongRuns(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 300, 1))
	for x := 0; x < 300; x++ {
		m.Set(x, 0, red)
	}

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m, testPalette()))

	l, err := Decode(b.Bytes())
	require.NoError(t, err)

	require.Len(t, l.Runs, 2)
	assert.Equal(t, Run{Row: 0, Col: 0, Length: 255, Color: 1}, l.Runs[0])
	assert.Equal(t, Run{Row: 0, Col: 255, Length: 45, Color: 1}, l.Runs[1])
}

func TestEncodeOffsetBounds(t *testing.T) {
	// Bounds not anchored at the origin must still encode from (0, 0).
	m := image.NewRGBA(image.Rect(10, 10, 12, 11))
	m.Set(10, 10, red)
	m.Set(11, 10, blue)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m, testPalette()))

	l, err := Decode(b.Bytes())
	require.NoError(t, err)

	assert.Equal(t, []Run{
		{Row: 0, Col: 0, Length: 1, Color: 1},
		{Row: 0, Col: 1, Length: 1, Color: 2},
	}, l.Runs)
}

func TestEncodeErrors(t *testing.T) {
	b := new(bytes.Buffer)

	assert.Error(t, Encode(b, image.NewRGBA(image.Rect(0, 0, 0, 0)), testPalette()))

	// Palette index 0 must be transparent.
	m := image.NewRGBA(image.Rect(0, 0, 1, 1))
	assert.Error(t, Encode(b, m, color.Palette{red, blue}))

	big := make(color.Palette, 257)
	big[0] = color.Transparent
	for i := 1; i < len(big); i++ {
		big[i] = color.RGBA{byte(i), 0, 0, 0xff}
	}
	assert.Error(t, Encode(b, m, big))
}

func TestBuildPalette(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 2, 1))
	m.Set(0, 0, red)
	m.Set(1, 0, blue)

	p := BuildPalette([]image.Image{m}, 8)

	require.NotEmpty(t, p)
	assert.Equal(t, color.Transparent, p[0])
	assert.LessOrEqual(t, len(p), 9)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m, p))
	l, err := Decode(b.Bytes())
	require.NoError(t, err)
	assert.NotEmpty(t, l.Runs)
}
