package pixelmint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populated(t *testing.T) *AssetStore {
	t.Helper()

	s := new(AssetStore)
	require.NoError(t, s.Populate(
		[][]byte{{0x01}},
		[][]byte{{0x02}},
		[][]byte{{0x03}},
		[][]byte{{0x04}},
		Palette{"ff0000"},
	))
	return s
}

func TestPopulateOnce(t *testing.T) {
	s := populated(t)

	err := s.Populate(
		[][]byte{{0xaa}},
		[][]byte{{0xbb}},
		[][]byte{{0xcc}},
		[][]byte{{0xdd}},
		Palette{"00ff00"},
	)
	assert.ErrorIs(t, err, ErrLocked)

	// The failed call must not have touched the stored contents.
	parts, err := s.Parts(Seed{})
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{0x01}, {0x02}, {0x03}, {0x04}}, parts)
	assert.Equal(t, Palette{"ff0000"}, s.PaletteTable())
}

func TestPopulateRejectsEmptyCollections(t *testing.T) {
	part := [][]byte{{0x01}}

	s := new(AssetStore)
	assert.ErrorIs(t, s.Populate(nil, part, part, part, Palette{"ff0000"}), ErrEmptyCollection)
	assert.ErrorIs(t, s.Populate(part, part, part, nil, Palette{"ff0000"}), ErrEmptyCollection)
	assert.Error(t, s.Populate(part, part, part, part, nil))

	// A rejected populate must not lock the store.
	assert.False(t, s.Populated())
	assert.NoError(t, s.Populate(part, part, part, part, Palette{"ff0000"}))
}

func TestPopulateCopiesInputs(t *testing.T) {
	bodies := [][]byte{{0x01, 0x02}}
	palette := Palette{"ff0000"}

	s := new(AssetStore)
	require.NoError(t, s.Populate(bodies, bodies, bodies, bodies, palette))

	bodies[0][0] = 0xff
	palette[0] = "000000"

	parts, err := s.Parts(Seed{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, parts[0])
	assert.Equal(t, Palette{"ff0000"}, s.PaletteTable())
}

func TestPartsUnpopulated(t *testing.T) {
	s := new(AssetStore)
	_, err := s.Parts(Seed{})
	assert.Error(t, err)
}

func TestPartsOutOfRange(t *testing.T) {
	s := populated(t)
	_, err := s.Parts(Seed{Eyes: 1})
	assert.Error(t, err)
}

func TestCounts(t *testing.T) {
	s := new(AssetStore)
	require.NoError(t, s.Populate(
		[][]byte{{0x01}},
		[][]byte{{0x02}, {0x02}},
		[][]byte{{0x03}, {0x03}, {0x03}},
		[][]byte{{0x04}, {0x04}, {0x04}, {0x04}},
		Palette{"ff0000"},
	))

	bodies, faces, mouths, eyes := s.Counts()
	assert.Equal(t, 1, bodies)
	assert.Equal(t, 2, faces)
	assert.Equal(t, 4, mouths)
	assert.Equal(t, 3, eyes)
}
