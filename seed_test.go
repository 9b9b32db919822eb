package pixelmint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntropyFromHex(t *testing.T) {
	e, err := EntropyFromHex("0xff")
	require.NoError(t, err)
	assert.Equal(t, byte(0xff), e[31])
	assert.Equal(t, byte(0x00), e[0])

	e, err = EntropyFromHex("abc")
	require.NoError(t, err)
	assert.Equal(t, byte(0xbc), e[31])
	assert.Equal(t, byte(0x0a), e[30])

	full := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	e, err = EntropyFromHex(full)
	require.NoError(t, err)
	assert.Equal(t, "0x"+full, e.String())

	_, err = EntropyFromHex(full + "00")
	assert.Error(t, err)

	_, err = EntropyFromHex("zz")
	assert.Error(t, err)
}

func TestGenerateSeedWindows(t *testing.T) {
	// One distinguishable value per 48-bit window: 5 at bit offset 0, 6 at
	// 48, 7 at 96, 8 at 144.
	var e Entropy
	e[31] = 5
	e[25] = 6
	e[19] = 7
	e[13] = 8

	seed, err := GenerateSeed(e, 100, 100, 100, 100)
	require.NoError(t, err)

	assert.Equal(t, uint64(5), seed.Body)
	assert.Equal(t, uint64(6), seed.Face)
	// The third window feeds the mouth and the fourth the eyes, not the
	// other way around.
	assert.Equal(t, uint64(7), seed.Mouth)
	assert.Equal(t, uint64(8), seed.Eyes)
}

func TestGenerateSeedBounds(t *testing.T) {
	entropies := []string{
		"0x00",
		"0x01",
		"0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		"0xdeadbeefcafef00d0123456789abcdef00112233445566778899aabbccddeeff",
	}

	for _, s := range entropies {
		e, err := EntropyFromHex(s)
		require.NoError(t, err)

		seed, err := GenerateSeed(e, 3, 5, 7, 11)
		require.NoError(t, err)

		assert.Less(t, seed.Body, uint64(3))
		assert.Less(t, seed.Face, uint64(5))
		assert.Less(t, seed.Mouth, uint64(7))
		assert.Less(t, seed.Eyes, uint64(11))

		again, err := GenerateSeed(e, 3, 5, 7, 11)
		require.NoError(t, err)
		assert.Equal(t, seed, again)
	}
}

func TestGenerateSeedEmptyCollection(t *testing.T) {
	var e Entropy

	for _, counts := range [][4]int{
		{0, 1, 1, 1},
		{1, 0, 1, 1},
		{1, 1, 0, 1},
		{1, 1, 1, 0},
		{1, 1, -1, 1},
	} {
		_, err := GenerateSeed(e, counts[0], counts[1], counts[2], counts[3])
		assert.ErrorIs(t, err, ErrEmptyCollection)
	}
}
