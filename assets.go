package pixelmint

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrLocked is returned when Populate is called after the store has
	// already been populated.
	ErrLocked = errors.New("pixelmint: asset store already populated")

	errNotPopulated = errors.New("pixelmint: asset store not populated")
	errNoPalette    = errors.New("pixelmint: empty palette")
)

// Palette is the ordered color table shared by every part record. Entries
// are RGB hex strings without a leading "#". Part color index n resolves to
// entry n-1; index 0 is transparency and has no entry.
type Palette []string

type storeState uint8

const (
	storeUnlocked storeState = iota
	storeLocked
)

// AssetStore holds the four trait collections and the palette. It is
// populated exactly once and read-only afterwards, so any number of renders
// may read it concurrently without coordination.
type AssetStore struct {
	mu    sync.Mutex
	state storeState

	bodies  [][]byte
	faces   [][]byte
	eyes    [][]byte
	mouths  [][]byte
	palette Palette
}

func clone(parts [][]byte) [][]byte {
	out := make([][]byte, len(parts))
	for i, p := range parts {
		out[i] = append([]byte(nil), p...)
	}
	return out
}

// Populate stores the four trait collections and the palette and locks the
// store. A second call fails with ErrLocked and changes nothing. Every
// collection and the palette must be non-empty; a locked store is always
// able to mint. Inputs are copied, so callers may reuse their slices.
func (s *AssetStore) Populate(bodies, faces, eyes, mouths [][]byte, palette Palette) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == storeLocked {
		return ErrLocked
	}

	if len(bodies) == 0 || len(faces) == 0 || len(eyes) == 0 || len(mouths) == 0 {
		return ErrEmptyCollection
	}
	if len(palette) == 0 {
		return errNoPalette
	}

	s.bodies = clone(bodies)
	s.faces = clone(faces)
	s.eyes = clone(eyes)
	s.mouths = clone(mouths)
	s.palette = append(Palette(nil), palette...)

	s.state = storeLocked

	return nil
}

// Populated reports whether the store has been populated.
func (s *AssetStore) Populated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == storeLocked
}

// Counts returns the four collection sizes, in the order GenerateSeed
// consumes them.
func (s *AssetStore) Counts() (bodies, faces, mouths, eyes int) {
	return len(s.bodies), len(s.faces), len(s.mouths), len(s.eyes)
}

// Parts returns the four part records selected by seed, in draw order.
func (s *AssetStore) Parts(seed Seed) ([][]byte, error) {
	if !s.Populated() {
		return nil, errNotPopulated
	}

	for _, c := range []struct {
		name  string
		index uint64
		parts [][]byte
	}{
		{"body", seed.Body, s.bodies},
		{"face", seed.Face, s.faces},
		{"eyes", seed.Eyes, s.eyes},
		{"mouth", seed.Mouth, s.mouths},
	} {
		if c.index >= uint64(len(c.parts)) {
			return nil, fmt.Errorf("pixelmint: %s index %d out of range", c.name, c.index)
		}
	}

	return [][]byte{
		s.bodies[seed.Body],
		s.faces[seed.Face],
		s.eyes[seed.Eyes],
		s.mouths[seed.Mouth],
	}, nil
}

// PaletteTable returns the stored palette.
func (s *AssetStore) PaletteTable() Palette {
	return s.palette
}
