package pixelmint

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCollection is returned when a seed is requested while at least one
// trait collection is empty.
var ErrEmptyCollection = errors.New("pixelmint: empty trait collection")

// Entropy is a 256-bit pseudo-random value, stored big-endian. It is supplied
// by the caller once per mint; this package makes no claim about its
// unpredictability.
type Entropy [32]byte

// EntropyFromHex parses a hexadecimal string, with or without a "0x" prefix,
// into an Entropy value. Shorter strings are left-padded with zeroes.
func EntropyFromHex(s string) (Entropy, error) {
	var e Entropy

	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) > 64 {
		return e, fmt.Errorf("pixelmint: entropy longer than 256 bits")
	}
	if len(s)%2 != 0 {
		s = "0" + s
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return e, err
	}
	copy(e[len(e)-len(b):], b)

	return e, nil
}

func (e Entropy) String() string {
	return "0x" + hex.EncodeToString(e[:])
}

// window returns the 48-bit window at bit offset 48*i, counting from the
// least significant bit.
func (e Entropy) window(i int) uint64 {
	var tmp [8]byte
	copy(tmp[2:], e[len(e)-6*(i+1):len(e)-6*i])
	return binary.BigEndian.Uint64(tmp[:])
}

// Seed is the persisted 4-tuple of trait indices identifying a token's
// visual composition. Each field indexes into the corresponding AssetStore
// collection.
type Seed struct {
	Body  uint64
	Face  uint64
	Eyes  uint64
	Mouth uint64
}

func (s Seed) String() string {
	return fmt.Sprintf("body=%d face=%d eyes=%d mouth=%d", s.Body, s.Face, s.Eyes, s.Mouth)
}

// GenerateSeed derives a Seed from e and the four trait collection sizes.
// Each field is a distinct 48-bit window of e reduced modulo its collection
// size. The window assignment is, in bit-offset order: body, face, mouth,
// eyes. The mouth window precedes the eyes window even though the struct
// declares Eyes first; this matches data already in circulation and must not
// change.
//
// GenerateSeed is pure: identical inputs produce identical seeds.
func GenerateSeed(e Entropy, bodies, faces, mouths, eyes int) (Seed, error) {
	if bodies <= 0 || faces <= 0 || mouths <= 0 || eyes <= 0 {
		return Seed{}, ErrEmptyCollection
	}

	return Seed{
		Body:  e.window(0) % uint64(bodies),
		Face:  e.window(1) % uint64(faces),
		Mouth: e.window(2) % uint64(mouths),
		Eyes:  e.window(3) % uint64(eyes),
	}, nil
}
