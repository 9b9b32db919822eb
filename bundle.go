package pixelmint

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
)

// A bundle is the on-disk form of a populated asset store, so the
// administrative import runs once and later invocations reload its result.
// Layout: 4 byte magic, 1 byte version, xxhash64 of the content section,
// content length, then the zstd-compressed content. The content is the
// palette followed by the four trait collections, each length-prefixed.

const (
	bundleMagic   = "PMB1"
	bundleVersion = 1
)

var (
	errBadBundle      = errors.New("pixelmint: not a bundle")
	errBundleChecksum = errors.New("pixelmint: bundle checksum mismatch")
)

func writeParts(b *bytes.Buffer, parts [][]byte) error {
	if err := binary.Write(b, binary.LittleEndian, uint16(len(parts))); err != nil {
		return err
	}
	for _, p := range parts {
		if err := binary.Write(b, binary.LittleEndian, uint32(len(p))); err != nil {
			return err
		}
		if _, err := b.Write(p); err != nil {
			return err
		}
	}
	return nil
}

func readParts(r *bytes.Reader) ([][]byte, error) {
	var count uint16
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	parts := make([][]byte, count)
	for i := range parts {
		var length uint32
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, err
		}
		parts[i] = make([]byte, length)
		if _, err := io.ReadFull(r, parts[i]); err != nil {
			return nil, err
		}
	}
	return parts, nil
}

func (s *AssetStore) content() ([]byte, error) {
	b := new(bytes.Buffer)

	if err := binary.Write(b, binary.LittleEndian, uint16(len(s.palette))); err != nil {
		return nil, err
	}
	for _, c := range s.palette {
		if len(c) > 0xff {
			return nil, fmt.Errorf("pixelmint: palette entry %q too long", c)
		}
		b.WriteByte(byte(len(c)))
		b.WriteString(c)
	}

	for _, parts := range [][][]byte{s.bodies, s.faces, s.eyes, s.mouths} {
		if err := writeParts(b, parts); err != nil {
			return nil, err
		}
	}

	return b.Bytes(), nil
}

// WriteBundle writes the populated store to w. It fails if the store has
// not been populated yet.
func (s *AssetStore) WriteBundle(w io.Writer) error {
	if !s.Populated() {
		return errNotPopulated
	}

	content, err := s.content()
	if err != nil {
		return err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	compressed := enc.EncodeAll(content, nil)
	if err := enc.Close(); err != nil {
		return err
	}

	if _, err := io.WriteString(w, bundleMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(bundleVersion)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, xxhash.Sum64(content)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(compressed))); err != nil {
		return err
	}
	_, err = w.Write(compressed)

	return err
}

// ReadBundle parses a bundle written by WriteBundle and returns the
// populated, locked store it described.
func ReadBundle(r io.Reader) (*AssetStore, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, err
	}
	if string(magic[:]) != bundleMagic {
		return nil, errBadBundle
	}

	var version uint8
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != bundleVersion {
		return nil, fmt.Errorf("pixelmint: unsupported bundle version %d", version)
	}

	var sum uint64
	if err := binary.Read(r, binary.LittleEndian, &sum); err != nil {
		return nil, err
	}

	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, err
	}
	compressed := make([]byte, length)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	content, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, err
	}
	if xxhash.Sum64(content) != sum {
		return nil, errBundleChecksum
	}

	cr := bytes.NewReader(content)

	var colors uint16
	if err := binary.Read(cr, binary.LittleEndian, &colors); err != nil {
		return nil, err
	}
	palette := make(Palette, colors)
	for i := range palette {
		length, err := cr.ReadByte()
		if err != nil {
			return nil, err
		}
		entry := make([]byte, length)
		if _, err := io.ReadFull(cr, entry); err != nil {
			return nil, err
		}
		palette[i] = string(entry)
	}

	collections := make([][][]byte, 4)
	for i := range collections {
		if collections[i], err = readParts(cr); err != nil {
			return nil, err
		}
	}

	store := new(AssetStore)
	if err := store.Populate(collections[0], collections[1], collections[2], collections[3], palette); err != nil {
		return nil, err
	}

	return store, nil
}
