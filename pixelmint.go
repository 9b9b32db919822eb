/*
Package pixelmint issues collectible tokens whose images are generated from
layered pixel-art traits. A mint draws four trait indices from an external
entropy value; a metadata read decodes the four selected part records,
composites them into an SVG and wraps the result in a self-contained
metadata document.
*/
package pixelmint

import (
	"bytes"
	"log"

	"github.com/pixelforge/pixelmint/metadata"
	"github.com/pixelforge/pixelmint/part"
	"github.com/pixelforge/pixelmint/svg"
)

const (
	tokenPrefix      = "Critter"
	tokenDescription = "A procedurally generated critter, rendered from layered pixel traits."
)

type PixelMint struct {
	store  *AssetStore
	db     *TokenDB
	logger *log.Logger
}

func New(store *AssetStore, db *TokenDB, logger *log.Logger) *PixelMint {
	return &PixelMint{
		store:  store,
		db:     db,
		logger: logger,
	}
}

// Populate loads the four trait collections and the palette into the asset
// store. It succeeds at most once per store.
func (m *PixelMint) Populate(bodies, faces, eyes, mouths [][]byte, palette Palette) error {
	return m.store.Populate(bodies, faces, eyes, mouths, palette)
}

// Mint derives a seed for id from entropy and persists it. The operation is
// atomic: on any failure no seed is stored and no token exists.
func (m *PixelMint) Mint(id uint64, entropy Entropy) (Seed, error) {
	bodies, faces, mouths, eyes := m.store.Counts()

	seed, err := GenerateSeed(entropy, bodies, faces, mouths, eyes)
	if err != nil {
		return Seed{}, err
	}

	if err := m.db.Insert(id, seed); err != nil {
		return Seed{}, err
	}

	m.logger.Printf("minted token %d: %s\n", id, seed)

	return seed, nil
}

// Render decodes the four parts selected by seed and composites them into
// an SVG document. A decode or compose failure aborts the render; no
// partial image is ever returned.
func (m *PixelMint) Render(seed Seed) ([]byte, error) {
	records, err := m.store.Parts(seed)
	if err != nil {
		return nil, err
	}

	layers := make([]*part.Layer, len(records))
	for i, r := range records {
		if layers[i], err = part.Decode(r); err != nil {
			return nil, err
		}
	}

	b := new(bytes.Buffer)
	if err := svg.Compose(b, layers, m.store.PaletteTable()); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// TokenURI returns the metadata document for a minted token as a data URI.
// The document is rebuilt on every call from the persisted seed and the
// asset store, so for fixed assets the result is byte stable.
func (m *PixelMint) TokenURI(id uint64) (string, error) {
	seed, err := m.db.Seed(id)
	if err != nil {
		return "", err
	}

	image, err := m.Render(seed)
	if err != nil {
		return "", err
	}

	return metadata.Assemble(tokenPrefix, id, tokenDescription, image)
}
