/*
Package metadata assembles the self-contained token metadata document.

The document carries the token's display name, a fixed collection
description and the rendered image, all folded into a single data URI so
one opaque string fully represents the token. Nothing here is persisted;
documents are rebuilt from the seed and asset store on every read.
*/
package metadata

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

const (
	imagePrefix    = "data:image/svg+xml;base64,"
	documentPrefix = "data:application/json;base64,"
)

// Document is the metadata record for one token.
type Document struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Assemble builds the metadata document for one token and returns it as a
// base64 JSON data URI. The image is embedded as an SVG data URI of its
// own.
func Assemble(prefix string, id uint64, description string, image []byte) (string, error) {
	d := Document{
		Name:        fmt.Sprintf("%s #%d", prefix, id),
		Description: description,
		Image:       imagePrefix + base64.StdEncoding.EncodeToString(image),
	}

	b, err := json.Marshal(&d)
	if err != nil {
		return "", err
	}

	return documentPrefix + base64.StdEncoding.EncodeToString(b), nil
}

// Decode parses a data URI produced by Assemble back into its Document.
// It is the inverse used by tooling and tests; tokens are never stored in
// this form.
func Decode(uri string) (*Document, error) {
	if len(uri) < len(documentPrefix) || uri[:len(documentPrefix)] != documentPrefix {
		return nil, fmt.Errorf("metadata: not a JSON data URI")
	}

	b, err := base64.StdEncoding.DecodeString(uri[len(documentPrefix):])
	if err != nil {
		return nil, err
	}

	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}

	return &d, nil
}

// DecodeImage extracts and decodes the embedded image from a Document.
func (d *Document) DecodeImage() ([]byte, error) {
	if len(d.Image) < len(imagePrefix) || d.Image[:len(imagePrefix)] != imagePrefix {
		return nil, fmt.Errorf("metadata: not an SVG data URI")
	}
	return base64.StdEncoding.DecodeString(d.Image[len(imagePrefix):])
}
