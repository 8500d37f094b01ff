// Package dpi extracts physical print resolution from raw image bytes.
// Extractors parse the container encoding directly and never decode
// pixel data; each reports ErrNotFound instead of failing the caller.
package dpi

import "errors"

// ErrNotFound means the buffer carries no usable resolution metadata.
// Wrong container, missing tags and structural damage all map here so
// the fallback chain can move on.
var ErrNotFound = errors.New("dpi: no resolution metadata found")

// Extractor is one step of the fallback chain: raw bytes in, an
// (x, y) resolution pair or ErrNotFound out. Extractors are pure and
// side-effect free.
type Extractor func(data []byte) (float64, float64, error)
