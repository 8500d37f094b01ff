package dpi

import (
	"encoding/binary"
	"math"

	"preflight/bytereader"
)

const (
	physChunk     = "pHYs"
	metersPerInch = 0.0254

	pngChunkHeader = 8 // 4-byte length + 4-byte type
	pngChunkCRC    = 4
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// GetPNGDPI walks the PNG chunk stream looking for a pHYs chunk with a
// physical unit. Pixels-per-meter convert to DPI per axis, the result
// averages both axes. Uncalibrated chunks (unit 0) and missing chunks
// report ErrNotFound.
func GetPNGDPI(data []byte) (float64, float64, error) {
	r := bytereader.New(data)
	if !r.HasPrefix(pngSignature) {
		return 0, 0, ErrNotFound
	}

	offset := len(pngSignature)
	for offset < r.Len() {
		length, err := r.ReadU32(offset, binary.BigEndian)
		if err != nil {
			return 0, 0, ErrNotFound
		}
		chunkType, err := r.ReadTag(offset + 4)
		if err != nil {
			return 0, 0, ErrNotFound
		}

		if chunkType == physChunk {
			pxPerUnitX, err := r.ReadU32(offset+8, binary.BigEndian)
			if err != nil {
				return 0, 0, ErrNotFound
			}
			pxPerUnitY, err := r.ReadU32(offset+12, binary.BigEndian)
			if err != nil {
				return 0, 0, ErrNotFound
			}
			unit, err := r.ReadU8(offset + 16)
			if err != nil {
				return 0, 0, ErrNotFound
			}
			if unit != 1 {
				// unit 0: aspect ratio only, no physical calibration
				return 0, 0, ErrNotFound
			}

			dpiX := math.Round(float64(pxPerUnitX) * metersPerInch)
			dpiY := math.Round(float64(pxPerUnitY) * metersPerInch)
			avg := math.Round((dpiX + dpiY) / 2)
			return avg, avg, nil
		}

		offset += pngChunkHeader + int(length) + pngChunkCRC
	}
	return 0, 0, ErrNotFound
}
