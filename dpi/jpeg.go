package dpi

import (
	"encoding/binary"

	"preflight/bytereader"
)

const (
	jpegMarkerPrefix = 0xFF
	jpegSOI          = 0xD8
	jpegEOI          = 0xD9
	jpegSOS          = 0xDA
	jpegAPP1         = 0xE1

	exifTagXResolution = 282
	exifTagYResolution = 283
	exifTypeRational   = 5
)

var (
	jpegSignature = []byte{0xFF, 0xD8}
	exifHeader    = []byte("Exif\x00\x00")
)

// GetJPEGDPI walks the JPEG marker stream to the first APP1 segment and
// reads the X/Y resolution rationals from the embedded TIFF directory.
// Anything structurally wrong reports ErrNotFound, never a hard error.
func GetJPEGDPI(data []byte) (float64, float64, error) {
	r := bytereader.New(data)
	if !r.HasPrefix(jpegSignature) {
		return 0, 0, ErrNotFound
	}

	offset := 2
	for {
		prefix, err := r.ReadU8(offset)
		if err != nil || prefix != jpegMarkerPrefix {
			return 0, 0, ErrNotFound
		}
		marker, err := r.ReadU8(offset + 1)
		if err != nil {
			return 0, 0, ErrNotFound
		}

		// fill byte before the real marker
		if marker == jpegMarkerPrefix {
			offset++
			continue
		}
		// standalone markers carry no length field
		if marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7) {
			offset += 2
			continue
		}
		// entropy-coded data or end of image: no EXIF ahead
		if marker == jpegSOS || marker == jpegEOI {
			return 0, 0, ErrNotFound
		}

		segLen, err := r.ReadU16(offset+2, binary.BigEndian)
		if err != nil || segLen < 2 {
			return 0, 0, ErrNotFound
		}

		if marker == jpegAPP1 {
			payload, err := r.Slice(offset+4, int(segLen)-2)
			if err != nil {
				return 0, 0, ErrNotFound
			}
			return exifResolution(payload)
		}

		offset += 2 + int(segLen)
	}
}

func exifResolution(payload []byte) (float64, float64, error) {
	r := bytereader.New(payload)
	if !r.HasPrefix(exifHeader) {
		return 0, 0, ErrNotFound
	}
	tiff, err := r.Slice(len(exifHeader), r.Len()-len(exifHeader))
	if err != nil {
		return 0, 0, ErrNotFound
	}
	return tiffResolution(tiff)
}

// tiffResolution scans the first IFD of a TIFF block for tag 282/283.
// All offsets inside the block, including the rational value offset,
// are relative to the block start.
func tiffResolution(tiff []byte) (float64, float64, error) {
	r := bytereader.New(tiff)

	orderTag, err := r.Slice(0, 2)
	if err != nil {
		return 0, 0, ErrNotFound
	}
	var order binary.ByteOrder
	switch string(orderTag) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return 0, 0, ErrNotFound
	}

	ifdOffset, err := r.ReadU32(4, order)
	if err != nil {
		return 0, 0, ErrNotFound
	}
	entryCount, err := r.ReadU16(int(ifdOffset), order)
	if err != nil {
		return 0, 0, ErrNotFound
	}

	for i := 0; i < int(entryCount); i++ {
		entry := int(ifdOffset) + 2 + i*12
		tag, err := r.ReadU16(entry, order)
		if err != nil {
			return 0, 0, ErrNotFound
		}
		typ, err := r.ReadU16(entry+2, order)
		if err != nil {
			return 0, 0, ErrNotFound
		}
		if tag != exifTagXResolution && tag != exifTagYResolution {
			continue
		}
		if typ != exifTypeRational {
			continue
		}

		// the 8-byte rational never fits the value field, it always
		// lives at the offset stored there
		valOffset, err := r.ReadU32(entry+8, order)
		if err != nil {
			return 0, 0, ErrNotFound
		}
		numerator, err := r.ReadU32(int(valOffset), order)
		if err != nil {
			return 0, 0, ErrNotFound
		}
		denominator, err := r.ReadU32(int(valOffset)+4, order)
		if err != nil || denominator == 0 {
			return 0, 0, ErrNotFound
		}

		dpi := float64(numerator) / float64(denominator)
		return dpi, dpi, nil
	}
	return 0, 0, ErrNotFound
}
