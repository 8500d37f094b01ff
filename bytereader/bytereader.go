package bytereader

import (
	"bytes"
	"encoding/binary"
	"errors"
)

var ErrOutOfBounds = errors.New("bytereader: read out of bounds")

// Reader is a bounds-checked view over an immutable byte buffer. Every
// read validates offset+width against the buffer length first; a short
// read yields ErrOutOfBounds, never garbage and never a panic.
type Reader struct {
	data []byte
}

func New(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) Len() int {
	return len(r.data)
}

func (r *Reader) check(offset, width int) error {
	if offset < 0 || offset+width > len(r.data) {
		return ErrOutOfBounds
	}
	return nil
}

func (r *Reader) ReadU8(offset int) (uint8, error) {
	if err := r.check(offset, 1); err != nil {
		return 0, err
	}
	return r.data[offset], nil
}

func (r *Reader) ReadU16(offset int, order binary.ByteOrder) (uint16, error) {
	if err := r.check(offset, 2); err != nil {
		return 0, err
	}
	return order.Uint16(r.data[offset : offset+2]), nil
}

func (r *Reader) ReadU32(offset int, order binary.ByteOrder) (uint32, error) {
	if err := r.check(offset, 4); err != nil {
		return 0, err
	}
	return order.Uint32(r.data[offset : offset+4]), nil
}

// ReadTag returns the 4-byte ASCII tag at offset, as used for PNG chunk
// types and the EXIF identifier.
func (r *Reader) ReadTag(offset int) (string, error) {
	if err := r.check(offset, 4); err != nil {
		return "", err
	}
	return string(r.data[offset : offset+4]), nil
}

// Slice returns a sub-view of the buffer without copying.
func (r *Reader) Slice(offset, length int) ([]byte, error) {
	if length < 0 {
		return nil, ErrOutOfBounds
	}
	if err := r.check(offset, length); err != nil {
		return nil, err
	}
	return r.data[offset : offset+length], nil
}

func (r *Reader) HasPrefix(sig []byte) bool {
	return len(r.data) >= len(sig) && bytes.Equal(r.data[:len(sig)], sig)
}
