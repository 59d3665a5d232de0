package decoder

import (
	"encoding/binary"
	"fmt"
)

// reader is a single pass cursor over the instruction stream.
// The position never moves backwards.
type reader struct {
	bytes []byte
	pos   int
}

func newReader(bytes []byte) *reader {
	return &reader{bytes: bytes}
}

func (r *reader) atEnd() bool {
	return r.pos >= len(r.bytes)
}

func (r *reader) offset() int {
	return r.pos
}

func (r *reader) readByte() (byte, error) {
	if r.atEnd() {
		return 0, fmt.Errorf("read byte at offset %d: %w", r.pos, ErrTruncatedInput)
	}

	b := r.bytes[r.pos]
	r.pos += 1
	return b, nil
}

// [lo] [hi]
// The intel x86 processors use Little Endian, so the low byte comes first
func (r *reader) readWord() (uint16, error) {
	low, err := r.readByte()
	if err != nil {
		return 0, err
	}
	high, err := r.readByte()
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16([]byte{low, high}), nil
}

// since returns the bytes consumed from start up to the current position.
func (r *reader) since(start int) []byte {
	return r.bytes[start:r.pos]
}
