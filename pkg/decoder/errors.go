package decoder

import (
	"errors"
	"fmt"
)

// ErrTruncatedInput is returned when an instruction needs more bytes than the input has left.
var ErrTruncatedInput = errors.New("truncated input")

// ErrInvalidEncoding is returned when a register field holds more than 3 bits
// or the W bit is not binary. The field accessors never produce such values.
var ErrInvalidEncoding = errors.New("invalid encoding")

// UnsupportedOpcodeError is returned when the first byte of an instruction
// matches none of the MOV opcode patterns.
type UnsupportedOpcodeError struct {
	Byte   byte
	Offset int
}

func (e *UnsupportedOpcodeError) Error() string {
	return fmt.Sprintf("unsupported opcode %#02x (%08b) at offset %d", e.Byte, e.Byte, e.Offset)
}

// UnsupportedAddressingModeError is returned for a MOD field outside 0b00..0b11.
type UnsupportedAddressingModeError struct {
	Mod byte
}

func (e *UnsupportedAddressingModeError) Error() string {
	return fmt.Sprintf("unsupported addressing mode %02b", e.Mod)
}
