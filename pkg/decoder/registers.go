package decoder

import "fmt"

// W bit
const (
	ByteOperation = byte(0)
	WordOperation = byte(1)
)

// REG (Register) field encoding
// | REG | W = 0 | W = 1|
// ---------------------
// | 000 | AL    | AX   |
// | 001 | CL    | CX   |
// | 010 | DL    | DX   |
// | 011 | BL    | BX   |
// | 100 | AH    | SP   |
// | 101 | CH    | BP   |
// | 110 | DH    | SI   |
// | 111 | BH    | DI   |
var byteRegisters = [8]string{"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh"}
var wordRegisters = [8]string{"ax", "cx", "dx", "bx", "sp", "bp", "si", "di"}

func registerName(code byte, w byte) (string, error) {
	if code > 0b111 {
		return "", fmt.Errorf("register code %b: %w", code, ErrInvalidEncoding)
	}

	switch w {
	case ByteOperation:
		return byteRegisters[code], nil
	case WordOperation:
		return wordRegisters[code], nil
	default:
		return "", fmt.Errorf("operation width %b: %w", w, ErrInvalidEncoding)
	}
}

// Effective address equation based on the r/m (Register/Memory) field encoding
// Table 4-10 in the 8086 family user's manual
var effectiveAddressEquation = [8]string{
	0b000: "bx + si",
	0b001: "bx + di",
	0b010: "bp + si",
	0b011: "bp + di",
	0b100: "si",
	0b101: "di",
	0b110: "bp", // If MOD = 00, then it's a Direct Address
	0b111: "bx",
}

func effectiveAddress(rm byte) string {
	return effectiveAddressEquation[rm&0b111]
}
