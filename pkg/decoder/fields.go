package decoder

// [opcode|d|w] [mod|reg|r/m]
//    6    1 1    2   3   3

// D bit - direction of the operation
const (
	RegIsSource      = byte(0)
	RegIsDestination = byte(1)
)

// MOD field
//
// The MOD field indicates how many displacement bytes are present.
// If the displacement is two bytes, the most-significant byte is stored second.
// A single displacement byte is sign-extended to 16 bits.
const (
	MemoryModeNoDisplacement = byte(0b00)
	MemoryMode8Displacement  = byte(0b01)
	MemoryMode16Displacement = byte(0b10)
	RegisterMode             = byte(0b11)
)

// r/m value that turns MOD = 00 into a 16-bit direct address
const directAddressRM = byte(0b110)

func directionBit(operation byte) byte {
	return (operation >> 1) & 0b1
}

func widthBit(operation byte) byte {
	return operation & 0b1
}

// [1011|w|reg]
func immediateWidthBit(operation byte) byte {
	return (operation >> 3) & 0b1
}

func immediateRegField(operation byte) byte {
	return operation & 0b111
}

func modField(operand byte) byte {
	return operand >> 6
}

func regField(operand byte) byte {
	return (operand >> 3) & 0b111
}

func rmField(operand byte) byte {
	return operand & 0b111
}
