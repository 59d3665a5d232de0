package decoder

import "strconv"

// Form is the encoding shape of a MOV instruction, selected by its first byte.
type Form int

const (
	FormRegMemToFromReg Form = iota
	FormImmediateToReg
	FormImmediateToRegOrMem
	FormMemoryToAccumulator
	FormAccumulatorToMemory
)

func (f Form) String() string {
	switch f {
	case FormRegMemToFromReg:
		return "register/memory to/from register"
	case FormImmediateToReg:
		return "immediate to register"
	case FormImmediateToRegOrMem:
		return "immediate to register/memory"
	case FormMemoryToAccumulator:
		return "memory to accumulator"
	case FormAccumulatorToMemory:
		return "accumulator to memory"
	default:
		return "Form(" + strconv.Itoa(int(f)) + ")"
	}
}

// opcode patterns, masked against the first instruction byte
const (
	immediateToRegMask     = byte(0b1111_0000)
	immediateToRegValue    = byte(0b1011_0000) // [1011|w|reg]
	regMemMask             = byte(0b1111_1100)
	regMemValue            = byte(0b1000_1000) // [100010|d|w]
	accumulatorMask        = byte(0b1111_1110)
	accumulatorToMemValue  = byte(0b1010_0010) // [1010001|w]
	memToAccumulatorValue  = byte(0b1010_0000) // [1010000|w]
	immediateToRegMemMask  = byte(0b1111_1110)
	immediateToRegMemValue = byte(0b1100_0110) // [1100011|w]
)

// classify picks the instruction form for the first byte.
// The cases are checked in a fixed order; a byte that fits an earlier
// pattern never reaches a later one.
func classify(operation byte, offset int) (Form, error) {
	switch {
	case operation&immediateToRegMask == immediateToRegValue:
		return FormImmediateToReg, nil
	case operation&regMemMask == regMemValue:
		return FormRegMemToFromReg, nil
	case operation&accumulatorMask == accumulatorToMemValue:
		return FormAccumulatorToMemory, nil
	case operation&accumulatorMask == memToAccumulatorValue:
		return FormMemoryToAccumulator, nil
	case operation&immediateToRegMemMask == immediateToRegMemValue:
		return FormImmediateToRegOrMem, nil
	default:
		return 0, &UnsupportedOpcodeError{Byte: operation, Offset: offset}
	}
}
