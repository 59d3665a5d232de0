package decoder

import (
	"fmt"
	"strconv"
)

// [100010|d|w] [mod|reg|r/m] [disp-lo] [disp-hi]
func moveRegMemToReg(operation byte, r *reader) (dest string, src string, err error) {
	dir := directionBit(operation)
	w := widthBit(operation)

	operand, err := r.readByte()
	if err != nil {
		return "", "", fmt.Errorf("expected to get an operand for the '%s' instruction: %w", FormRegMemToFromReg, err)
	}

	regName, err := registerName(regField(operand), w)
	if err != nil {
		return "", "", err
	}

	rm, err := r.decodeOperand(modField(operand), rmField(operand), w)
	if err != nil {
		return "", "", fmt.Errorf("'%s' r/m operand: %w", FormRegMemToFromReg, err)
	}

	if dir == RegIsDestination {
		return regName, rm.String(), nil
	}
	return rm.String(), regName, nil
}

// [1011|w|reg] [data] [data if w = 1]
func moveImmediateToReg(operation byte, r *reader) (dest string, src string, err error) {
	regName, err := registerName(immediateRegField(operation), immediateWidthBit(operation))
	if err != nil {
		return "", "", err
	}

	value, err := r.readImmediate(immediateWidthBit(operation))
	if err != nil {
		return "", "", fmt.Errorf("expected to get the immediate value for the '%s' instruction: %w", FormImmediateToReg, err)
	}

	return regName, strconv.Itoa(int(value)), nil
}

// [1100011|w] [mod|000|r/m] [disp-lo] [disp-hi] [data] [data if w = 1]
func moveImmediateToRegOrMem(operation byte, r *reader) (dest string, src string, err error) {
	w := widthBit(operation)

	operand, err := r.readByte()
	if err != nil {
		return "", "", fmt.Errorf("expected to get an operand for the '%s' instruction: %w", FormImmediateToRegOrMem, err)
	}

	// the reg field is not used by this form; the operand is always decoded as a byte register
	rm, err := r.decodeOperand(modField(operand), rmField(operand), ByteOperation)
	if err != nil {
		return "", "", fmt.Errorf("'%s' r/m operand: %w", FormImmediateToRegOrMem, err)
	}

	// immediate values always follow the displacement
	value, err := r.readImmediate(w)
	if err != nil {
		return "", "", fmt.Errorf("expected to get the immediate value for the '%s' instruction: %w", FormImmediateToRegOrMem, err)
	}

	size := "byte"
	if w == WordOperation {
		size = "word"
	}

	// mov [bp + 75], byte 12
	// mov [bp + 75], word 512
	return rm.String(), fmt.Sprintf("%s %d", size, value), nil
}

// [1010000|w] [addr-lo] [addr-hi]
func moveMemoryToAccumulator(operation byte, r *reader) (dest string, src string, err error) {
	address, err := r.readWord()
	if err != nil {
		return "", "", fmt.Errorf("expected to get the address for the '%s' instruction: %w", FormMemoryToAccumulator, err)
	}

	return "ax", Operand{Kind: OperandDirect, Address: address}.String(), nil
}

// [1010001|w] [addr-lo] [addr-hi]
func moveAccumulatorToMemory(operation byte, r *reader) (dest string, src string, err error) {
	address, err := r.readWord()
	if err != nil {
		return "", "", fmt.Errorf("expected to get the address for the '%s' instruction: %w", FormAccumulatorToMemory, err)
	}

	return Operand{Kind: OperandDirect, Address: address}.String(), "ax", nil
}

// [data] [data if w = 1]
func (r *reader) readImmediate(w byte) (uint16, error) {
	if w == WordOperation {
		return r.readWord()
	}

	v, err := r.readByte()
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
