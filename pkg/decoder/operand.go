package decoder

import (
	"fmt"
	"strconv"
)

type OperandKind int

const (
	OperandRegister OperandKind = iota
	OperandDirect
	OperandIndexed
)

func (k OperandKind) String() string {
	switch k {
	case OperandRegister:
		return "register"
	case OperandDirect:
		return "direct"
	case OperandIndexed:
		return "indexed"
	default:
		return "OperandKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operand is a decoded register or memory operand.
// Only the fields that belong to Kind are set.
type Operand struct {
	Kind         OperandKind
	Register     string
	Address      uint16
	Base         string
	Displacement int16
}

func (o Operand) String() string {
	switch o.Kind {
	case OperandRegister:
		return o.Register
	case OperandDirect:
		return fmt.Sprintf("[%d]", o.Address)
	case OperandIndexed:
		return fmt.Sprintf("[%s%s]", o.Base, displacementTerm(o.Displacement))
	default:
		return ""
	}
}

// displacementTerm renders " + N", " - N" or nothing for a zero displacement.
func displacementTerm(disp int16) string {
	// int keeps -32768 representable after negation
	value := int(disp)
	switch {
	case value > 0:
		return " + " + strconv.Itoa(value)
	case value < 0:
		return " - " + strconv.Itoa(-value)
	default:
		return ""
	}
}

// [mod|reg|r/m] [disp-lo] [disp-hi]
func (r *reader) decodeOperand(mod byte, rm byte, w byte) (Operand, error) {
	switch mod {
	case RegisterMode:
		name, err := registerName(rm, w)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Kind: OperandRegister, Register: name}, nil

	case MemoryModeNoDisplacement:
		// the exception for the direct address - 16-bit displacement with no base registers
		if rm == directAddressRM {
			address, err := r.readWord()
			if err != nil {
				return Operand{}, fmt.Errorf("direct address: %w", err)
			}
			return Operand{Kind: OperandDirect, Address: address}, nil
		}
		return Operand{Kind: OperandIndexed, Base: effectiveAddress(rm)}, nil

	case MemoryMode8Displacement:
		disp, err := r.readByte()
		if err != nil {
			return Operand{}, fmt.Errorf("8-bit displacement: %w", err)
		}
		return Operand{Kind: OperandIndexed, Base: effectiveAddress(rm), Displacement: int16(int8(disp))}, nil

	case MemoryMode16Displacement:
		disp, err := r.readWord()
		if err != nil {
			return Operand{}, fmt.Errorf("16-bit displacement: %w", err)
		}
		return Operand{Kind: OperandIndexed, Base: effectiveAddress(rm), Displacement: int16(disp)}, nil

	default:
		return Operand{}, &UnsupportedAddressingModeError{Mod: mod}
	}
}
