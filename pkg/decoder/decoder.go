package decoder

import (
	"fmt"
	"strings"
)

// Instruction reference for 8086 CPU (https://edge.edx.org/c4x/BITSPilani/EEE231/asset/8086_family_Users_Manual_1_.pdf | page 161(pdf))
// [opcode|d|w] [mod|reg|r/m] [displacement-low] [displacement-high] [data-low] [data-high]
//    6    1 1    2   3   3
// Disp-lo (Displacement low) - Low-order byte of optional 8- or 16-bit displacement; MOD indicates if present.
// Disp-hi (Displacement High) - High-order byte of optional 16-bit displacement; MOD indicates if present.
// Data-lo (Data low) - Low-order byte of 16-bit immediate constant.
// Data-hi (Data high) - High-order byte of 16-bit immediate constant.

// Header starts every listing produced by the decoder.
const Header = "bits 16\n\n"

const Mnemonic = "mov"

// Instruction is a single decoded MOV.
type Instruction struct {
	Offset int
	Bytes  []byte
	Form   Form
	Dest   string
	Src    string
}

func (i Instruction) String() string {
	return fmt.Sprintf("%s %s, %s", Mnemonic, i.Dest, i.Src)
}

type Decoder struct {
	bytes []byte
}

func NewDecoder(bytes []byte) *Decoder {
	return &Decoder{bytes: bytes}
}

// Instructions decodes the whole input. On failure nothing decoded so far is returned.
func (d *Decoder) Instructions() ([]Instruction, error) {
	r := newReader(d.bytes)
	var instructions []Instruction

	for !r.atEnd() {
		instruction, err := decodeInstruction(r)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, instruction)
	}

	return instructions, nil
}

// Decode returns the assembly text for the input, header included.
func (d *Decoder) Decode() ([]byte, error) {
	instructions, err := d.Instructions()
	if err != nil {
		return nil, err
	}

	return []byte(Format(instructions)), nil
}

// Format renders decoded instructions as a listing that nasm can assemble.
func Format(instructions []Instruction) string {
	var builder strings.Builder
	builder.WriteString(Header)
	for _, instruction := range instructions {
		builder.WriteString(instruction.String())
		builder.WriteByte('\n')
	}
	return builder.String()
}

// Disassemble turns 8086 MOV machine code into assembly text.
func Disassemble(bytes []byte) (string, error) {
	decoded, err := NewDecoder(bytes).Decode()
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func decodeInstruction(r *reader) (Instruction, error) {
	start := r.offset()

	operation, err := r.readByte()
	if err != nil {
		return Instruction{}, err
	}

	form, err := classify(operation, start)
	if err != nil {
		return Instruction{}, err
	}

	var dest, src string
	switch form {
	case FormImmediateToReg:
		dest, src, err = moveImmediateToReg(operation, r)
	case FormRegMemToFromReg:
		dest, src, err = moveRegMemToReg(operation, r)
	case FormAccumulatorToMemory:
		dest, src, err = moveAccumulatorToMemory(operation, r)
	case FormMemoryToAccumulator:
		dest, src, err = moveMemoryToAccumulator(operation, r)
	case FormImmediateToRegOrMem:
		dest, src, err = moveImmediateToRegOrMem(operation, r)
	}
	if err != nil {
		return Instruction{}, fmt.Errorf("decode instruction at offset %d: %w", start, err)
	}

	return Instruction{
		Offset: start,
		Bytes:  r.since(start),
		Form:   form,
		Dest:   dest,
		Src:    src,
	}, nil
}
